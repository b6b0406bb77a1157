package edit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/use-of-force/internal/domain"
	"github.com/heartmarshall/use-of-force/pkg/ctxutil"
)

// CommitEdit applies a section edit to the report and appends its audit
// record in one transaction. The change map is computed against the report
// as read inside the transaction; only changed records are persisted.
func (s *Service) CommitEdit(ctx context.Context, input CommitEditInput) (*domain.ReportEdit, error) {
	editor, ok := ctxutil.UserFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	schema, err := s.editableSchema(input.Section)
	if err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	answers := schema.Normalize(input.Payload)
	if err := requireColumnAnswers(input.Section, answers); err != nil {
		return nil, err
	}

	var record *domain.ReportEdit
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		report, err := s.reports.GetByID(txCtx, input.ReportID)
		if err != nil {
			return fmt.Errorf("get report: %w", err)
		}

		changes := schema.Compare(report.SectionValues(input.Section), input.Payload)
		if !changes.HasChanges() {
			return domain.NewValidationError("payload", "no changes")
		}

		if err := s.reports.ApplySectionUpdate(txCtx, input.ReportID, input.Section, answers); err != nil {
			return fmt.Errorf("apply section update: %w", err)
		}

		body, err := json.Marshal(changes.OnlyChanged())
		if err != nil {
			return fmt.Errorf("marshal changes: %w", err)
		}

		record = &domain.ReportEdit{
			ReportID:             input.ReportID,
			Section:              input.Section,
			EditDate:             s.now(),
			EditorUserID:         editor.Username,
			EditorName:           editor.DisplayName,
			Changes:              body,
			Reason:               input.Reason,
			ReasonText:           input.ReasonText,
			ReasonAdditionalInfo: input.ReasonAdditionalInfo,
		}

		id, err := s.edits.Append(txCtx, record)
		if err != nil {
			return fmt.Errorf("append report edit: %w", err)
		}
		record.ID = id

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementEditsCommitted(string(input.Section))

	s.log.InfoContext(ctx, "report edit committed",
		slog.Int64("report_id", input.ReportID),
		slog.String("section", string(input.Section)),
		slog.String("edit_id", record.ID.String()),
		slog.String("editor", editor.Username),
		slog.String("reason", string(input.Reason)),
	)

	return record, nil
}

// ReassignOwner hands a report to another member of staff and records the
// change in the audit trail with reportOwnerChanged set.
func (s *Service) ReassignOwner(ctx context.Context, input ReassignOwnerInput) (*domain.ReportEdit, error) {
	editor, ok := ctxutil.UserFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	schema := s.registry.MustSection(domain.SectionReportOwner)
	key := string(domain.QReportOwner)

	var record *domain.ReportEdit
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		report, err := s.reports.GetByID(txCtx, input.ReportID)
		if err != nil {
			return fmt.Errorf("get report: %w", err)
		}
		if report.Username == input.Username {
			return domain.NewValidationError("username", "already owns the report")
		}

		if err := s.reports.ChangeOwner(txCtx, input.ReportID, input.Username, input.ReporterName); err != nil {
			return fmt.Errorf("change owner: %w", err)
		}

		changes := schema.Compare(
			map[string]any{key: report.ReporterName},
			map[string]any{key: input.ReporterName},
		)
		body, err := json.Marshal(changes)
		if err != nil {
			return fmt.Errorf("marshal changes: %w", err)
		}

		record = &domain.ReportEdit{
			ReportID:             input.ReportID,
			Section:              domain.SectionReportOwner,
			EditDate:             s.now(),
			EditorUserID:         editor.Username,
			EditorName:           editor.DisplayName,
			Changes:              body,
			Reason:               input.Reason,
			ReasonText:           input.ReasonText,
			ReasonAdditionalInfo: input.ReasonAdditionalInfo,
			ReportOwnerChanged:   true,
		}

		id, err := s.edits.Append(txCtx, record)
		if err != nil {
			return fmt.Errorf("append report edit: %w", err)
		}
		record.ID = id

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementOwnerReassignments()

	s.log.InfoContext(ctx, "report owner reassigned",
		slog.Int64("report_id", input.ReportID),
		slog.String("edit_id", record.ID.String()),
		slog.String("new_owner", input.Username),
		slog.String("editor", editor.Username),
	)

	return record, nil
}

// columnAnswers are answers stored in report columns rather than the form
// document. An edit cannot clear them.
var columnAnswers = map[domain.Section][]domain.QuestionKey{
	domain.SectionIncidentDetails: {domain.QIncidentDate, domain.QPrison},
}

func requireColumnAnswers(section domain.Section, answers map[string]any) error {
	var errs []domain.FieldError
	for _, key := range columnAnswers[section] {
		if answers[string(key)] == nil {
			errs = append(errs, domain.FieldError{Field: string(key), Message: "required"})
		}
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
