package edit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/use-of-force/internal/domain"
	"golang.org/x/sync/errgroup"
)

// HistoryRow is one committed edit rendered for the edit history view.
// WhatChanged, ChangedFrom and ChangedTo are index-aligned.
type HistoryRow struct {
	EditID             uuid.UUID
	Section            domain.Section
	EditDate           time.Time
	EditDateDisplay    string
	EditorName         string
	WhatChanged        []string
	ChangedFrom        []string
	ChangedTo          []string
	Reason             string
	AdditionalInfo     string
	ReportOwnerChanged bool
	// Degraded is set when part of the row could not be resolved and
	// fallback text is shown instead.
	Degraded bool
}

// BuildEditHistory renders every audit record of a report, oldest first.
// A record whose names cannot be resolved is rendered with raw identifiers
// and marked degraded; it never fails the whole history.
func (s *Service) BuildEditHistory(ctx context.Context, reportID int64, lc LookupContext) ([]HistoryRow, error) {
	start := time.Now()

	edits, err := s.edits.ListByReport(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("list report edits: %w", err)
	}
	if len(edits) == 0 {
		return []HistoryRow{}, nil
	}

	names := s.nameResolver(ctx, lc)

	rows := make([]HistoryRow, len(edits))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, e := range edits {
		g.Go(func() error {
			row, err := s.historyRow(gctx, e, names)
			if err != nil {
				return err
			}
			rows[i] = row
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, row := range rows {
		if row.Degraded {
			s.metrics.IncrementDegradedRows(DialectHistory.String())
		}
	}
	s.metrics.ObserveHistoryLatency(time.Since(start))

	return rows, nil
}

// historyRow only returns an error when ctx is done.
func (s *Service) historyRow(ctx context.Context, e *domain.ReportEdit, names NameResolver) (HistoryRow, error) {
	row := HistoryRow{
		EditID:             e.ID,
		Section:            e.Section,
		EditDate:           e.EditDate,
		EditDateDisplay:    e.EditDate.In(s.registry.Location()).Format(displayTimeLayout),
		EditorName:         e.EditorName,
		Reason:             ReasonLabel(e.Reason, e.ReasonText),
		AdditionalInfo:     e.ReasonAdditionalInfo,
		ReportOwnerChanged: e.ReportOwnerChanged,
		WhatChanged:        []string{},
		ChangedFrom:        []string{},
		ChangedTo:          []string{},
	}

	schema, ok := s.registry.Section(e.Section)
	if !ok {
		s.log.WarnContext(ctx, "audit record has unknown section",
			slog.String("edit_id", e.ID.String()),
			slog.Int64("report_id", e.ReportID),
			slog.String("section", string(e.Section)),
		)
		row.Degraded = true
		return row, nil
	}

	changes, err := schema.DecodeChanges(e.Changes)
	if err != nil {
		s.log.WarnContext(ctx, "decode audit record",
			slog.String("edit_id", e.ID.String()),
			slog.Int64("report_id", e.ReportID),
			slog.String("error", err.Error()),
		)
		row.Degraded = true
		return row, nil
	}

	fields, err := s.renderChanges(ctx, schema, changes, DialectHistory, names, false)
	if err != nil {
		return HistoryRow{}, err
	}

	for _, f := range fields {
		row.WhatChanged = append(row.WhatChanged, f.question)
		row.ChangedFrom = append(row.ChangedFrom, f.oldValue)
		row.ChangedTo = append(row.ChangedTo, f.newValue)
		row.Degraded = row.Degraded || f.degraded
	}

	return row, nil
}
