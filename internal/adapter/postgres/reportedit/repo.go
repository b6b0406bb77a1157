// Package reportedit implements the report edit audit trail using PostgreSQL.
// The table is append-only; a trigger rejects UPDATE and DELETE.
package reportedit

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/use-of-force/internal/adapter/postgres"
	"github.com/heartmarshall/use-of-force/internal/domain"
)

const table = "report_edit"

var columns = []string{
	"id", "report_id", "section", "edit_date", "editor_user_id", "editor_name",
	"changes", "reason", "reason_text", "additional_comments", "report_owner_changed",
}

// Repo provides audit record persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new report edit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Append inserts a new audit record and returns its id. A nil id is
// replaced with a freshly generated one.
func (r *Repo) Append(ctx context.Context, edit *domain.ReportEdit) (uuid.UUID, error) {
	if edit == nil {
		return uuid.Nil, fmt.Errorf("report_edit: %w", domain.ErrValidation)
	}

	id := edit.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	changes := string(edit.Changes)
	if changes == "" {
		changes = "{}"
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(
			id,
			edit.ReportID,
			string(edit.Section),
			edit.EditDate,
			edit.EditorUserID,
			edit.EditorName,
			squirrel.Expr("?::jsonb", changes),
			string(edit.Reason),
			edit.ReasonText,
			edit.ReasonAdditionalInfo,
			edit.ReportOwnerChanged,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("build report_edit insert: %w", err)
	}

	var stored uuid.UUID
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&stored); err != nil {
		return uuid.Nil, postgres.MapError(err, "report_edit", id)
	}

	return stored, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByReport returns every audit record of a report, oldest first.
// Records written in the same instant keep their insertion order.
func (r *Repo) ListByReport(ctx context.Context, reportID int64) ([]*domain.ReportEdit, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"report_id": reportID}).
		OrderBy("edit_date ASC", "seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build report_edit query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "report_edits for report", reportID)
	}
	defer rows.Close()

	edits := make([]*domain.ReportEdit, 0)
	for rows.Next() {
		var (
			e       domain.ReportEdit
			section string
			reason  string
			changes []byte
		)
		if err := rows.Scan(
			&e.ID,
			&e.ReportID,
			&section,
			&e.EditDate,
			&e.EditorUserID,
			&e.EditorName,
			&changes,
			&reason,
			&e.ReasonText,
			&e.ReasonAdditionalInfo,
			&e.ReportOwnerChanged,
		); err != nil {
			return nil, fmt.Errorf("scan report_edit: %w", err)
		}
		e.Section = domain.Section(section)
		e.Reason = domain.EditReason(reason)
		e.Changes = changes
		edits = append(edits, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "report_edits for report", reportID)
	}

	return edits, nil
}
