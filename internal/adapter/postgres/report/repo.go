// Package report implements the report store using PostgreSQL.
// Incident date and prison are columns; every other answer lives in the
// form_response JSONB document keyed by section.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/heartmarshall/use-of-force/internal/adapter/postgres"
	"github.com/heartmarshall/use-of-force/internal/domain"
)

const table = "report"

var columns = []string{
	"id", "username", "reporter_name", "booking_id", "agency_id",
	"incident_date", "status", "form_response", "updated_date",
}

// Repo provides report persistence backed by PostgreSQL.
type Repo struct {
	db  postgres.Querier
	now func() time.Time
}

// New creates a new report repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db, now: time.Now}
}

// GetByID returns the report with the given id or domain.ErrNotFound.
// Inside a transaction the row is locked until it ends, so concurrent edits
// of one report compare against each other's result.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Report, error) {
	sel := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})
	if postgres.InTx(ctx) {
		sel = sel.Suffix("FOR UPDATE")
	}

	query, args, err := sel.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build report query: %w", err)
	}

	var (
		report       domain.Report
		incidentDate pgtype.Timestamptz
		status       string
		form         []byte
	)
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(
		&report.ID,
		&report.Username,
		&report.ReporterName,
		&report.BookingID,
		&report.AgencyID,
		&incidentDate,
		&status,
		&form,
		&report.UpdatedDate,
	)
	if err != nil {
		return nil, postgres.MapError(err, "report", id)
	}

	report.Status = domain.ReportStatus(status)
	if incidentDate.Valid {
		report.IncidentDate = incidentDate.Time
	}
	if len(form) > 0 {
		if err := json.Unmarshal(form, &report.Form); err != nil {
			return nil, fmt.Errorf("report %d unmarshal form_response: %w", id, err)
		}
	}

	return &report, nil
}

// ApplySectionUpdate writes normalized answers for one section. Keys with a
// nil value are removed from the stored section; keys the update does not
// mention are kept. For incident details the incident date and prison are
// written to their columns instead of the document.
func (r *Repo) ApplySectionUpdate(ctx context.Context, id int64, section domain.Section, values map[string]any) error {
	answers := maps.Clone(values)
	if answers == nil {
		answers = map[string]any{}
	}

	update := postgres.Builder().
		Update(table).
		Set("updated_date", r.now().UTC()).
		Where(squirrel.Eq{"id": id})

	if section == domain.SectionIncidentDetails {
		if raw, present := answers[string(domain.QIncidentDate)]; present {
			if v, ok := raw.(time.Time); ok {
				update = update.Set("incident_date", v.UTC())
			} else if raw == nil {
				update = update.Set("incident_date", nil)
			}
		}
		if v, ok := answers[string(domain.QPrison)].(string); ok && v != "" {
			update = update.Set("agency_id", v)
		}
		delete(answers, string(domain.QIncidentDate))
		delete(answers, string(domain.QPrison))
	}

	body, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("report %d marshal %s answers: %w", id, section, err)
	}

	update = update.Set("form_response", squirrel.Expr(
		"jsonb_set(form_response, array[?::text], jsonb_strip_nulls(coalesce(form_response -> ?, '{}'::jsonb) || ?::jsonb))",
		string(section), string(section), string(body),
	))

	return r.exec(ctx, id, update)
}

// ChangeOwner hands the report to another member of staff.
func (r *Repo) ChangeOwner(ctx context.Context, id int64, username, reporterName string) error {
	update := postgres.Builder().
		Update(table).
		Set("username", username).
		Set("reporter_name", reporterName).
		Set("updated_date", r.now().UTC()).
		Where(squirrel.Eq{"id": id})

	return r.exec(ctx, id, update)
}

func (r *Repo) exec(ctx context.Context, id int64, update squirrel.UpdateBuilder) error {
	query, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("build report update: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "report", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("report %d: %w", id, domain.ErrNotFound)
	}

	return nil
}
