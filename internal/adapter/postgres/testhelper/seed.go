package testhelper

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/use-of-force/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedReport inserts a submitted report with the given form answers and
// returns it with its generated id.
func SeedReport(t *testing.T, pool *pgxpool.Pool, form domain.Form) domain.Report {
	t.Helper()
	ctx := context.Background()

	if form == nil {
		form = domain.Form{}
	}
	body, err := json.Marshal(form)
	if err != nil {
		t.Fatalf("testhelper: SeedReport marshal form: %v", err)
	}

	suffix := uniqueSuffix()
	report := domain.Report{
		Username:     "REPORTER_" + suffix,
		ReporterName: "Reporter " + suffix,
		BookingID:    rand.Int64N(1_000_000) + 1,
		AgencyID:     "MDI",
		IncidentDate: time.Date(2020, 3, 2, 14, 17, 0, 0, time.UTC),
		Status:       domain.ReportStatusSubmitted,
		Form:         form,
		UpdatedDate:  time.Now().UTC().Truncate(time.Microsecond),
	}

	err = pool.QueryRow(ctx,
		`INSERT INTO report (username, reporter_name, booking_id, agency_id, incident_date, status, form_response, updated_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		report.Username, report.ReporterName, report.BookingID, report.AgencyID,
		report.IncidentDate, string(report.Status), string(body), report.UpdatedDate,
	).Scan(&report.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedReport insert report: %v", err)
	}

	return report
}
