package domain

import (
	"maps"
	"time"
)

// Section identifies one logical group of report questions.
type Section string

const (
	SectionIncidentDetails       Section = "incidentDetails"
	SectionReasonsForUseOfForce  Section = "reasonsForUseOfForce"
	SectionUseOfForceDetails     Section = "useOfForceDetails"
	SectionRelocationAndInjuries Section = "relocationAndInjuries"
	SectionEvidence              Section = "evidence"

	// SectionReportOwner is not part of the form. It scopes audit records
	// written when a report is reassigned to another member of staff.
	SectionReportOwner Section = "reportOwner"
)

// EditableSections lists the form sections a coordinator can amend, in form order.
var EditableSections = []Section{
	SectionIncidentDetails,
	SectionReasonsForUseOfForce,
	SectionUseOfForceDetails,
	SectionRelocationAndInjuries,
	SectionEvidence,
}

func (s Section) String() string { return string(s) }

// IsEditable reports whether s is one of the five form sections.
func (s Section) IsEditable() bool {
	switch s {
	case SectionIncidentDetails, SectionReasonsForUseOfForce, SectionUseOfForceDetails,
		SectionRelocationAndInjuries, SectionEvidence:
		return true
	}
	return false
}

// IsValid reports whether s is a known section, including the owner pseudo-section.
func (s Section) IsValid() bool {
	return s.IsEditable() || s == SectionReportOwner
}

// ReportStatus is the lifecycle state of a report.
type ReportStatus string

const (
	ReportStatusInProgress ReportStatus = "IN_PROGRESS"
	ReportStatusSubmitted  ReportStatus = "SUBMITTED"
	ReportStatusComplete   ReportStatus = "COMPLETE"
)

func (s ReportStatus) String() string { return string(s) }

// Form holds the answers of every section, keyed by question key.
type Form map[Section]map[string]any

// Report is a persisted use of force incident report.
// Incident date and prison live in their own columns; every other answer
// lives in Form.
type Report struct {
	ID           int64
	Username     string
	ReporterName string
	BookingID    int64
	AgencyID     string
	IncidentDate time.Time
	Status       ReportStatus
	Form         Form
	UpdatedDate  time.Time
}

// SectionValues returns a snapshot of the answers for one section. For
// incident details the column-backed incident date and prison are included
// under their question keys so comparators can treat the section uniformly.
// The returned map is a copy and safe to modify.
func (r *Report) SectionValues(s Section) map[string]any {
	values := make(map[string]any)
	if r.Form != nil {
		maps.Copy(values, r.Form[s])
	}

	if s == SectionIncidentDetails {
		if !r.IncidentDate.IsZero() {
			values[string(QIncidentDate)] = r.IncidentDate
		}
		if r.AgencyID != "" {
			values[string(QPrison)] = r.AgencyID
		}
	}

	return values
}
