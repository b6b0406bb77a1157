package edit

import (
	"strings"

	"github.com/heartmarshall/use-of-force/internal/domain"
)

const maxReasonTextLength = 4000

// Justification is the reason a coordinator gives for changing a report.
type Justification struct {
	Reason               domain.EditReason
	ReasonText           string
	ReasonAdditionalInfo string
}

func (j Justification) validate() []domain.FieldError {
	var errs []domain.FieldError

	if j.Reason == "" {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "required"})
	} else if !j.Reason.IsValid() {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "invalid value"})
	}

	if j.Reason.RequiresText() && strings.TrimSpace(j.ReasonText) == "" {
		errs = append(errs, domain.FieldError{Field: "reasonText", Message: "required"})
	}
	if len(j.ReasonText) > maxReasonTextLength {
		errs = append(errs, domain.FieldError{Field: "reasonText", Message: "max 4000 characters"})
	}
	if len(j.ReasonAdditionalInfo) > maxReasonTextLength {
		errs = append(errs, domain.FieldError{Field: "reasonAdditionalInfo", Message: "max 4000 characters"})
	}

	return errs
}

// CommitEditInput holds the parameters for committing a section edit.
type CommitEditInput struct {
	ReportID int64
	Section  domain.Section
	Payload  map[string]any
	Justification
}

// Validate checks all fields and collects all errors.
func (i CommitEditInput) Validate() error {
	var errs []domain.FieldError

	if i.ReportID <= 0 {
		errs = append(errs, domain.FieldError{Field: "reportId", Message: "required"})
	}
	if len(i.Payload) == 0 {
		errs = append(errs, domain.FieldError{Field: "payload", Message: "required"})
	}
	errs = append(errs, i.Justification.validate()...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ReassignOwnerInput holds the parameters for handing a report to another
// member of staff.
type ReassignOwnerInput struct {
	ReportID     int64
	Username     string
	ReporterName string
	Justification
}

// Validate checks all fields and collects all errors.
func (i ReassignOwnerInput) Validate() error {
	var errs []domain.FieldError

	if i.ReportID <= 0 {
		errs = append(errs, domain.FieldError{Field: "reportId", Message: "required"})
	}
	if strings.TrimSpace(i.Username) == "" {
		errs = append(errs, domain.FieldError{Field: "username", Message: "required"})
	}
	if strings.TrimSpace(i.ReporterName) == "" {
		errs = append(errs, domain.FieldError{Field: "reporterName", Message: "required"})
	}
	errs = append(errs, i.Justification.validate()...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
