package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ReportEdit is the immutable audit record of one committed edit.
// Changes holds the section change map in its stored JSON shape:
// {questionKey: {question, oldValue, newValue}}.
type ReportEdit struct {
	ID                   uuid.UUID
	ReportID             int64
	Section              Section
	EditDate             time.Time
	EditorUserID         string
	EditorName           string
	Changes              json.RawMessage
	Reason               EditReason
	ReasonText           string
	ReasonAdditionalInfo string
	ReportOwnerChanged   bool
}
