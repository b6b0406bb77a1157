package domain

// EditReason is the coded justification a coordinator gives for an edit.
type EditReason string

const (
	EditReasonErrorInReport              EditReason = "errorInReport"
	EditReasonSomethingMissingFromReport EditReason = "somethingMissingFromReport"
	EditReasonNewEvidence                EditReason = "newEvidence"
	EditReasonAnotherReasonForEdit       EditReason = "anotherReasonForEdit"
)

func (r EditReason) String() string { return string(r) }

func (r EditReason) IsValid() bool {
	switch r {
	case EditReasonErrorInReport, EditReasonSomethingMissingFromReport,
		EditReasonNewEvidence, EditReasonAnotherReasonForEdit:
		return true
	}
	return false
}

// RequiresText reports whether the reason must be accompanied by free text.
func (r EditReason) RequiresText() bool {
	return r == EditReasonAnotherReasonForEdit
}

// Tri-state answer codes used by questions that allow "not known".
const (
	AnswerYes      = "YES"
	AnswerNo       = "NO"
	AnswerNotKnown = "NOT_KNOWN"
)

// RestraintNone is the restraint position code meaning no restraint was used.
const RestraintNone = "NONE"

// RelocationTypeOther selects the free-text relocation type question.
const RelocationTypeOther = "OTHER"
