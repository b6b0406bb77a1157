package edit

import "github.com/heartmarshall/use-of-force/internal/domain"

// Label tables for coded answers. Loaded once, never mutated.

var reasonLabels = map[string]string{
	"ASSAULT_ON_ANOTHER_PRISONER":   "Assault on another prisoner",
	"ASSAULT_ON_A_MEMBER_OF_STAFF":  "Assault on a member of staff",
	"ASSAULT_BY_A_MEMBER_OF_PUBLIC": "Assault by a member of the public",
	"CONCERTED_INDISCIPLINE":        "Concerted indiscipline",
	"FIGHT_BETWEEN_PRISONERS":       "Fight between prisoners",
	"HOSTAGE_ADULT":                 "Hostage situation (adult)",
	"HOSTAGE_CHILD":                 "Hostage situation (child)",
	"MEDICAL_INTERVENTION":          "Medical intervention",
	"PREVENT_ESCAPE_OR_ABSCONDING":  "Prevent escape or absconding",
	"REFUSAL_TO_COMPLY_WITH_ORDER":  "Refusal to comply with order",
	"REFUSAL_TO_LOCATE_TO_CELL":     "Refusal to locate to cell",
	"SELF_HARM":                     "Self harm",
	"THREATENED_SELF_HARM":          "Threatened self harm",
	"VERBAL_THREAT":                 "Verbal threat",
	"WEAPON_OR_THREAT":              "Weapon or threat of weapon",
}

// restraintLabels holds parent positions and their children. Child codes are
// written PARENT__CHILD.
var restraintLabels = map[string]string{
	"STANDING":                             "Standing",
	"STANDING__WRIST_WEAVE":                "Wrist weave",
	"STANDING__DOUBLE_WRIST_HOLD":          "Double wrist hold",
	"STANDING__UNDERHOOK":                  "Underhook",
	"STANDING__WRIST_HOLD":                 "Wrist hold",
	"STANDING__STRAIGHT_ARM_HOLD":          "Straight arm hold",
	"ON_BACK":                              "On back (supine)",
	"ON_BACK__STRAIGHT_ARM_HOLD":           "Straight arm hold",
	"ON_BACK__CONVERTED_RIGID_BAR_CUFFS":   "Converted rigid bar cuffs",
	"ON_BACK__WRIST_HOLD":                  "Wrist hold",
	"FACE_DOWN":                            "On front (prone)",
	"FACE_DOWN__BALANCE_DISPLACEMENT":      "Balance displacement",
	"FACE_DOWN__STRAIGHT_ARM_HOLD":         "Straight arm hold",
	"FACE_DOWN__CONVERTED_RIGID_BAR_CUFFS": "Converted rigid bar cuffs",
	"FACE_DOWN__WRIST_HOLD":                "Wrist hold",
	"KNEELING":                             "Kneeling",
}

var painInducingTechniqueLabels = map[string]string{
	"FINAL_LOCK_FLEXION":         "Final lock flexion",
	"FINAL_LOCK_ROTATION":        "Final lock rotation",
	"MANDIBULAR_ANGLE_TECHNIQUE": "Mandibular angle technique",
	"SHOULDER_CONTROL":           "Shoulder control",
	"THROUGH_RIGID_BAR_CUFFS":    "Through rigid bar-cuffs",
	"THUMB_LOCK":                 "Thumb lock",
	"UPPER_ARM_CONTROL":          "Upper arm control",
}

var relocationLocationLabels = map[string]string{
	"OWN_CELL":              "Own cell",
	"GATED_CELL":            "Gated cell",
	"SEGREGATION_UNIT":      "Segregation unit",
	"SPECIAL_ACCOMMODATION": "Special accommodation",
	"CELLULAR_VEHICLE":      "Cellular vehicle",
	"RECEPTION":             "Reception",
	"OTHER_WING":            "Another wing",
	"HEALTHCARE":            "Healthcare",
}

var relocationTypeLabels = map[string]string{
	"FULL":                     "Full relocation",
	"PRIMARY":                  "Primary relocation",
	"VEHICLE":                  "Vehicle relocation",
	"NTRG":                     "Handed to local staff (NTRG)",
	domain.RelocationTypeOther: "Other",
}

var triStateLabels = map[string]string{
	domain.AnswerYes:      "Yes",
	domain.AnswerNo:       "No",
	domain.AnswerNotKnown: "Not known",
}

var editReasonLabels = map[domain.EditReason]string{
	domain.EditReasonErrorInReport:             "Error in report",
	domain.EditReasonSomethingMissingFromReport: "Something missing",
	domain.EditReasonNewEvidence:               "New evidence",
}

// ReasonLabel resolves an edit reason code for display. Codes outside the
// fixed set are rendered with the coordinator's free text.
func ReasonLabel(reason domain.EditReason, text string) string {
	if label, ok := editReasonLabels[reason]; ok {
		return label
	}
	return "Another reason: " + text
}
