package edit

import (
	"time"

	"github.com/heartmarshall/use-of-force/internal/domain"
)

func incidentDetailsSchema(loc *time.Location) *Schema {
	return newSchema(domain.SectionIncidentDetails,
		dateTimeField(domain.QIncidentDate, "When did the incident happen?", loc),
		prisonField(domain.QPrison, "Prison"),
		locationField(domain.QIncidentLocation, "Where did the incident happen?"),
		boolField(domain.QPlannedUseOfForce, "Was use of force planned?"),
		textField(domain.QAuthorisedBy, "Who authorised use of force?").
			dependsOn(whenTrue(domain.QPlannedUseOfForce)),
		witnessesField(domain.QWitnesses, "Witnesses to the incident"),
	)
}

func reasonsSchema() *Schema {
	return newSchema(domain.SectionReasonsForUseOfForce,
		codeListField(domain.QReasons, "Why was use of force applied against this prisoner?",
			formatLabels(reasonLabels, DefaultNoneMessage)),
		codeField(domain.QPrimaryReason, "What was the primary reason use of force was applied against this prisoner?",
			reasonLabels),
	)
}

func useOfForceDetailsSchema(noneMessage string) *Schema {
	return newSchema(domain.SectionUseOfForceDetails,
		boolField(domain.QPositiveCommunication, "Was positive communication used to de-escalate the situation with this prisoner?"),
		triStateField(domain.QBodyWornCamera, "Was any part of the incident captured on a body-worn camera?"),
		tagListField(domain.QBodyWornCameraNumbers, "Body-worn camera numbers",
			func(c domain.CameraNumber) string { return c.CameraNum }, foldCameraNumber, formatCameras).
			dependsOn(whenEquals(domain.QBodyWornCamera, domain.AnswerYes)),
		boolField(domain.QPersonalProtectionTechniques, "Were any personal protection techniques used against this prisoner?"),
		boolField(domain.QBatonDrawn, "Was a baton drawn by anyone against this prisoner?"),
		boolField(domain.QBatonUsed, "Was the baton used?").
			dependsOn(whenTrue(domain.QBatonDrawn)),
		boolField(domain.QPavaDrawn, "Was PAVA drawn by anyone against this prisoner?"),
		boolField(domain.QPavaUsed, "Was PAVA used?").
			dependsOn(whenTrue(domain.QPavaDrawn)),
		boolField(domain.QTaserDrawn, "Was a Taser drawn by anyone against this prisoner?"),
		boolField(domain.QBittenByPrisonDog, "Was the prisoner bitten by a prison dog?"),
		triStateField(domain.QWeaponsObserved, "Were any weapons observed?"),
		tagListField(domain.QWeaponTypes, "Weapons observed",
			func(w domain.WeaponType) string { return w.WeaponType }, foldWeaponType, formatWeapons).
			dependsOn(whenEquals(domain.QWeaponsObserved, domain.AnswerYes)),
		boolField(domain.QGuidingHold, "Was a guiding hold used against this prisoner?"),
		intField(domain.QGuidingHoldOfficersInvolved, "How many officers were involved in the guiding hold?").
			dependsOn(whenTrue(domain.QGuidingHold)),
		boolField(domain.QEscortingHold, "Was an escorting hold used against this prisoner?"),
		codeListField(domain.QRestraintPositions, "Which control and restraint positions were used against this prisoner?",
			formatRestraint(noneMessage)),
		codeListField(domain.QPainInducingTechniquesUsed, "Which pain inducing techniques were used against this prisoner?",
			formatLabels(painInducingTechniqueLabels, noneMessage)),
		boolField(domain.QHandcuffsApplied, "Were handcuffs applied against this prisoner?"),
	)
}

func relocationAndInjuriesSchema() *Schema {
	return newSchema(domain.SectionRelocationAndInjuries,
		codeField(domain.QPrisonerRelocation, "Where was the prisoner relocated to?", relocationLocationLabels),
		boolField(domain.QRelocationCompliancy, "Was the prisoner compliant?"),
		codeField(domain.QRelocationType, "What type of relocation was it?", relocationTypeLabels).
			dependsOn(whenFalse(domain.QRelocationCompliancy)),
		textField(domain.QUserSpecifiedRelocationType, "Enter the type of relocation").
			dependsOn(whenEquals(domain.QRelocationType, domain.RelocationTypeOther)),
		textField(domain.QF213CompletedBy, "Who completed the F213 form?"),
		boolField(domain.QPrisonerInjuries, "Did the prisoner sustain any injuries at the time?"),
		boolField(domain.QHealthcareInvolved, "Was a member of healthcare present during the incident?"),
		textField(domain.QHealthcarePractionerName, "Name of healthcare member present").
			dependsOn(whenTrue(domain.QHealthcareInvolved)),
		boolField(domain.QPrisonerHospitalisation, "Did the prisoner need outside hospitalisation at the time?"),
		boolField(domain.QStaffMedicalAttention, "Did a member of staff need medical attention at the time?"),
		staffField(domain.QStaffNeedingMedicalAttention, "Name of who needed medical attention").
			dependsOn(whenTrue(domain.QStaffMedicalAttention)),
	)
}

func evidenceSchema() *Schema {
	return newSchema(domain.SectionEvidence,
		boolField(domain.QBaggedEvidence, "Was any evidence bagged and tagged?"),
		tagListField(domain.QEvidenceTagAndDescription, "Evidence tag number and description",
			func(t domain.EvidenceTag) string { return t.EvidenceTagReference }, foldEvidenceTag, formatEvidenceTags(false)).
			withDialect(DialectConfirmation, formatEvidenceTags(true)).
			dependsOn(whenTrue(domain.QBaggedEvidence)),
		boolField(domain.QPhotographsTaken, "Were any photographs taken?"),
		triStateField(domain.QCctvRecording, "Was any part of the incident captured on CCTV?"),
	)
}

func reportOwnerSchema() *Schema {
	return newSchema(domain.SectionReportOwner,
		textField(domain.QReportOwner, "Report owner"),
	)
}
