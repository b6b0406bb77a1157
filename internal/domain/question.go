package domain

// QuestionKey identifies one answer within a report section.
type QuestionKey string

func (k QuestionKey) String() string { return string(k) }

// Incident details.
const (
	QIncidentDate      QuestionKey = "incidentDate"
	QPrison            QuestionKey = "prison"
	QIncidentLocation  QuestionKey = "incidentLocation"
	QPlannedUseOfForce QuestionKey = "plannedUseOfForce"
	QAuthorisedBy      QuestionKey = "authorisedBy"
	QWitnesses         QuestionKey = "witnesses"
)

// Reasons for use of force.
const (
	QReasons       QuestionKey = "reasons"
	QPrimaryReason QuestionKey = "primaryReason"
)

// Use of force details.
const (
	QPositiveCommunication        QuestionKey = "positiveCommunication"
	QBodyWornCamera               QuestionKey = "bodyWornCamera"
	QBodyWornCameraNumbers        QuestionKey = "bodyWornCameraNumbers"
	QPersonalProtectionTechniques QuestionKey = "personalProtectionTechniques"
	QBatonDrawn                   QuestionKey = "batonDrawnAgainstPrisoner"
	QBatonUsed                    QuestionKey = "batonUsed"
	QPavaDrawn                    QuestionKey = "pavaDrawnAgainstPrisoner"
	QPavaUsed                     QuestionKey = "pavaUsed"
	QTaserDrawn                   QuestionKey = "taserDrawn"
	QBittenByPrisonDog            QuestionKey = "bittenByPrisonDog"
	QWeaponsObserved              QuestionKey = "weaponsObserved"
	QWeaponTypes                  QuestionKey = "weaponTypes"
	QGuidingHold                  QuestionKey = "guidingHold"
	QGuidingHoldOfficersInvolved  QuestionKey = "guidingHoldOfficersInvolved"
	QEscortingHold                QuestionKey = "escortingHold"
	QRestraintPositions           QuestionKey = "restraintPositions"
	QPainInducingTechniquesUsed   QuestionKey = "painInducingTechniquesUsed"
	QHandcuffsApplied             QuestionKey = "handcuffsApplied"
)

// Relocation and injuries.
const (
	QPrisonerRelocation           QuestionKey = "prisonerRelocation"
	QRelocationCompliancy         QuestionKey = "relocationCompliancy"
	QRelocationType               QuestionKey = "relocationType"
	QUserSpecifiedRelocationType  QuestionKey = "userSpecifiedRelocationType"
	QF213CompletedBy              QuestionKey = "f213CompletedBy"
	QPrisonerInjuries             QuestionKey = "prisonerInjuries"
	QHealthcareInvolved           QuestionKey = "healthcareInvolved"
	QHealthcarePractionerName     QuestionKey = "healthcarePractionerName"
	QPrisonerHospitalisation      QuestionKey = "prisonerHospitalisation"
	QStaffMedicalAttention        QuestionKey = "staffMedicalAttention"
	QStaffNeedingMedicalAttention QuestionKey = "staffNeedingMedicalAttention"
)

// Evidence.
const (
	QBaggedEvidence            QuestionKey = "baggedEvidence"
	QEvidenceTagAndDescription QuestionKey = "evidenceTagAndDescription"
	QPhotographsTaken          QuestionKey = "photographsTaken"
	QCctvRecording             QuestionKey = "cctvRecording"
)

// Report owner pseudo-section.
const (
	QReportOwner QuestionKey = "reportOwner"
)
