package domain

// Witness is a person who saw the incident.
type Witness struct {
	Name string `json:"name"`
}

// StaffMember is a member of staff who needed medical attention.
type StaffMember struct {
	Name            string `json:"name"`
	Hospitalisation bool   `json:"hospitalisation,omitempty"`
}

// EvidenceTag is one bagged evidence item.
type EvidenceTag struct {
	EvidenceTagReference string `json:"evidenceTagReference"`
	Description          string `json:"description"`
}

// CameraNumber identifies a body worn camera.
type CameraNumber struct {
	CameraNum string `json:"cameraNum"`
}

// WeaponType describes a weapon observed during the incident.
type WeaponType struct {
	WeaponType string `json:"weaponType"`
}

// DateEntry is the structured incident date submitted by the edit form.
// Date is formatted DD/MM/YYYY; hour and minute are decimal strings.
type DateEntry struct {
	Date string    `json:"date"`
	Time TimeEntry `json:"time"`
}

// TimeEntry is the hour and minute part of a DateEntry.
type TimeEntry struct {
	Hour   string `json:"hour"`
	Minute string `json:"minute"`
}
