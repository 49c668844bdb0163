package entity

import "time"

// NoSurgery is the intake value patients submit when they had no recent surgery.
const NoSurgery = "None"

// DefaultUploadCare is the care text of a prescription synthesized by a PDF upload.
const DefaultUploadCare = "Please refer to the attached prescription."

// Consultation represents a patient's request to a doctor.
//
// The patient and doctor display fields are copied at submission time and are
// never refreshed afterwards.
type Consultation struct {
	ID        int `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID int `gorm:"not null;index" json:"patientId"`
	DoctorID  int `gorm:"not null;index" json:"doctorId"`

	PatientName     string `gorm:"type:varchar(255)" json:"patientName"`
	PatientEmail    string `gorm:"type:varchar(255)" json:"patientEmail"`
	PatientAge      int    `json:"patientAge"`
	PatientPhone    string `gorm:"type:varchar(32)" json:"patientPhone"`
	DoctorName      string `gorm:"type:varchar(255)" json:"doctorName"`
	DoctorSpecialty string `gorm:"type:varchar(100)" json:"doctorSpecialty"`

	CurrentIllness  string `gorm:"type:text" json:"currentIllness"`
	RecentSurgery   string `gorm:"type:text" json:"recentSurgery"`
	SurgeryTimespan string `gorm:"type:text" json:"surgeryTimespan"`
	DiabetesHistory string `gorm:"type:text" json:"diabetesHistory"`
	Allergies       string `gorm:"type:text" json:"allergies"`
	Others          string `gorm:"type:text" json:"others"`
	TransactionID   string `gorm:"type:varchar(100)" json:"transactionId"`

	SubmittedAt  time.Time     `gorm:"not null" json:"submittedAt"`
	Prescription *Prescription `gorm:"type:jsonb;serializer:json" json:"prescription,omitempty"`
}

func (Consultation) TableName() string {
	return "consultations"
}

// IsOwnedBy checks if the consultation was addressed to the given doctor
func (c *Consultation) IsOwnedBy(doctorID int) bool {
	return c.DoctorID == doctorID
}

// HasPrescription checks if a prescription has been issued
func (c *Consultation) HasPrescription() bool {
	return c.Prescription != nil
}

// HadRecentSurgery reports whether the intake names an actual surgery. Only
// the exact value NoSurgery counts as none.
func (c *Consultation) HadRecentSurgery() bool {
	return c.RecentSurgery != "" && c.RecentSurgery != NoSurgery
}

// Clone returns a deep copy so stores can hand out records without sharing state.
func (c Consultation) Clone() Consultation {
	if c.Prescription != nil {
		p := c.Prescription.Clone()
		c.Prescription = &p
	}
	return c
}

// Prescription is embedded in a Consultation; there is at most one per consultation.
type Prescription struct {
	CareToBeTaken string      `json:"careToBeTaken"`
	Medicines     string      `json:"medicines"`
	PrescribedAt  time.Time   `json:"prescribedAt"`
	PrescribedBy  string      `json:"prescribedBy"`
	PDFFile       string      `json:"pdfFile,omitempty"`
	SentToPatient bool        `json:"sentToPatient,omitempty"`
	SentAt        *time.Time  `json:"sentAt,omitempty"`
	CustomPDFs    []CustomPDF `json:"customPDFs,omitempty"`
}

// MarkSent flags the prescription as delivered. Calling it again refreshes SentAt.
func (p *Prescription) MarkSent(at time.Time) {
	p.SentToPatient = true
	p.SentAt = &at
}

// AddCustomPDF appends an uploaded document
func (p *Prescription) AddCustomPDF(pdf CustomPDF) {
	p.CustomPDFs = append(p.CustomPDFs, pdf)
}

func (p Prescription) Clone() Prescription {
	if p.SentAt != nil {
		sentAt := *p.SentAt
		p.SentAt = &sentAt
	}
	if p.CustomPDFs != nil {
		pdfs := make([]CustomPDF, len(p.CustomPDFs))
		copy(pdfs, p.CustomPDFs)
		p.CustomPDFs = pdfs
	}
	return p
}

// CustomPDF describes a prescription document uploaded by the doctor
type CustomPDF struct {
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	UploadedAt   time.Time `json:"uploadedAt"`
	Notes        string    `json:"notes"`
}
