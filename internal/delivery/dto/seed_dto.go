package dto

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Seed records are read from configuration. Their ids are ignored; records
// get fresh sequential ids in the order they appear.

type SeedDoctor struct {
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Password          string    `json:"password"`
	Phone             string    `json:"phone"`
	Specialty         string    `json:"specialty"`
	YearsOfExperience FormValue `json:"yearsOfExperience"`
	ProfilePicture    *string   `json:"profilePicture"`
	CreatedAt         SeedTime  `json:"createdAt"`
}

type SeedPatient struct {
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Password       string    `json:"password"`
	Age            FormValue `json:"age"`
	Phone          string    `json:"phone"`
	ProfilePicture *string   `json:"profilePicture"`
	SurgeryHistory CSVList   `json:"surgeryHistory"`
	IllnessHistory CSVList   `json:"illnessHistory"`
	CreatedAt      SeedTime  `json:"createdAt"`
}

type SeedConsultation struct {
	PatientID int `json:"patientId"`
	DoctorID  int `json:"doctorId"`

	PatientName     string `json:"patientName"`
	PatientEmail    string `json:"patientEmail"`
	PatientAge      int    `json:"patientAge"`
	PatientPhone    string `json:"patientPhone"`
	DoctorName      string `json:"doctorName"`
	DoctorSpecialty string `json:"doctorSpecialty"`

	ConsultationRequest

	SubmittedAt SeedTime `json:"submittedAt"`
}

var seedTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// SeedTime is a timestamp as hand-written seed data carries it: RFC 3339,
// a date-time without zone, a bare date, or epoch milliseconds. Values
// without a zone are read as UTC. A value that matches none of these is kept
// in Unparsed and leaves Time zero.
type SeedTime struct {
	time.Time
	Unparsed string
}

func (t *SeedTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*t = SeedTime{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] != '"' {
		var millis json.Number
		if err := json.Unmarshal(data, &millis); err != nil {
			t.Unparsed = string(data)
			return nil
		}
		if n, err := millis.Int64(); err == nil {
			t.Time = time.UnixMilli(n).UTC()
			return nil
		}
		t.Unparsed = string(data)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	for _, layout := range seedTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	t.Unparsed = s
	return nil
}
