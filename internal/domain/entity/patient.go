package entity

import "time"

// Patient represents a person requesting consultations
type Patient struct {
	ID             int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex:idx_patients_email;not null" json:"email"`
	Password       string    `gorm:"type:text;not null" json:"-"`
	Age            int       `gorm:"not null;default:0" json:"age"`
	Phone          string    `gorm:"type:varchar(32);uniqueIndex:idx_patients_phone;not null" json:"phone"`
	ProfilePicture *string   `gorm:"type:text" json:"profilePicture"`
	SurgeryHistory []string  `gorm:"type:jsonb;serializer:json" json:"surgeryHistory"`
	IllnessHistory []string  `gorm:"type:jsonb;serializer:json" json:"illnessHistory"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Patient) TableName() string {
	return "patients"
}

// Clone returns a copy that shares no slices with p.
func (p Patient) Clone() Patient {
	p.SurgeryHistory = cloneStrings(p.SurgeryHistory)
	p.IllnessHistory = cloneStrings(p.IllnessHistory)
	return p
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
