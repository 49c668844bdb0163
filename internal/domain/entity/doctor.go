package entity

import "time"

// Doctor represents a practitioner patients can consult
type Doctor struct {
	ID                int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name              string    `gorm:"type:varchar(255);not null" json:"name"`
	Email             string    `gorm:"type:varchar(255);uniqueIndex:idx_doctors_email;not null" json:"email"`
	Password          string    `gorm:"type:text;not null" json:"-"`
	Phone             string    `gorm:"type:varchar(32);uniqueIndex:idx_doctors_phone;not null" json:"phone"`
	Specialty         string    `gorm:"type:varchar(100);index" json:"specialty"`
	YearsOfExperience float64   `gorm:"not null;default:0" json:"yearsOfExperience"`
	ProfilePicture    *string   `gorm:"type:text" json:"profilePicture"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Doctor) TableName() string {
	return "doctors"
}
