package children

import (
	"time"

	"sponsorship-app-go/internal/domain/photos"
	"sponsorship-app-go/internal/domain/schools"
	"sponsorship-app-go/internal/domain/sponsors"
)

type Child struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	FirstName      string     `gorm:"not null" json:"firstName"`
	LastName       string     `gorm:"not null" json:"lastName"`
	DateOfBirth    *time.Time `json:"dateOfBirth"`
	Gender         string     `gorm:"not null;default:''" json:"gender"`
	Class          string     `gorm:"not null;default:''" json:"class"`
	FatherFullName string     `gorm:"not null;default:''" json:"fatherFullName"`
	MotherFullName string     `gorm:"not null;default:''" json:"motherFullName"`
	Address        *string    `json:"address"`
	Contact        *string    `json:"contact"`
	Story          *string    `json:"story"`
	Comment        *string    `json:"comment"`

	// IsSponsored mirrors "has at least one active sponsorship". It is
	// recomputed inside every sponsorship-mutating transaction; reads trust it.
	IsSponsored bool `gorm:"not null;default:false" json:"isSponsored"`

	IsArchived bool       `gorm:"not null;default:false" json:"isArchived"`
	ArchivedAt *time.Time `json:"archivedAt"`

	DateEnteredRegister time.Time `gorm:"not null;autoCreateTime" json:"dateEnteredRegister"`
	LastProfileUpdate   time.Time `gorm:"not null" json:"lastProfileUpdate"`

	SchoolID     uint                   `gorm:"not null;index" json:"schoolId"`
	School       *schools.School        `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
	Photos       []photos.Photo         `gorm:"foreignKey:ChildID" json:"photos,omitempty"`
	Sponsorships []sponsors.Sponsorship `gorm:"foreignKey:ChildID" json:"sponsorships,omitempty"`
}
