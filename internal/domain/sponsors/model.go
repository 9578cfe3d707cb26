package sponsors

import (
	"time"

	"sponsorship-app-go/internal/domain/proxies"
)

type Sponsor struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	FullName string  `gorm:"not null" json:"fullName"`
	Contact  *string `json:"contact"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	ProxyID  *uint   `json:"proxyId"`

	Proxy        *proxies.Proxy `gorm:"foreignKey:ProxyID" json:"proxy,omitempty"`
	Sponsorships []Sponsorship  `gorm:"foreignKey:SponsorID" json:"sponsorships,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Sponsorship links one child to one sponsor. It is never hard-deleted: ending
// a sponsorship clears is_active and stamps end_date.
type Sponsorship struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	ChildID       uint       `gorm:"not null;index" json:"childId"`
	SponsorID     uint       `gorm:"not null;index" json:"sponsorId"`
	IsActive      bool       `gorm:"not null;default:true" json:"isActive"`
	StartDate     time.Time  `gorm:"not null" json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
	MonthlyAmount *float64   `json:"monthlyAmount"`
	PaymentMethod *string    `json:"paymentMethod"`
	Notes         *string    `json:"notes"`

	Sponsor *Sponsor `gorm:"foreignKey:SponsorID" json:"sponsor,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// ProxyFilter narrows sponsors by intermediary. The zero value matches all.
type ProxyFilter struct {
	None bool  // sponsors with no proxy (direct sponsors)
	ID   *uint // sponsors attached to this proxy
}

type ListFilter struct {
	Search         string
	Proxy          ProxyFilter
	HasSponsorship *bool // filters on active sponsorships
}
