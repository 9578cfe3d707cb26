package proxies

import "time"

// Proxy is an intermediary between sponsors and the organization: a pastor, a
// community coordinator, anyone who collects payments on behalf of sponsors.
type Proxy struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FullName    string    `gorm:"not null" json:"fullName"`
	Role        string    `gorm:"not null;default:''" json:"role"`
	Contact     *string   `json:"contact"`
	Email       *string   `json:"email"`
	Phone       *string   `json:"phone"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
