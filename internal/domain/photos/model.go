package photos

import "time"

// Photo stores the image itself as base64 text. Blobs this size are fine in
// postgres for the volumes involved (a few photos per child).
type Photo struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ChildID     uint      `gorm:"not null;index" json:"childId"`
	Data        string    `gorm:"not null" json:"data"`
	MimeType    string    `gorm:"not null" json:"mimeType"`
	Filename    *string   `json:"filename"`
	Size        *int64    `json:"size"`
	Description *string   `json:"description"`
	IsProfile   bool      `gorm:"not null;default:false" json:"isProfile"`
	UploadedAt  time.Time `gorm:"not null" json:"uploadedAt"`
}
