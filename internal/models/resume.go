package models

import (
	"time"

	"github.com/google/uuid"
)

// Resume is an uploaded candidate resume with the text already extracted
// from the PDF, so question generation never re-reads the file.
type Resume struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	Filename         string    `gorm:"type:text" json:"filename"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename"`
	FilePath         string    `gorm:"type:text" json:"-"`
	Text             string    `gorm:"type:text" json:"-"`
	PageCount        int       `json:"page_count"`
	CreatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (r *Resume) TableName() string {
	return "resumes"
}
