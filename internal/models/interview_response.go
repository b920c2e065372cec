package models

import (
	"time"

	"github.com/google/uuid"
)

// Evaluation is the scored feedback one answer received.
type Evaluation struct {
	Score    int    `gorm:"not null" json:"score"`
	Feedback string `gorm:"type:text;not null" json:"feedback"`
}

// InterviewResponse is one evaluated answer for a job application.
// Records are created once and never updated; CompanyID is always derived
// from the referenced job at save time, never taken from the client.
type InterviewResponse struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	JobID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"job_id"`
	CompanyID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_id"`
	Question   string     `gorm:"type:text;not null" json:"question"`
	Answer     string     `gorm:"type:text;not null" json:"answer"`
	Evaluation Evaluation `gorm:"embedded;embeddedPrefix:evaluation_" json:"evaluation"`
	Indexed    bool       `gorm:"not null;default:false" json:"-"`
	CreatedAt  time.Time  `gorm:"type:timestamp;default:now()" json:"created_at"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Job     *Job     `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

func (InterviewResponse) TableName() string {
	return "interview_responses"
}
