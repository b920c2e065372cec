package models

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type CreateJobRequest struct {
	CompanyName  string `json:"company_name"`
	CompanyEmail string `json:"company_email"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Location     string `json:"location"`
}

type SaveResponseRequest struct {
	JobID    string `json:"jobId"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Evaluation struct {
		Score    *int   `json:"score"`
		Feedback string `json:"feedback"`
	} `json:"evaluation"`
}

type StartInterviewRequest struct {
	JobID    string `json:"jobId"`
	ResumeID string `json:"resumeId,omitempty"`
}

type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

type ResumeUploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	PageCount    int    `json:"page_count"`
}
