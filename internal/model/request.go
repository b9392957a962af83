package model

type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type JobRequest struct {
	Title       string `json:"title"`
	Department  string `json:"department"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type ApplicationRequest struct {
	ResumeURL   string `json:"resume_url"`
	CoverLetter string `json:"cover_letter"`
}

type ApplicationStatusRequest struct {
	Status string `json:"status"`
}

type UserRoleRequest struct {
	Role string `json:"role"`
}
