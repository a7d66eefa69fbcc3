package candidate

type CreateCandidateRequest struct {
	FullName     string  `json:"full_name" binding:"required"`
	JobTitleID   int64   `json:"job_title_id" binding:"required"`
	DepartmentID int64   `json:"department_id" binding:"required"`
	AppliedAt    string  `json:"applied_at" binding:"required"`
	Skills       *string `json:"skills"`
}

// UpdateCandidateRequest carries a full-row update. An update whose status is
// HIRED triggers the promotion workflow.
type UpdateCandidateRequest struct {
	FullName     string  `json:"full_name"`
	JobTitleID   int64   `json:"job_title_id"`
	DepartmentID int64   `json:"department_id"`
	AppliedAt    string  `json:"applied_at"`
	Skills       *string `json:"skills"`
	Status       int16   `json:"status" binding:"required"`
}

type CandidateResponse struct {
	ID           int64   `json:"id"`
	Code         string  `json:"code"`
	FullName     string  `json:"full_name"`
	JobTitleID   int64   `json:"job_title_id"`
	DepartmentID int64   `json:"department_id"`
	AppliedAt    string  `json:"applied_at"`
	Skills       *string `json:"skills,omitempty"`
	Status       int16   `json:"status"`
	StatusLabel  string  `json:"status_label"`
}

type EmployeeResponse struct {
	ID           int64  `json:"id"`
	Code         string `json:"code"`
	FullName     string `json:"full_name"`
	JobTitleID   int64  `json:"job_title_id"`
	DepartmentID int64  `json:"department_id"`
	JoinDate     string `json:"join_date"`
	Status       string `json:"status"`
	CandidateID  *int64 `json:"candidate_id,omitempty"`
}

// PromoteResult is returned by Update: the refreshed candidate plus, when the
// update hired them, the employee record and a human-readable notice.
type PromoteResult struct {
	Candidate CandidateResponse `json:"candidate"`
	Employee  *EmployeeResponse `json:"employee,omitempty"`
	Message   string            `json:"message,omitempty"`
}
