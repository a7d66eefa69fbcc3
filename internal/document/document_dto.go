package document

type UploadDocumentRequest struct {
	CandidateID int64   `json:"candidate_id" binding:"required"`
	FileURL     string  `json:"file_url" binding:"required"`
	Notes       *string `json:"notes"`
}

type DocumentResponse struct {
	ID          int64   `json:"id"`
	Code        string  `json:"code"`
	CandidateID *int64  `json:"candidate_id,omitempty"`
	EmployeeID  *int64  `json:"employee_id,omitempty"`
	FileURL     string  `json:"file_url"`
	Notes       *string `json:"notes,omitempty"`
}
