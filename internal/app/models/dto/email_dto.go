package dto

// SendToStudentsRequest is the staff bulk-email payload.
type SendToStudentsRequest struct {
	StudentIDs []int64 `json:"studentIds" binding:"required,min=1"`
	Subject    string  `json:"subject" binding:"required"`
	Message    string  `json:"message" binding:"required"`
}

// SendToAdminRequest is the student-to-administration message payload.
type SendToAdminRequest struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// BulkEmailResponse reports per-recipient outcomes of a bulk send.
type BulkEmailResponse struct {
	Message      string `json:"message"`
	SuccessCount int    `json:"successCount"`
	TotalCount   int    `json:"totalCount"`
}
