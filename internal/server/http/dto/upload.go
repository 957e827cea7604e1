package dto

import "github.com/polkiloo/printshop/internal/domain/model"

// UploadResponse echoes an accepted file.
type UploadResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	FileName          string `json:"fileName"`
	Size              int64  `json:"size"`
	MimeType          string `json:"mimeType"`
	DetectedType      string `json:"detectedType,omitempty"`
	RemainingAttempts int    `json:"remainingAttempts"`
}

// SecurityEventsResponse lists recent security events.
type SecurityEventsResponse struct {
	Success bool                  `json:"success"`
	Events  []model.SecurityEvent `json:"events"`
}

// NewUploadResponse maps an accepted upload.
func NewUploadResponse(u model.AcceptedUpload) UploadResponse {
	return UploadResponse{
		Success:           true,
		Message:           "File passed security validation",
		FileName:          u.FileName,
		Size:              u.Size,
		MimeType:          u.MimeType,
		DetectedType:      u.DetectedType,
		RemainingAttempts: u.Remaining,
	}
}
