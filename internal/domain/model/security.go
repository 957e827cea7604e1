package model

import "time"

// SecurityEventType categorises a rejected or blocked upload attempt.
type SecurityEventType string

const (
	SecurityEventValidationFailed SecurityEventType = "validation_failed"
	SecurityEventSuspiciousFile   SecurityEventType = "suspicious_file"
	SecurityEventRateLimited      SecurityEventType = "rate_limited"
)

// SecurityEvent is an append-only record of a rejected upload.
// FileName always holds the sanitized name.
type SecurityEvent struct {
	ID         int64             `json:"id,omitempty"`
	Type       SecurityEventType `json:"type"`
	Reason     string            `json:"reason"`
	FileName   string            `json:"fileName,omitempty"`
	FileSize   int64             `json:"fileSize,omitempty"`
	MimeType   string            `json:"mimeType,omitempty"`
	ClientIP   string            `json:"clientIp"`
	UserAgent  string            `json:"userAgent,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// UploadAttempt is an ephemeral file submission. It is never persisted.
type UploadAttempt struct {
	FileName  string
	Size      int64
	MimeType  string
	Data      []byte
	ClientIP  string
	UserAgent string
}

// AcceptedUpload echoes a file that passed validation.
type AcceptedUpload struct {
	FileName     string
	Size         int64
	MimeType     string
	DetectedType string
	Remaining    int
}
