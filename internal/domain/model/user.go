package model

import "time"

// AdminUser represents a dashboard operator.
type AdminUser struct {
	ID           int64
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}
