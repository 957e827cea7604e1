package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/polkiloo/printshop/internal/adapter/securitylog"
	domainErrors "github.com/polkiloo/printshop/internal/domain/errors"
	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/domain/repository"
	"github.com/polkiloo/printshop/internal/pkg/ratelimit"
	"github.com/polkiloo/printshop/internal/pkg/upload"
)

const (
	defaultEventsLimit = 50
	maxEventsLimit     = 500
)

// UploadPolicy bundles validation and throttling settings of the upload endpoint.
type UploadPolicy struct {
	Validation  upload.Options
	MaxAttempts int
	Window      time.Duration
}

// UploadUseCase gates file submissions behind the rate limiter and the validator.
type UploadUseCase struct {
	limiter   ratelimit.Limiter
	validator *upload.Validator
	recorder  securitylog.Recorder
	events    repository.SecurityEventRepository
	policy    UploadPolicy
}

// NewUploadUseCase constructs UploadUseCase.
func NewUploadUseCase(
	limiter ratelimit.Limiter,
	validator *upload.Validator,
	recorder securitylog.Recorder,
	events repository.SecurityEventRepository,
	policy UploadPolicy,
) *UploadUseCase {
	return &UploadUseCase{limiter: limiter, validator: validator, recorder: recorder, events: events, policy: policy}
}

// Accept checks an attempt and echoes the sanitized file on success.
// Rejections are recorded as security events before returning
// ErrRateLimited or *domainErrors.UploadRejectedError.
func (u *UploadUseCase) Accept(ctx context.Context, attempt model.UploadAttempt) (*model.AcceptedUpload, error) {
	limit, err := u.limiter.CheckLimit(ctx, attempt.ClientIP, u.policy.MaxAttempts, u.policy.Window)
	if err != nil {
		return nil, fmt.Errorf("check upload limit: %w", err)
	}
	if !limit.Allowed {
		u.record(ctx, attempt, model.SecurityEventRateLimited, "Too many upload attempts")
		return nil, domainErrors.ErrRateLimited
	}

	res := u.validator.Validate(upload.File{
		Name:     attempt.FileName,
		Size:     attempt.Size,
		MimeType: attempt.MimeType,
		Data:     attempt.Data,
	}, u.policy.Validation)
	if !res.Valid {
		u.record(ctx, attempt, model.SecurityEventType(res.Category), res.Reason)
		return nil, &domainErrors.UploadRejectedError{Category: string(res.Category), Reason: res.Reason}
	}

	size := attempt.Size
	if len(attempt.Data) > 0 {
		size = int64(len(attempt.Data))
	}
	return &model.AcceptedUpload{
		FileName:     res.SanitizedFileName,
		Size:         size,
		MimeType:     attempt.MimeType,
		DetectedType: res.DetectedType,
		Remaining:    limit.Remaining,
	}, nil
}

// RecentEvents lists the latest security events, newest first.
func (u *UploadUseCase) RecentEvents(ctx context.Context, limit int) ([]model.SecurityEvent, error) {
	if limit <= 0 {
		limit = defaultEventsLimit
	}
	if limit > maxEventsLimit {
		limit = maxEventsLimit
	}
	return u.events.ListRecent(ctx, limit)
}

func (u *UploadUseCase) record(ctx context.Context, attempt model.UploadAttempt, kind model.SecurityEventType, reason string) {
	var name string
	if attempt.FileName != "" {
		name = upload.SanitizeFileName(attempt.FileName)
	}
	_ = u.recorder.Record(ctx, model.SecurityEvent{
		Type:      kind,
		Reason:    reason,
		FileName:  name,
		FileSize:  attempt.Size,
		MimeType:  attempt.MimeType,
		ClientIP:  attempt.ClientIP,
		UserAgent: attempt.UserAgent,
	})
}
