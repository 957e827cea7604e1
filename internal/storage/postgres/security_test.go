package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/printshop/internal/domain/errors"
	"github.com/polkiloo/printshop/internal/domain/model"
)

func TestSecurityEventRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &securityEventRepository{storage: storage}

	event := model.SecurityEvent{
		Type:     model.SecurityEventSuspiciousFile,
		Reason:   "File content matches PE executable signature",
		FileName: "cute-cat.png",
		FileSize: 300,
		MimeType: "image/png",
		ClientIP: "10.0.0.1",
	}
	mock.ExpectExec("INSERT INTO security_events").
		WithArgs("suspicious_file", event.Reason, "cute-cat.png", int64(300), "image/png", "10.0.0.1", "", fixedNow).
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	if err := repo.Append(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("INSERT INTO security_events").
		WithArgs("suspicious_file", event.Reason, "cute-cat.png", int64(300), "image/png", "10.0.0.1", "", fixedNow).
		WillReturnError(errors.New("boom"))
	if err := repo.Append(context.Background(), event); err == nil {
		t.Fatal("expected error")
	}

	cols := []string{"id", "event_type", "reason", "file_name", "file_size", "mime_type", "client_ip", "user_agent", "occurred_at"}
	mock.ExpectQuery("FROM security_events ORDER BY occurred_at DESC").WithArgs(50).
		WillReturnRows(pgxmockv3.NewRows(cols).
			AddRow(int64(2), "rate_limited", "Too many upload attempts", "", int64(0), "", "10.0.0.1", "curl", fixedNow).
			AddRow(int64(1), "validation_failed", "File appears to be corrupted or invalid", "a.png", int64(10), "image/png", "10.0.0.2", "", fixedNow.Add(-time.Minute)))
	events, err := repo.ListRecent(context.Background(), 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 || events[0].Type != model.SecurityEventRateLimited || events[1].FileName != "a.png" {
		t.Fatalf("unexpected events: %+v", events)
	}

	mock.ExpectQuery("FROM security_events").WithArgs(10).WillReturnError(errors.New("boom"))
	if _, err := repo.ListRecent(context.Background(), 10); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestAdminUserRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &adminUserRepository{storage: storage}

	mock.ExpectQuery("INSERT INTO admin_users").WithArgs("admin", "hash").WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "created_at"}).AddRow(int64(1), fixedNow),
	)
	user, err := repo.Create(context.Background(), "admin", "hash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 1 || user.Login != "admin" {
		t.Fatalf("unexpected user: %+v", user)
	}

	mock.ExpectQuery("INSERT INTO admin_users").WithArgs("admin", "hash").WillReturnError(&pgconn.PgError{Code: "23505"})
	if _, err := repo.Create(context.Background(), "admin", "hash"); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists error, got %v", err)
	}

	mock.ExpectQuery("INSERT INTO admin_users").WithArgs("admin", "hash").WillReturnError(errors.New("other"))
	if _, err := repo.Create(context.Background(), "admin", "hash"); err == nil || errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected raw error, got %v", err)
	}

	mock.ExpectQuery("FROM admin_users WHERE login=").WithArgs("admin").WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "login", "password_hash", "created_at"}).AddRow(int64(1), "admin", "hash", fixedNow))
	if u, err := repo.GetByLogin(context.Background(), "admin"); err != nil || u.PasswordHash != "hash" {
		t.Fatalf("unexpected result: %+v, %v", u, err)
	}

	mock.ExpectQuery("FROM admin_users WHERE login=").WithArgs("missing").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByLogin(context.Background(), "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestRateLimitStore(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	store := &rateLimitStore{storage: storage}
	window := time.Minute
	cols := []string{"attempts", "window_start"}

	mock.ExpectQuery("INSERT INTO upload_rate_limits").WithArgs("10.0.0.1", fixedNow, int64(60000), 5).
		WillReturnRows(pgxmockv3.NewRows(cols).AddRow(1, fixedNow))
	res, err := store.CheckLimit(context.Background(), "10.0.0.1", 5, window)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Allowed || res.Remaining != 4 || !res.ResetAt.Equal(fixedNow.Add(window)) {
		t.Fatalf("unexpected result: %+v", res)
	}

	mock.ExpectQuery("INSERT INTO upload_rate_limits").WithArgs("10.0.0.1", fixedNow, int64(60000), 5).
		WillReturnRows(pgxmockv3.NewRows(cols).AddRow(5, fixedNow.Add(-30*time.Second)))
	res, err = store.CheckLimit(context.Background(), "10.0.0.1", 5, window)
	if err != nil || !res.Allowed || res.Remaining != 0 {
		t.Fatalf("fifth attempt should be allowed: %+v, %v", res, err)
	}

	mock.ExpectQuery("INSERT INTO upload_rate_limits").WithArgs("10.0.0.1", fixedNow, int64(60000), 5).
		WillReturnRows(pgxmockv3.NewRows(cols).AddRow(6, fixedNow.Add(-20*time.Second)))
	res, err = store.CheckLimit(context.Background(), "10.0.0.1", 5, window)
	if err != nil || res.Allowed || res.Remaining != 0 {
		t.Fatalf("sixth attempt should be denied: %+v, %v", res, err)
	}
	if !res.ResetAt.Equal(fixedNow.Add(40 * time.Second)) {
		t.Fatalf("unexpected reset time %v", res.ResetAt)
	}

	mock.ExpectQuery("INSERT INTO upload_rate_limits").WithArgs("10.0.0.1", fixedNow, int64(60000), 5).WillReturnError(errors.New("boom"))
	if _, err := store.CheckLimit(context.Background(), "10.0.0.1", 5, window); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
