package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/printshop/internal/domain/errors"
	"github.com/polkiloo/printshop/internal/domain/model"
)

var (
	quoteCols = []string{
		"id", "customer_name", "customer_email", "customer_phone", "company", "quote_status",
		"notes", "admin_notes", "event_date", "due_date", "converted_order_id", "converted_at", "estimated_total",
		"created_at", "updated_at",
	}
	quoteProductCols    = []string{"id", "quote_id", "product", "color", "sizes", "quantity", "print_areas", "notes"}
	quoteAttachmentCols = []string{"id", "quote_id", "file_name", "file_url", "content_type", "size", "created_at"}
)

func quoteRow(id uuid.UUID, status string) []any {
	return []any{
		id, "Bob", "bob@example.com", "", "Acme", status,
		strPtr("for the fair"), (*string)(nil), (*time.Time)(nil), (*time.Time)(nil), (*uuid.UUID)(nil), (*time.Time)(nil),
		decimal.NewNullDecimal(dec("480.00")),
		fixedNow, fixedNow,
	}
}

func expectQuoteChildren(mock pgxmockv3.PgxPoolIface, ids []uuid.UUID) {
	products := pgxmockv3.NewRows(quoteProductCols)
	attachments := pgxmockv3.NewRows(quoteAttachmentCols)
	for i, id := range ids {
		products.AddRow(int64(i+1), id, "hoodie", "navy", []byte(`{"M":10,"L":5}`), 15, []byte(`["front"]`), "")
		attachments.AddRow(int64(i+1), id, "logo.png", "/files/logo.png", "image/png", int64(2048), fixedNow)
	}
	mock.ExpectQuery("FROM quote_products WHERE quote_id = ANY").WithArgs(ids).WillReturnRows(products)
	mock.ExpectQuery("FROM quote_attachments WHERE quote_id = ANY").WithArgs(ids).WillReturnRows(attachments)
}

func TestQuoteRepositoryCreate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &quoteRepository{storage: storage}

	total := dec("120.00")
	quote := &model.Quote{
		Customer:       model.Customer{Name: "Bob", Email: "bob@example.com"},
		Status:         model.QuoteStatusPending,
		EstimatedTotal: &total,
		Products:       []model.QuoteProduct{{Product: "hoodie", Sizes: map[string]int{"M": 2}, Quantity: 2}},
		Attachments:    []model.QuoteAttachment{{FileName: "logo.png", ContentType: "image/png", Size: 2048}},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO quotes").
		WithArgs(pgxmockv3.AnyArg(), "Bob", "bob@example.com", "", "", "pending",
			pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), decimal.NewNullDecimal(total)).
		WillReturnRows(pgxmockv3.NewRows([]string{"created_at", "updated_at"}).AddRow(fixedNow, fixedNow))
	mock.ExpectQuery("INSERT INTO quote_products").
		WithArgs(pgxmockv3.AnyArg(), "hoodie", "", []byte(`{"M":2}`), 2, []byte(`null`), "").
		WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectQuery("INSERT INTO quote_attachments").
		WithArgs(pgxmockv3.AnyArg(), "logo.png", "", "image/png", int64(2048)).
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "created_at"}).AddRow(int64(9), fixedNow))
	mock.ExpectCommit()

	created, err := repo.Create(context.Background(), quote)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == uuid.Nil || created.Products[0].ID != 7 || created.Attachments[0].ID != 9 {
		t.Fatalf("unexpected quote: %+v", created)
	}
	if created.Products[0].QuoteID != created.ID || created.Attachments[0].QuoteID != created.ID {
		t.Fatal("children must reference the quote")
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO quotes").
		WithArgs(pgxmockv3.AnyArg(), "", "", "", "", "", pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg()).
		WillReturnError(errors.New("boom"))
	mock.ExpectRollback()
	if _, err := repo.Create(context.Background(), &model.Quote{}); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestQuoteRepositoryGet(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &quoteRepository{storage: storage}
	id := uuid.New()

	mock.ExpectQuery("FROM quotes WHERE id=").WithArgs(id).
		WillReturnRows(pgxmockv3.NewRows(quoteCols).AddRow(quoteRow(id, "reviewed")...))
	expectQuoteChildren(mock, []uuid.UUID{id})

	quote, err := repo.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Status != model.QuoteStatusReviewed || quote.EstimatedTotal == nil || !quote.EstimatedTotal.Equal(dec("480")) {
		t.Fatalf("unexpected quote: %+v", quote)
	}
	if len(quote.Products) != 1 || quote.Products[0].Sizes["M"] != 10 || len(quote.Attachments) != 1 {
		t.Fatalf("children not loaded: %+v", quote)
	}

	mock.ExpectQuery("FROM quotes WHERE id=").WithArgs(id).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.Get(context.Background(), id); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM quotes WHERE id=").WithArgs(id).
		WillReturnRows(pgxmockv3.NewRows(quoteCols).AddRow(quoteRow(id, "pending")...))
	mock.ExpectQuery("FROM quote_products").WithArgs([]uuid.UUID{id}).WillReturnError(errors.New("boom"))
	if _, err := repo.Get(context.Background(), id); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestQuoteRepositoryList(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &quoteRepository{storage: storage}
	a, b := uuid.New(), uuid.New()
	status := model.QuoteStatusPending

	mock.ExpectQuery("FROM quotes WHERE quote_status=").WithArgs("pending", 10, 0).
		WillReturnRows(pgxmockv3.NewRows(quoteCols).AddRow(quoteRow(a, "pending")...).AddRow(quoteRow(b, "pending")...))
	expectQuoteChildren(mock, []uuid.UUID{a, b})

	quotes, err := repo.List(context.Background(), model.QuoteFilter{Status: &status}, model.Page{Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quotes) != 2 || quotes[1].ID != b || len(quotes[1].Products) != 1 || quotes[1].Products[0].QuoteID != b {
		t.Fatalf("unexpected quotes: %+v", quotes)
	}

	mock.ExpectQuery("FROM quotes ORDER BY").WithArgs(5, 5).WillReturnRows(pgxmockv3.NewRows(quoteCols))
	quotes, err = repo.List(context.Background(), model.QuoteFilter{}, model.Page{Limit: 5, Offset: 5})
	if err != nil || len(quotes) != 0 {
		t.Fatalf("expected empty list, got %v, %v", quotes, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestQuoteRepositoryUpdate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &quoteRepository{storage: storage}
	id := uuid.New()

	changes := model.QuoteChanges{
		model.QuoteFieldStatus: model.QuoteStatusConverted,
		model.QuoteFieldNotes:  strPtr("call back"),
	}
	mock.ExpectExec(regexp.QuoteMeta("UPDATE quotes SET notes=$1, quote_status=$2, updated_at=NOW() WHERE id=$3")).
		WithArgs(strPtr("call back"), "converted", id).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectQuery("FROM quotes WHERE id=").WithArgs(id).
		WillReturnRows(pgxmockv3.NewRows(quoteCols).AddRow(quoteRow(id, "converted")...))
	expectQuoteChildren(mock, []uuid.UUID{id})

	quote, err := repo.Update(context.Background(), id, changes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Status != model.QuoteStatusConverted {
		t.Fatalf("unexpected status %s", quote.Status)
	}

	mock.ExpectExec("UPDATE quotes SET").WithArgs(pgxmockv3.AnyArg(), id).WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if _, err := repo.Update(context.Background(), id, model.QuoteChanges{model.QuoteFieldAdminNotes: nil}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if _, err := repo.Update(context.Background(), id, model.QuoteChanges{}); !errors.Is(err, domainErrors.ErrNoValidFields) {
		t.Fatalf("expected no valid fields, got %v", err)
	}
	if _, err := repo.Update(context.Background(), id, model.QuoteChanges{"customer_email; DROP TABLE quotes": "x"}); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestQuoteRepositoryDelete(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &quoteRepository{storage: storage}
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT quote_status FROM quotes").WithArgs(id).
		WillReturnRows(pgxmockv3.NewRows([]string{"quote_status"}).AddRow("converted"))
	mock.ExpectRollback()
	if err := repo.Delete(context.Background(), id); !errors.Is(err, domainErrors.ErrQuoteConverted) {
		t.Fatalf("expected converted error, got %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT quote_status FROM quotes").WithArgs(id).WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()
	if err := repo.Delete(context.Background(), id); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT quote_status FROM quotes").WithArgs(id).
		WillReturnRows(pgxmockv3.NewRows([]string{"quote_status"}).AddRow("accepted"))
	mock.ExpectExec("DELETE FROM quotes").WithArgs(id).WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	mock.ExpectCommit()
	if err := repo.Delete(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestQuoteArg(t *testing.T) {
	status := model.QuoteStatusSent
	var nilStatus *model.QuoteStatus
	if quoteArg(model.QuoteStatusSent) != "sent" || quoteArg(&status) != "sent" || quoteArg(nilStatus) != nil {
		t.Fatal("quote status must be passed as text")
	}
	if quoteArg(42) != 42 {
		t.Fatal("other values pass through")
	}
}
