package postgres

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/printshop/internal/domain/errors"
	"github.com/polkiloo/printshop/internal/domain/model"
)

type quoteRepository struct {
	storage *Storage
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const quoteColumns = `id, customer_name, customer_email, customer_phone, company, quote_status,
notes, admin_notes, event_date, due_date, converted_order_id, converted_at, estimated_total,
created_at, updated_at`

// updatableQuoteColumns guards dynamic SET clauses.
var updatableQuoteColumns = map[model.QuoteField]bool{
	model.QuoteFieldStatus:           true,
	model.QuoteFieldNotes:            true,
	model.QuoteFieldAdminNotes:       true,
	model.QuoteFieldEventDate:        true,
	model.QuoteFieldDueDate:          true,
	model.QuoteFieldConvertedOrderID: true,
	model.QuoteFieldConvertedAt:      true,
}

func (r *quoteRepository) Create(ctx context.Context, quote *model.Quote) (*model.Quote, error) {
	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertQuote = `INSERT INTO quotes (id, customer_name, customer_email, customer_phone, company,
                             quote_status, notes, event_date, due_date, estimated_total)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
                             RETURNING created_at, updated_at`
		var total decimal.NullDecimal
		if quote.EstimatedTotal != nil {
			total = decimal.NewNullDecimal(*quote.EstimatedTotal)
		}
		err := tx.QueryRow(ctx, insertQuote,
			quote.ID, quote.Customer.Name, quote.Customer.Email, quote.Customer.Phone, quote.Company,
			string(quote.Status), quote.Notes, quote.EventDate, quote.DueDate, total,
		).Scan(&quote.CreatedAt, &quote.UpdatedAt)
		if err != nil {
			return err
		}

		const insertProduct = `INSERT INTO quote_products (quote_id, product, color, sizes, quantity, print_areas, notes)
                               VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
		for i := range quote.Products {
			p := &quote.Products[i]
			p.QuoteID = quote.ID
			encoded, err := encodeJSON(p.Sizes, p.PrintAreas)
			if err != nil {
				return fmt.Errorf("encode quote product: %w", err)
			}
			if err := tx.QueryRow(ctx, insertProduct, quote.ID, p.Product, p.Color, encoded[0], p.Quantity, encoded[1], p.Notes).Scan(&p.ID); err != nil {
				return err
			}
		}

		const insertAttachment = `INSERT INTO quote_attachments (quote_id, file_name, file_url, content_type, size)
                                  VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
		for i := range quote.Attachments {
			a := &quote.Attachments[i]
			a.QuoteID = quote.ID
			if err := tx.QueryRow(ctx, insertAttachment, quote.ID, a.FileName, a.FileURL, a.ContentType, a.Size).Scan(&a.ID, &a.CreatedAt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quote, nil
}

func (r *quoteRepository) Get(ctx context.Context, id uuid.UUID) (*model.Quote, error) {
	row := r.storage.pool.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id=$1`, id)
	q, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	quotes := []model.Quote{*q}
	if err := loadQuoteChildren(ctx, r.storage.pool, quotes); err != nil {
		return nil, err
	}
	return &quotes[0], nil
}

func (r *quoteRepository) List(ctx context.Context, filter model.QuoteFilter, page model.Page) ([]model.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes`
	var args []any
	if filter.Status != nil {
		query += ` WHERE quote_status=$1`
		args = append(args, string(*filter.Status))
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, page.Limit, page.Offset)

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	quotes := []model.Quote{}
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		quotes = append(quotes, *q)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := loadQuoteChildren(ctx, r.storage.pool, quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

// Update writes the given allow-listed columns in a stable order.
func (r *quoteRepository) Update(ctx context.Context, id uuid.UUID, changes model.QuoteChanges) (*model.Quote, error) {
	if len(changes) == 0 {
		return nil, domainErrors.ErrNoValidFields
	}

	fields := make([]model.QuoteField, 0, len(changes))
	for field := range changes {
		if !updatableQuoteColumns[field] {
			return nil, fmt.Errorf("%w: field %q cannot be updated", domainErrors.ErrInvalidInput, field)
		}
		fields = append(fields, field)
	}
	slices.Sort(fields)

	set := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+1)
	for i, field := range fields {
		set = append(set, fmt.Sprintf("%s=$%d", field, i+1))
		args = append(args, quoteArg(changes[field]))
	}
	set = append(set, "updated_at=NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE quotes SET %s WHERE id=$%d`, strings.Join(set, ", "), len(args))
	tag, err := r.storage.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return r.Get(ctx, id)
}

// Delete removes a quote and its children unless it was converted to an order.
func (r *quoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var status string
		err := tx.QueryRow(ctx, `SELECT quote_status FROM quotes WHERE id=$1 FOR UPDATE`, id).Scan(&status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if model.QuoteStatus(status) == model.QuoteStatusConverted {
			return domainErrors.ErrQuoteConverted
		}
		_, err = tx.Exec(ctx, `DELETE FROM quotes WHERE id=$1`, id)
		return err
	})
}

func quoteArg(v any) any {
	switch val := v.(type) {
	case model.QuoteStatus:
		return string(val)
	case *model.QuoteStatus:
		if val == nil {
			return nil
		}
		return string(*val)
	default:
		return v
	}
}

func scanQuote(row pgx.Row) (*model.Quote, error) {
	var (
		q      model.Quote
		total  decimal.NullDecimal
		status string
	)
	err := row.Scan(
		&q.ID, &q.Customer.Name, &q.Customer.Email, &q.Customer.Phone, &q.Company, &status,
		&q.Notes, &q.AdminNotes, &q.EventDate, &q.DueDate, &q.ConvertedOrderID, &q.ConvertedAt, &total,
		&q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	q.Status = model.QuoteStatus(status)
	if total.Valid {
		q.EstimatedTotal = &total.Decimal
	}
	q.Products = []model.QuoteProduct{}
	q.Attachments = []model.QuoteAttachment{}
	return &q, nil
}

// loadQuoteChildren eagerly attaches products and attachments to quotes.
func loadQuoteChildren(ctx context.Context, q querier, quotes []model.Quote) error {
	if len(quotes) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(quotes))
	index := make(map[uuid.UUID]int, len(quotes))
	for i := range quotes {
		ids[i] = quotes[i].ID
		index[quotes[i].ID] = i
	}

	const productsQuery = `SELECT id, quote_id, product, color, sizes, quantity, print_areas, notes
                           FROM quote_products WHERE quote_id = ANY($1) ORDER BY id`
	rows, err := q.Query(ctx, productsQuery, ids)
	if err != nil {
		return fmt.Errorf("load quote products: %w", err)
	}
	for rows.Next() {
		var (
			p            model.QuoteProduct
			sizes, areas []byte
		)
		if err := rows.Scan(&p.ID, &p.QuoteID, &p.Product, &p.Color, &sizes, &p.Quantity, &areas, &p.Notes); err != nil {
			rows.Close()
			return err
		}
		if err := decodeJSON(sizes, &p.Sizes); err != nil {
			rows.Close()
			return err
		}
		if err := decodeJSON(areas, &p.PrintAreas); err != nil {
			rows.Close()
			return err
		}
		if i, ok := index[p.QuoteID]; ok {
			quotes[i].Products = append(quotes[i].Products, p)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	const attachmentsQuery = `SELECT id, quote_id, file_name, file_url, content_type, size, created_at
                              FROM quote_attachments WHERE quote_id = ANY($1) ORDER BY id`
	rows, err = q.Query(ctx, attachmentsQuery, ids)
	if err != nil {
		return fmt.Errorf("load quote attachments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var a model.QuoteAttachment
		if err := rows.Scan(&a.ID, &a.QuoteID, &a.FileName, &a.FileURL, &a.ContentType, &a.Size, &a.CreatedAt); err != nil {
			return err
		}
		if i, ok := index[a.QuoteID]; ok {
			quotes[i].Attachments = append(quotes[i].Attachments, a)
		}
	}
	return rows.Err()
}
