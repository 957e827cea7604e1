package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	domainErrors "github.com/polkiloo/printshop/internal/domain/errors"
	"github.com/polkiloo/printshop/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

const orderCommonColumns = `id, status, payment_status, payment_id, payment_method, transaction_id, paid_at,
customer_name, customer_email, customer_phone, quantity,
unit_price, base_price, turnaround_price, total_price, created_at, updated_at`

// orderTable describes how one order variant is stored.
type orderTable struct {
	name    string
	columns string
	insert  func(o *model.Order) (string, []any, error)
	scan    func(row pgx.Row) (*model.Order, error)
}

var orderTables = map[model.ProductType]orderTable{
	model.ProductTypeTShirt: {
		name:    "tshirt_orders",
		columns: orderCommonColumns + `, product, color, size, print_areas, text_overlays, image_overlays, turnaround, proof`,
		insert:  insertTShirtOrder,
		scan:    scanTShirtOrder,
	},
	model.ProductTypeColorCopies: {
		name:    "color_copies_orders",
		columns: orderCommonColumns + `, paper_size, paper_type, color_mode, double_sided, options, turnaround, source_file, notes`,
		insert:  insertColorCopiesOrder,
		scan:    scanColorCopiesOrder,
	},
}

func tableFor(kind model.ProductType) (orderTable, error) {
	t, ok := orderTables[kind]
	if !ok {
		return orderTable{}, fmt.Errorf("%w: unknown product type %q", domainErrors.ErrInvalidInput, kind)
	}
	return t, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	t, err := tableFor(order.Type)
	if err != nil {
		return nil, err
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}

	query, args, err := t.insert(order)
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}
	if err := r.storage.pool.QueryRow(ctx, query, args...).Scan(&order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, err
	}
	return order, nil
}

// Resolve finds which variant table holds the order.
func (r *orderRepository) Resolve(ctx context.Context, id uuid.UUID) (model.ProductType, error) {
	const query = `SELECT 'tshirt' FROM tshirt_orders WHERE id=$1
                   UNION ALL
                   SELECT 'color_copies' FROM color_copies_orders WHERE id=$1
                   LIMIT 1`
	var kind string
	if err := r.storage.pool.QueryRow(ctx, query, id).Scan(&kind); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domainErrors.ErrNotFound
		}
		return "", err
	}
	return model.ProductType(kind), nil
}

func (r *orderRepository) Get(ctx context.Context, kind model.ProductType, id uuid.UUID) (*model.Order, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + t.columns + ` FROM ` + t.name + ` WHERE id=$1`
	return r.one(t, r.storage.pool.QueryRow(ctx, query, id))
}

// List returns orders newest first. Without a type filter both tables are
// read concurrently, each up to offset+limit rows, and merged before paging.
func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter, page model.Page) ([]model.Order, error) {
	if filter.Type != nil {
		t, err := tableFor(*filter.Type)
		if err != nil {
			return nil, err
		}
		return r.listTable(ctx, t, filter.Status, page.Limit, page.Offset)
	}

	window := page.Offset + page.Limit
	results := make([][]model.Order, len(model.ProductTypes))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range model.ProductTypes {
		t := orderTables[kind]
		g.Go(func() error {
			orders, err := r.listTable(gctx, t, filter.Status, window, 0)
			if err != nil {
				return fmt.Errorf("list %s: %w", t.name, err)
			}
			results[i] = orders
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := slices.Concat(results...)
	slices.SortStableFunc(merged, func(a, b model.Order) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	if page.Offset >= len(merged) {
		return []model.Order{}, nil
	}
	end := min(page.Offset+page.Limit, len(merged))
	return merged[page.Offset:end], nil
}

func (r *orderRepository) listTable(ctx context.Context, t orderTable, status *model.OrderStatus, limit, offset int) ([]model.Order, error) {
	query := `SELECT ` + t.columns + ` FROM ` + t.name
	var args []any
	if status != nil {
		query += ` WHERE status=$1`
		args = append(args, string(*status))
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.Order{}
	for rows.Next() {
		o, err := t.scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, kind model.ProductType, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := `UPDATE ` + t.name + ` SET status=$1, updated_at=NOW() WHERE id=$2 RETURNING ` + t.columns
	return r.one(t, r.storage.pool.QueryRow(ctx, query, string(status), id))
}

// UpdatePayment writes payment fields. Nil identifiers keep the stored value,
// so payment_id and payment_method are never cleared once set. A paid order
// is never updated again; concurrent confirmations race on the row and only
// the first one wins.
func (r *orderRepository) UpdatePayment(ctx context.Context, kind model.ProductType, id uuid.UUID, update model.PaymentUpdate) (*model.Order, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := `UPDATE ` + t.name + ` SET
                payment_status=$1,
                status=$2,
                payment_id=COALESCE($3, payment_id),
                payment_method=COALESCE($4, payment_method),
                transaction_id=COALESCE($5, transaction_id),
                paid_at=COALESCE($6, paid_at),
                updated_at=NOW()
              WHERE id=$7 AND payment_status <> 'paid' RETURNING ` + t.columns
	row := r.storage.pool.QueryRow(ctx, query,
		string(update.PaymentStatus), string(update.Status),
		update.PaymentID, update.Method, update.TransactionID, update.PaidAt, id)
	order, err := r.one(t, row)
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return order, err
	}

	var exists bool
	if err := r.storage.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM `+t.name+` WHERE id=$1)`, id).Scan(&exists); err != nil {
		return nil, err
	}
	if exists {
		return nil, domainErrors.ErrAlreadyPaid
	}
	return nil, domainErrors.ErrNotFound
}

func (r *orderRepository) Delete(ctx context.Context, kind model.ProductType, id uuid.UUID) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM `+t.name+` WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) one(t orderTable, row pgx.Row) (*model.Order, error) {
	o, err := t.scan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func commonDest(o *model.Order) []any {
	return []any{
		&o.ID, &o.Status, &o.Payment.Status, &o.Payment.ID, &o.Payment.Method, &o.Payment.TransactionID, &o.Payment.PaidAt,
		&o.Customer.Name, &o.Customer.Email, &o.Customer.Phone, &o.Quantity,
		&o.Pricing.UnitPrice, &o.Pricing.BasePrice, &o.Pricing.TurnaroundPrice, &o.Pricing.TotalPrice,
		&o.CreatedAt, &o.UpdatedAt,
	}
}

func commonArgs(o *model.Order) []any {
	return []any{
		o.ID, string(o.Status), string(o.Payment.Status),
		o.Customer.Name, o.Customer.Email, o.Customer.Phone, o.Quantity,
		o.Pricing.UnitPrice, o.Pricing.BasePrice, o.Pricing.TurnaroundPrice, o.Pricing.TotalPrice,
	}
}

const insertCommonColumns = `id, status, payment_status, customer_name, customer_email, customer_phone, quantity,
unit_price, base_price, turnaround_price, total_price`

func insertTShirtOrder(o *model.Order) (string, []any, error) {
	d := o.TShirt
	if d == nil {
		return "", nil, errors.New("t-shirt design is missing")
	}
	encoded, err := encodeJSON(d.PrintAreas, d.TextOverlays, d.ImageOverlays, d.Proof)
	if err != nil {
		return "", nil, err
	}
	const query = `INSERT INTO tshirt_orders (` + insertCommonColumns + `,
                   product, color, size, print_areas, text_overlays, image_overlays, turnaround, proof)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
                   RETURNING created_at, updated_at`
	args := append(commonArgs(o), d.Product, d.Color, d.Size, encoded[0], encoded[1], encoded[2], d.Turnaround, encoded[3])
	return query, args, nil
}

func insertColorCopiesOrder(o *model.Order) (string, []any, error) {
	d := o.ColorCopies
	if d == nil {
		return "", nil, errors.New("color copies design is missing")
	}
	encoded, err := encodeJSON(d.Options)
	if err != nil {
		return "", nil, err
	}
	const query = `INSERT INTO color_copies_orders (` + insertCommonColumns + `,
                   paper_size, paper_type, color_mode, double_sided, options, turnaround, source_file, notes)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
                   RETURNING created_at, updated_at`
	args := append(commonArgs(o), d.PaperSize, d.PaperType, d.ColorMode, d.DoubleSided, encoded[0], d.Turnaround, d.SourceFile, d.Notes)
	return query, args, nil
}

func scanTShirtOrder(row pgx.Row) (*model.Order, error) {
	o := &model.Order{Type: model.ProductTypeTShirt, TShirt: &model.TShirtDesign{}}
	d := o.TShirt
	var areas, texts, images, proof []byte
	dest := append(commonDest(o), &d.Product, &d.Color, &d.Size, &areas, &texts, &images, &d.Turnaround, &proof)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if err := decodeJSON(areas, &d.PrintAreas); err != nil {
		return nil, err
	}
	if err := decodeJSON(texts, &d.TextOverlays); err != nil {
		return nil, err
	}
	if err := decodeJSON(images, &d.ImageOverlays); err != nil {
		return nil, err
	}
	if err := decodeJSON(proof, &d.Proof); err != nil {
		return nil, err
	}
	return o, nil
}

func scanColorCopiesOrder(row pgx.Row) (*model.Order, error) {
	o := &model.Order{Type: model.ProductTypeColorCopies, ColorCopies: &model.ColorCopiesDesign{}}
	d := o.ColorCopies
	var options []byte
	dest := append(commonDest(o), &d.PaperSize, &d.PaperType, &d.ColorMode, &d.DoubleSided, &options, &d.Turnaround, &d.SourceFile, &d.Notes)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if err := decodeJSON(options, &d.Options); err != nil {
		return nil, err
	}
	return o, nil
}

func encodeJSON(values ...any) ([][]byte, error) {
	out := make([][]byte, len(values))
	for i, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

func decodeJSON(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode json column: %w", err)
	}
	return nil
}
