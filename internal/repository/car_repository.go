package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/Nihihitik/car-dealership/internal/model"
)

// CarRepo provides CRUD and search operations for car listings. The
// features and images columns hold JSON arrays; encoding and decoding
// happens here so the rest of the code only sees []string.
type CarRepo struct {
	db *sql.DB
}

// NewCarRepo returns a new CarRepo bound to the given database.
func NewCarRepo(db *sql.DB) *CarRepo { return &CarRepo{db: db} }

// DB exposes the underlying handle for handler-driven transactions.
func (r *CarRepo) DB() *sql.DB { return r.db }

const carColumns = `id, seller_id, store_id, brand, model, year, price, mileage,
	transmission, fuel_type, car_condition, power, color, features, images, status,
	created_at, updated_at`

func encodeList(v []string) (any, error) {
	if len(v) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func decodeList(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil {
		// Tolerate legacy rows that stored a bare string.
		return []string{raw.String}
	}
	return out
}

func scanCar(scan func(dest ...any) error) (model.Car, error) {
	var (
		features, images sql.NullString
		car              model.Car
	)
	err := scan(&car.ID, &car.SellerID, &car.StoreID, &car.Brand, &car.Model, &car.Year,
		&car.Price, &car.Mileage, &car.Transmission, &car.FuelType, &car.Condition,
		&car.Power, &car.Color, &features, &images, &car.Status, &car.CreatedAt, &car.UpdatedAt)
	if err != nil {
		return car, err
	}
	car.Features = decodeList(features)
	car.Images = decodeList(images)
	return car, nil
}

// Create inserts a listing and populates the generated ID. New listings
// default to `active` unless the caller set a status explicitly.
func (r *CarRepo) Create(ctx context.Context, car *model.Car) error {
	if car.Status == "" {
		car.Status = model.CarActive
	}
	features, err := encodeList(car.Features)
	if err != nil {
		return err
	}
	images, err := encodeList(car.Images)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO cars (seller_id, store_id, brand, model, year, price, mileage,
		   transmission, fuel_type, car_condition, power, color, features, images, status)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		car.SellerID, car.StoreID, car.Brand, car.Model, car.Year, car.Price, car.Mileage,
		car.Transmission, car.FuelType, car.Condition, car.Power, car.Color, features, images, car.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	car.ID = uint64(id)
	return nil
}

// GetByID fetches a listing by id.
func (r *CarRepo) GetByID(ctx context.Context, id uint64) (model.Car, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+carColumns+" FROM cars WHERE id=? LIMIT 1", id)
	car, err := scanCar(row.Scan)
	if err == sql.ErrNoRows {
		return car, ErrNotFound
	}
	return car, err
}

// Update rewrites the editable listing fields. Only the owning seller
// may update; a mismatch returns ErrForbidden.
func (r *CarRepo) Update(ctx context.Context, car *model.Car) error {
	current, err := r.GetByID(ctx, car.ID)
	if err != nil {
		return err
	}
	if current.SellerID != car.SellerID {
		return ErrForbidden
	}
	features, err := encodeList(car.Features)
	if err != nil {
		return err
	}
	images, err := encodeList(car.Images)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE cars SET store_id=?, brand=?, model=?, year=?, price=?, mileage=?,
		   transmission=?, fuel_type=?, car_condition=?, power=?, color=?, features=?, images=?
		 WHERE id=? AND seller_id=?`,
		car.StoreID, car.Brand, car.Model, car.Year, car.Price, car.Mileage,
		car.Transmission, car.FuelType, car.Condition, car.Power, car.Color, features, images,
		car.ID, car.SellerID)
	return err
}

// UpdateStatus moves a listing between states with a compare-and-set on
// the current status, so a concurrent transition cannot be overwritten.
// ErrConflict is returned when the row moved under us.
func (r *CarRepo) UpdateStatus(ctx context.Context, id uint64, from, to model.CarStatus) error {
	if err := model.CheckCarTransition(from, to); err != nil {
		return ErrInvalidTransition
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE cars SET status=? WHERE id=? AND status=?", to, id, from)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConflict
	}
	return nil
}

// UpdateStatusTx is UpdateStatus inside an existing transaction. Used by
// the order approval flow which marks the car sold in the same commit.
func (r *CarRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, from, to model.CarStatus) error {
	if err := model.CheckCarTransition(from, to); err != nil {
		return ErrInvalidTransition
	}
	res, err := tx.ExecContext(ctx,
		"UPDATE cars SET status=? WHERE id=? AND status=?", to, id, from)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConflict
	}
	return nil
}

// Delete removes a listing owned by sellerID.
func (r *CarRepo) Delete(ctx context.Context, id, sellerID uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM cars WHERE id=? AND seller_id=?", id, sellerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBySeller returns all listings owned by a seller, newest first.
func (r *CarRepo) ListBySeller(ctx context.Context, sellerID uint64) ([]model.Car, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+carColumns+" FROM cars WHERE seller_id=? ORDER BY created_at DESC", sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Car{}
	for rows.Next() {
		car, err := scanCar(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, car)
	}
	return out, rows.Err()
}

// CarSearchQuery defines filters & pagination for browsing listings.
// Zero values mean "no filter".
type CarSearchQuery struct {
	Brand        string
	Model        string
	MinYear      int
	MaxYear      int
	MinPrice     float64
	MaxPrice     float64
	Condition    string
	Transmission string
	MaxMileage   int
	Status       string
	Skip         int
	Limit        int
}

// CarRow is a browse-result row: the listing plus the seller and store
// display names joined in.
type CarRow struct {
	model.Car
	SellerName string
	StoreName  string
}

// Search returns listings matching q plus the total match count for
// pagination. Brand and model match as case-insensitive substrings, the
// numeric bounds are inclusive.
func (r *CarRepo) Search(ctx context.Context, q CarSearchQuery) ([]CarRow, int64, error) {
	where := []string{}
	args := []any{}

	if q.Brand != "" {
		where = append(where, "LOWER(c.brand) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Brand)+"%")
	}
	if q.Model != "" {
		where = append(where, "LOWER(c.model) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Model)+"%")
	}
	if q.MinYear > 0 {
		where = append(where, "c.year >= ?")
		args = append(args, q.MinYear)
	}
	if q.MaxYear > 0 {
		where = append(where, "c.year <= ?")
		args = append(args, q.MaxYear)
	}
	if q.MinPrice > 0 {
		where = append(where, "c.price >= ?")
		args = append(args, q.MinPrice)
	}
	if q.MaxPrice > 0 {
		where = append(where, "c.price <= ?")
		args = append(args, q.MaxPrice)
	}
	if q.Condition != "" {
		where = append(where, "c.car_condition = ?")
		args = append(args, q.Condition)
	}
	if q.Transmission != "" {
		where = append(where, "c.transmission = ?")
		args = append(args, q.Transmission)
	}
	if q.MaxMileage > 0 {
		where = append(where, "c.mileage <= ?")
		args = append(args, q.MaxMileage)
	}
	if q.Status != "" {
		where = append(where, "c.status = ?")
		args = append(args, q.Status)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := `SELECT COUNT(*) FROM cars c WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	dataSQL := `SELECT ` + prefixColumns("c", carColumns) + `,
			COALESCE(u.full_name, '') AS seller_name,
			COALESCE(s.name, '')      AS store_name
		FROM cars c
		LEFT JOIN users  u ON u.id = c.seller_id
		LEFT JOIN stores s ON s.id = c.store_id
		WHERE ` + cond + `
		ORDER BY c.created_at DESC
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, q.Skip)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]CarRow, 0, limit)
	for rows.Next() {
		var (
			row              CarRow
			features, images sql.NullString
		)
		if err := rows.Scan(&row.ID, &row.SellerID, &row.StoreID, &row.Brand, &row.Model,
			&row.Year, &row.Price, &row.Mileage, &row.Transmission, &row.FuelType,
			&row.Condition, &row.Power, &row.Color, &features, &images, &row.Status,
			&row.CreatedAt, &row.UpdatedAt, &row.SellerName, &row.StoreName); err != nil {
			return nil, 0, err
		}
		row.Features = decodeList(features)
		row.Images = decodeList(images)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// prefixColumns rewrites "a, b, c" into "p.a, p.b, p.c" for joined queries.
func prefixColumns(p, cols string) string {
	parts := strings.Split(cols, ",")
	for i := range parts {
		parts[i] = p + "." + strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, ", ")
}
