package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Nihihitik/car-dealership/internal/model"
)

// FavoriteRepo persists the buyer-to-car bookmark relation. The unique
// (buyer_id, car_id) index makes the pair a set membership: Add on an
// existing pair is ErrConflict, Remove on a missing pair is ErrNotFound,
// so a toggle built from the two is idempotent under double-invocation.
type FavoriteRepo struct {
	db *sql.DB
}

// NewFavoriteRepo returns a new FavoriteRepo bound to the given database.
func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// Add inserts the membership row.
func (r *FavoriteRepo) Add(ctx context.Context, buyerID, carID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO favorites (buyer_id, car_id) VALUES (?,?)", buyerID, carID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	return nil
}

// Remove deletes the membership row.
func (r *FavoriteRepo) Remove(ctx context.Context, buyerID, carID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE buyer_id=? AND car_id=?", buyerID, carID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Exists reports the current membership state.
func (r *FavoriteRepo) Exists(ctx context.Context, buyerID, carID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM favorites WHERE buyer_id=? AND car_id=? LIMIT 1",
		buyerID, carID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// FavoriteCar is a saved listing joined with when it was saved.
type FavoriteCar struct {
	Car     model.Car
	AddedAt string
}

// ListByBuyer returns the buyer's saved listings, most recent first.
func (r *FavoriteRepo) ListByBuyer(ctx context.Context, buyerID uint64) ([]FavoriteCar, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+prefixColumns("c", carColumns)+`,
		        DATE_FORMAT(f.added_at, '%Y-%m-%dT%TZ')
		 FROM favorites f
		 JOIN cars c ON c.id = f.car_id
		 WHERE f.buyer_id = ?
		 ORDER BY f.added_at DESC`, buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []FavoriteCar{}
	for rows.Next() {
		var (
			fc               FavoriteCar
			features, images sql.NullString
		)
		if err := rows.Scan(&fc.Car.ID, &fc.Car.SellerID, &fc.Car.StoreID, &fc.Car.Brand,
			&fc.Car.Model, &fc.Car.Year, &fc.Car.Price, &fc.Car.Mileage, &fc.Car.Transmission,
			&fc.Car.FuelType, &fc.Car.Condition, &fc.Car.Power, &fc.Car.Color,
			&features, &images, &fc.Car.Status, &fc.Car.CreatedAt, &fc.Car.UpdatedAt,
			&fc.AddedAt); err != nil {
			return nil, err
		}
		fc.Car.Features = decodeList(features)
		fc.Car.Images = decodeList(images)
		out = append(out, fc)
	}
	return out, rows.Err()
}
