package repository

import (
	"context"
	"database/sql"
)

// BuyerMatchQuery carries the parameters of a listing a seller wants to
// find interested buyers for.
type BuyerMatchQuery struct {
	Brand        string
	Model        string
	Year         int
	Transmission string
	Condition    string
	Price        float64
}

// BuyerMatchRow is a buyer whose saved preferences accept the queried
// listing. MaxPrice is nil when the buyer set no budget cap.
type BuyerMatchRow struct {
	ID          uint64   `json:"id"`
	FullName    string   `json:"full_name"`
	ContactInfo string   `json:"contact_info"`
	MaxPrice    *float64 `json:"max_price"`
}

// FindBuyersForCar returns buyers whose preference profile matches the
// given listing parameters. A NULL preference field means "any", so each
// predicate is (field IS NULL OR field matches).
func (r *UserRepo) FindBuyersForCar(ctx context.Context, q BuyerMatchQuery) ([]BuyerMatchRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.full_name, u.contact_info, p.max_price
		 FROM buyer_preferences p
		 JOIN users u ON u.id = p.user_id
		 WHERE (p.preferred_brand IS NULL OR p.preferred_brand = ?)
		   AND (p.preferred_model IS NULL OR p.preferred_model = ?)
		   AND (p.min_year IS NULL OR p.min_year <= ?)
		   AND (p.max_year IS NULL OR p.max_year >= ?)
		   AND (p.preferred_transmission IS NULL OR p.preferred_transmission = ?)
		   AND (p.preferred_condition IS NULL OR p.preferred_condition = ?)
		   AND (p.max_price IS NULL OR p.max_price >= ?)`,
		q.Brand, q.Model, q.Year, q.Year, q.Transmission, q.Condition, q.Price)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []BuyerMatchRow{}
	for rows.Next() {
		var b BuyerMatchRow
		if err := rows.Scan(&b.ID, &b.FullName, &b.ContactInfo, &b.MaxPrice); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// BuyerByModelRow is a buyer looking for a specific model together with
// the rest of their preference profile.
type BuyerByModelRow struct {
	ID          uint64   `json:"id"`
	FullName    string   `json:"full_name"`
	ContactInfo string   `json:"contact_info"`
	Brand       *string  `json:"brand"`
	MinYear     *int     `json:"min_year"`
	MaxYear     *int     `json:"max_year"`
	MaxPrice    *float64 `json:"max_price"`
}

// FindBuyersByModel returns buyers whose preferred model equals model.
func (r *UserRepo) FindBuyersByModel(ctx context.Context, carModel string) ([]BuyerByModelRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.full_name, u.contact_info, p.preferred_brand, p.min_year, p.max_year, p.max_price
		 FROM buyer_preferences p
		 JOIN users u ON u.id = p.user_id
		 WHERE p.preferred_model = ?`, carModel)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []BuyerByModelRow{}
	for rows.Next() {
		var b BuyerByModelRow
		if err := rows.Scan(&b.ID, &b.FullName, &b.ContactInfo, &b.Brand, &b.MinYear, &b.MaxYear, &b.MaxPrice); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// lowMileageThreshold is the catalogue's definition of a low-mileage car.
const lowMileageThreshold = 30000

// ListLowMileage returns listings with mileage under 30 000 km.
func (r *CarRepo) ListLowMileage(ctx context.Context) ([]CarRow, error) {
	return r.listWhere(ctx, "c.mileage < ?", lowMileageThreshold)
}

// ListNew returns listings in `new` condition.
func (r *CarRepo) ListNew(ctx context.Context) ([]CarRow, error) {
	return r.listWhere(ctx, "c.car_condition = ?", "new")
}

func (r *CarRepo) listWhere(ctx context.Context, cond string, args ...any) ([]CarRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+prefixColumns("c", carColumns)+`,
			COALESCE(u.full_name, ''), COALESCE(s.name, '')
		 FROM cars c
		 LEFT JOIN users  u ON u.id = c.seller_id
		 LEFT JOIN stores s ON s.id = c.store_id
		 WHERE `+cond+`
		 ORDER BY c.created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []CarRow{}
	for rows.Next() {
		var (
			row              CarRow
			features, images sql.NullString
		)
		if err := rows.Scan(&row.ID, &row.SellerID, &row.StoreID, &row.Brand, &row.Model,
			&row.Year, &row.Price, &row.Mileage, &row.Transmission, &row.FuelType,
			&row.Condition, &row.Power, &row.Color, &features, &images, &row.Status,
			&row.CreatedAt, &row.UpdatedAt, &row.SellerName, &row.StoreName); err != nil {
			return nil, err
		}
		row.Features = decodeList(features)
		row.Images = decodeList(images)
		out = append(out, row)
	}
	return out, rows.Err()
}
