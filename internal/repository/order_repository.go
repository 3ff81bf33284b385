package repository

import (
	"context"
	"database/sql"

	"github.com/Nihihitik/car-dealership/internal/model"
)

// OrderRepo provides CRUD operations for purchase orders. Creation and
// approval run inside caller-owned transactions so the coupled car
// status change commits atomically with the order row.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo returns a new OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// DB exposes the underlying handle for handler-driven transactions.
func (r *OrderRepo) DB() *sql.DB { return r.db }

// GetCarForUpdateTx loads the target car's seller, price and status with
// a row lock, so the status check and the order insert see the same row.
func (r *OrderRepo) GetCarForUpdateTx(ctx context.Context, tx *sql.Tx, carID uint64) (sellerID uint64, price float64, status model.CarStatus, err error) {
	err = tx.QueryRowContext(ctx,
		"SELECT seller_id, price, status FROM cars WHERE id=? FOR UPDATE", carID).
		Scan(&sellerID, &price, &status)
	if err == sql.ErrNoRows {
		err = ErrNotFound
	}
	return
}

// ExistsPendingTx reports whether the buyer already has a pending order
// for the car.
func (r *OrderRepo) ExistsPendingTx(ctx context.Context, tx *sql.Tx, buyerID, carID uint64) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx,
		"SELECT 1 FROM orders WHERE buyer_id=? AND car_id=? AND status=? LIMIT 1",
		buyerID, carID, model.OrderPending).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateTx inserts a pending order within the transaction and populates
// the generated ID and timestamps on the record.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, o *model.Order) error {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO orders (car_id, buyer_id, seller_id, price, status) VALUES (?,?,?,?,?)",
		o.CarID, o.BuyerID, o.SellerID, o.Price, o.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	return tx.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM orders WHERE id=?", o.ID).
		Scan(&o.CreatedAt, &o.UpdatedAt)
}

// GetByID fetches an order by id.
func (r *OrderRepo) GetByID(ctx context.Context, id uint64) (model.Order, error) {
	var o model.Order
	err := r.db.QueryRowContext(ctx,
		"SELECT id, car_id, buyer_id, seller_id, price, status, created_at, updated_at FROM orders WHERE id=? LIMIT 1",
		id).Scan(&o.ID, &o.CarID, &o.BuyerID, &o.SellerID, &o.Price, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return o, ErrNotFound
	}
	return o, err
}

// GetForUpdateTx fetches an order with a row lock for status changes.
func (r *OrderRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Order, error) {
	var o model.Order
	err := tx.QueryRowContext(ctx,
		"SELECT id, car_id, buyer_id, seller_id, price, status, created_at, updated_at FROM orders WHERE id=? FOR UPDATE",
		id).Scan(&o.ID, &o.CarID, &o.BuyerID, &o.SellerID, &o.Price, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return o, ErrNotFound
	}
	return o, err
}

// UpdateStatusTx moves an order between states with a compare-and-set on
// the current status. The transition itself must already be validated.
func (r *OrderRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, from, to model.OrderStatus) error {
	if err := model.CheckOrderTransition(from, to); err != nil {
		return ErrInvalidTransition
	}
	res, err := tx.ExecContext(ctx,
		"UPDATE orders SET status=? WHERE id=? AND status=?", to, id, from)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConflict
	}
	return nil
}

// RejectOtherPendingTx rejects every other pending order for the car.
// Called inside the approval transaction so losing buyers see a final
// state instead of a pending order against a sold car.
func (r *OrderRepo) RejectOtherPendingTx(ctx context.Context, tx *sql.Tx, carID, keepOrderID uint64) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE orders SET status=? WHERE car_id=? AND status=? AND id<>?",
		model.OrderRejected, carID, model.OrderPending, keepOrderID)
	return err
}

// HasOpenForCar reports whether the car has any pending or approved
// order. Used to block deleting a listing with live deals.
func (r *OrderRepo) HasOpenForCar(ctx context.Context, carID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM orders WHERE car_id=? AND status IN (?,?) LIMIT 1",
		carID, model.OrderPending, model.OrderApproved).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// OrderDetail is an order joined with the car it targets and the display
// name of the opposite party. Buyers see the seller's name; sellers see
// the buyer's name and contact.
type OrderDetail struct {
	ID        uint64            `json:"id"`
	Status    model.OrderStatus `json:"status"`
	Price     float64           `json:"price"`
	CreatedAt string            `json:"created_at"`
	Car       struct {
		ID     uint64          `json:"id"`
		Brand  string          `json:"brand"`
		Model  string          `json:"model"`
		Year   int             `json:"year"`
		Status model.CarStatus `json:"status"`
	} `json:"car"`
	SellerName   string `json:"seller_name,omitempty"`
	BuyerName    string `json:"buyer_name,omitempty"`
	BuyerContact string `json:"buyer_contact,omitempty"`
}

// ListByBuyer returns the buyer's orders with car and seller info.
func (r *OrderRepo) ListByBuyer(ctx context.Context, buyerID uint64) ([]OrderDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT o.id, o.status, o.price, DATE_FORMAT(o.created_at, '%Y-%m-%dT%TZ'),
		        c.id, c.brand, c.model, c.year, c.status,
		        COALESCE(u.full_name, '')
		 FROM orders o
		 JOIN cars c      ON c.id = o.car_id
		 LEFT JOIN users u ON u.id = o.seller_id
		 WHERE o.buyer_id = ?
		 ORDER BY o.created_at DESC`, buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []OrderDetail{}
	for rows.Next() {
		var d OrderDetail
		if err := rows.Scan(&d.ID, &d.Status, &d.Price, &d.CreatedAt,
			&d.Car.ID, &d.Car.Brand, &d.Car.Model, &d.Car.Year, &d.Car.Status,
			&d.SellerName); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListBySeller returns orders against the seller's listings with buyer
// contact details.
func (r *OrderRepo) ListBySeller(ctx context.Context, sellerID uint64) ([]OrderDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT o.id, o.status, o.price, DATE_FORMAT(o.created_at, '%Y-%m-%dT%TZ'),
		        c.id, c.brand, c.model, c.year, c.status,
		        COALESCE(u.full_name, ''), COALESCE(u.contact_info, '')
		 FROM orders o
		 JOIN cars c      ON c.id = o.car_id
		 LEFT JOIN users u ON u.id = o.buyer_id
		 WHERE o.seller_id = ?
		 ORDER BY o.created_at DESC`, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []OrderDetail{}
	for rows.Next() {
		var d OrderDetail
		if err := rows.Scan(&d.ID, &d.Status, &d.Price, &d.CreatedAt,
			&d.Car.ID, &d.Car.Brand, &d.Car.Model, &d.Car.Year, &d.Car.Status,
			&d.BuyerName, &d.BuyerContact); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
