package repository

import (
	"context"
	"database/sql"

	"github.com/Nihihitik/car-dealership/internal/model"
)

// StoreRepo persists seller-owned dealership locations.
type StoreRepo struct {
	db *sql.DB
}

// NewStoreRepo returns a new StoreRepo bound to the given database.
func NewStoreRepo(db *sql.DB) *StoreRepo { return &StoreRepo{db: db} }

const storeColumns = "id, owner_id, name, address, created_at, updated_at"

// Create inserts a store and populates the generated ID.
func (r *StoreRepo) Create(ctx context.Context, s *model.Store) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO stores (owner_id, name, address) VALUES (?,?,?)",
		s.OwnerID, s.Name, s.Address)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID fetches a store by id.
func (r *StoreRepo) GetByID(ctx context.Context, id uint64) (model.Store, error) {
	var s model.Store
	err := r.db.QueryRowContext(ctx,
		"SELECT "+storeColumns+" FROM stores WHERE id=? LIMIT 1", id).
		Scan(&s.ID, &s.OwnerID, &s.Name, &s.Address, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return s, ErrNotFound
	}
	return s, err
}

// GetByIDAndOwner fetches a store only when it belongs to ownerID.
func (r *StoreRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (model.Store, error) {
	var s model.Store
	err := r.db.QueryRowContext(ctx,
		"SELECT "+storeColumns+" FROM stores WHERE id=? AND owner_id=? LIMIT 1", id, ownerID).
		Scan(&s.ID, &s.OwnerID, &s.Name, &s.Address, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return s, ErrNotFound
	}
	return s, err
}

// ListByOwner returns all of a seller's stores.
func (r *StoreRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Store, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+storeColumns+" FROM stores WHERE owner_id=? ORDER BY name", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Store{}
	for rows.Next() {
		var s model.Store
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Address, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update rewrites name and address for a store owned by ownerID.
func (r *StoreRepo) Update(ctx context.Context, id, ownerID uint64, name, address string) error {
	if _, err := r.GetByIDAndOwner(ctx, id, ownerID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE stores SET name=?, address=? WHERE id=? AND owner_id=?",
		name, address, id, ownerID)
	return err
}

// Delete removes a store. A store that still has cars attached cannot be
// deleted and returns ErrConflict.
func (r *StoreRepo) Delete(ctx context.Context, id, ownerID uint64) error {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM cars WHERE store_id=? LIMIT 1", id).Scan(&one)
	if err == nil {
		return ErrConflict
	}
	if err != sql.ErrNoRows {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM stores WHERE id=? AND owner_id=?", id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
