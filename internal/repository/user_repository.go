package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Nihihitik/car-dealership/internal/model"
	"github.com/Nihihitik/car-dealership/internal/utils"
)

// UserRepo persists buyer and seller accounts in the shared `users`
// table plus the optional `buyer_preferences` row for buyers.
type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// DB exposes the underlying handle for handler-driven transactions.
func (r *UserRepo) DB() *sql.DB { return r.db }

// Create inserts a user and returns its ID. Email uniqueness is enforced
// by the database; MySQL error 1062 is translated to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, email, password, role, fullName, contactInfo string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, role, full_name, contact_info) VALUES (?,?,?,?,?)",
		email, hash, role, fullName, contactInfo)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,full_name,contact_info,is_active,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FullName, &u.ContactInfo, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,full_name,contact_info,is_active,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FullName, &u.ContactInfo, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}
	return u, err
}

// UpdateProfile updates the mutable account fields.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, fullName, contactInfo string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET full_name=?, contact_info=? WHERE id=?",
		fullName, contactInfo, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the account. Dependent rows (favorites, preferences)
// are removed by ON DELETE CASCADE; cars and orders keep history.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetPreferences loads a buyer's saved search profile. A missing row is
// not an error: a zero-value BuyerPreferences with the UserID set is
// returned so handlers can render an empty profile.
func (r *UserRepo) GetPreferences(ctx context.Context, userID uint64) (model.BuyerPreferences, error) {
	p := model.BuyerPreferences{UserID: userID}
	err := r.db.QueryRowContext(ctx,
		`SELECT preferred_brand, preferred_model, min_year, max_year, min_power, max_power,
		        preferred_transmission, preferred_condition, max_price
		 FROM buyer_preferences WHERE user_id=? LIMIT 1`, userID).Scan(
		&p.PreferredBrand, &p.PreferredModel, &p.MinYear, &p.MaxYear, &p.MinPower, &p.MaxPower,
		&p.PreferredTransmission, &p.PreferredCondition, &p.MaxPrice)
	if err == sql.ErrNoRows {
		return p, nil
	}
	return p, err
}

// UpsertPreferences writes the buyer's search profile, replacing any
// previous row.
func (r *UserRepo) UpsertPreferences(ctx context.Context, p model.BuyerPreferences) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO buyer_preferences
		   (user_id, preferred_brand, preferred_model, min_year, max_year, min_power, max_power,
		    preferred_transmission, preferred_condition, max_price)
		 VALUES (?,?,?,?,?,?,?,?,?,?)
		 ON DUPLICATE KEY UPDATE
		   preferred_brand=VALUES(preferred_brand), preferred_model=VALUES(preferred_model),
		   min_year=VALUES(min_year), max_year=VALUES(max_year),
		   min_power=VALUES(min_power), max_power=VALUES(max_power),
		   preferred_transmission=VALUES(preferred_transmission),
		   preferred_condition=VALUES(preferred_condition), max_price=VALUES(max_price)`,
		p.UserID, p.PreferredBrand, p.PreferredModel, p.MinYear, p.MaxYear, p.MinPower, p.MaxPower,
		p.PreferredTransmission, p.PreferredCondition, p.MaxPrice)
	return err
}
