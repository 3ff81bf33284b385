package repository

import (
	"context"
	"database/sql"

	"github.com/Nihihitik/car-dealership/internal/model"
)

// QuestionRepo persists buyer questions on listings and seller answers.
type QuestionRepo struct {
	db *sql.DB
}

// NewQuestionRepo returns a new QuestionRepo bound to the given database.
func NewQuestionRepo(db *sql.DB) *QuestionRepo { return &QuestionRepo{db: db} }

// Create inserts a question and populates the generated ID.
func (r *QuestionRepo) Create(ctx context.Context, q *model.Question) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO questions (car_id, buyer_id, question) VALUES (?,?,?)",
		q.CarID, q.BuyerID, q.Question)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	q.ID = uint64(id)
	return nil
}

// ListByCar returns all questions for a listing, oldest first.
func (r *QuestionRepo) ListByCar(ctx context.Context, carID uint64) ([]model.Question, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, car_id, buyer_id, question, answer, created_at FROM questions WHERE car_id=? ORDER BY created_at",
		carID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Question{}
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.CarID, &q.BuyerID, &q.Question, &q.Answer, &q.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// Answer stores the seller's answer. Only the seller who owns the car
// the question targets may answer; anyone else gets ErrForbidden.
func (r *QuestionRepo) Answer(ctx context.Context, questionID, sellerID uint64, answer string) error {
	var ownerID uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT c.seller_id FROM questions q JOIN cars c ON c.id = q.car_id WHERE q.id=? LIMIT 1`,
		questionID).Scan(&ownerID)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if ownerID != sellerID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx, "UPDATE questions SET answer=? WHERE id=?", answer, questionID)
	return err
}
