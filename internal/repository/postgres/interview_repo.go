package postgres

import (
	"context"

	"go-mockinterview-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type interviewRepo struct {
	db *pgxpool.Pool
}

func NewInterviewRepository(db *pgxpool.Pool) domain.InterviewRepository {
	return &interviewRepo{db: db}
}

func (r *interviewRepo) Create(ctx context.Context, interview *domain.Interview) error {
	query := `INSERT INTO interviews (role, type, level, techstack, questions, user_id, finalized, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRow(ctx, query,
		interview.Role, interview.Type, interview.Level,
		pq.Array(interview.Techstack), pq.Array(interview.Questions),
		interview.UserID, interview.Finalized, interview.CreatedAt,
	).Scan(&interview.ID)
}

func (r *interviewRepo) GetByID(ctx context.Context, id string) (*domain.Interview, error) {
	query := `SELECT id, role, type, level, techstack, questions, user_id, finalized, created_at
              FROM interviews WHERE id = $1`
	var interview domain.Interview
	err := r.db.QueryRow(ctx, query, id).Scan(
		&interview.ID, &interview.Role, &interview.Type, &interview.Level,
		pq.Array(&interview.Techstack), pq.Array(&interview.Questions),
		&interview.UserID, &interview.Finalized, &interview.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &interview, nil
}

func (r *interviewRepo) FetchByUserID(ctx context.Context, userID string) ([]domain.Interview, error) {
	query := `SELECT id, role, type, level, techstack, questions, user_id, finalized, created_at
              FROM interviews WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInterviews(rows)
}

// FetchAvailable hardcodes the sharing rules: finalized only, never the
// requesting user's own records, never resume-derived interviews.
func (r *interviewRepo) FetchAvailable(ctx context.Context, excludeUserID string, limit int) ([]domain.Interview, error) {
	query := `SELECT id, role, type, level, techstack, questions, user_id, finalized, created_at
              FROM interviews
              WHERE finalized = true AND user_id <> $1 AND type <> $2
              ORDER BY created_at DESC LIMIT $3`
	rows, err := r.db.Query(ctx, query, excludeUserID, domain.InterviewTypeResume, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInterviews(rows)
}

func (r *interviewRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM interviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanInterviews(rows pgx.Rows) ([]domain.Interview, error) {
	var interviews []domain.Interview
	for rows.Next() {
		var interview domain.Interview
		if err := rows.Scan(
			&interview.ID, &interview.Role, &interview.Type, &interview.Level,
			pq.Array(&interview.Techstack), pq.Array(&interview.Questions),
			&interview.UserID, &interview.Finalized, &interview.CreatedAt,
		); err != nil {
			return nil, err
		}
		interviews = append(interviews, interview)
	}
	return interviews, rows.Err()
}
