package postgres

import (
	"context"
	"encoding/json"

	"go-mockinterview-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type feedbackRepo struct {
	db *pgxpool.Pool
}

func NewFeedbackRepository(db *pgxpool.Pool) domain.FeedbackRepository {
	return &feedbackRepo{db: db}
}

// Upsert writes the row under its pre-allocated id, overwriting an
// existing row so regenerated feedback does not duplicate.
func (r *feedbackRepo) Upsert(ctx context.Context, feedback *domain.Feedback) error {
	categoryScores, err := json.Marshal(feedback.CategoryScores)
	if err != nil {
		return err
	}

	query := `INSERT INTO feedback (id, interview_id, user_id, total_score, category_scores, strengths, areas_for_improvement, final_assessment, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
              ON CONFLICT (id) DO UPDATE SET
                interview_id = EXCLUDED.interview_id,
                user_id = EXCLUDED.user_id,
                total_score = EXCLUDED.total_score,
                category_scores = EXCLUDED.category_scores,
                strengths = EXCLUDED.strengths,
                areas_for_improvement = EXCLUDED.areas_for_improvement,
                final_assessment = EXCLUDED.final_assessment,
                created_at = EXCLUDED.created_at`
	_, err = r.db.Exec(ctx, query,
		feedback.ID, feedback.InterviewID, feedback.UserID, feedback.TotalScore,
		categoryScores, pq.Array(feedback.Strengths), pq.Array(feedback.AreasForImprovement),
		feedback.FinalAssessment, feedback.CreatedAt,
	)
	return err
}

// GetByInterviewAndUser resolves the canonical row for the pair: the
// first match ordered by created_at, matching the read-time
// first-match-wins contract.
func (r *feedbackRepo) GetByInterviewAndUser(ctx context.Context, interviewID, userID string) (*domain.Feedback, error) {
	query := selectFeedback + ` WHERE interview_id = $1 AND user_id = $2 ORDER BY created_at ASC LIMIT 1`
	return r.queryOne(ctx, query, interviewID, userID)
}

func (r *feedbackRepo) LatestByUser(ctx context.Context, userID string) (*domain.Feedback, error) {
	query := selectFeedback + ` WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`
	return r.queryOne(ctx, query, userID)
}

func (r *feedbackRepo) FetchByUserID(ctx context.Context, userID string) ([]domain.Feedback, error) {
	query := selectFeedback + ` WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feedbacks []domain.Feedback
	for rows.Next() {
		feedback, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		feedbacks = append(feedbacks, *feedback)
	}
	return feedbacks, rows.Err()
}

func (r *feedbackRepo) FetchIDsByInterviewID(ctx context.Context, interviewID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM feedback WHERE interview_id = $1`, interviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *feedbackRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const selectFeedback = `SELECT id, interview_id, user_id, total_score, category_scores, strengths, areas_for_improvement, final_assessment, created_at FROM feedback`

func (r *feedbackRepo) queryOne(ctx context.Context, query string, args ...interface{}) (*domain.Feedback, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, domain.ErrNotFound
	}
	return scanFeedback(rows)
}

func scanFeedback(rows pgx.Rows) (*domain.Feedback, error) {
	var feedback domain.Feedback
	var categoryScores []byte
	if err := rows.Scan(
		&feedback.ID, &feedback.InterviewID, &feedback.UserID, &feedback.TotalScore,
		&categoryScores, pq.Array(&feedback.Strengths), pq.Array(&feedback.AreasForImprovement),
		&feedback.FinalAssessment, &feedback.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(categoryScores) > 0 {
		if err := json.Unmarshal(categoryScores, &feedback.CategoryScores); err != nil {
			return nil, err
		}
	}
	return &feedback, nil
}
