package repository

import (
	"context"
	"errors"
	"time"

	"talent-screen/internal/database"
	"talent-screen/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	Create(ctx context.Context, p job.Posting) error
	GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error)
	List(ctx context.Context, limit, offset int) ([]job.Posting, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, recruiter_id, title, description, requirements, required_skills,
	experience_required, resume_required, ai_shortlist_threshold, ai_min_ats_score,
	created_at, updated_at`

func (r *PostgresJobRepository) Create(ctx context.Context, p job.Posting) error {
	now := time.Now().UTC()
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs
			(id, recruiter_id, title, description, requirements, required_skills,
			 experience_required, resume_required, ai_shortlist_threshold, ai_min_ats_score,
			 created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$11)`,
		p.ID, p.RecruiterID, p.Title, p.Description, p.Requirements, p.RequiredSkills,
		p.ExperienceRequired, p.ResumeRequired, p.AIShortlistThreshold, p.AIMinATSScore,
		now,
	)
	return err
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)

	p, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Posting{}, ErrJobNotFound
		}
		return job.Posting{}, err
	}
	return p, nil
}

func (r *PostgresJobRepository) List(ctx context.Context, limit, offset int) ([]job.Posting, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Posting, 0)
	for rows.Next() {
		p, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJob(row scanner) (job.Posting, error) {
	var p job.Posting
	err := row.Scan(
		&p.ID, &p.RecruiterID, &p.Title, &p.Description, &p.Requirements, &p.RequiredSkills,
		&p.ExperienceRequired, &p.ResumeRequired, &p.AIShortlistThreshold, &p.AIMinATSScore,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}
