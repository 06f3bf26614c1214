package repository

import (
	"context"
	"errors"
	"time"

	"talent-screen/internal/database"
	"talent-screen/internal/domain/application"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrApplicationNotFound = errors.New("application not found")

// ScreeningDecision is the per-application write produced by the screening
// pipeline.
type ScreeningDecision struct {
	ApplicationID   uuid.UUID
	Status          application.Status
	Shortlisted     bool
	AIMatchScore    int
	ATSScore        int
	SkillsMatched   []string
	MissingSkills   []string
	AIExplanation   string
	RejectionReason string
}

type ApplicationRepository interface {
	Create(ctx context.Context, a application.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]application.Application, error)

	// ListForScreening returns applications in the given statuses ordered by
	// application date ascending (oldest first).
	ListForScreening(ctx context.Context, jobID uuid.UUID, statuses []application.Status, limit, offset int) ([]application.Application, error)
	CountForScreening(ctx context.Context, jobID uuid.UUID, statuses []application.Status) (int, error)

	ApplyDecision(ctx context.Context, d ScreeningDecision) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status, shortlisted bool, rejectionReason string) error
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `id, job_id, candidate_id, resume_id, status, shortlisted,
	ai_match_score, ats_score, skills_matched, missing_skills,
	ai_explanation, rejection_reason, applied_at, updated_at`

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) error {
	if a.AppliedAt.IsZero() {
		a.AppliedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO applications
			(id, job_id, candidate_id, resume_id, status, shortlisted, applied_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$7)`,
		a.ID, a.JobID, a.CandidateID, a.ResumeID, string(a.Status), a.Shortlisted, a.AppliedAt,
	)
	return err
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]application.Application, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+`
		 FROM applications
		 WHERE job_id = $1
		 ORDER BY applied_at DESC
		 LIMIT $2 OFFSET $3`,
		jobID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

func (r *PostgresApplicationRepository) ListForScreening(ctx context.Context, jobID uuid.UUID, statuses []application.Status, limit, offset int) ([]application.Application, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+`
		 FROM applications
		 WHERE job_id = $1 AND status = ANY($2)
		 ORDER BY applied_at ASC
		 LIMIT $3 OFFSET $4`,
		jobID, statusStrings(statuses), limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

func (r *PostgresApplicationRepository) CountForScreening(ctx context.Context, jobID uuid.UUID, statuses []application.Status) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications WHERE job_id = $1 AND status = ANY($2)`,
		jobID, statusStrings(statuses),
	).Scan(&n)
	return n, err
}

func (r *PostgresApplicationRepository) ApplyDecision(ctx context.Context, d ScreeningDecision) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE applications SET
			status = $2,
			shortlisted = $3,
			ai_match_score = $4,
			ats_score = $5,
			skills_matched = $6,
			missing_skills = $7,
			ai_explanation = $8,
			rejection_reason = $9,
			updated_at = $10
		 WHERE id = $1`,
		d.ApplicationID, string(d.Status), d.Shortlisted,
		d.AIMatchScore, d.ATSScore,
		d.SkillsMatched, d.MissingSkills,
		d.AIExplanation, d.RejectionReason,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status, shortlisted bool, rejectionReason string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE applications SET
			status = $2, shortlisted = $3, rejection_reason = $4, updated_at = $5
		 WHERE id = $1`,
		id, string(status), shortlisted, rejectionReason, time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func statusStrings(statuses []application.Status) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

func collectApplications(rows database.Rows) ([]application.Application, error) {
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(row scanner) (application.Application, error) {
	var (
		a      application.Application
		status string
	)
	err := row.Scan(
		&a.ID, &a.JobID, &a.CandidateID, &a.ResumeID, &status, &a.Shortlisted,
		&a.AIMatchScore, &a.ATSScore, &a.SkillsMatched, &a.MissingSkills,
		&a.AIExplanation, &a.RejectionReason, &a.AppliedAt, &a.UpdatedAt,
	)
	if err != nil {
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}
