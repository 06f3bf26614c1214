package repository

import (
	"context"
	"errors"
	"time"

	"talent-screen/internal/database"
	"talent-screen/internal/domain/resume"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrResumeNotFound = errors.New("resume not found")

type ResumeRepository interface {
	Create(ctx context.Context, r resume.Resume) error
	GetByID(ctx context.Context, id uuid.UUID) (resume.Resume, error)
	GetLatestByCandidate(ctx context.Context, candidateID uuid.UUID) (resume.Resume, error)
	UpdateATSScore(ctx context.Context, id uuid.UUID, score int) error
}

type PostgresResumeRepository struct {
	db database.DB
}

func NewPostgresResumeRepository(db database.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

const resumeColumns = `id, candidate_id, extracted_text, skills, ats_score, uploaded_at`

func (r *PostgresResumeRepository) Create(ctx context.Context, doc resume.Resume) error {
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO resumes (id, candidate_id, extracted_text, skills, ats_score, uploaded_at)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		doc.ID, doc.CandidateID, doc.ExtractedText, doc.Skills, doc.ATSScore, doc.UploadedAt,
	)
	return err
}

func (r *PostgresResumeRepository) GetByID(ctx context.Context, id uuid.UUID) (resume.Resume, error) {
	row := r.db.QueryRow(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id)
	return scanResume(row)
}

func (r *PostgresResumeRepository) GetLatestByCandidate(ctx context.Context, candidateID uuid.UUID) (resume.Resume, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+resumeColumns+`
		 FROM resumes
		 WHERE candidate_id = $1
		 ORDER BY uploaded_at DESC
		 LIMIT 1`,
		candidateID,
	)
	return scanResume(row)
}

func (r *PostgresResumeRepository) UpdateATSScore(ctx context.Context, id uuid.UUID, score int) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE resumes SET ats_score = $2 WHERE id = $1`, id, score)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrResumeNotFound
	}
	return nil
}

func scanResume(row scanner) (resume.Resume, error) {
	var doc resume.Resume
	err := row.Scan(&doc.ID, &doc.CandidateID, &doc.ExtractedText, &doc.Skills, &doc.ATSScore, &doc.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resume.Resume{}, ErrResumeNotFound
		}
		return resume.Resume{}, err
	}
	return doc, nil
}
