package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"talent-screen/internal/database"
	"talent-screen/internal/domain/candidate"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrProfileNotFound = errors.New("candidate profile not found")

const (
	SortByScore  = "score"
	SortByRecent = "recent"
)

type TalentPoolFilter struct {
	Search   string
	MinScore int
	Skills   []string
	MinYears int
	Sort     string
	Limit    int
	Offset   int
}

type CandidateRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (candidate.Profile, error)
	Upsert(ctx context.Context, p candidate.Profile) error

	// UpdateScore writes only the materialized score columns, used by the
	// lazy backfill on talent-pool reads.
	UpdateScore(ctx context.Context, userID uuid.UUID, total int, breakdown map[string]int, version int, at time.Time) error

	List(ctx context.Context, f TalentPoolFilter) ([]candidate.Profile, int, error)
}

type PostgresCandidateRepository struct {
	db database.DB
}

func NewPostgresCandidateRepository(db database.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

const profileColumns = `id, user_id, full_name, email, phone, location, title, summary,
	experience_level, industry, degree, field_of_study, institution,
	portfolio_url, linkedin_url, github_url, skills, years_experience,
	profile_score, score_breakdown, score_version, last_score_computed_at,
	created_at, updated_at`

func (r *PostgresCandidateRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (candidate.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM candidate_profiles WHERE user_id = $1`, userID)

	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return candidate.Profile{}, ErrProfileNotFound
		}
		return candidate.Profile{}, err
	}
	return p, nil
}

func (r *PostgresCandidateRepository) Upsert(ctx context.Context, p candidate.Profile) error {
	breakdown, err := json.Marshal(p.ScoreBreakdown)
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	var computedAt *time.Time
	if !p.LastScoreComputedAt.IsZero() {
		computedAt = &p.LastScoreComputedAt
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO candidate_profiles
			(id, user_id, full_name, email, phone, location, title, summary,
			 experience_level, industry, degree, field_of_study, institution,
			 portfolio_url, linkedin_url, github_url, skills, years_experience,
			 profile_score, score_breakdown, score_version, last_score_computed_at,
			 created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$23)
		 ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			location = EXCLUDED.location,
			title = EXCLUDED.title,
			summary = EXCLUDED.summary,
			experience_level = EXCLUDED.experience_level,
			industry = EXCLUDED.industry,
			degree = EXCLUDED.degree,
			field_of_study = EXCLUDED.field_of_study,
			institution = EXCLUDED.institution,
			portfolio_url = EXCLUDED.portfolio_url,
			linkedin_url = EXCLUDED.linkedin_url,
			github_url = EXCLUDED.github_url,
			skills = EXCLUDED.skills,
			years_experience = EXCLUDED.years_experience,
			profile_score = EXCLUDED.profile_score,
			score_breakdown = EXCLUDED.score_breakdown,
			score_version = EXCLUDED.score_version,
			last_score_computed_at = EXCLUDED.last_score_computed_at,
			updated_at = EXCLUDED.updated_at`,
		p.ID, p.UserID, p.FullName, p.Email, p.Phone, p.Location, p.Title, p.Summary,
		p.ExperienceLevel, p.Industry, p.Degree, p.FieldOfStudy, p.Institution,
		p.PortfolioURL, p.LinkedInURL, p.GitHubURL, p.Skills, p.YearsExperience,
		p.ProfileScore, breakdown, p.ScoreVersion, computedAt,
		now,
	)
	return err
}

func (r *PostgresCandidateRepository) UpdateScore(ctx context.Context, userID uuid.UUID, total int, breakdown map[string]int, version int, at time.Time) error {
	b, err := json.Marshal(breakdown)
	if err != nil {
		return err
	}
	affected, err := r.db.Exec(ctx,
		`UPDATE candidate_profiles SET
			profile_score = $2, score_breakdown = $3, score_version = $4,
			last_score_computed_at = $5, updated_at = $6
		 WHERE user_id = $1`,
		userID, total, b, version, at, time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *PostgresCandidateRepository) List(ctx context.Context, f TalentPoolFilter) ([]candidate.Profile, int, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	where := make([]string, 0, 4)
	args := make([]any, 0, 6)

	addArg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		ph := addArg("%" + s + "%")
		where = append(where, fmt.Sprintf("(full_name ILIKE %s OR email ILIKE %s OR summary ILIKE %s)", ph, ph, ph))
	}
	if f.MinScore > 0 {
		where = append(where, "profile_score >= "+addArg(f.MinScore))
	}
	if len(f.Skills) > 0 {
		// any-match on the normalized skill set
		where = append(where, "skills && "+addArg(f.Skills))
	}
	if f.MinYears > 0 {
		where = append(where, "years_experience >= "+addArg(f.MinYears))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM candidate_profiles`+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := "profile_score DESC, updated_at DESC"
	if f.Sort == SortByRecent {
		order = "updated_at DESC"
	}

	query := `SELECT ` + profileColumns + ` FROM candidate_profiles` + clause +
		` ORDER BY ` + order +
		` LIMIT ` + addArg(f.Limit) + ` OFFSET ` + addArg(f.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]candidate.Profile, 0, f.Limit)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func scanProfile(row scanner) (candidate.Profile, error) {
	var (
		p         candidate.Profile
		breakdown []byte
		computed  *time.Time
	)
	err := row.Scan(
		&p.ID, &p.UserID, &p.FullName, &p.Email, &p.Phone, &p.Location, &p.Title, &p.Summary,
		&p.ExperienceLevel, &p.Industry, &p.Degree, &p.FieldOfStudy, &p.Institution,
		&p.PortfolioURL, &p.LinkedInURL, &p.GitHubURL, &p.Skills, &p.YearsExperience,
		&p.ProfileScore, &breakdown, &p.ScoreVersion, &computed,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return candidate.Profile{}, err
	}
	if len(breakdown) > 0 {
		if err := json.Unmarshal(breakdown, &p.ScoreBreakdown); err != nil {
			return candidate.Profile{}, err
		}
	}
	if computed != nil {
		p.LastScoreComputedAt = *computed
	}
	return p, nil
}
