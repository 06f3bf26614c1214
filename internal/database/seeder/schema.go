package seeder

import (
	"context"
	"fmt"

	"talent-screen/internal/database"
)

// SchemaSeeder creates the service tables when they do not exist yet and
// verifies the columns the repositories scan.
type SchemaSeeder struct{}

func (SchemaSeeder) Name() string { return "schema" }

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id uuid PRIMARY KEY,
		email text NOT NULL UNIQUE,
		password_hash text NOT NULL,
		full_name text NOT NULL DEFAULT '',
		role text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS candidate_profiles (
		id uuid PRIMARY KEY,
		user_id uuid NOT NULL UNIQUE REFERENCES users(id),
		full_name text NOT NULL DEFAULT '',
		email text NOT NULL DEFAULT '',
		phone text NOT NULL DEFAULT '',
		location text NOT NULL DEFAULT '',
		title text NOT NULL DEFAULT '',
		summary text NOT NULL DEFAULT '',
		experience_level text NOT NULL DEFAULT '',
		industry text NOT NULL DEFAULT '',
		degree text NOT NULL DEFAULT '',
		field_of_study text NOT NULL DEFAULT '',
		institution text NOT NULL DEFAULT '',
		portfolio_url text NOT NULL DEFAULT '',
		linkedin_url text NOT NULL DEFAULT '',
		github_url text NOT NULL DEFAULT '',
		skills text[] NOT NULL DEFAULT '{}',
		years_experience int,
		profile_score int NOT NULL DEFAULT 0,
		score_breakdown jsonb NOT NULL DEFAULT '{}',
		score_version int NOT NULL DEFAULT 0,
		last_score_computed_at timestamptz,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id uuid PRIMARY KEY,
		recruiter_id uuid NOT NULL REFERENCES users(id),
		title text NOT NULL,
		description text NOT NULL,
		requirements text NOT NULL DEFAULT '',
		required_skills text[] NOT NULL DEFAULT '{}',
		experience_required text NOT NULL DEFAULT '',
		resume_required boolean NOT NULL DEFAULT false,
		ai_shortlist_threshold int,
		ai_min_ats_score int,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS resumes (
		id uuid PRIMARY KEY,
		candidate_id uuid NOT NULL REFERENCES users(id),
		extracted_text text NOT NULL DEFAULT '',
		skills text[] NOT NULL DEFAULT '{}',
		ats_score int NOT NULL DEFAULT 0,
		uploaded_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id uuid PRIMARY KEY,
		job_id uuid NOT NULL REFERENCES jobs(id),
		candidate_id uuid NOT NULL REFERENCES users(id),
		resume_id uuid REFERENCES resumes(id),
		status text NOT NULL DEFAULT 'Pending',
		shortlisted boolean NOT NULL DEFAULT false,
		ai_match_score int NOT NULL DEFAULT 0,
		ats_score int NOT NULL DEFAULT 0,
		skills_matched text[] NOT NULL DEFAULT '{}',
		missing_skills text[] NOT NULL DEFAULT '{}',
		ai_explanation text NOT NULL DEFAULT '',
		rejection_reason text NOT NULL DEFAULT '',
		applied_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_job_status ON applications (job_id, status, applied_at)`,
	`CREATE INDEX IF NOT EXISTS idx_candidate_profiles_score ON candidate_profiles (profile_score DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_resumes_candidate ON resumes (candidate_id, uploaded_at DESC)`,
}

func (SchemaSeeder) Run(ctx context.Context, db database.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	if err := EnsureTableColumns(ctx, db, "applications",
		"id", "job_id", "candidate_id", "resume_id", "status", "shortlisted",
		"ai_match_score", "ats_score", "rejection_reason", "applied_at",
	); err != nil {
		return err
	}
	return EnsureTableColumns(ctx, db, "candidate_profiles",
		"user_id", "skills", "profile_score", "score_breakdown", "score_version", "last_score_computed_at",
	)
}

func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if table == "" {
		return fmt.Errorf("empty table")
	}

	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema='public' AND table_name=$1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			return fmt.Errorf("schema mismatch: missing column %s.%s", table, col)
		}
	}
	return nil
}
