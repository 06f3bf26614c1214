package candidate

import (
	"time"

	"github.com/google/uuid"
)

// Profile carries a candidate's self-reported fields together with the
// materialized profile score. The score columns are recomputed on every
// profile-affecting write and repaired lazily on read when missing.
type Profile struct {
	ID     uuid.UUID
	UserID uuid.UUID

	FullName string
	Email    string
	Phone    string
	Location string
	Title    string
	Summary  string

	ExperienceLevel string
	Industry        string

	Degree       string
	FieldOfStudy string
	Institution  string

	PortfolioURL string
	LinkedInURL  string
	GitHubURL    string

	// Skills are stored normalized: lowercase, trimmed, deduplicated.
	Skills []string

	// YearsExperience is nil when never provided; zero is a valid value.
	YearsExperience *int

	ProfileScore        int
	ScoreBreakdown      map[string]int
	ScoreVersion        int
	LastScoreComputedAt time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
