package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"talent-screen/internal/domain/candidate"
	"talent-screen/internal/domain/job"
	"talent-screen/internal/domain/scoring"
	"talent-screen/internal/repository"

	"github.com/google/uuid"
)

const (
	talentPoolMaxLimit     = 50
	talentPoolDefaultLimit = 20

	SortJob = "job"

	compositeCacheTTL = 10 * time.Minute
)

type TalentPoolParams struct {
	Search   string
	MinScore int
	Skills   []string
	MinYears int

	// Sort is "score", "recent" or "job"; "job" requires JobID.
	Sort  string
	JobID *uuid.UUID

	Page  int
	Limit int
}

type TalentPoolItem struct {
	Profile candidate.Profile

	// Set only for job-aware listings.
	JobMatchScore  *int
	CompositeScore *int
}

// CompositeCache stores job-aware ranking scores; a nil cache or a cache
// error only costs recomputation. Entries expire after compositeCacheTTL,
// which bounds how long a stale score outlives a profile or job edit.
type CompositeCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// jobScoreEntry is the cached per-candidate ranking for one job, keyed by
// user ID under "talent:job:<jobID>".
type jobScoreEntry struct {
	JobMatch  int `json:"job_match"`
	Composite int `json:"composite"`
}

type TalentPoolUsecase interface {
	ListCandidates(ctx context.Context, params TalentPoolParams) ([]TalentPoolItem, int, error)
}

type TalentPool struct {
	profiles repository.CandidateRepository
	jobs     repository.JobRepository
	cache    CompositeCache
	logger   *log.Logger
	now      func() time.Time
}

func NewTalentPoolUsecase(profiles repository.CandidateRepository, jobs repository.JobRepository, cache CompositeCache, logger *log.Logger) *TalentPool {
	return &TalentPool{profiles: profiles, jobs: jobs, cache: cache, logger: logger, now: time.Now}
}

func (u *TalentPool) ListCandidates(ctx context.Context, params TalentPoolParams) ([]TalentPoolItem, int, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = talentPoolDefaultLimit
	}
	if limit > talentPoolMaxLimit {
		limit = talentPoolMaxLimit
	}
	page := params.Page
	if page < 1 {
		page = 1
	}

	var posting job.Posting
	jobAware := params.Sort == SortJob
	if jobAware {
		if params.JobID == nil || *params.JobID == uuid.Nil {
			return nil, 0, ErrInvalidInput
		}
		p, err := u.jobs.GetByID(ctx, *params.JobID)
		if err != nil {
			if errors.Is(err, repository.ErrJobNotFound) {
				return nil, 0, ErrJobNotFound
			}
			return nil, 0, ErrInternal
		}
		posting = p
	}

	filter := repository.TalentPoolFilter{
		Search:   params.Search,
		MinScore: params.MinScore,
		Skills:   scoring.NormalizeSkills(params.Skills),
		MinYears: params.MinYears,
		Sort:     repository.SortByScore,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}
	if params.Sort == repository.SortByRecent {
		filter.Sort = repository.SortByRecent
	}

	profiles, total, err := u.profiles.List(ctx, filter)
	if err != nil {
		return nil, 0, ErrInternal
	}

	items := make([]TalentPoolItem, 0, len(profiles))
	for _, p := range profiles {
		p = u.backfillScore(ctx, p)
		items = append(items, TalentPoolItem{Profile: p})
	}

	if jobAware {
		u.rankForJob(ctx, items, posting)
	}

	return items, total, nil
}

// backfillScore repairs a missing materialized score on read. Best-effort:
// a persistence failure is logged and the freshly computed value is still
// returned to the caller.
func (u *TalentPool) backfillScore(ctx context.Context, p candidate.Profile) candidate.Profile {
	if p.ProfileScore > 0 && !p.LastScoreComputedAt.IsZero() {
		return p
	}

	score := scoring.ComputeProfileScore(profileScoreInput(p))
	p.ProfileScore = score.Total
	p.ScoreBreakdown = score.Breakdown
	p.ScoreVersion = scoring.Version
	p.LastScoreComputedAt = u.now().UTC()

	if err := u.profiles.UpdateScore(ctx, p.UserID, score.Total, score.Breakdown, scoring.Version, p.LastScoreComputedAt); err != nil {
		if u.logger != nil {
			u.logger.Printf("[TalentPool] score backfill failed for user %s: %v", p.UserID, err)
		}
	}
	return p
}

func (u *TalentPool) rankForJob(ctx context.Context, items []TalentPoolItem, posting job.Posting) {
	cached := map[string]jobScoreEntry{}
	if u.cache != nil {
		if ok, err := u.cache.GetJSON(ctx, compositeCacheKey(posting.ID), &cached); err != nil || !ok {
			cached = map[string]jobScoreEntry{}
		}
	}

	reqYears := scoring.RequiredYears(posting.ExperienceRequired)
	misses := 0

	for i := range items {
		p := items[i].Profile
		key := p.UserID.String()

		entry, hit := cached[key]
		if !hit {
			years := 0
			if p.YearsExperience != nil {
				years = *p.YearsExperience
			}
			jobMatch := scoring.JobMatchScore(
				scoring.SkillsPct(p.Skills, posting.RequiredSkills),
				scoring.YearsPct(years, reqYears),
			)
			entry = jobScoreEntry{
				JobMatch:  jobMatch,
				Composite: scoring.CompositeScore(p.ProfileScore, jobMatch),
			}
			cached[key] = entry
			misses++
		}

		jobMatch := entry.JobMatch
		composite := entry.Composite
		items[i].JobMatchScore = &jobMatch
		items[i].CompositeScore = &composite
	}

	sort.SliceStable(items, func(a, b int) bool {
		return *items[a].CompositeScore > *items[b].CompositeScore
	})

	if u.cache != nil && misses > 0 {
		if err := u.cache.SetJSON(ctx, compositeCacheKey(posting.ID), cached, compositeCacheTTL); err != nil && u.logger != nil {
			u.logger.Printf("[TalentPool] composite cache write failed for job %s: %v", posting.ID, err)
		}
	}
}

func compositeCacheKey(jobID uuid.UUID) string {
	return "talent:job:" + jobID.String()
}

func profileScoreInput(p candidate.Profile) scoring.ProfileInput {
	return scoring.ProfileInput{
		FullName:        p.FullName,
		Email:           p.Email,
		Phone:           p.Phone,
		Location:        p.Location,
		Title:           p.Title,
		Summary:         p.Summary,
		ExperienceLevel: p.ExperienceLevel,
		Industry:        p.Industry,
		Degree:          p.Degree,
		FieldOfStudy:    p.FieldOfStudy,
		Institution:     p.Institution,
		PortfolioURL:    p.PortfolioURL,
		LinkedInURL:     p.LinkedInURL,
		GitHubURL:       p.GitHubURL,
		Skills:          p.Skills,
		YearsExperience: p.YearsExperience,
	}
}
