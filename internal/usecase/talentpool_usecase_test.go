package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"talent-screen/internal/domain/candidate"
	"talent-screen/internal/domain/job"
	"talent-screen/internal/repository"

	"github.com/google/uuid"
)

type poolProfileRepo struct {
	profiles []candidate.Profile

	lastFilter       repository.TalentPoolFilter
	updateScoreErr   error
	updateScoreCalls int
}

func (f *poolProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (candidate.Profile, error) {
	return candidate.Profile{}, repository.ErrProfileNotFound
}

func (f *poolProfileRepo) Upsert(ctx context.Context, p candidate.Profile) error { return nil }

func (f *poolProfileRepo) UpdateScore(ctx context.Context, userID uuid.UUID, total int, breakdown map[string]int, version int, at time.Time) error {
	f.updateScoreCalls++
	return f.updateScoreErr
}

func (f *poolProfileRepo) List(ctx context.Context, filter repository.TalentPoolFilter) ([]candidate.Profile, int, error) {
	f.lastFilter = filter
	out := make([]candidate.Profile, len(f.profiles))
	copy(out, f.profiles)
	return out, len(f.profiles), nil
}

type fakeCompositeCache struct {
	data    map[string][]byte
	getKeys []string
	setKeys []string
}

func (c *fakeCompositeCache) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	c.getKeys = append(c.getKeys, key)
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *fakeCompositeCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if c.data == nil {
		c.data = map[string][]byte{}
	}
	c.data[key] = b
	c.setKeys = append(c.setKeys, key)
	return nil
}

func scoredProfile(name string, skills []string, years, score int) candidate.Profile {
	return candidate.Profile{
		ID:                  uuid.New(),
		UserID:              uuid.New(),
		FullName:            name,
		Email:               name + "@example.com",
		Skills:              skills,
		YearsExperience:     &years,
		ProfileScore:        score,
		LastScoreComputedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestTalentPoolLimitClamped(t *testing.T) {
	profiles := &poolProfileRepo{}
	uc := NewTalentPoolUsecase(profiles, &fakeJobRepo{}, nil, nil)

	if _, _, err := uc.ListCandidates(context.Background(), TalentPoolParams{Limit: 500}); err != nil {
		t.Fatalf("ListCandidates returned error: %v", err)
	}
	if profiles.lastFilter.Limit != 50 {
		t.Fatalf("limit must clamp to 50, got %d", profiles.lastFilter.Limit)
	}

	if _, _, err := uc.ListCandidates(context.Background(), TalentPoolParams{}); err != nil {
		t.Fatalf("ListCandidates returned error: %v", err)
	}
	if profiles.lastFilter.Limit != 20 {
		t.Fatalf("default limit must be 20, got %d", profiles.lastFilter.Limit)
	}
	if profiles.lastFilter.Offset != 0 {
		t.Fatalf("first page must start at offset 0, got %d", profiles.lastFilter.Offset)
	}
}

func TestTalentPoolBackfillBestEffort(t *testing.T) {
	stale := candidate.Profile{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		FullName: "Dewi Lestari",
		Email:    "dewi@example.com",
		Skills:   []string{"go", "sql"},
	}
	profiles := &poolProfileRepo{
		profiles:       []candidate.Profile{stale},
		updateScoreErr: errors.New("db down"),
	}
	uc := NewTalentPoolUsecase(profiles, &fakeJobRepo{}, nil, nil)

	items, total, err := uc.ListCandidates(context.Background(), TalentPoolParams{})
	if err != nil {
		t.Fatalf("backfill persistence failure must not fail the read: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("expected 1 candidate, got %d (total %d)", len(items), total)
	}
	if profiles.updateScoreCalls != 1 {
		t.Fatalf("expected one backfill write attempt, got %d", profiles.updateScoreCalls)
	}
	if items[0].Profile.ProfileScore <= 0 {
		t.Fatalf("returned profile must carry the recomputed score, got %d", items[0].Profile.ProfileScore)
	}
	if items[0].Profile.LastScoreComputedAt.IsZero() {
		t.Fatal("recomputed profile must be stamped")
	}
}

func TestTalentPoolJobAwareRanking(t *testing.T) {
	jobID := uuid.New()
	posting := job.Posting{
		ID:                 jobID,
		RequiredSkills:     []string{"go", "postgres"},
		ExperienceRequired: "3+ years backend experience",
	}

	// Weak profile first so the re-rank has to reorder.
	weak := scoredProfile("Weak Match", []string{"php"}, 1, 40)
	strong := scoredProfile("Strong Match", []string{"go", "postgres"}, 5, 90)

	profiles := &poolProfileRepo{profiles: []candidate.Profile{weak, strong}}
	cache := &fakeCompositeCache{}
	uc := NewTalentPoolUsecase(profiles, &fakeJobRepo{posting: posting}, cache, nil)

	items, _, err := uc.ListCandidates(context.Background(), TalentPoolParams{
		Sort:  SortJob,
		JobID: &jobID,
	})
	if err != nil {
		t.Fatalf("ListCandidates returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(items))
	}

	if items[0].Profile.FullName != "Strong Match" {
		t.Fatalf("composite ranking must put the stronger candidate first, got %q", items[0].Profile.FullName)
	}
	for _, it := range items {
		if it.JobMatchScore == nil || it.CompositeScore == nil {
			t.Fatal("job-aware listing must populate match and composite scores")
		}
	}
	if *items[0].CompositeScore <= *items[1].CompositeScore {
		t.Fatalf("expected descending composite order, got %d then %d",
			*items[0].CompositeScore, *items[1].CompositeScore)
	}

	if len(cache.setKeys) != 1 || cache.setKeys[0] != "talent:job:"+jobID.String() {
		t.Fatalf("expected composite cache write under the job key, got %v", cache.setKeys)
	}
}

func TestTalentPoolJobRankingServedFromCache(t *testing.T) {
	jobID := uuid.New()
	posting := job.Posting{ID: jobID, RequiredSkills: []string{"go"}}

	// Fresh computation would rank first ahead of second; the seeded cache
	// says the opposite and must win.
	first := scoredProfile("Fits Job", []string{"go"}, 5, 90)
	second := scoredProfile("Misses Job", []string{"php"}, 1, 40)

	seed := map[string]jobScoreEntry{
		first.UserID.String():  {JobMatch: 10, Composite: 5},
		second.UserID.String(): {JobMatch: 90, Composite: 95},
	}
	raw, err := json.Marshal(seed)
	if err != nil {
		t.Fatalf("marshal seed: %v", err)
	}
	cache := &fakeCompositeCache{
		data: map[string][]byte{"talent:job:" + jobID.String(): raw},
	}

	profiles := &poolProfileRepo{profiles: []candidate.Profile{first, second}}
	uc := NewTalentPoolUsecase(profiles, &fakeJobRepo{posting: posting}, cache, nil)

	items, _, err := uc.ListCandidates(context.Background(), TalentPoolParams{
		Sort:  SortJob,
		JobID: &jobID,
	})
	if err != nil {
		t.Fatalf("ListCandidates returned error: %v", err)
	}

	if len(cache.getKeys) != 1 {
		t.Fatalf("expected one cache read, got %v", cache.getKeys)
	}
	if items[0].Profile.FullName != "Misses Job" || *items[0].CompositeScore != 95 {
		t.Fatalf("cached composites must drive the ranking, got %q with %d",
			items[0].Profile.FullName, *items[0].CompositeScore)
	}
	if len(cache.setKeys) != 0 {
		t.Fatalf("a full cache hit must not rewrite the key, got %v", cache.setKeys)
	}
}

func TestTalentPoolJobSortRequiresJobID(t *testing.T) {
	uc := NewTalentPoolUsecase(&poolProfileRepo{}, &fakeJobRepo{}, nil, nil)

	_, _, err := uc.ListCandidates(context.Background(), TalentPoolParams{Sort: SortJob})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
