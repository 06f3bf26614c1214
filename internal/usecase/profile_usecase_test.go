package usecase

import (
	"context"
	"testing"
	"time"

	"talent-screen/internal/domain/candidate"
	"talent-screen/internal/domain/scoring"
	"talent-screen/internal/domain/user"
	"talent-screen/internal/repository"

	"github.com/google/uuid"
)

type userRepoStub struct {
	users map[uuid.UUID]user.User
}

func (s *userRepoStub) Create(ctx context.Context, u user.User) error { return nil }

func (s *userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return user.User{}, user.ErrNotFound
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}

func (s *userRepoStub) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (s *userRepoStub) Update(ctx context.Context, u user.User) error { return nil }

type profileStore struct {
	byUser map[uuid.UUID]candidate.Profile

	upserts int
}

func (s *profileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (candidate.Profile, error) {
	if p, ok := s.byUser[userID]; ok {
		return p, nil
	}
	return candidate.Profile{}, repository.ErrProfileNotFound
}

func (s *profileStore) Upsert(ctx context.Context, p candidate.Profile) error {
	s.upserts++
	s.byUser[p.UserID] = p
	return nil
}

func (s *profileStore) UpdateScore(ctx context.Context, userID uuid.UUID, total int, breakdown map[string]int, version int, at time.Time) error {
	return nil
}

func (s *profileStore) List(ctx context.Context, f repository.TalentPoolFilter) ([]candidate.Profile, int, error) {
	return nil, 0, nil
}

func TestProfileGetCreatesOnFirstAccess(t *testing.T) {
	userID := uuid.New()
	users := &userRepoStub{users: map[uuid.UUID]user.User{
		userID: {ID: userID, Email: "ayu@example.com", FullName: "Ayu Pratama", Role: user.RoleJobSeeker},
	}}
	store := &profileStore{byUser: map[uuid.UUID]candidate.Profile{}}

	uc := NewProfileUsecase(store, users)

	p, err := uc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	if p.FullName != "Ayu Pratama" || p.Email != "ayu@example.com" {
		t.Fatalf("new profile must inherit account identity, got %q / %q", p.FullName, p.Email)
	}
	if p.ProfileScore <= 0 {
		t.Fatalf("new profile must be scored on creation, got %d", p.ProfileScore)
	}
	if store.upserts != 1 {
		t.Fatalf("expected the created profile to be persisted once, got %d writes", store.upserts)
	}

	// Second access must return the stored profile, not create again.
	if _, err := uc.Get(context.Background(), userID); err != nil {
		t.Fatalf("second Get returned error: %v", err)
	}
	if store.upserts != 1 {
		t.Fatalf("existing profile must not be re-created, got %d writes", store.upserts)
	}
}

func TestProfileUpdateRecomputesScore(t *testing.T) {
	userID := uuid.New()
	users := &userRepoStub{users: map[uuid.UUID]user.User{
		userID: {ID: userID, Email: "ayu@example.com", FullName: "Ayu Pratama"},
	}}
	store := &profileStore{byUser: map[uuid.UUID]candidate.Profile{}}

	uc := NewProfileUsecase(store, users)

	years := 4
	p, err := uc.Update(context.Background(), userID, ProfileUpdateInput{
		FullName:        "Ayu Pratama",
		Phone:           "+62 812 0000 0000",
		Location:        "Jakarta",
		Title:           "Backend Engineer",
		Summary:         "Builds reliable services.",
		Skills:          []string{"Go", "go", " Postgres "},
		YearsExperience: &years,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if len(p.Skills) != 2 {
		t.Fatalf("skills must be normalized to a lowercase set, got %v", p.Skills)
	}

	expected := scoring.ComputeProfileScore(profileScoreInput(p))
	if p.ProfileScore != expected.Total {
		t.Fatalf("stored score %d does not match recomputation %d", p.ProfileScore, expected.Total)
	}
	if p.LastScoreComputedAt.IsZero() {
		t.Fatal("score timestamp must be set on update")
	}

	stored := store.byUser[userID]
	if stored.ProfileScore != p.ProfileScore {
		t.Fatalf("persisted score %d differs from returned %d", stored.ProfileScore, p.ProfileScore)
	}
}

func TestProfileUpdateRejectsNegativeYears(t *testing.T) {
	userID := uuid.New()
	users := &userRepoStub{users: map[uuid.UUID]user.User{userID: {ID: userID}}}
	store := &profileStore{byUser: map[uuid.UUID]candidate.Profile{}}

	uc := NewProfileUsecase(store, users)

	neg := -1
	if _, err := uc.Update(context.Background(), userID, ProfileUpdateInput{YearsExperience: &neg}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
