package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"talent-screen/internal/analysis"
	"talent-screen/internal/config"
	"talent-screen/internal/domain/application"
	"talent-screen/internal/domain/candidate"
	"talent-screen/internal/domain/job"
	"talent-screen/internal/domain/resume"
	"talent-screen/internal/repository"

	"github.com/google/uuid"
)

type fakeJobRepo struct {
	posting job.Posting
}

func (f *fakeJobRepo) Create(ctx context.Context, p job.Posting) error { return nil }

func (f *fakeJobRepo) GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	if id != f.posting.ID {
		return job.Posting{}, repository.ErrJobNotFound
	}
	return f.posting, nil
}

func (f *fakeJobRepo) List(ctx context.Context, limit, offset int) ([]job.Posting, error) {
	return []job.Posting{f.posting}, nil
}

type fakeAppRepo struct {
	apps       []application.Application
	failApply  map[uuid.UUID]bool
	listCalls  int
	applyCalls int
}

func (f *fakeAppRepo) Create(ctx context.Context, a application.Application) error { return nil }

func (f *fakeAppRepo) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	for _, a := range f.apps {
		if a.ID == id {
			return a, nil
		}
	}
	return application.Application{}, repository.ErrApplicationNotFound
}

func (f *fakeAppRepo) ListByJob(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]application.Application, error) {
	return nil, nil
}

func (f *fakeAppRepo) ListForScreening(ctx context.Context, jobID uuid.UUID, statuses []application.Status, limit, offset int) ([]application.Application, error) {
	f.listCalls++

	matching := f.matching(jobID, statuses)
	if offset >= len(matching) {
		return nil, nil
	}
	matching = matching[offset:]
	if len(matching) > limit {
		matching = matching[:limit]
	}
	out := make([]application.Application, len(matching))
	copy(out, matching)
	return out, nil
}

func (f *fakeAppRepo) CountForScreening(ctx context.Context, jobID uuid.UUID, statuses []application.Status) (int, error) {
	return len(f.matching(jobID, statuses)), nil
}

func (f *fakeAppRepo) ApplyDecision(ctx context.Context, d repository.ScreeningDecision) error {
	f.applyCalls++
	if f.failApply[d.ApplicationID] {
		return errors.New("write failed")
	}
	for i := range f.apps {
		if f.apps[i].ID == d.ApplicationID {
			f.apps[i].Status = d.Status
			f.apps[i].Shortlisted = d.Shortlisted
			f.apps[i].AIMatchScore = d.AIMatchScore
			f.apps[i].ATSScore = d.ATSScore
			f.apps[i].RejectionReason = d.RejectionReason
			return nil
		}
	}
	return repository.ErrApplicationNotFound
}

func (f *fakeAppRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status, shortlisted bool, rejectionReason string) error {
	return nil
}

func (f *fakeAppRepo) matching(jobID uuid.UUID, statuses []application.Status) []application.Application {
	var out []application.Application
	for _, a := range f.apps {
		if a.JobID != jobID {
			continue
		}
		for _, s := range statuses {
			if a.Status == s {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

func (f *fakeAppRepo) statusCounts() map[application.Status]int {
	out := make(map[application.Status]int)
	for _, a := range f.apps {
		out[a.Status]++
	}
	return out
}

type fakeCandidateRepo struct {
	profiles map[uuid.UUID]candidate.Profile
}

func (f *fakeCandidateRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (candidate.Profile, error) {
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	return candidate.Profile{}, repository.ErrProfileNotFound
}

func (f *fakeCandidateRepo) Upsert(ctx context.Context, p candidate.Profile) error { return nil }

func (f *fakeCandidateRepo) UpdateScore(ctx context.Context, userID uuid.UUID, total int, breakdown map[string]int, version int, at time.Time) error {
	return nil
}

func (f *fakeCandidateRepo) List(ctx context.Context, filter repository.TalentPoolFilter) ([]candidate.Profile, int, error) {
	return nil, 0, nil
}

type fakeResumeRepo struct {
	resumes map[uuid.UUID]resume.Resume
}

func (f *fakeResumeRepo) Create(ctx context.Context, r resume.Resume) error { return nil }

func (f *fakeResumeRepo) GetByID(ctx context.Context, id uuid.UUID) (resume.Resume, error) {
	if r, ok := f.resumes[id]; ok {
		return r, nil
	}
	return resume.Resume{}, repository.ErrResumeNotFound
}

func (f *fakeResumeRepo) GetLatestByCandidate(ctx context.Context, candidateID uuid.UUID) (resume.Resume, error) {
	return resume.Resume{}, repository.ErrResumeNotFound
}

func (f *fakeResumeRepo) UpdateATSScore(ctx context.Context, id uuid.UUID, score int) error {
	return nil
}

type stubProvider struct {
	verdict analysis.Analysis
	err     error
	calls   int
}

func (p *stubProvider) AnalyzeResume(ctx context.Context, resumeText, jobText string, requiredSkills []string) (analysis.Analysis, error) {
	p.calls++
	if p.err != nil {
		return analysis.Analysis{}, p.err
	}
	return p.verdict, nil
}

type fakeLocker struct {
	available    bool
	err          error
	acquireCalls int
	releaseCalls int
}

func (l *fakeLocker) AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	l.acquireCalls++
	if l.err != nil {
		return false, l.err
	}
	return l.available, nil
}

func (l *fakeLocker) ReleaseLock(ctx context.Context, key string) {
	l.releaseCalls++
}

type fakeNotifier struct {
	events int
}

func (n *fakeNotifier) NotifyShortlisted(jobID, applicationID, candidateID uuid.UUID, matchScore int) {
	n.events++
}

type screenFixture struct {
	jobs     *fakeJobRepo
	apps     *fakeAppRepo
	profiles *fakeCandidateRepo
	resumes  *fakeResumeRepo
	provider *stubProvider
	locker   *fakeLocker
	notifier *fakeNotifier
	uc       *Screening
}

func newScreenFixture(posting job.Posting, apps []application.Application, verdict analysis.Analysis, cfg config.ScreeningConfig) *screenFixture {
	f := &screenFixture{
		jobs:     &fakeJobRepo{posting: posting},
		apps:     &fakeAppRepo{apps: apps, failApply: map[uuid.UUID]bool{}},
		profiles: &fakeCandidateRepo{profiles: map[uuid.UUID]candidate.Profile{}},
		resumes:  &fakeResumeRepo{resumes: map[uuid.UUID]resume.Resume{}},
		provider: &stubProvider{verdict: verdict},
		locker:   &fakeLocker{available: true},
		notifier: &fakeNotifier{},
	}
	f.uc = NewScreeningUsecase(f.jobs, f.apps, f.profiles, f.resumes, f.provider, f.locker, f.notifier, cfg, nil)
	return f
}

func pendingApps(jobID uuid.UUID, n int) []application.Application {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	out := make([]application.Application, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, application.Application{
			ID:          uuid.New(),
			JobID:       jobID,
			CandidateID: uuid.New(),
			Status:      application.StatusPending,
			AppliedAt:   base.Add(time.Duration(i) * time.Minute),
		})
	}
	return out
}

func intPtr(v int) *int { return &v }

func TestAutoScreenThresholdPrecedenceJobWins(t *testing.T) {
	jobID := uuid.New()
	posting := job.Posting{ID: jobID, AIShortlistThreshold: intPtr(80)}

	fx := newScreenFixture(posting, pendingApps(jobID, 1),
		analysis.Analysis{MatchScore: 75, ATSScore: 90},
		config.ScreeningConfig{ShortlistThreshold: intPtr(70)},
	)

	summary, err := fx.uc.AutoScreen(context.Background(), uuid.Nil, jobID, ScreeningParams{
		ShortlistThreshold: intPtr(60),
	})
	if err != nil {
		t.Fatalf("AutoScreen returned error: %v", err)
	}

	// 75 passes the request (60) and env (70) thresholds but not the job
	// override (80), which must take precedence.
	if summary.Shortlisted != 0 || summary.Rejected != 1 {
		t.Fatalf("expected 0 shortlisted / 1 rejected, got %d / %d", summary.Shortlisted, summary.Rejected)
	}
}

func TestAutoScreenConjunctiveGate(t *testing.T) {
	jobID := uuid.New()
	posting := job.Posting{ID: jobID}

	fx := newScreenFixture(posting, pendingApps(jobID, 1),
		analysis.Analysis{MatchScore: 95, ATSScore: 10},
		config.ScreeningConfig{},
	)

	summary, err := fx.uc.AutoScreen(context.Background(), uuid.Nil, jobID, ScreeningParams{})
	if err != nil {
		t.Fatalf("AutoScreen returned error: %v", err)
	}

	if summary.Shortlisted != 0 {
		t.Fatalf("high match with failing ATS must not shortlist, got %d shortlisted", summary.Shortlisted)
	}
	if summary.Rejected != 1 {
		t.Fatalf("expected 1 rejected, got %d", summary.Rejected)
	}
}

func TestAutoScreenBatchTermination(t *testing.T) {
	jobID := uuid.New()
	posting := job.Posting{ID: jobID}

	fx := newScreenFixture(posting, pendingApps(jobID, 25),
		analysis.Analysis{MatchScore: 90, ATSScore: 90},
		config.ScreeningConfig{},
	)

	summary, err := fx.uc.AutoScreen(context.Background(), uuid.Nil, jobID, ScreeningParams{
		BatchSize:  10,
		MaxBatches: 100,
	})
	if err != nil {
		t.Fatalf("AutoScreen returned error: %v", err)
	}

	if summary.Processed != 25 {
		t.Fatalf("expected all 25 applications processed, got %d", summary.Processed)
	}
	if fx.apps.listCalls != 3 {
		t.Fatalf("expected exactly 3 batch fetches, got %d", fx.apps.listCalls)
	}
}

func TestAutoScreenRescreenAdvancesPastUnmovedRows(t *testing.T) {
	jobID := uuid.New()
	posting := job.Posting{ID: jobID}

	apps := pendingApps(jobID, 25)
	for i := range apps {
		apps[i].Status = application.StatusRejected
	}

	fx := newScreenFixture(posting, apps,
		analysis.Analysis{MatchScore: 40, ATSScore: 40},
		config.ScreeningConfig{},
	)

	summary, err := fx.uc.AutoScreen(context.Background(), uuid.Nil, jobID, ScreeningParams{
		BatchSize:      10,
		MaxBatches:     100,
		TargetStatuses: []application.Status{application.StatusRejected},
	})
	if err != nil {
		t.Fatalf("AutoScreen returned error: %v", err)
	}

	// Every decision lands back in Rejected, inside the target window, so
	// the fetch offset must move past those rows instead of refetching the
	// same first batch forever.
	if summary.Processed != 25 {
		t.Fatalf("expected all 25 applications re-screened, got %d", summary.Processed)
	}
	if fx.apps.listCalls != 3 {
		t.Fatalf("expected exactly 3 batch fetches, got %d", fx.apps.listCalls)
	}
}

func TestAutoScreenDryRunDoesNotMutate(t *testing.T) {
	jobID := uuid.New()
	posting := job.Posting{ID: jobID}

	fx := newScreenFixture(posting, pendingApps(jobID, 5),
		analysis.Analysis{MatchScore: 90, ATSScore: 90},
		config.ScreeningConfig{},
	)

	summary, err := fx.uc.AutoScreen(context.Background(), uuid.Nil, jobID, ScreeningParams{DryRun: true})
	if err != nil {
		t.Fatalf("AutoScreen returned error: %v", err)
	}

	if summary.Total != 5 || summary.Processed != 5 || summary.Shortlisted != 5 {
		t.Fatalf("dry run must report real counts, got total=%d processed=%d shortlisted=%d",
			summary.Total, summary.Processed, summary.Shortlisted)
	}
	if !summary.DryRun {
		t.Fatal("summary must be flagged as dry run")
	}
	if fx.apps.applyCalls != 0 {
		t.Fatalf("dry run must not persist decisions, got %d writes", fx.apps.applyCalls)
	}
	if fx.notifier.events != 0 {
		t.Fatalf("dry run must not emit notifications, got %d", fx.notifier.events)
	}
	if got := fx.apps.statusCounts()[application.StatusPending]; got != 5 {
		t.Fatalf("dry run must leave all applications pending, got %d pending", got)
	}
	if fx.locker.acquireCalls != 0 {
		t.Fatal("dry run must not take the screening lock")
	}
	if len(summary.Preview) != 5 {
		t.Fatalf("expected 5 preview entries, got %d", len(summary.Preview))
	}
}

func TestAutoScreenMissingResumeShortCircuit(t *testing.T) {
	jobID := uuid.New()
	posting := job.Posting{ID: jobID, ResumeRequired: true, RequiredSkills: []string{"Go"}}

	fx := newScreenFixture(posting, pendingApps(jobID, 1),
		analysis.Analysis{MatchScore: 100, ATSScore: 100},
		config.ScreeningConfig{},
	)

	summary, err := fx.uc.AutoScreen(context.Background(), uuid.Nil, jobID, ScreeningParams{})
	if err != nil {
		t.Fatalf("AutoScreen returned error: %v", err)
	}

	if fx.provider.calls != 0 {
		t.Fatalf("provider must not be invoked for resume-less candidates, got %d calls", fx.provider.calls)
	}
	if summary.Rejected != 1 {
		t.Fatalf("expected 1 rejection, got %d", summary.Rejected)
	}
	if fx.apps.apps[0].RejectionReason != "Missing resume" {
		t.Fatalf("unexpected rejection reason %q", fx.apps.apps[0].RejectionReason)
	}
	if fx.apps.apps[0].AIMatchScore != 0 || fx.apps.apps[0].ATSScore != 0 {
		t.Fatalf("missing-resume rejection must carry zero scores, got %d/%d",
			fx.apps.apps[0].AIMatchScore, fx.apps.apps[0].ATSScore)
	}
}

func TestAutoScreenIdempotentRerun(t *testing.T) {
	jobID := uuid.New()
	posting := job.Posting{ID: jobID}

	fx := newScreenFixture(posting, pendingApps(jobID, 4),
		analysis.Analysis{MatchScore: 90, ATSScore: 90},
		config.ScreeningConfig{},
	)

	first, err := fx.uc.AutoScreen(context.Background(), uuid.Nil, jobID, ScreeningParams{})
	if err != nil {
		t.Fatalf("first run returned error: %v", err)
	}
	if first.Processed != 4 {
		t.Fatalf("first run should process 4, got %d", first.Processed)
	}

	second, err := fx.uc.AutoScreen(context.Background(), uuid.Nil, jobID, ScreeningParams{})
	if err != nil {
		t.Fatalf("second run returned error: %v", err)
	}
	if second.Total != 0 || second.Processed != 0 {
		t.Fatalf("rerun must find nothing pending, got total=%d processed=%d", second.Total, second.Processed)
	}
}

func TestAutoScreenWriteFailureSkipsCandidate(t *testing.T) {
	jobID := uuid.New()
	posting := job.Posting{ID: jobID}
	apps := pendingApps(jobID, 3)

	fx := newScreenFixture(posting, apps,
		analysis.Analysis{MatchScore: 90, ATSScore: 90},
		config.ScreeningConfig{},
	)
	fx.apps.failApply[apps[1].ID] = true

	summary, err := fx.uc.AutoScreen(context.Background(), uuid.Nil, jobID, ScreeningParams{})
	if err != nil {
		t.Fatalf("AutoScreen returned error: %v", err)
	}

	if summary.Processed != 2 {
		t.Fatalf("failed write must not count as processed, got %d", summary.Processed)
	}
	if fx.notifier.events != 2 {
		t.Fatalf("expected 2 shortlist notifications, got %d", fx.notifier.events)
	}
}

func TestAutoScreenLockBusy(t *testing.T) {
	jobID := uuid.New()
	posting := job.Posting{ID: jobID}

	fx := newScreenFixture(posting, pendingApps(jobID, 1),
		analysis.Analysis{MatchScore: 90, ATSScore: 90},
		config.ScreeningConfig{},
	)
	fx.locker.available = false

	_, err := fx.uc.AutoScreen(context.Background(), uuid.Nil, jobID, ScreeningParams{})
	if !errors.Is(err, ErrScreeningInProgress) {
		t.Fatalf("expected ErrScreeningInProgress, got %v", err)
	}
}

func TestAutoScreenLockErrorProceedsWithoutRelease(t *testing.T) {
	jobID := uuid.New()
	posting := job.Posting{ID: jobID}

	fx := newScreenFixture(posting, pendingApps(jobID, 2),
		analysis.Analysis{MatchScore: 90, ATSScore: 90},
		config.ScreeningConfig{},
	)
	fx.locker.err = errors.New("redis timeout")

	summary, err := fx.uc.AutoScreen(context.Background(), uuid.Nil, jobID, ScreeningParams{})
	if err != nil {
		t.Fatalf("a lock error must degrade to an unlocked run, got %v", err)
	}
	if summary.Processed != 2 {
		t.Fatalf("expected 2 processed, got %d", summary.Processed)
	}
	if fx.locker.releaseCalls != 0 {
		t.Fatalf("a lock that was never held must not be released, got %d releases", fx.locker.releaseCalls)
	}
}

func TestAutoScreenForbiddenForOtherRecruiter(t *testing.T) {
	jobID := uuid.New()
	posting := job.Posting{ID: jobID, RecruiterID: uuid.New()}

	fx := newScreenFixture(posting, nil, analysis.Analysis{}, config.ScreeningConfig{})

	_, err := fx.uc.AutoScreen(context.Background(), uuid.New(), jobID, ScreeningParams{})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAutoScreenShortlistBoostFromResumeSkills(t *testing.T) {
	jobID := uuid.New()
	resumeID := uuid.New()
	posting := job.Posting{ID: jobID, RequiredSkills: []string{"Go", "Postgres", "Redis"}}

	apps := pendingApps(jobID, 1)
	apps[0].ResumeID = &resumeID

	fx := newScreenFixture(posting, apps,
		analysis.Analysis{MatchScore: 68, ATSScore: 80},
		config.ScreeningConfig{},
	)
	fx.resumes.resumes[resumeID] = resume.Resume{
		ID:            resumeID,
		CandidateID:   apps[0].CandidateID,
		ExtractedText: "Seasoned Go engineer with Postgres experience.",
		Skills:        []string{"go", "postgres"},
	}

	summary, err := fx.uc.AutoScreen(context.Background(), uuid.Nil, jobID, ScreeningParams{})
	if err != nil {
		t.Fatalf("AutoScreen returned error: %v", err)
	}

	// 68 raw + 2 overlap boost = 70, exactly at the default threshold.
	if summary.Shortlisted != 1 {
		t.Fatalf("expected boost to push candidate over the threshold, got %d shortlisted", summary.Shortlisted)
	}
	if fx.apps.apps[0].AIMatchScore != 70 {
		t.Fatalf("expected boosted score 70, got %d", fx.apps.apps[0].AIMatchScore)
	}
}

func TestScreenApplicationProviderFaultLeavesPending(t *testing.T) {
	jobID := uuid.New()
	posting := job.Posting{ID: jobID}
	apps := pendingApps(jobID, 1)

	fx := newScreenFixture(posting, apps, analysis.Analysis{}, config.ScreeningConfig{})
	fx.provider.err = errors.New("provider down")

	_, err := fx.uc.ScreenApplication(context.Background(), uuid.Nil, apps[0].ID, ScreeningParams{})
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if fx.apps.apps[0].Status != application.StatusPending {
		t.Fatalf("failed screening must leave the application pending, got %q", fx.apps.apps[0].Status)
	}
	if fx.apps.applyCalls != 0 {
		t.Fatal("failed screening must not persist any decision")
	}
}

func TestScreenApplicationPersistsDecision(t *testing.T) {
	jobID := uuid.New()
	posting := job.Posting{ID: jobID}
	apps := pendingApps(jobID, 1)

	fx := newScreenFixture(posting, apps,
		analysis.Analysis{MatchScore: 92, ATSScore: 85, SkillsMatched: []string{"go"}},
		config.ScreeningConfig{},
	)

	res, err := fx.uc.ScreenApplication(context.Background(), uuid.Nil, apps[0].ID, ScreeningParams{})
	if err != nil {
		t.Fatalf("ScreenApplication returned error: %v", err)
	}

	if !res.Shortlisted || res.Status != application.StatusShortlisted {
		t.Fatalf("expected shortlist, got status=%q shortlisted=%t", res.Status, res.Shortlisted)
	}
	if fx.apps.apps[0].Status != application.StatusShortlisted {
		t.Fatalf("decision not persisted, status is %q", fx.apps.apps[0].Status)
	}
	if fx.notifier.events != 1 {
		t.Fatalf("expected 1 shortlist notification, got %d", fx.notifier.events)
	}
}
