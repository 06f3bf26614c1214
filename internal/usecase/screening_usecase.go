package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"talent-screen/internal/analysis"
	"talent-screen/internal/config"
	"talent-screen/internal/domain/application"
	"talent-screen/internal/domain/job"
	"talent-screen/internal/domain/scoring"
	"talent-screen/internal/repository"

	"github.com/google/uuid"
)

// Hardcoded threshold fallbacks, the lowest rung of the precedence chain:
// per-job override > request value > environment default > these.
const (
	defaultShortlistThreshold = 70
	defaultMinATSScore        = 60

	defaultBatchSize  = 20
	maxBatchSize      = 100
	defaultMaxBatches = 50
	previewCap        = 100

	rejectionMissingResume = "Missing resume"
)

type ScreeningParams struct {
	BatchSize  int
	MaxBatches int

	// Request-level threshold overrides; per-job values still win.
	ShortlistThreshold *int
	MinATSScore        *int

	DryRun         bool
	TargetStatuses []application.Status
}

type ScreeningPreview struct {
	ApplicationID uuid.UUID
	CandidateID   uuid.UUID
	Status        application.Status
	Shortlisted   bool
	AIMatchScore  int
	ATSScore      int
}

type ScreeningSummary struct {
	Total       int
	Processed   int
	Shortlisted int
	Rejected    int
	DryRun      bool
	Preview     []ScreeningPreview
}

type ScreeningResult struct {
	ApplicationID uuid.UUID
	Status        application.Status
	Shortlisted   bool
	AIMatchScore  int
	ATSScore      int
	SkillsMatched []string
	MissingSkills []string
	Explanation   string
}

// ScreeningLocker serializes concurrent screening runs per job. The Redis
// implementation degrades to a no-op when the server is unreachable.
type ScreeningLocker interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string)
}

// ShortlistNotifier is the fire-and-forget side channel for shortlist
// decisions. Implementations must never block or surface errors.
type ShortlistNotifier interface {
	NotifyShortlisted(jobID, applicationID, candidateID uuid.UUID, matchScore int)
}

type ScreeningUsecase interface {
	AutoScreen(ctx context.Context, recruiterID, jobID uuid.UUID, params ScreeningParams) (ScreeningSummary, error)
	ScreenApplication(ctx context.Context, recruiterID, applicationID uuid.UUID, params ScreeningParams) (ScreeningResult, error)
}

type Screening struct {
	jobs     repository.JobRepository
	apps     repository.ApplicationRepository
	profiles repository.CandidateRepository
	resumes  repository.ResumeRepository
	provider analysis.Provider
	locker   ScreeningLocker
	notifier ShortlistNotifier
	cfg      config.ScreeningConfig
	logger   *log.Logger
}

func NewScreeningUsecase(
	jobs repository.JobRepository,
	apps repository.ApplicationRepository,
	profiles repository.CandidateRepository,
	resumes repository.ResumeRepository,
	provider analysis.Provider,
	locker ScreeningLocker,
	notifier ShortlistNotifier,
	cfg config.ScreeningConfig,
	logger *log.Logger,
) *Screening {
	return &Screening{
		jobs:     jobs,
		apps:     apps,
		profiles: profiles,
		resumes:  resumes,
		provider: provider,
		locker:   locker,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

func (u *Screening) AutoScreen(ctx context.Context, recruiterID, jobID uuid.UUID, params ScreeningParams) (ScreeningSummary, error) {
	if jobID == uuid.Nil {
		return ScreeningSummary{}, ErrJobNotFound
	}

	batchSize := params.BatchSize
	if batchSize <= 0 {
		batchSize = u.cfg.BatchSize
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if batchSize > maxBatchSize {
		batchSize = maxBatchSize
	}

	maxBatches := params.MaxBatches
	if maxBatches <= 0 {
		maxBatches = u.cfg.MaxBatches
	}
	if maxBatches <= 0 {
		maxBatches = defaultMaxBatches
	}

	statuses := params.TargetStatuses
	if len(statuses) == 0 {
		statuses = []application.Status{application.StatusPending}
	}
	for _, s := range statuses {
		if !s.Valid() {
			return ScreeningSummary{}, ErrInvalidInput
		}
	}

	posting, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ScreeningSummary{}, ErrJobNotFound
		}
		return ScreeningSummary{}, ErrInternal
	}
	if recruiterID != uuid.Nil && posting.RecruiterID != recruiterID {
		return ScreeningSummary{}, ErrForbidden
	}

	// Resolved once per run, never per candidate.
	shortlistAt, minATS := u.resolveThresholds(posting, params)

	if !params.DryRun && u.locker != nil {
		ok, lockErr := u.locker.AcquireLock(ctx, screeningLockKey(jobID), u.cfg.LockTTL)
		if lockErr == nil && !ok {
			return ScreeningSummary{}, ErrScreeningInProgress
		}
		if lockErr == nil {
			// A failed acquire degrades to an unlocked run; releasing then
			// could drop a lock held by a concurrent run.
			defer u.locker.ReleaseLock(ctx, screeningLockKey(jobID))
		}
	}

	total, err := u.apps.CountForScreening(ctx, jobID, statuses)
	if err != nil {
		return ScreeningSummary{}, ErrInternal
	}

	summary := ScreeningSummary{
		Total:   total,
		DryRun:  params.DryRun,
		Preview: make([]ScreeningPreview, 0),
	}

	seen := make(map[uuid.UUID]struct{})
	offset := 0

	inWindow := func(s application.Status) bool {
		for _, target := range statuses {
			if s == target {
				return true
			}
		}
		return false
	}

	for batch := 0; batch < maxBatches; batch++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		batchApps, err := u.apps.ListForScreening(ctx, jobID, statuses, batchSize, offset)
		if err != nil {
			return summary, ErrInternal
		}
		if params.DryRun {
			// Dry runs never mutate status, so the result window has to
			// advance by hand.
			offset += len(batchApps)
		}

		progressed := 0
		remained := 0
		for _, app := range batchApps {
			if _, dup := seen[app.ID]; dup {
				remained++
				continue
			}
			seen[app.ID] = struct{}{}
			progressed++

			dec, ok := u.decide(ctx, posting, app, shortlistAt, minATS)
			if !ok {
				remained++
				continue
			}

			if !params.DryRun {
				if err := u.apps.ApplyDecision(ctx, dec); err != nil {
					if u.logger != nil {
						u.logger.Printf("[Screening] persist failed for application %s, skipping: %v", app.ID, err)
					}
					remained++
					continue
				}
				if inWindow(dec.Status) {
					remained++
				}
				if dec.Shortlisted && u.notifier != nil {
					u.notifier.NotifyShortlisted(posting.ID, app.ID, app.CandidateID, dec.AIMatchScore)
				}
			}

			summary.Processed++
			if dec.Shortlisted {
				summary.Shortlisted++
			} else {
				summary.Rejected++
			}
			if len(summary.Preview) < previewCap {
				summary.Preview = append(summary.Preview, ScreeningPreview{
					ApplicationID: app.ID,
					CandidateID:   app.CandidateID,
					Status:        dec.Status,
					Shortlisted:   dec.Shortlisted,
					AIMatchScore:  dec.AIMatchScore,
					ATSScore:      dec.ATSScore,
				})
			}
		}

		if !params.DryRun {
			// Rows whose decision lands back inside the status window, and
			// rows a failure left untouched, still occupy the front of the
			// next fetch; the window has to move past them.
			offset += remained
		}

		if len(batchApps) < batchSize {
			break
		}
		if progressed == 0 {
			// Every remaining row was seen already; stop instead of
			// spinning on them.
			break
		}
	}

	if u.logger != nil {
		u.logger.Printf("[Screening] job=%s dry_run=%t total=%d processed=%d shortlisted=%d rejected=%d",
			jobID, params.DryRun, summary.Total, summary.Processed, summary.Shortlisted, summary.Rejected)
	}
	return summary, nil
}

func (u *Screening) ScreenApplication(ctx context.Context, recruiterID, applicationID uuid.UUID, params ScreeningParams) (ScreeningResult, error) {
	if applicationID == uuid.Nil {
		return ScreeningResult{}, ErrApplicationNotFound
	}

	app, err := u.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return ScreeningResult{}, ErrApplicationNotFound
		}
		return ScreeningResult{}, ErrInternal
	}

	posting, err := u.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ScreeningResult{}, ErrJobNotFound
		}
		return ScreeningResult{}, ErrInternal
	}
	if recruiterID != uuid.Nil && posting.RecruiterID != recruiterID {
		return ScreeningResult{}, ErrForbidden
	}

	shortlistAt, minATS := u.resolveThresholds(posting, params)

	// An internal fault here leaves the application untouched (still
	// Pending); a pipeline never guesses a negative outcome on its own
	// failure.
	dec, ok := u.decide(ctx, posting, app, shortlistAt, minATS)
	if !ok {
		return ScreeningResult{}, ErrInternal
	}
	if err := u.apps.ApplyDecision(ctx, dec); err != nil {
		return ScreeningResult{}, ErrInternal
	}
	if dec.Shortlisted && u.notifier != nil {
		u.notifier.NotifyShortlisted(posting.ID, app.ID, app.CandidateID, dec.AIMatchScore)
	}

	return ScreeningResult{
		ApplicationID: app.ID,
		Status:        dec.Status,
		Shortlisted:   dec.Shortlisted,
		AIMatchScore:  dec.AIMatchScore,
		ATSScore:      dec.ATSScore,
		SkillsMatched: dec.SkillsMatched,
		MissingSkills: dec.MissingSkills,
		Explanation:   dec.AIExplanation,
	}, nil
}

func (u *Screening) resolveThresholds(posting job.Posting, params ScreeningParams) (int, int) {
	shortlist := defaultShortlistThreshold
	if u.cfg.ShortlistThreshold != nil {
		shortlist = *u.cfg.ShortlistThreshold
	}
	if params.ShortlistThreshold != nil {
		shortlist = *params.ShortlistThreshold
	}
	if posting.AIShortlistThreshold != nil {
		shortlist = *posting.AIShortlistThreshold
	}

	minATS := defaultMinATSScore
	if u.cfg.MinATSScore != nil {
		minATS = *u.cfg.MinATSScore
	}
	if params.MinATSScore != nil {
		minATS = *params.MinATSScore
	}
	if posting.AIMinATSScore != nil {
		minATS = *posting.AIMinATSScore
	}

	return scoring.Clamp(shortlist, 0, 100), scoring.Clamp(minATS, 0, 100)
}

// decide produces the screening outcome for one application. The returned
// bool is false only on a hard provider fault, which callers treat as
// "leave untouched".
func (u *Screening) decide(ctx context.Context, posting job.Posting, app application.Application, shortlistAt, minATS int) (repository.ScreeningDecision, bool) {
	resumeText, resumeSkills := u.resumeFor(ctx, app)

	// The missing-resume check comes before any provider call so outages
	// or quotas are never spent on unanswerable candidates.
	if posting.ResumeRequired && strings.TrimSpace(resumeText) == "" {
		return repository.ScreeningDecision{
			ApplicationID:   app.ID,
			Status:          application.StatusRejected,
			Shortlisted:     false,
			AIMatchScore:    0,
			ATSScore:        0,
			SkillsMatched:   []string{},
			MissingSkills:   scoring.NormalizeSkills(posting.RequiredSkills),
			AIExplanation:   "Application rejected automatically: the job requires a resume and none was provided.",
			RejectionReason: rejectionMissingResume,
		}, true
	}

	verdict, err := u.provider.AnalyzeResume(ctx, resumeText, posting.JobText(), posting.RequiredSkills)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Screening] analysis failed for application %s: %v", app.ID, err)
		}
		return repository.ScreeningDecision{}, false
	}

	candidateSkills := resumeSkills
	if len(candidateSkills) == 0 {
		candidateSkills = u.profileSkills(ctx, app.CandidateID)
	}

	matchScore := scoring.BoostedScore(verdict.MatchScore, candidateSkills, posting.RequiredSkills)
	shortlisted := matchScore >= shortlistAt && verdict.ATSScore >= minATS

	dec := repository.ScreeningDecision{
		ApplicationID: app.ID,
		Shortlisted:   shortlisted,
		AIMatchScore:  matchScore,
		ATSScore:      verdict.ATSScore,
		SkillsMatched: verdict.SkillsMatched,
		MissingSkills: verdict.MissingSkills,
		AIExplanation: buildExplanation(verdict),
	}
	if shortlisted {
		dec.Status = application.StatusShortlisted
		dec.RejectionReason = ""
	} else {
		dec.Status = application.StatusRejected
		dec.RejectionReason = "Below screening thresholds"
	}
	return dec, true
}

func (u *Screening) resumeFor(ctx context.Context, app application.Application) (string, []string) {
	if app.ResumeID == nil {
		return "", nil
	}
	doc, err := u.resumes.GetByID(ctx, *app.ResumeID)
	if err != nil {
		if !errors.Is(err, repository.ErrResumeNotFound) && u.logger != nil {
			u.logger.Printf("[Screening] resume lookup failed for application %s: %v", app.ID, err)
		}
		return "", nil
	}
	return doc.ExtractedText, doc.Skills
}

func (u *Screening) profileSkills(ctx context.Context, candidateID uuid.UUID) []string {
	p, err := u.profiles.GetByUserID(ctx, candidateID)
	if err != nil {
		return nil
	}
	return p.Skills
}

func screeningLockKey(jobID uuid.UUID) string {
	return "screening:lock:" + jobID.String()
}

// buildExplanation concatenates up to 3 strengths, 3 weaknesses and 2
// suggestions into the human-readable note stored with the decision.
func buildExplanation(a analysis.Analysis) string {
	var parts []string
	if s := firstN(a.Strengths, 3); len(s) > 0 {
		parts = append(parts, "Strengths: "+strings.Join(s, "; ")+".")
	}
	if w := firstN(a.Weaknesses, 3); len(w) > 0 {
		parts = append(parts, "Concerns: "+strings.Join(w, "; ")+".")
	}
	if r := firstN(a.Suggestions, 2); len(r) > 0 {
		parts = append(parts, "Recommendations: "+strings.Join(r, "; ")+".")
	}
	return strings.Join(parts, " ")
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
