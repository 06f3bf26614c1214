package analysis

import (
	"context"
	"log"
	"time"
)

// Resilient guards a primary Provider with a timeout and swaps in the
// deterministic fallback when the primary errors or times out. It never
// returns an error, so model outages stay invisible to the pipeline.
type Resilient struct {
	primary  Provider
	fallback Provider
	timeout  time.Duration
	logger   *log.Logger
}

func NewResilient(primary, fallback Provider, timeout time.Duration, logger *log.Logger) *Resilient {
	if fallback == nil {
		fallback = NewFallback()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Resilient{primary: primary, fallback: fallback, timeout: timeout, logger: logger}
}

func (r *Resilient) AnalyzeResume(ctx context.Context, resumeText, jobText string, requiredSkills []string) (Analysis, error) {
	if r.primary == nil {
		return r.fallback.AnalyzeResume(ctx, resumeText, jobText, requiredSkills)
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.primary.AnalyzeResume(callCtx, resumeText, jobText, requiredSkills)
	if err == nil {
		return out, nil
	}

	if r.logger != nil {
		r.logger.Printf("[Analysis] provider failed, using fallback: %v", err)
	}
	return r.fallback.AnalyzeResume(ctx, resumeText, jobText, requiredSkills)
}
