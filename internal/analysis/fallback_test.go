package analysis

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestFallback_Deterministic(t *testing.T) {
	f := NewFallback()
	first, err := f.AnalyzeResume(context.Background(), "Go developer with PostgreSQL", "Backend role", []string{"Go", "PostgreSQL", "Kafka"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, _ := f.AnalyzeResume(context.Background(), "Go developer with PostgreSQL", "Backend role", []string{"Go", "PostgreSQL", "Kafka"})
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("fallback not deterministic: %+v vs %+v", first, second)
	}
}

func TestFallback_KeywordFlags(t *testing.T) {
	f := NewFallback()
	out, _ := f.AnalyzeResume(context.Background(), "Seasoned Go developer", "role", []string{"Go", "Kafka"})
	if len(out.SkillsMatched) != 1 || out.SkillsMatched[0] != "go" {
		t.Fatalf("unexpected matched skills: %v", out.SkillsMatched)
	}
	if len(out.MissingSkills) != 1 || out.MissingSkills[0] != "kafka" {
		t.Fatalf("unexpected missing skills: %v", out.MissingSkills)
	}
}

func TestFallback_Bounds(t *testing.T) {
	f := NewFallback()
	inputs := [][2]string{{"", ""}, {"everything", "nothing"}, {"go go go", "go"}}
	for _, in := range inputs {
		out, _ := f.AnalyzeResume(context.Background(), in[0], in[1], []string{"go"})
		if out.MatchScore < 0 || out.MatchScore > 100 || out.ATSScore < 0 || out.ATSScore > 100 {
			t.Fatalf("score out of bounds: %+v", out)
		}
	}
}

type failingProvider struct{ calls int }

func (p *failingProvider) AnalyzeResume(context.Context, string, string, []string) (Analysis, error) {
	p.calls++
	return Analysis{}, errors.New("model unavailable")
}

func TestResilient_FallsBackOnError(t *testing.T) {
	primary := &failingProvider{}
	r := NewResilient(primary, NewFallback(), time.Second, nil)

	out, err := r.AnalyzeResume(context.Background(), "golang resume", "job", []string{"golang"})
	if err != nil {
		t.Fatalf("resilient provider surfaced an error: %v", err)
	}
	if primary.calls != 1 {
		t.Fatalf("expected 1 primary call, got %d", primary.calls)
	}
	if out.MatchScore == 0 && out.ATSScore == 0 {
		t.Fatalf("expected fallback scores, got zeroes")
	}
}

func TestResilient_NilPrimaryUsesFallback(t *testing.T) {
	r := NewResilient(nil, NewFallback(), time.Second, nil)
	out, err := r.AnalyzeResume(context.Background(), "text", "job", []string{"go"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.MatchScore < 0 || out.MatchScore > 100 {
		t.Fatalf("score out of bounds: %d", out.MatchScore)
	}
}
