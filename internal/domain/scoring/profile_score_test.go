package scoring

import (
	"reflect"
	"testing"
)

func fullProfile() ProfileInput {
	years := 5
	return ProfileInput{
		FullName:        "Ada Lovelace",
		Email:           "ada@example.com",
		Phone:           "+62 811 000 111",
		Location:        "Jakarta",
		Title:           "Backend Engineer",
		Summary:         "Builds reliable services.",
		ExperienceLevel: "senior",
		Industry:        "fintech",
		Degree:          "BSc",
		FieldOfStudy:    "Computer Science",
		Institution:     "ITB",
		PortfolioURL:    "https://ada.dev",
		LinkedInURL:     "https://linkedin.com/in/ada",
		GitHubURL:       "https://github.com/ada",
		Skills:          []string{"go", "postgresql"},
		YearsExperience: &years,
	}
}

func TestComputeProfileScore_FullProfileIs100(t *testing.T) {
	got := ComputeProfileScore(fullProfile())
	if got.Total != 100 {
		t.Fatalf("expected 100, got %d", got.Total)
	}
}

func TestComputeProfileScore_EmptyProfileIsZero(t *testing.T) {
	got := ComputeProfileScore(ProfileInput{})
	if got.Total != 0 {
		t.Fatalf("expected 0, got %d", got.Total)
	}
}

func TestComputeProfileScore_Deterministic(t *testing.T) {
	in := fullProfile()
	first := ComputeProfileScore(in)
	second := ComputeProfileScore(in)
	if first.Total != second.Total {
		t.Fatalf("totals differ: %d vs %d", first.Total, second.Total)
	}
	if !reflect.DeepEqual(first.Breakdown, second.Breakdown) {
		t.Fatalf("breakdowns differ: %v vs %v", first.Breakdown, second.Breakdown)
	}
}

func TestComputeProfileScore_BreakdownSumsToTotal(t *testing.T) {
	inputs := []ProfileInput{
		{},
		fullProfile(),
		{FullName: "X", Skills: []string{"go"}},
		{Email: "a@b.c", Summary: "hi", Location: "Bandung"},
	}
	for _, in := range inputs {
		got := ComputeProfileScore(in)
		sum := 0
		for _, v := range got.Breakdown {
			sum += v
		}
		if sum != got.Total {
			t.Fatalf("breakdown sum %d != total %d for %+v", sum, got.Total, in)
		}
	}
}

func TestComputeProfileScore_PartialProfileExactPoints(t *testing.T) {
	got := ComputeProfileScore(ProfileInput{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Skills:   []string{"go"},
	})

	// 10 name + 10 email + 10 skills out of the fixed 100-point budget.
	if got.Total != 30 {
		t.Fatalf("expected 30, got %d", got.Total)
	}
	sum := 0
	for _, v := range got.Breakdown {
		sum += v
	}
	if sum != got.Total {
		t.Fatalf("breakdown sum %d != total %d", sum, got.Total)
	}
}

func TestComputeProfileScore_WhitespaceEarnsNothing(t *testing.T) {
	in := ProfileInput{FullName: "   ", Email: "\t", Summary: " \n "}
	if got := ComputeProfileScore(in); got.Total != 0 {
		t.Fatalf("whitespace-only fields scored %d", got.Total)
	}
}

func TestComputeProfileScore_EmptySkillsNoPenalty(t *testing.T) {
	base := ProfileInput{FullName: "A", Email: "a@b.c"}
	withEmpty := base
	withEmpty.Skills = []string{"", "  "}

	if ComputeProfileScore(base).Total != ComputeProfileScore(withEmpty).Total {
		t.Fatalf("blank skill entries changed the score")
	}
}

func TestComputeProfileScore_ZeroYearsIsValid(t *testing.T) {
	zero := 0
	without := ComputeProfileScore(ProfileInput{FullName: "A"})
	with := ComputeProfileScore(ProfileInput{FullName: "A", YearsExperience: &zero})
	if with.Total <= without.Total {
		t.Fatalf("zero years should earn the experience points: %d <= %d", with.Total, without.Total)
	}
}

func TestComputeProfileScore_Bounds(t *testing.T) {
	inputs := []ProfileInput{{}, fullProfile(), {Skills: []string{"a", "b", "c", "d"}}}
	for _, in := range inputs {
		got := ComputeProfileScore(in)
		if got.Total < 0 || got.Total > 100 {
			t.Fatalf("score out of bounds: %d", got.Total)
		}
	}
}
