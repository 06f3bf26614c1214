package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/vertexai/genai"

	"talent-screen/internal/domain/scoring"
)

// Gemini is the Vertex AI backed Provider.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *log.Logger
}

func NewGemini(ctx context.Context, projectID, location, modelName string, logger *log.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	// Low temperature keeps scores stable across retries.
	model.SetTemperature(0.2)
	model.SetTopP(0.8)
	model.SetMaxOutputTokens(4096)

	return &Gemini{client: client, model: model, logger: logger}, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

type geminiAnalysis struct {
	MatchScore    int      `json:"match_score"`
	ATSScore      int      `json:"ats_score"`
	SkillsMatched []string `json:"skills_matched"`
	MissingSkills []string `json:"missing_skills"`
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Suggestions   []string `json:"suggestions"`
}

func (g *Gemini) AnalyzeResume(ctx context.Context, resumeText, jobText string, requiredSkills []string) (Analysis, error) {
	prompt := buildAnalysisPrompt(resumeText, jobText, requiredSkills)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return Analysis{}, fmt.Errorf("failed to generate analysis: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return Analysis{}, fmt.Errorf("empty response from model")
	}

	text := cleanJSON(extractText(resp))

	var out geminiAnalysis
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		if g.logger != nil {
			g.logger.Printf("[Analysis] unparseable model response: %.200s", text)
		}
		return Analysis{}, fmt.Errorf("failed to parse analysis JSON: %w", err)
	}

	return Analysis{
		MatchScore:    scoring.Clamp(out.MatchScore, 0, 100),
		ATSScore:      scoring.Clamp(out.ATSScore, 0, 100),
		SkillsMatched: scoring.NormalizeSkills(out.SkillsMatched),
		MissingSkills: scoring.NormalizeSkills(out.MissingSkills),
		Strengths:     out.Strengths,
		Weaknesses:    out.Weaknesses,
		Suggestions:   out.Suggestions,
	}, nil
}

func buildAnalysisPrompt(resumeText, jobText string, requiredSkills []string) string {
	var sb strings.Builder

	sb.WriteString("You are an applicant tracking system analyzing a resume against a job posting.\n\n")
	sb.WriteString("## JOB POSTING\n")
	sb.WriteString(jobText)
	sb.WriteString("\n\nRequired skills: ")
	sb.WriteString(strings.Join(requiredSkills, ", "))
	sb.WriteString("\n\n## RESUME\n")
	sb.WriteString(resumeText)
	sb.WriteString("\n\nReturn a JSON object with these fields:\n")
	sb.WriteString("{\n")
	sb.WriteString(`  "match_score": <0-100 overall candidate-to-job fit>,` + "\n")
	sb.WriteString(`  "ats_score": <0-100 resume keyword/formatting compatibility>,` + "\n")
	sb.WriteString(`  "skills_matched": ["required skills evidenced by the resume"],` + "\n")
	sb.WriteString(`  "missing_skills": ["required skills not evidenced"],` + "\n")
	sb.WriteString(`  "strengths": ["up to 5 short strengths"],` + "\n")
	sb.WriteString(`  "weaknesses": ["up to 5 short weaknesses"],` + "\n")
	sb.WriteString(`  "suggestions": ["up to 3 short recommendations"]` + "\n")
	sb.WriteString("}\n\n")
	sb.WriteString("Return ONLY the JSON object, no markdown formatting, no explanation.\n")

	return sb.String()
}

func extractText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String()
}

// cleanJSON strips markdown fences and anything outside the outermost braces.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}
