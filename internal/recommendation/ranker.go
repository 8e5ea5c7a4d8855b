package recommendation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"CareerGo/internal/config"
)

// Ranker orders the candidate courses for a student profile. The concrete
// implementation delegates to an external text-generation service.
type Ranker interface {
	Rank(ctx context.Context, preferences PreferenceRequest, candidates []*Candidate) ([]RankedPair, error)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type OpenAIRanker struct {
	cfg *config.AppConfig
}

func NewOpenAIRanker(cfg *config.AppConfig) *OpenAIRanker {
	return &OpenAIRanker{cfg: cfg}
}

func (r *OpenAIRanker) Rank(ctx context.Context, preferences PreferenceRequest, candidates []*Candidate) ([]RankedPair, error) {
	prompt, err := buildPrompt(preferences, candidates)
	if err != nil {
		return nil, err
	}

	payload := chatCompletionRequest{
		Model: r.cfg.OpenAIModel,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a college counsellor. Reply with only a JSON array, no prose."},
			{Role: "user", Content: prompt},
		},
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal completion payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", r.cfg.OpenAIAPIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.cfg.OpenAIAPIKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call ranking service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errorResponse map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorResponse)
		return nil, fmt.Errorf("ranking service returned status %d, error: %v", resp.StatusCode, errorResponse)
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("ranking service returned no choices")
	}

	return parseRanking(completion.Choices[0].Message.Content)
}

func buildPrompt(preferences PreferenceRequest, candidates []*Candidate) (string, error) {
	candidateJSON, err := json.Marshal(candidates)
	if err != nil {
		return "", fmt.Errorf("failed to marshal candidates: %w", err)
	}
	scoreJSON, err := json.Marshal(preferences.ExamScores)
	if err != nil {
		return "", fmt.Errorf("failed to marshal exam scores: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "A student is looking for a %s programme in the %s category with a budget of %.0f.\n",
		preferences.EducationLevel, preferences.DegreeCategory, preferences.Budget)
	if preferences.HostelRequired {
		sb.WriteString("The student needs hostel accommodation.\n")
	}
	fmt.Fprintf(&sb, "Exam performance: %s\n", scoreJSON)
	fmt.Fprintf(&sb, "Candidate courses: %s\n", candidateJSON)
	sb.WriteString(`Rank the best matches, most suitable first, and respond with a JSON array of objects shaped {"institutionId": "...", "courseId": "..."}.`)
	return sb.String(), nil
}

// parseRanking extracts the JSON array out of the model's reply. Replies
// wrapped in code fences or surrounded by prose are tolerated as long as a
// single array is present.
func parseRanking(content string) ([]RankedPair, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("ranking response contains no JSON array")
	}

	var pairs []RankedPair
	if err := json.Unmarshal([]byte(content[start:end+1]), &pairs); err != nil {
		return nil, fmt.Errorf("failed to parse ranking response: %w", err)
	}
	for i, pair := range pairs {
		if pair.InstitutionID == "" || pair.CourseID == "" {
			return nil, fmt.Errorf("ranking entry %d is missing institutionId or courseId", i)
		}
	}
	return pairs, nil
}
