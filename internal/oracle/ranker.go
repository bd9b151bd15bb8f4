package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt_investor.md
var investorPromptTemplate string

//go:embed prompt_founder.md
var founderPromptTemplate string

const defaultMaxLogLen = 200

// LLMRanker turns a Request into one prompt, issues a single generation
// call and validates the response shape. It performs no retries.
type LLMRanker struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewLLMRanker(generator contentGenerator, logger *zap.Logger) *LLMRanker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMRanker{generator: generator, logger: logger, maxLogLen: defaultMaxLogLen}
}

func (r *LLMRanker) Rank(ctx context.Context, req Request) ([]RankedMatch, error) {
	if len(req.Candidates) == 0 {
		return nil, nil
	}

	prompt, err := buildPrompt(req)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("oracle rank request",
		zap.String("direction", string(req.Direction)),
		zap.Int("candidates", len(req.Candidates)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", truncateForLog(prompt, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("oracle rank response",
		zap.String("direction", string(req.Direction)),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", truncateForLog(raw, r.maxLogLen)),
	)

	return parseResponse(raw, req, r.logger)
}

func buildPrompt(req Request) (string, error) {
	template := investorPromptTemplate
	if req.Direction == DirectionFounder {
		template = founderPromptTemplate
	}

	subjectJSON, err := json.MarshalIndent(req.Subject, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal subject payload: %w", err)
	}

	type candidatePayload struct {
		CandidateID string `json:"candidate_id"`
		Name        string `json:"name"`
		Category    string `json:"category,omitempty"`
		Stage       string `json:"stage,omitempty"`
		Summary     string `json:"summary"`
		OwnerName   string `json:"owner_name"`
	}
	payload := make([]candidatePayload, 0, len(req.Candidates))
	for _, c := range req.Candidates {
		payload = append(payload, candidatePayload{
			CandidateID: c.ID.String(),
			Name:        c.Name,
			Category:    c.Category,
			Stage:       c.Stage,
			Summary:     c.Summary,
			OwnerName:   c.OwnerName,
		})
	}
	candidatesJSON, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal candidates payload: %w", err)
	}

	prompt := strings.ReplaceAll(template, "{{SUBJECT_JSON}}", string(subjectJSON))
	prompt = strings.ReplaceAll(prompt, "{{CANDIDATES_JSON}}", string(candidatesJSON))
	prompt = strings.ReplaceAll(prompt, "{{LIMIT}}", fmt.Sprintf("%d", req.Limit))
	return prompt, nil
}

type rankedMatchEntry struct {
	CandidateID      string   `json:"candidate_id"`
	MatchScore       *int     `json:"match_score"`
	MatchReason      string   `json:"match_reason"`
	KeyAlignments    []string `json:"key_alignments"`
	OutreachTemplate string   `json:"outreach_template"`
}

type rankedResponse struct {
	Matches *[]rankedMatchEntry `json:"matches"`
}

// parseResponse validates the declared output shape. A response without a
// matches array, or an entry missing its id or score, fails the whole
// invocation. An entry whose id is not in the candidate pool is dropped:
// the oracle is never allowed to introduce candidates it was not given.
func parseResponse(raw string, req Request, logger *zap.Logger) ([]RankedMatch, error) {
	cleaned := extractJSON(raw)

	var resp rankedResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if resp.Matches == nil {
		return nil, fmt.Errorf("%w: missing matches array", ErrMalformedResponse)
	}

	byID := make(map[uuid.UUID]Candidate, len(req.Candidates))
	for _, c := range req.Candidates {
		byID[c.ID] = c
	}

	limit := req.Limit
	if limit <= 0 {
		limit = len(req.Candidates)
	}

	out := make([]RankedMatch, 0, len(*resp.Matches))
	for _, e := range *resp.Matches {
		if strings.TrimSpace(e.CandidateID) == "" {
			return nil, fmt.Errorf("%w: entry missing candidate_id", ErrMalformedResponse)
		}
		if e.MatchScore == nil {
			return nil, fmt.Errorf("%w: entry missing match_score", ErrMalformedResponse)
		}

		id, err := uuid.Parse(strings.TrimSpace(e.CandidateID))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid candidate_id %q", ErrMalformedResponse, e.CandidateID)
		}

		cand, ok := byID[id]
		if !ok {
			logger.Warn("oracle returned candidate outside the pool, dropping entry",
				zap.String("candidate_id", id.String()),
			)
			continue
		}

		out = append(out, RankedMatch{
			CandidateID:      id,
			OwnerID:          cand.OwnerID,
			Score:            clampScore(*e.MatchScore),
			Reason:           strings.TrimSpace(e.MatchReason),
			KeyAlignments:    capAlignments(e.KeyAlignments),
			OutreachTemplate: strings.TrimSpace(e.OutreachTemplate),
		})
		if len(out) >= limit {
			break
		}
	}

	return out, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(strings.Trim(raw, "`"))
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func capAlignments(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
		if len(out) == 3 {
			break
		}
	}
	return out
}

func truncateForLog(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen]) + "..."
}
