package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
)

type stubGenerator struct {
	prompt   string
	response string
	err      error
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}

func testRequest(n int) Request {
	candidates := make([]Candidate, 0, n)
	for i := 0; i < n; i++ {
		candidates = append(candidates, Candidate{
			ID:        uuid.New(),
			OwnerID:   uuid.New(),
			Name:      fmt.Sprintf("Startup %d", i),
			Category:  "fintech",
			Stage:     "mvp",
			Summary:   "summary",
			OwnerName: fmt.Sprintf("Founder %d", i),
		})
	}
	return Request{
		Direction:  DirectionInvestor,
		Subject:    Subject{Name: "Ava Cole", InvestorType: "angel"},
		Candidates: candidates,
		Limit:      10,
	}
}

func entryJSON(id uuid.UUID, score int) string {
	return fmt.Sprintf(`{"candidate_id":%q,"match_score":%d,"match_reason":"fit","key_alignments":["stage"],"outreach_template":"Hi"}`, id, score)
}

func TestRank_ParsesFencedJSON(t *testing.T) {
	req := testRequest(2)
	body := fmt.Sprintf("```json\n{\"matches\":[%s,%s]}\n```",
		entryJSON(req.Candidates[0].ID, 91),
		entryJSON(req.Candidates[1].ID, 64),
	)

	gen := &stubGenerator{response: body}
	r := NewLLMRanker(gen, nil)

	out, err := r.Rank(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(out))
	}
	if out[0].CandidateID != req.Candidates[0].ID || out[0].Score != 91 {
		t.Fatalf("unexpected first match: %+v", out[0])
	}
	if out[0].OwnerID != req.Candidates[0].OwnerID {
		t.Fatalf("expected owner resolved from the candidate pool")
	}
}

func TestRank_PromptCarriesSubjectAndCandidates(t *testing.T) {
	req := testRequest(1)
	gen := &stubGenerator{response: `{"matches":[]}`}
	r := NewLLMRanker(gen, nil)

	if _, err := r.Rank(context.Background(), req); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(gen.prompt, "Ava Cole") {
		t.Fatalf("expected subject in prompt")
	}
	if !strings.Contains(gen.prompt, req.Candidates[0].ID.String()) {
		t.Fatalf("expected candidate id in prompt")
	}
	if !strings.Contains(gen.prompt, "10") {
		t.Fatalf("expected limit in prompt")
	}
	if strings.Contains(gen.prompt, "{{") {
		t.Fatalf("unexpanded template placeholder left in prompt")
	}
}

func TestRank_EmptyPoolSkipsGeneration(t *testing.T) {
	gen := &stubGenerator{err: errors.New("should not be called")}
	r := NewLLMRanker(gen, nil)

	out, err := r.Rank(context.Background(), Request{Direction: DirectionInvestor})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out != nil {
		t.Fatalf("expected nil result for empty pool")
	}
}

func TestRank_MissingMatchesArrayIsMalformed(t *testing.T) {
	gen := &stubGenerator{response: `{"results":[]}`}
	r := NewLLMRanker(gen, nil)

	_, err := r.Rank(context.Background(), testRequest(1))
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestRank_EntryMissingScoreIsMalformed(t *testing.T) {
	req := testRequest(1)
	body := fmt.Sprintf(`{"matches":[{"candidate_id":%q,"match_reason":"fit"}]}`, req.Candidates[0].ID)
	r := NewLLMRanker(&stubGenerator{response: body}, nil)

	_, err := r.Rank(context.Background(), req)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestRank_UnknownCandidateDropped(t *testing.T) {
	req := testRequest(1)
	body := fmt.Sprintf(`{"matches":[%s,%s]}`,
		entryJSON(uuid.New(), 88),
		entryJSON(req.Candidates[0].ID, 70),
	)
	r := NewLLMRanker(&stubGenerator{response: body}, nil)

	out, err := r.Rank(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 1 || out[0].CandidateID != req.Candidates[0].ID {
		t.Fatalf("expected the out-of-pool entry dropped, got %+v", out)
	}
}

func TestRank_ScoreClampedAndAlignmentsCapped(t *testing.T) {
	req := testRequest(2)
	body := fmt.Sprintf(`{"matches":[
		{"candidate_id":%q,"match_score":140,"key_alignments":["a","b","c","d","e"]},
		{"candidate_id":%q,"match_score":-5}
	]}`, req.Candidates[0].ID, req.Candidates[1].ID)
	r := NewLLMRanker(&stubGenerator{response: body}, nil)

	out, err := r.Rank(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out[0].Score != 100 || out[1].Score != 0 {
		t.Fatalf("expected scores clamped to [0,100], got %d and %d", out[0].Score, out[1].Score)
	}
	if len(out[0].KeyAlignments) != 3 {
		t.Fatalf("expected alignments capped at 3, got %d", len(out[0].KeyAlignments))
	}
}

func TestRank_LimitTruncatesResponse(t *testing.T) {
	req := testRequest(3)
	req.Limit = 2
	entries := make([]string, 0, 3)
	for _, c := range req.Candidates {
		entries = append(entries, entryJSON(c.ID, 50))
	}
	body := fmt.Sprintf(`{"matches":[%s]}`, strings.Join(entries, ","))
	r := NewLLMRanker(&stubGenerator{response: body}, nil)

	out, err := r.Rank(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected limit applied, got %d", len(out))
	}
}

func TestRank_GeneratorErrorPassedThrough(t *testing.T) {
	boom := errors.New("rate limited")
	r := NewLLMRanker(&stubGenerator{err: boom}, nil)

	_, err := r.Rank(context.Background(), testRequest(1))
	if !errors.Is(err, boom) {
		t.Fatalf("expected generator error passed through, got %v", err)
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"matches":[]}`, `{"matches":[]}`},
		{"```json\n{\"matches\":[]}\n```", `{"matches":[]}`},
		{"```\n{\"matches\":[]}\n```", `{"matches":[]}`},
		{"  {\"matches\":[]}  ", `{"matches":[]}`},
	}
	for _, tc := range cases {
		if got := extractJSON(tc.in); got != tc.want {
			t.Fatalf("extractJSON(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
