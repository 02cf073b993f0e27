package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/yungbote/elderbridge-backend/internal/logger"
)

const youtubeSearchTemplate = "https://www.youtube.com/results?search_query=%s"

type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
}

type SuggestedLink struct {
	Title string `json:"title"`
	Query string `json:"query"`
	URL   string `json:"url"`
}

// StructuredOutputService asks the generation backend for strict-JSON-shaped
// content and validates the reply into typed structures.
type StructuredOutputService interface {
	GenerateQuiz(ctx context.Context, material string, num int) ([]QuizQuestion, error)
	GenerateLinks(ctx context.Context, material string, num int) ([]SuggestedLink, error)
}

type structuredOutputService struct {
	log *logger.Logger
	gen GenerativeClient
}

func NewStructuredOutputService(log *logger.Logger, gen GenerativeClient) StructuredOutputService {
	return &structuredOutputService{log: log.With("service", "StructuredOutputService"), gen: gen}
}

// sliceJSONObject recovers a JSON object from model output that wraps it in
// prose: the substring from the first '{' to the last '}' is taken as the
// candidate, falling back to the raw text when either brace is missing.
//
// Known misfire: a spurious '{' in prose before the real object shifts the
// slice and the parse fails. Callers depend on the current leniency; do not
// tighten the heuristic without new cases proving equivalence.
func sliceJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return raw
	}
	return raw[start : end+1]
}

func (ss *structuredOutputService) GenerateQuiz(ctx context.Context, material string, num int) ([]QuizQuestion, error) {
	instruction := fmt.Sprintf(`From the following material, create %d multiple-choice questions for learning.
Return STRICT JSON only with this schema (no prose):
{"questions":[{"question":"...","options":["A","B","C","D"],"answerIndex":0}]}
Each question must have exactly 4 distinct options and a correct answerIndex 0-3.

Material:

%s`, num, TruncateRunes(material, quizContextLimit))

	raw, err := ss.gen.Generate(ctx, instruction)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Questions []struct {
			Question    string        `json:"question"`
			Options     []interface{} `json:"options"`
			AnswerIndex interface{}   `json:"answerIndex"`
		} `json:"questions"`
	}
	if err := json.Unmarshal([]byte(sliceJSONObject(raw)), &parsed); err != nil {
		ss.log.Error("Quiz JSON parse failed", "error", err, "raw", raw)
		return nil, fmt.Errorf("%w: %v", ErrMalformedGenerationOutput, err)
	}

	var cleaned []QuizQuestion
	for _, q := range parsed.Questions {
		options, ok := stringOptions(q.Options)
		if !ok || len(options) != 4 {
			continue
		}
		answerIndex, ok := integerValue(q.AnswerIndex)
		if !ok {
			continue
		}
		cleaned = append(cleaned, QuizQuestion{
			Question:    q.Question,
			Options:     options,
			AnswerIndex: clampAnswerIndex(answerIndex),
		})
	}
	if len(cleaned) == 0 {
		ss.log.Error("No valid quiz questions parsed", "raw", raw)
		return nil, ErrNoValidItems
	}
	return cleaned, nil
}

func (ss *structuredOutputService) GenerateLinks(ctx context.Context, material string, num int) ([]SuggestedLink, error) {
	instruction := fmt.Sprintf(`From the material below, list %d concise YouTube search topics a learner should watch to understand this content better.
Return STRICT JSON only as: {"topics":[{"title":"...","query":"..."}]}
Keep each query under 8 words; do not include URLs.

Material:

%s`, num, TruncateRunes(material, linkContextLimit))

	raw, err := ss.gen.Generate(ctx, instruction)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Topics []struct {
			Title string `json:"title"`
			Query string `json:"query"`
		} `json:"topics"`
	}
	if err := json.Unmarshal([]byte(sliceJSONObject(raw)), &parsed); err != nil {
		ss.log.Error("Links JSON parse failed", "error", err, "raw", raw)
		return nil, fmt.Errorf("%w: %v", ErrMalformedGenerationOutput, err)
	}

	topics := parsed.Topics
	if len(topics) > num {
		topics = topics[:num]
	}
	var links []SuggestedLink
	for _, t := range topics {
		title := t.Title
		if title == "" {
			title = t.Query
		}
		query := t.Query
		if query == "" {
			query = t.Title
		}
		if query == "" {
			continue
		}
		links = append(links, SuggestedLink{
			Title: title,
			Query: query,
			URL:   fmt.Sprintf(youtubeSearchTemplate, url.QueryEscape(query)),
		})
	}
	if len(links) == 0 {
		ss.log.Error("No valid link topics parsed", "raw", raw)
		return nil, ErrNoValidItems
	}
	return links, nil
}

func stringOptions(raw []interface{}) ([]string, bool) {
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// integerValue accepts JSON numbers only when they carry an integral value.
// A missing or null field counts as 0.
func integerValue(raw interface{}) (int, bool) {
	if raw == nil {
		return 0, true
	}
	f, ok := raw.(float64)
	if !ok {
		return 0, false
	}
	if f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func clampAnswerIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i > 3 {
		return 3
	}
	return i
}
