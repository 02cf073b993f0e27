package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/elderbridge-backend/internal/logger"
)

func quizService(raw string, genErr error) StructuredOutputService {
	gen := &fakeGenClient{
		generateFunc: func(ctx context.Context, prompt string) (string, error) {
			return raw, genErr
		},
	}
	return NewStructuredOutputService(logger.NewNop(), gen)
}

func TestGenerateQuiz_RecoversJSONFromProse(t *testing.T) {
	raw := `Sure! Here is your quiz:
{"questions":[{"question":"What color is the sky?","options":["Red","Blue","Green","Yellow"],"answerIndex":1}]}
Hope this helps!`

	questions, err := quizService(raw, nil).GenerateQuiz(context.Background(), "material", 1)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "What color is the sky?", questions[0].Question)
	assert.Equal(t, 1, questions[0].AnswerIndex)
}

func TestGenerateQuiz_DropsMalformedQuestions(t *testing.T) {
	raw := `{"questions":[
		{"question":"three options","options":["a","b","c"],"answerIndex":0},
		{"question":"non-string option","options":["a","b","c",4],"answerIndex":0},
		{"question":"fractional index","options":["a","b","c","d"],"answerIndex":1.5},
		{"question":"keeper","options":["a","b","c","d"],"answerIndex":2}
	]}`

	questions, err := quizService(raw, nil).GenerateQuiz(context.Background(), "material", 4)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "keeper", questions[0].Question)
}

func TestGenerateQuiz_ClampsAnswerIndex(t *testing.T) {
	raw := `{"questions":[
		{"question":"high","options":["a","b","c","d"],"answerIndex":7},
		{"question":"low","options":["a","b","c","d"],"answerIndex":-5}
	]}`

	questions, err := quizService(raw, nil).GenerateQuiz(context.Background(), "material", 2)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, 3, questions[0].AnswerIndex)
	assert.Equal(t, 0, questions[1].AnswerIndex)
}

func TestGenerateQuiz_MissingAnswerIndexDefaultsToZero(t *testing.T) {
	raw := `{"questions":[
		{"question":"absent","options":["a","b","c","d"]},
		{"question":"null","options":["a","b","c","d"],"answerIndex":null}
	]}`

	questions, err := quizService(raw, nil).GenerateQuiz(context.Background(), "material", 2)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, 0, questions[0].AnswerIndex)
	assert.Equal(t, 0, questions[1].AnswerIndex)
}

func TestGenerateQuiz_NoSurvivorsIsAnError(t *testing.T) {
	raw := `{"questions":[{"question":"bad","options":["a","b"],"answerIndex":0}]}`
	_, err := quizService(raw, nil).GenerateQuiz(context.Background(), "material", 1)
	assert.ErrorIs(t, err, ErrNoValidItems)
}

func TestGenerateQuiz_UnparseableOutput(t *testing.T) {
	_, err := quizService("no json here at all", nil).GenerateQuiz(context.Background(), "material", 1)
	assert.ErrorIs(t, err, ErrMalformedGenerationOutput)
}

func TestGenerateQuiz_PropagatesBackendError(t *testing.T) {
	genErr := errors.New("backend down")
	_, err := quizService("", genErr).GenerateQuiz(context.Background(), "material", 1)
	assert.ErrorIs(t, err, genErr)
}

func TestGenerateLinks_TitleQueryFallbacks(t *testing.T) {
	raw := `{"topics":[
		{"title":"","query":"dementia care basics"},
		{"title":"Sundowning","query":""},
		{"title":"","query":""}
	]}`

	links, err := quizService(raw, nil).GenerateLinks(context.Background(), "material", 5)
	require.NoError(t, err)
	require.Len(t, links, 2)

	assert.Equal(t, "dementia care basics", links[0].Title)
	assert.Equal(t, "https://www.youtube.com/results?search_query=dementia+care+basics", links[0].URL)

	assert.Equal(t, "Sundowning", links[1].Title)
	assert.Equal(t, "Sundowning", links[1].Query)
}

func TestGenerateLinks_TruncatesToRequestedCount(t *testing.T) {
	raw := `{"topics":[
		{"title":"a","query":"a"},
		{"title":"b","query":"b"},
		{"title":"c","query":"c"}
	]}`

	links, err := quizService(raw, nil).GenerateLinks(context.Background(), "material", 2)
	require.NoError(t, err)
	assert.Len(t, links, 2)
}

func TestGenerateLinks_NoValidTopics(t *testing.T) {
	_, err := quizService(`{"topics":[]}`, nil).GenerateLinks(context.Background(), "material", 3)
	assert.ErrorIs(t, err, ErrNoValidItems)
}

func TestSliceJSONObject(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"prose wrapped", `text {"a":1} more`, `{"a":1}`},
		{"no braces", `plain text`, `plain text`},
		{"reversed braces", `} then {`, `} then {`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sliceJSONObject(tc.in))
		})
	}
}
