package parser_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medclaim/internal/parser"
	"medclaim/internal/port"
	"medclaim/mocks"
)

func parseOutput(model string) *port.ParseOutput {
	return &port.ParseOutput{
		Raw:        json.RawMessage(`{"document_type":"bill"}`),
		ModelUsed:  model,
		PromptUsed: "test prompt",
	}
}

func testInput() port.ParseInput {
	return port.ParseInput{FileBytes: []byte("test"), ContentType: "application/pdf", Prompt: "classify"}
}

func TestFallbackParser_FirstSucceeds(t *testing.T) {
	p1 := new(mocks.MockDocumentParser)
	p2 := new(mocks.MockDocumentParser)

	input := testInput()
	p1.On("Parse", mock.Anything, input).Return(parseOutput("gemini"), nil)

	fp := parser.NewFallbackParser([]port.DocumentParser{p1, p2}, []string{"gemini", "claude"})

	result, err := fp.Parse(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "gemini", result.ModelUsed)
	p2.AssertNotCalled(t, "Parse", mock.Anything, mock.Anything)
}

func TestFallbackParser_FirstFails_SecondSucceeds(t *testing.T) {
	p1 := new(mocks.MockDocumentParser)
	p2 := new(mocks.MockDocumentParser)

	input := testInput()
	p1.On("Parse", mock.Anything, input).Return(nil, errors.New("generic error"))
	p2.On("Parse", mock.Anything, input).Return(parseOutput("claude"), nil)

	fp := parser.NewFallbackParser([]port.DocumentParser{p1, p2}, []string{"gemini", "claude"})

	result, err := fp.Parse(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "claude", result.ModelUsed)
}

func TestFallbackParser_RateLimitedProviderSkippedOnNextCall(t *testing.T) {
	p1 := new(mocks.MockDocumentParser)
	p2 := new(mocks.MockDocumentParser)

	input := testInput()
	p1.On("Parse", mock.Anything, input).Return(nil, parser.NewRateLimitError("gemini", errors.New("429"), 60)).Once()
	p2.On("Parse", mock.Anything, input).Return(parseOutput("claude"), nil)

	fp := parser.NewFallbackParser([]port.DocumentParser{p1, p2}, []string{"gemini", "claude"})

	_, err := fp.Parse(context.Background(), input)
	require.NoError(t, err)

	result, err := fp.Parse(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "claude", result.ModelUsed)
	p1.AssertNumberOfCalls(t, "Parse", 1)
	p2.AssertNumberOfCalls(t, "Parse", 2)
}

func TestFallbackParser_AllRateLimited(t *testing.T) {
	p1 := new(mocks.MockDocumentParser)
	p2 := new(mocks.MockDocumentParser)

	input := testInput()
	p1.On("Parse", mock.Anything, input).Return(nil, parser.NewRateLimitError("gemini", errors.New("429"), 30))
	p2.On("Parse", mock.Anything, input).Return(nil, parser.NewRateLimitError("claude", errors.New("429"), 10))

	fp := parser.NewFallbackParser([]port.DocumentParser{p1, p2}, []string{"gemini", "claude"})

	_, err := fp.Parse(context.Background(), input)

	var rlErr *parser.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "all", rlErr.Provider)
	assert.LessOrEqual(t, rlErr.RetryAfter.Seconds(), 10.0)
}

func TestFallbackParser_AllFail(t *testing.T) {
	p1 := new(mocks.MockDocumentParser)
	p2 := new(mocks.MockDocumentParser)

	input := testInput()
	p1.On("Parse", mock.Anything, input).Return(nil, parser.NewRateLimitError("gemini", errors.New("429"), 30))
	p2.On("Parse", mock.Anything, input).Return(nil, errors.New("boom"))

	fp := parser.NewFallbackParser([]port.DocumentParser{p1, p2}, []string{"gemini", "claude"})

	_, err := fp.Parse(context.Background(), input)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "all parsers failed")
	assert.Contains(t, err.Error(), "boom")
	var rlErr *parser.RateLimitError
	assert.False(t, errors.As(err, &rlErr))
}
