package gemini

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genai"

	"personabot/internal/ai"
)

func TestTranslateError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "deadline exceeded",
			err:  context.DeadlineExceeded,
			want: ai.ErrTimeout,
		},
		{
			name: "wrapped deadline exceeded",
			err:  fmt.Errorf("call failed: %w", context.DeadlineExceeded),
			want: ai.ErrTimeout,
		},
		{
			name: "canceled",
			err:  context.Canceled,
			want: ai.ErrTimeout,
		},
		{
			name: "client error is malformed",
			err:  &genai.APIError{Code: 400, Message: "invalid argument"},
			want: ai.ErrMalformedResponse,
		},
		{
			name: "rate limit is malformed",
			err:  &genai.APIError{Code: 429, Message: "quota exceeded"},
			want: ai.ErrMalformedResponse,
		},
		{
			name: "server error is unavailable",
			err:  &genai.APIError{Code: 503, Message: "overloaded"},
			want: ai.ErrUnavailable,
		},
		{
			name: "transport error is unavailable",
			err:  errors.New("connection refused"),
			want: ai.ErrUnavailable,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := translateError(tc.err)
			if !errors.Is(got, tc.want) {
				t.Errorf("translateError(%v) = %v, want errors.Is(%v)", tc.err, got, tc.want)
			}
		})
	}
}

func TestExtractText(t *testing.T) {
	t.Parallel()

	textResponse := func(text string) *genai.GenerateContentResponse {
		return &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []*genai.Part{{Text: text}}}},
			},
		}
	}

	t.Run("returns reply text", func(t *testing.T) {
		t.Parallel()

		got, err := extractText(textResponse("hello there"))
		if err != nil {
			t.Fatalf("extractText() failed: %v", err)
		}
		if got != "hello there" {
			t.Errorf("extractText() = %q, want %q", got, "hello there")
		}
	})

	t.Run("blocked prompt is malformed", func(t *testing.T) {
		t.Parallel()

		resp := &genai.GenerateContentResponse{
			PromptFeedback: &genai.GenerateContentResponsePromptFeedback{
				BlockReason:        genai.BlockedReasonSafety,
				BlockReasonMessage: "safety",
			},
		}
		_, err := extractText(resp)
		if !errors.Is(err, ai.ErrMalformedResponse) {
			t.Errorf("extractText() = %v, want ErrMalformedResponse", err)
		}
	})

	t.Run("no candidates is malformed", func(t *testing.T) {
		t.Parallel()

		_, err := extractText(&genai.GenerateContentResponse{})
		if !errors.Is(err, ai.ErrMalformedResponse) {
			t.Errorf("extractText() = %v, want ErrMalformedResponse", err)
		}
	})

	t.Run("candidate without content is malformed", func(t *testing.T) {
		t.Parallel()

		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{FinishReason: genai.FinishReasonSafety},
			},
		}
		_, err := extractText(resp)
		if !errors.Is(err, ai.ErrMalformedResponse) {
			t.Errorf("extractText() = %v, want ErrMalformedResponse", err)
		}
	})

	t.Run("empty text is malformed", func(t *testing.T) {
		t.Parallel()

		_, err := extractText(textResponse(""))
		if !errors.Is(err, ai.ErrMalformedResponse) {
			t.Errorf("extractText() = %v, want ErrMalformedResponse", err)
		}
	})
}
