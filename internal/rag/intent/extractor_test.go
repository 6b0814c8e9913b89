package intent

import (
	"context"
	"errors"
	"iter"
	"reflect"
	"strings"
	"testing"

	"github.com/akolanti/ProductChat/internal/domain/chatModel"
)

func TestParseSearchTerms(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "Empty_String",
			raw:  "",
			want: nil,
		},
		{
			name: "Whitespace_Only",
			raw:  "  \n  ",
			want: nil,
		},
		{
			name: "Empty_Array",
			raw:  "[]",
			want: nil,
		},
		{
			name: "Valid_Terms",
			raw:  `["warranty", "return policy"]`,
			want: []string{"warranty", "return policy"},
		},
		{
			name: "Surrounding_Whitespace",
			raw:  "\n  [\"unit conversion\"]  \n",
			want: []string{"unit conversion"},
		},
		{
			name: "Not_JSON",
			raw:  "sure, here are some terms",
			want: nil,
		},
		{
			name: "Valid_JSON_Not_Array",
			raw:  `{"a":1}`,
			want: nil,
		},
		{
			name: "Non_String_Elements_Dropped",
			raw:  `["x", 5, "y", null]`,
			want: []string{"x", "y"},
		},
		{
			name: "All_Elements_Malformed",
			raw:  `[1, 2, 3]`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSearchTerms(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSearchTerms(%q) got %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

// mockProvider satisfies llm.Provider with controllable outputs.
type mockProvider struct {
	OnGenerate func(ctx context.Context, system string, prompt string) (string, error)
}

func (m *mockProvider) Generate(ctx context.Context, system string, prompt string) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, system, prompt)
	}
	return "[]", nil
}

func (m *mockProvider) GenerateStream(ctx context.Context, system string, messages []chatModel.ChatMessage) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {}
}

func TestExtract_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		modelText string
		modelErr  error
		want      []string
	}{
		{
			name:      "Terms_Returned",
			modelText: `["export", "csv"]`,
			want:      []string{"export", "csv"},
		},
		{
			name:      "Chit_Chat_Empty_Array",
			modelText: "[]",
			want:      nil,
		},
		{
			name:     "Upstream_Failure_Degrades",
			modelErr: errors.New("deadline exceeded"),
			want:     nil,
		},
		{
			name:      "Garbage_Output_Degrades",
			modelText: "I think you should search for warranty",
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &mockProvider{
				OnGenerate: func(ctx context.Context, system string, prompt string) (string, error) {
					return tt.modelText, tt.modelErr
				},
			}

			e := NewExtractor(provider)
			got := e.Extract(context.Background(), "Unit Converter", "converts units", "how do I convert miles?")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtract_PromptCarriesProductContext(t *testing.T) {
	var captured string
	provider := &mockProvider{
		OnGenerate: func(ctx context.Context, system string, prompt string) (string, error) {
			captured = prompt
			return "[]", nil
		},
	}

	NewExtractor(provider).Extract(context.Background(), "Pomodoro", "a focus timer", "how long is a session?")

	for _, want := range []string{"Product name: Pomodoro", "Product description: a focus timer", "User message: how long is a session?"} {
		if !strings.Contains(captured, want) {
			t.Errorf("extraction prompt missing %q", want)
		}
	}
}
