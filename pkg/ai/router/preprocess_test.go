package router

import (
	"strings"
	"testing"
	"unicode"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		wantTokens    []string
		wantWordCount int
		wantCode      bool
		wantURLs      bool
	}{
		{
			name:          "simple question",
			query:         "What is machine learning?",
			wantTokens:    []string{"what", "machine", "learning"},
			wantWordCount: 4,
		},
		{
			name:          "empty input",
			query:         "",
			wantTokens:    []string{},
			wantWordCount: 0,
		},
		{
			name:          "whitespace only",
			query:         "   \t\n  ",
			wantTokens:    []string{},
			wantWordCount: 0,
		},
		{
			name:          "code block detected",
			query:         "Fix this:\n```go\nfmt.Println(\"hi\")\n```",
			wantWordCount: 5,
			wantCode:      true,
		},
		{
			name:     "url detected",
			query:    "Summarize https://example.com/article please",
			wantURLs: true,
			wantTokens: []string{
				"summarize", "https", "example", "com", "article", "please",
			},
			wantWordCount: 3,
		},
		{
			name:          "punctuation only",
			query:         "!!! ??? ...",
			wantTokens:    []string{},
			wantWordCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Preprocess(tt.query)

			if got.Original != tt.query {
				t.Errorf("Original = %q, want %q", got.Original, tt.query)
			}
			if got.Length != len(tt.query) {
				t.Errorf("Length = %d, want %d", got.Length, len(tt.query))
			}
			if tt.wantTokens != nil {
				if len(got.Tokens) != len(tt.wantTokens) {
					t.Fatalf("Tokens = %v, want %v", got.Tokens, tt.wantTokens)
				}
				for i, tok := range tt.wantTokens {
					if got.Tokens[i] != tok {
						t.Errorf("Tokens[%d] = %q, want %q", i, got.Tokens[i], tok)
					}
				}
			}
			if got.WordCount != tt.wantWordCount {
				t.Errorf("WordCount = %d, want %d", got.WordCount, tt.wantWordCount)
			}
			if got.HasCodeBlocks != tt.wantCode {
				t.Errorf("HasCodeBlocks = %v, want %v", got.HasCodeBlocks, tt.wantCode)
			}
			if got.HasURLs != tt.wantURLs {
				t.Errorf("HasURLs = %v, want %v", got.HasURLs, tt.wantURLs)
			}
		})
	}
}

func TestPreprocessTokenInvariants(t *testing.T) {
	// Tokens must never be short or punctuation-only, whatever the input.
	inputs := []string{
		"a b c is to of",
		"hi!!! ok??? no...",
		"x@y#z$w",
		strings.Repeat("ab ", 50),
		"Write a Python function, please; use recursion!",
	}

	for _, input := range inputs {
		p := Preprocess(input)
		for _, tok := range p.Tokens {
			if len(tok) <= 2 {
				t.Errorf("Preprocess(%q) produced short token %q", input, tok)
			}
			hasLetterOrDigit := false
			for _, r := range tok {
				if unicode.IsLetter(r) || unicode.IsDigit(r) {
					hasLetterOrDigit = true
					break
				}
			}
			if !hasLetterOrDigit {
				t.Errorf("Preprocess(%q) produced punctuation-only token %q", input, tok)
			}
		}
	}
}

func TestPreprocessTechnicalExtraction(t *testing.T) {
	p := Preprocess("Build a REST API returning JSON from a Python backend")

	if len(p.TechnicalTerms) == 0 {
		t.Fatal("expected technical terms, got none")
	}
	found := map[string]bool{}
	for _, term := range p.TechnicalTerms {
		found[term] = true
	}
	for _, want := range []string{"rest", "api", "json", "backend"} {
		if !found[want] {
			t.Errorf("expected technical term %q in %v", want, p.TechnicalTerms)
		}
	}

	if len(p.ProgrammingLanguages) != 1 || p.ProgrammingLanguages[0] != "python" {
		t.Errorf("ProgrammingLanguages = %v, want [python]", p.ProgrammingLanguages)
	}
}

func TestPreprocessDeterministic(t *testing.T) {
	query := "Debug my JavaScript function that calls the API"

	first := Preprocess(query)
	second := Preprocess(query)

	if first.Cleaned != second.Cleaned || first.WordCount != second.WordCount ||
		len(first.Tokens) != len(second.Tokens) {
		t.Errorf("Preprocess is not deterministic: %+v vs %+v", first, second)
	}
}
