package router

import "testing"

func TestAnalyzeContentType(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantType ContentType
	}{
		{
			name:     "python function is coding",
			query:    "Write a Python function to calculate fibonacci",
			wantType: ContentTypeCoding,
		},
		{
			name:     "image generation request",
			query:    "Create an image of a beautiful landscape",
			wantType: ContentTypeImage,
		},
		{
			name:     "factual question is text",
			query:    "What is the capital of France?",
			wantType: ContentTypeText,
		},
		{
			name:     "debugging request is coding",
			query:    "Debug this JavaScript code, it throws an exception",
			wantType: ContentTypeCoding,
		},
		{
			name:     "logo request is image",
			query:    "Design a minimalist logo for my coffee shop",
			wantType: ContentTypeImage,
		},
		{
			name:     "essay request is text",
			query:    "Write an essay about the industrial revolution",
			wantType: ContentTypeText,
		},
		{
			name:     "no signal falls back to text",
			query:    "hmm okay then",
			wantType: ContentTypeText,
		},
		{
			name:     "empty query falls back to text",
			query:    "",
			wantType: ContentTypeText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeContentType(Preprocess(tt.query))

			if got.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", got.Type, tt.wantType)
			}
			if got.Confidence < 0 || got.Confidence > 1 {
				t.Errorf("Confidence = %v, outside [0, 1]", got.Confidence)
			}
		})
	}
}

func TestAnalyzeContentTypeFallbackConfidence(t *testing.T) {
	got := AnalyzeContentType(Preprocess("hmm okay then"))

	if got.Confidence != defaultConfidence {
		t.Errorf("fallback Confidence = %v, want %v", got.Confidence, defaultConfidence)
	}
	if got.Confidence >= 0.8 {
		t.Errorf("fallback Confidence = %v, must stay below 0.8", got.Confidence)
	}
}

func TestAnalyzeContentTypeConfidenceCap(t *testing.T) {
	// Heavy keyword stacking must not push confidence past the cap.
	got := AnalyzeContentType(Preprocess("Debug python code function algorithm"))

	if got.Confidence > 0.95 {
		t.Errorf("Confidence = %v, want at most 0.95", got.Confidence)
	}
}

func TestAnalyzeContentTypePure(t *testing.T) {
	p := Preprocess("Write a Python function to calculate fibonacci")

	first := AnalyzeContentType(p)
	second := AnalyzeContentType(p)

	if first != second {
		t.Errorf("repeated analysis diverged: %+v vs %+v", first, second)
	}
}

func TestRuleCount(t *testing.T) {
	want := len(codingRules) + len(imageRules) + len(textRules)
	if got := RuleCount(); got != want {
		t.Errorf("RuleCount() = %d, want %d", got, want)
	}
}
