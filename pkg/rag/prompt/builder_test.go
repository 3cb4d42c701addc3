package prompt

import (
	"strings"
	"testing"

	"prospectus-rag-be/pkg/store"
)

func intPtr(v int) *int { return &v }

func TestBuilderBuild(t *testing.T) {
	tests := []struct {
		name         string
		chunks       []store.RetrievedChunk
		question     string
		wantContains []string
	}{
		{
			name: "single chunk",
			chunks: []store.RetrievedChunk{
				{ID: "c1", Content: "Admission requires five credits.", Page: intPtr(4)},
			},
			question: "What are the admission requirements?",
			wantContains: []string{
				"Igbinedion University Okada",
				"Admission requires five credits.",
				"What are the admission requirements?",
				RefusalPhrase,
			},
		},
		{
			name: "multiple chunks joined with blank line",
			chunks: []store.RetrievedChunk{
				{ID: "c1", Content: "First chunk."},
				{ID: "c2", Content: "Second chunk."},
			},
			question: "anything",
			wantContains: []string{
				"First chunk.\n\nSecond chunk.",
			},
		},
		{
			name:     "no chunks still renders instructions and question",
			chunks:   nil,
			question: "Who is the chancellor?",
			wantContains: []string{
				"IMPORTANT RULES:",
				"Who is the chancellor?",
			},
		},
		{
			name:     "empty question",
			chunks:   []store.RetrievedChunk{{ID: "c1", Content: "Some context."}},
			question: "",
			wantContains: []string{
				"Some context.",
				RefusalPhrase,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBuilder(tt.chunks, tt.question).Build()
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("Build() missing %q\nprompt:\n%s", want, got)
				}
			}
		})
	}
}

func TestBuilderOrdering(t *testing.T) {
	chunks := []store.RetrievedChunk{{ID: "c1", Content: "CONTEXT-MARKER"}}
	got := NewBuilder(chunks, "QUESTION-MARKER").Build()

	ctxIdx := strings.Index(got, "CONTEXT-MARKER")
	qIdx := strings.Index(got, "QUESTION-MARKER")
	rulesIdx := strings.Index(got, "IMPORTANT RULES:")

	if rulesIdx < 0 || ctxIdx < 0 || qIdx < 0 {
		t.Fatalf("prompt missing a section:\n%s", got)
	}
	if !(rulesIdx < ctxIdx && ctxIdx < qIdx) {
		t.Errorf("sections out of order: rules=%d context=%d question=%d", rulesIdx, ctxIdx, qIdx)
	}
}
