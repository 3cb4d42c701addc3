package prompt

import (
	"strings"

	"prospectus-rag-be/pkg/store"
)

// RefusalPhrase is the fixed answer the model must give when the retrieved
// context does not contain the information asked for.
const RefusalPhrase = "i cant find the answer from the prospectus"

// Builder renders the fixed prospectus instruction prompt. It has exactly
// two substitution points: the retrieved context and the user's question.
type Builder struct {
	chunks   []store.RetrievedChunk
	question string
}

func NewBuilder(chunks []store.RetrievedChunk, question string) *Builder {
	return &Builder{
		chunks:   chunks,
		question: question,
	}
}

func (b *Builder) Build() string {
	var prompt strings.Builder

	b.writeInstructions(&prompt)
	b.writeContext(&prompt)
	b.writeQuestion(&prompt)

	return prompt.String()
}

func (b *Builder) writeInstructions(prompt *strings.Builder) {
	prompt.WriteString("You are an expert assistant for Igbinedion University Okada (IUO).\n")
	prompt.WriteString("Use the following pieces of context to answer the question at the end.\n\n")
	prompt.WriteString("IMPORTANT RULES:\n")
	prompt.WriteString("1. Only use information from the context provided.\n")
	prompt.WriteString("2. If you dont know the answer, just say \"" + RefusalPhrase + "\", dont try to make up answers.\n")
	prompt.WriteString("3. Be specific and include relevant details (names, dates, etc) from the context.\n")
	prompt.WriteString("4. If the context mentions page numbers or sections, reference them in your answer.\n")
	prompt.WriteString("5. Be concise but answer thoroughly.\n\n")
}

func (b *Builder) writeContext(prompt *strings.Builder) {
	for i, chunk := range b.chunks {
		if i > 0 {
			prompt.WriteString("\n\n")
		}
		prompt.WriteString(chunk.Content)
	}
	prompt.WriteString("\n\n")
}

func (b *Builder) writeQuestion(prompt *strings.Builder) {
	prompt.WriteString(b.question)
	prompt.WriteString("\n")
}
