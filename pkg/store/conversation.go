package store

import "sync"

// RetrievedChunk is a unit of prospectus text returned by the vector store.
// Page is nil when the source chunk carried no page metadata.
type RetrievedChunk struct {
	ID      string  `json:"id"`
	Content string  `json:"content"`
	Page    *int    `json:"page"`
	Score   float32 `json:"score"`
}

// Turn is one completed question/answer exchange.
type Turn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Conversation holds the ordered memory of a chat session. The mutex
// serializes overlapping requests that carry the same session id.
type Conversation struct {
	mu    sync.Mutex
	ID    string `json:"id"`
	Turns []Turn `json:"turns"`
}

func NewConversation(id string) *Conversation {
	return &Conversation{ID: id}
}

func (c *Conversation) Lock()   { c.mu.Lock() }
func (c *Conversation) Unlock() { c.mu.Unlock() }

// History returns a snapshot of the recorded turns. Callers must hold the
// conversation lock for the duration of the turn, so no copy races occur.
func (c *Conversation) History() []Turn {
	return c.Turns
}

// Append records a completed turn.
func (c *Conversation) Append(question, answer string) {
	c.Turns = append(c.Turns, Turn{Question: question, Answer: answer})
}
