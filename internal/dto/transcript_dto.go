package dto

// ChatTranscriptMessage is the payload published after each completed turn
// and consumed by the transcript trail worker.
type ChatTranscriptMessage struct {
	SessionId   string `json:"session_id"`
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	SourcePages []int  `json:"source_pages"`
}
