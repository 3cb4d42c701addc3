package service

import (
	"context"
	"errors"
	"io"
	"log"
	"reflect"
	"testing"
	"time"

	"prospectus-rag-be/internal/dto"
	"prospectus-rag-be/internal/entity"
	"prospectus-rag-be/internal/repository/memory"
	"prospectus-rag-be/pkg/llm"
	"prospectus-rag-be/pkg/rag/pipeline"
	"prospectus-rag-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestSourcePagesFrom(t *testing.T) {
	tests := []struct {
		name   string
		chunks []store.RetrievedChunk
		want   []int
	}{
		{
			name:   "empty",
			chunks: nil,
			want:   []int{},
		},
		{
			name: "zero-based pages become one-based",
			chunks: []store.RetrievedChunk{
				{ID: "c1", Page: intPtr(4)},
				{ID: "c2", Page: intPtr(9)},
			},
			want: []int{5, 10},
		},
		{
			name: "duplicates collapse",
			chunks: []store.RetrievedChunk{
				{ID: "c1", Page: intPtr(2)},
				{ID: "c2", Page: intPtr(2)},
				{ID: "c3", Page: intPtr(0)},
			},
			want: []int{1, 3},
		},
		{
			name: "unsorted input comes back sorted",
			chunks: []store.RetrievedChunk{
				{ID: "c1", Page: intPtr(7)},
				{ID: "c2", Page: intPtr(1)},
				{ID: "c3", Page: intPtr(3)},
			},
			want: []int{2, 4, 8},
		},
		{
			name: "chunks without page metadata are skipped",
			chunks: []store.RetrievedChunk{
				{ID: "c1", Page: nil},
				{ID: "c2", Page: intPtr(5)},
			},
			want: []int{6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SourcePagesFrom(tt.chunks)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SourcePagesFrom() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ---- fakes ----

type nopSysLogger struct{}

func (nopSysLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopSysLogger) Info(module, message string, details map[string]interface{})  {}
func (nopSysLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopSysLogger) Error(module, message string, details map[string]interface{}) {}
func (nopSysLogger) Sync() error                                                  { return nil }

type fakeRetriever struct {
	chunks []store.RetrievedChunk
	err    error
}

func (f *fakeRetriever) Retrieve(ctx context.Context, question string) ([]store.RetrievedChunk, error) {
	return f.chunks, f.err
}

type fakeLLM struct {
	answer string
	err    error
	calls  int
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.calls++
	return f.answer, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, nil, options...)
}

type fakeChatLogRepo struct {
	created []*entity.ChatLog
	logs    []*entity.ChatLog
	err     error
}

func (f *fakeChatLogRepo) Create(ctx context.Context, log *entity.ChatLog) error {
	f.created = append(f.created, log)
	return f.err
}

func (f *fakeChatLogRepo) FindBySessionId(ctx context.Context, sessionId string) ([]*entity.ChatLog, error) {
	return f.logs, f.err
}

type fakePublisher struct {
	published []*dto.ChatTranscriptMessage
	err       error
}

func (f *fakePublisher) PublishTranscript(payload *dto.ChatTranscriptMessage) error {
	f.published = append(f.published, payload)
	return f.err
}

func newTestService(retriever *fakeRetriever, model *fakeLLM, pub *fakePublisher) IChatService {
	p := pipeline.NewConversationalPipeline(retriever, model, 0.3, 256, log.New(io.Discard, "", 0))
	return NewChatService(p, memory.NewSessionRegistry(), &fakeChatLogRepo{}, pub, nopSysLogger{}, 42)
}

// ---- tests ----

func TestAskDefaultsSessionId(t *testing.T) {
	svc := newTestService(
		&fakeRetriever{chunks: []store.RetrievedChunk{{ID: "c1", Content: "ctx", Page: intPtr(0)}}},
		&fakeLLM{answer: "an answer"},
		&fakePublisher{},
	)

	res, err := svc.Ask(context.Background(), &dto.ChatRequest{Question: "hello"})
	require.NoError(t, err)

	assert.Equal(t, dto.DefaultSessionId, res.SessionId)
	assert.Equal(t, "hello", res.Question)
	assert.Equal(t, "an answer", res.Answer)
	assert.Equal(t, []int{1}, res.SourcePages)
}

func TestAskReusesSessionMemory(t *testing.T) {
	model := &fakeLLM{answer: "ok"}
	svc := newTestService(&fakeRetriever{}, model, &fakePublisher{})

	for i := 0; i < 3; i++ {
		_, err := svc.Ask(context.Background(), &dto.ChatRequest{
			Question:  "q",
			SessionId: "abc",
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 3, model.calls)
}

func TestAskPipelineErrorPropagates(t *testing.T) {
	pub := &fakePublisher{}
	svc := newTestService(&fakeRetriever{err: errors.New("store unavailable")}, &fakeLLM{}, pub)

	_, err := svc.Ask(context.Background(), &dto.ChatRequest{Question: "q"})
	assert.Error(t, err)
	assert.Empty(t, pub.published, "failed turn must not reach the transcript trail")
}

func TestAskPublisherFailureDoesNotFailRequest(t *testing.T) {
	svc := newTestService(
		&fakeRetriever{},
		&fakeLLM{answer: "ok"},
		&fakePublisher{err: errors.New("bus closed")},
	)

	res, err := svc.Ask(context.Background(), &dto.ChatRequest{Question: "q"})
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Answer)
}

func TestAskPublishesTranscript(t *testing.T) {
	pub := &fakePublisher{}
	svc := newTestService(
		&fakeRetriever{chunks: []store.RetrievedChunk{{ID: "c1", Page: intPtr(3)}}},
		&fakeLLM{answer: "ans"},
		pub,
	)

	_, err := svc.Ask(context.Background(), &dto.ChatRequest{Question: "q", SessionId: "s9"})
	require.NoError(t, err)

	require.Len(t, pub.published, 1)
	assert.Equal(t, "s9", pub.published[0].SessionId)
	assert.Equal(t, []int{4}, pub.published[0].SourcePages)
}

func TestGetHistory(t *testing.T) {
	now := time.Now()
	repo := &fakeChatLogRepo{logs: []*entity.ChatLog{
		{SessionId: "s1", Question: "q1", Answer: "a1", SourcePages: []int{2}, CreatedAt: now},
		{SessionId: "s1", Question: "q2", Answer: "a2", CreatedAt: now},
	}}
	p := pipeline.NewConversationalPipeline(&fakeRetriever{}, &fakeLLM{}, 0.3, 256, log.New(io.Discard, "", 0))
	svc := NewChatService(p, memory.NewSessionRegistry(), repo, &fakePublisher{}, nopSysLogger{}, 1)

	res, err := svc.GetHistory(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, "s1", res.SessionId)
	require.Len(t, res.Turns, 2)
	assert.Equal(t, "q1", res.Turns[0].Question)
	assert.Equal(t, []int{2}, res.Turns[0].SourcePages)
}

func TestDocumentCount(t *testing.T) {
	svc := newTestService(&fakeRetriever{}, &fakeLLM{}, &fakePublisher{})
	assert.Equal(t, int64(42), svc.DocumentCount())
	assert.True(t, svc.Ready())
}
