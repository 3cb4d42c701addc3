package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"prospectus-rag-be/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopSysLogger struct{}

func (nopSysLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopSysLogger) Info(module, message string, details map[string]interface{})  {}
func (nopSysLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopSysLogger) Error(module, message string, details map[string]interface{}) {}
func (nopSysLogger) Sync() error                                                  { return nil }

type fakeChatService struct {
	ready    bool
	docCount int64
	askRes   *dto.ChatResponse
	askErr   error
	gotReq   *dto.ChatRequest
	history  *dto.ChatHistoryResponse
}

func (f *fakeChatService) Ask(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	f.gotReq = request
	return f.askRes, f.askErr
}

func (f *fakeChatService) GetHistory(ctx context.Context, sessionId string) (*dto.ChatHistoryResponse, error) {
	if f.history == nil {
		return &dto.ChatHistoryResponse{SessionId: sessionId, Turns: []dto.ChatHistoryEntry{}}, nil
	}
	return f.history, nil
}

func (f *fakeChatService) Ready() bool          { return f.ready }
func (f *fakeChatService) DocumentCount() int64 { return f.docCount }

func newTestApp(svc *fakeChatService) *fiber.App {
	app := fiber.New()
	NewChatController(svc, nopSysLogger{}).RegisterRoutes(app)
	return app
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out))
}

func TestRootReady(t *testing.T) {
	app := newTestApp(&fakeChatService{ready: true, docCount: 128})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.ReadinessResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "ready", body.Status)
	assert.Equal(t, int64(128), body.DocumentCount)
	assert.NotEmpty(t, body.Message)
}

func TestRootNotReady(t *testing.T) {
	app := newTestApp(&fakeChatService{ready: false})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.ReadinessResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "not ready", body.Status)
}

func TestChatSuccess(t *testing.T) {
	svc := &fakeChatService{
		ready: true,
		askRes: &dto.ChatResponse{
			Question:    "What are the fees?",
			Answer:      "See page 12.",
			SourcePages: []int{12},
			SessionId:   "s1",
		},
	}
	app := newTestApp(svc)

	payload, _ := json.Marshal(dto.ChatRequest{Question: "What are the fees?", SessionId: "s1"})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.ChatResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "See page 12.", body.Answer)
	assert.Equal(t, []int{12}, body.SourcePages)
	assert.Equal(t, "s1", body.SessionId)

	require.NotNil(t, svc.gotReq)
	assert.Equal(t, "What are the fees?", svc.gotReq.Question)
}

func TestChatQueryParamsTakePrecedence(t *testing.T) {
	svc := &fakeChatService{ready: true, askRes: &dto.ChatResponse{}}
	app := newTestApp(svc)

	payload, _ := json.Marshal(dto.ChatRequest{Question: "from body"})
	req := httptest.NewRequest(http.MethodPost, "/chat?question=from+query&session_id=qs", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, svc.gotReq)
	assert.Equal(t, "from query", svc.gotReq.Question)
	assert.Equal(t, "qs", svc.gotReq.SessionId)
}

func TestChatNotReady(t *testing.T) {
	app := newTestApp(&fakeChatService{ready: false})

	req := httptest.NewRequest(http.MethodPost, "/chat?question=hi", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	// Failures come back in the body with a success status code
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.ChatErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "service not ready. please try again later.", body.Error)
}

func TestChatServiceError(t *testing.T) {
	svc := &fakeChatService{ready: true, askErr: errors.New("llm backend exploded")}
	app := newTestApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/chat?question=hi", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.ChatErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "internal server error. please try again later.", body.Error)
	assert.Equal(t, "hi", body.Question)
}

func TestChatEmptyQuestionIsAccepted(t *testing.T) {
	svc := &fakeChatService{ready: true, askRes: &dto.ChatResponse{Answer: "i cant find the answer from the prospectus"}}
	app := newTestApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/chat", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, svc.gotReq, "empty question must still reach the service")
	assert.Equal(t, "", svc.gotReq.Question)
}

func TestHistory(t *testing.T) {
	svc := &fakeChatService{
		ready: true,
		history: &dto.ChatHistoryResponse{
			SessionId: "s1",
			Turns: []dto.ChatHistoryEntry{
				{Question: "q1", Answer: "a1", SourcePages: []int{3}},
			},
		},
	}
	app := newTestApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/chat/history?session_id=s1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool                    `json:"success"`
		Data    dto.ChatHistoryResponse `json:"data"`
	}
	decodeBody(t, resp, &body)
	assert.True(t, body.Success)
	assert.Equal(t, "s1", body.Data.SessionId)
	require.Len(t, body.Data.Turns, 1)
	assert.Equal(t, "q1", body.Data.Turns[0].Question)
}
