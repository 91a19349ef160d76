package echoapi_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/trezcool/professor/apps/api/echo"
	"github.com/trezcool/professor/core/chat"
	"github.com/trezcool/professor/testutil"
)

func history(t *testing.T, app *testutil.App, sessionID string) echoapi.HistoryResponse {
	t.Helper()
	req, rec := newRequest(http.MethodGet, "/api/chat/"+sessionID+"/history")
	app.Server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp echoapi.HistoryResponse
	unmarshalBody(t, rec, &resp)
	return resp
}

func Test_chatApi_exchange(t *testing.T) {
	app := testutil.NewApp(t)
	svc := app.ClassroomSvc
	teacher := testutil.CreateTeacher(t, svc, "Ada", "ada@school.test", "secret")
	class := testutil.CreateClass(t, svc, teacher.ID, "Period 3", "history")
	student := testutil.JoinClass(t, svc, class.JoinCode, "Sam")

	runHTTPTests(t, app, []httpTest{
		{
			name: "Replied", path: "/api/chat",
			body: marchallObj(t, chat.ExchangeRequest{
				Message: "Rome fell because of lead pipes", SessionID: "abc", StudentID: student.ID, PromptTitle: "Historical Causation",
			}),
			wantData: marchallObj(t, echoapi.ChatResponse{Response: "That's an interesting point about..."}),
		},
		{
			name: "Missing message", path: "/api/chat", wantCode: http.StatusBadRequest,
			body:     []byte(`{"message": "   ", "sessionId": "abc"}`),
			wantData: marchallObj(t, map[string]string{"message": "this field is required"}),
		},
		{
			name: "Missing session", path: "/api/chat", wantCode: http.StatusBadRequest,
			body:     []byte(`{"message": "hi"}`),
			wantData: marchallObj(t, map[string]string{"sessionId": "this field is required"}),
		},
	})

	call, ok := app.Completer.LastCall()
	require.True(t, ok)
	assert.Contains(t, call.SystemPrompt, `Current Assignment Context: The student is working on "Historical Causation".`)
	require.Len(t, call.Turns, 1)
	assert.Equal(t, chat.RoleUser, call.Turns[0].Role)

	hist := history(t, app, "abc")
	assert.Equal(t, "abc", hist.SessionID)
	require.Len(t, hist.Messages, 2)
	assert.Equal(t, chat.RoleUser, hist.Messages[0].Role)
	assert.Equal(t, "Rome fell because of lead pipes", hist.Messages[0].Content)
	assert.Equal(t, chat.RoleAssistant, hist.Messages[1].Role)

	// the exchange was tracked against the student and their class
	got, err := svc.GetStudent(student.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ConversationCount)
	gotClass, err := svc.GetClass(class.ID)
	require.NoError(t, err)
	require.Len(t, gotClass.Activity, 1)
	assert.Equal(t, "Historical Causation", gotClass.Activity[0].PromptTitle)
	assert.Equal(t, 2, gotClass.Activity[0].MessageCount)
}

func Test_chatApi_exchange_untracked(t *testing.T) {
	app := testutil.NewApp(t)

	// unknown tracking ids never fail the exchange
	runHTTPTests(t, app, []httpTest{
		{
			name: "Unknown student", path: "/api/chat",
			body:     []byte(`{"message": "hi", "sessionId": "abc", "studentId": "student_unknown"}`),
			wantData: marchallObj(t, echoapi.ChatResponse{Response: "That's an interesting point about..."}),
		},
		{
			name: "Unknown class", path: "/api/chat",
			body:     []byte(`{"message": "hi again", "sessionId": "abc", "classId": "class_unknown"}`),
			wantData: marchallObj(t, echoapi.ChatResponse{Response: "That's an interesting point about..."}),
		},
	})

	call, ok := app.Completer.LastCall()
	require.True(t, ok)
	assert.Len(t, call.Turns, 3, "the whole history goes upstream")

	rep, err := app.Ledger.Report()
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Overview.TotalExchanges)
	assert.Equal(t, 2, rep.Analytics.UntrackedExchanges)
}

func Test_chatApi_exchange_failed(t *testing.T) {
	app := testutil.NewApp(t)
	app.Completer.Set("", errors.New("API request failed: 529"))

	runHTTPTests(t, app, []httpTest{
		{
			name: "Upstream failure", path: "/api/chat", wantCode: http.StatusInternalServerError,
			body:     []byte(`{"message": "hi", "sessionId": "abc"}`),
			wantData: marchallObj(t, httpErr{Error: "Failed to process message"}),
		},
	})

	// the user turn stays, the assistant turn is never appended
	hist := history(t, app, "abc")
	require.Len(t, hist.Messages, 1)
	assert.Equal(t, chat.RoleUser, hist.Messages[0].Role)

	rep, err := app.Ledger.Report()
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Overview.TotalExchanges)
}

func Test_chatApi_history_and_clear(t *testing.T) {
	app := testutil.NewApp(t)

	_, err := app.ChatSvc.Exchange(context.Background(), chat.ExchangeRequest{Message: "hi", SessionID: "abc"})
	require.NoError(t, err)

	runHTTPTests(t, app, []httpTest{
		{
			name: "Unknown session history", method: http.MethodGet, path: "/api/chat/nope/history",
			wantData: []byte(`{"sessionId": "nope", "messages": []}`),
		},
		{name: "Clear unknown session", path: "/api/clear", body: []byte(`{"sessionId": "nope"}`), wantData: []byte(`{"success": true}`)},
		{name: "Clear without session", path: "/api/clear", body: []byte(`{}`), wantData: []byte(`{"success": true}`)},
	})
	assert.Len(t, history(t, app, "abc").Messages, 2)

	runHTTPTests(t, app, []httpTest{
		{name: "Clear", path: "/api/clear", body: []byte(`{"sessionId": "abc"}`), wantData: []byte(`{"success": true}`)},
		{
			name: "Cleared session history", method: http.MethodGet, path: "/api/chat/abc/history",
			wantData: []byte(`{"sessionId": "abc", "messages": []}`),
		},
	})
	assert.Equal(t, 0, app.ChatSvc.ActiveSessions())
}
