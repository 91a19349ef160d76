package echoapi_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/trezcool/professor/apps/api/echo"
	"github.com/trezcool/professor/testutil"
)

func Test_studentApi_join(t *testing.T) {
	app := testutil.NewApp(t)
	svc := app.ClassroomSvc
	teacher := testutil.CreateTeacher(t, svc, "Ada", "ada@school.test", "secret")
	class := testutil.CreateClass(t, svc, teacher.ID, "Period 3", "history")
	path := "/api/student/join"

	t.Run("Joined with a lowercase code", func(t *testing.T) {
		body := []byte(`{"joinCode": " ` + strings.ToLower(class.JoinCode) + ` ", "studentName": "Sam"}`)
		req, rec := newRequest(http.MethodPost, path, body)
		app.Server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp echoapi.JoinResponse
		unmarshalBody(t, rec, &resp)
		assert.True(t, resp.Success)
		assert.True(t, strings.HasPrefix(resp.StudentID, "student_"))
		assert.Equal(t, echoapi.JoinedClass{ID: class.ID, Name: "Period 3", Subject: "history"}, resp.Class)

		got, err := svc.GetClass(class.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{resp.StudentID}, got.StudentIDs)
	})

	runHTTPTests(t, app, []httpTest{
		{
			name: "Invalid join code", path: path, wantCode: http.StatusNotFound,
			body:     []byte(`{"joinCode": "ZZZZZZ!", "studentName": "Sam"}`),
			wantData: marchallObj(t, httpErr{Error: "Invalid join code"}),
		},
		{
			name: "Missing fields", path: path, body: []byte(`{}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"joinCode":    "this field is required",
				"studentName": "this field is required",
			}),
		},
	})
}
