package echoapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/classroom/apps/api/echo"
	"github.com/trezcool/classroom/core"
	"github.com/trezcool/classroom/core/assignment"
	"github.com/trezcool/classroom/core/dashboard"
	"github.com/trezcool/classroom/tests"
)

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func setup(t *testing.T) (Server, *dashboard.Session) {
	session := testutil.NewSession(t)
	return NewServer(ServerDeps{
		Conf:           &core.Config{AppName: "Classroom", TestMode: true},
		Logger:         testutil.NopLogger(),
		Session:        session,
		DisableReqLogs: true,
	}), session
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app Server, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func validAssignment(t *testing.T) []byte {
	return marchallObj(t, assignment.Input{
		Title:       "X",
		Course:      "Web Development",
		DueDate:     "2030-01-01",
		Description: strings.Repeat("a", 20),
		Priority:    "high",
	})
}

func TestHome(t *testing.T) {
	app, _ := setup(t)
	req, rec := newRequest(http.MethodGet, "/")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Classroom API!", rec.Body.String())
}

func TestAssignmentAPI_lifecycle(t *testing.T) {
	app, _ := setup(t)

	do := func(method, path string, body []byte, wantCode int) assignment.Assignment {
		req, rec := newRequest(method, path, body)
		app.ServeHTTP(rec, req)
		require.Equal(t, wantCode, rec.Code, rec.Body.String())
		var asg assignment.Assignment
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &asg))
		return asg
	}

	asg := do(http.MethodPost, "/v1/assignments", validAssignment(t), http.StatusCreated)
	assert.Equal(t, 4, asg.ID)
	assert.Equal(t, assignment.StatusPending, asg.Status)

	asg = do(http.MethodPost, "/v1/assignments/4/submit",
		[]byte(`{"files": [{"name": "a.pdf", "sizeBytes": 1000}], "comments": "done"}`), http.StatusOK)
	assert.Equal(t, assignment.StatusSubmitted, asg.Status)
	assert.True(t, asg.SubmittedAt.Valid)

	asg = do(http.MethodPost, "/v1/assignments/4/grade", []byte(`{"score": 92}`), http.StatusOK)
	assert.Equal(t, assignment.StatusGraded, asg.Status)
	assert.Equal(t, 92, asg.Grade.Int)

	asg = do(http.MethodGet, "/v1/assignments/4", nil, http.StatusOK)
	assert.Equal(t, "X", asg.Title)
}

func TestAssignmentAPI_errors(t *testing.T) {
	app, _ := setup(t)
	file := []byte(`{"files": [{"name": "a.pdf", "sizeBytes": 1000}]}`)

	tests := []httpTest{
		{
			name:     "create: invalid",
			method:   http.MethodPost,
			path:     "/v1/assignments",
			body:     []byte(`{"title": "", "course": "Web Development", "dueDate": "2030-01-01", "description": "aaaaaaaaaaaa"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"title": "this field is required"}),
		},
		{
			name:     "create: malformed json",
			method:   http.MethodPost,
			path:     "/v1/assignments",
			body:     []byte(`{"title": `),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "retrieve: not found",
			method:   http.MethodGet,
			path:     "/v1/assignments/42",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "assignment 42 not found"}),
		},
		{
			name:     "retrieve: bad id",
			method:   http.MethodGet,
			path:     "/v1/assignments/abc",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{
			name:     "update: not found",
			method:   http.MethodPut,
			path:     "/v1/assignments/42",
			body:     validAssignment(t),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "submit: graded",
			method:   http.MethodPost,
			path:     "/v1/assignments/3/submit",
			body:     file,
			wantCode: http.StatusConflict,
			wantData: marchallObj(t, httpErr{Error: "cannot submit assignment 3: status is graded"}),
		},
		{
			name:     "submit: no files",
			method:   http.MethodPost,
			path:     "/v1/assignments/1/submit",
			body:     []byte(`{"files": []}`),
			wantCode: http.StatusUnprocessableEntity,
			wantData: marchallObj(t, httpErr{Error: "submission of assignment 1 requires at least one file"}),
		},
		{
			name:     "grade: pending",
			method:   http.MethodPost,
			path:     "/v1/assignments/1/grade",
			body:     []byte(`{"score": 50}`),
			wantCode: http.StatusConflict,
		},
		{
			name:     "grade: out of range",
			method:   http.MethodPost,
			path:     "/v1/assignments/2/grade",
			body:     []byte(`{"score": 150}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"score": "must be 100 or less"}),
		},
		{
			name:     "query: unknown status",
			method:   http.MethodGet,
			path:     "/v1/assignments?status=late",
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"status": `unknown status filter "late"`}),
		},
		{
			name:     "deadlines: bad limit",
			method:   http.MethodGet,
			path:     "/v1/assignments/deadlines?limit=abc",
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"limit": "must be a whole number"}),
		},
	}
	runHTTPTests(t, app, tests)
}

func TestAssignmentAPI_queries(t *testing.T) {
	app, session := setup(t)

	all, err := session.Assignments(assignment.QueryFilter{Status: assignment.FilterAll})
	require.NoError(t, err)
	stats, err := session.Stats()
	require.NoError(t, err)
	deadlines, err := session.UpcomingDeadlines(0)
	require.NoError(t, err)
	courses, err := session.Courses()
	require.NoError(t, err)

	tests := []httpTest{
		{name: "all", method: http.MethodGet, path: "/v1/assignments", wantCode: http.StatusOK, wantData: marchallObj(t, all)},
		{name: "pending", method: http.MethodGet, path: "/v1/assignments?status=pending", wantCode: http.StatusOK, wantData: marchallObj(t, all[:1])},
		{name: "search", method: http.MethodGet, path: "/v1/assignments?search=ALGORITHM", wantCode: http.StatusOK, wantData: marchallObj(t, all[2:])},
		{name: "no match", method: http.MethodGet, path: "/v1/assignments?status=graded&search=react", wantCode: http.StatusOK, wantData: []byte(`[]`)},
		{name: "stats", method: http.MethodGet, path: "/v1/assignments/stats", wantCode: http.StatusOK, wantData: marchallObj(t, stats)},
		{name: "deadlines", method: http.MethodGet, path: "/v1/assignments/deadlines?limit=0", wantCode: http.StatusOK, wantData: marchallObj(t, deadlines)},
		{name: "courses", method: http.MethodGet, path: "/v1/courses", wantCode: http.StatusOK, wantData: marchallObj(t, courses)},
	}
	runHTTPTests(t, app, tests)
}

func TestDashboardAPI(t *testing.T) {
	app, session := setup(t)

	req, rec := newRequest(http.MethodPut, "/v1/dashboard/filter", []byte(`{"status": "submitted", "search": ""}`))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var snap dashboard.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, session.ID(), snap.SessionID)
	require.Len(t, snap.Filtered, 1)
	assert.Equal(t, 2, snap.Filtered[0].ID)
	assert.Len(t, snap.Assignments, 3)

	req, rec = newRequest(http.MethodGet, "/v1/dashboard")
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	want, err := session.Snapshot()
	require.NoError(t, err)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, want)}, rec)

	req, rec = newRequest(http.MethodPut, "/v1/dashboard/filter", []byte(`{"status": "late"}`))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotificationAPI(t *testing.T) {
	app, session := setup(t)

	_, err := session.CreateAssignment(assignment.Input{
		Title:       "X",
		Course:      "Web Development",
		DueDate:     "2030-01-01",
		Description: strings.Repeat("a", 20),
	})
	require.NoError(t, err)

	var resp struct {
		Notifications []struct {
			ID    int    `json:"id"`
			Title string `json:"title"`
			Read  bool   `json:"read"`
		} `json:"notifications"`
		UnreadCount int `json:"unreadCount"`
	}
	get := func(method, path string) {
		req, rec := newRequest(method, path)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}

	get(http.MethodGet, "/v1/notifications")
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, "New assignment: X", resp.Notifications[0].Title)
	assert.Equal(t, 1, resp.UnreadCount)

	get(http.MethodPost, "/v1/notifications/1/read")
	assert.True(t, resp.Notifications[0].Read)
	assert.Equal(t, 0, resp.UnreadCount)

	get(http.MethodPost, "/v1/notifications/999/read")
	assert.Len(t, resp.Notifications, 1)

	_, err = session.CreateAssignment(assignment.Input{
		Title:       "Y",
		Course:      "Data Structures",
		DueDate:     "2030-01-01",
		Description: strings.Repeat("b", 20),
	})
	require.NoError(t, err)
	get(http.MethodPost, "/v1/notifications/read")
	assert.Len(t, resp.Notifications, 2)
	assert.Equal(t, 0, resp.UnreadCount)
}

func TestValidateAPI(t *testing.T) {
	app, _ := setup(t)

	tests := []httpTest{
		{
			name:     "signup: passwords differ",
			method:   http.MethodPost,
			path:     "/v1/validate/signup",
			body:     []byte(`{"firstName": "Ada", "lastName": "L", "email": "ada@test.cd", "password": "abcdef", "confirmPassword": "abcdeg", "role": "student"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"confirmPassword": "passwords do not match"}),
		},
		{
			name:     "login: ok",
			method:   http.MethodPost,
			path:     "/v1/validate/login",
			body:     []byte(`{"email": "Ada@Test.cd", "password": "abcdef"}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"ok": true, "value": {"email": "ada@test.cd", "password": "abcdef"}}`),
		},
		{
			name:     "unknown schema",
			method:   http.MethodPost,
			path:     "/v1/validate/payment",
			body:     []byte(`{}`),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
	}
	runHTTPTests(t, app, tests)
}
