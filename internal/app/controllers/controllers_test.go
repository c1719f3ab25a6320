package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursequest/internal/app/controllers"
	"github.com/yigit/coursequest/internal/app/models"
	"github.com/yigit/coursequest/internal/app/models/dto"
	"github.com/yigit/coursequest/internal/app/routes"
	"github.com/yigit/coursequest/internal/app/services"
	"github.com/yigit/coursequest/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- hand-written service mocks ---

type mockCourseService struct {
	lastReq dto.CourseSearchRequest
	lastIDs []int64
	err     error
}

func (m *mockCourseService) Search(_ context.Context, req dto.CourseSearchRequest) (*dto.CourseListResponse, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &dto.CourseListResponse{
		Courses:    []*models.Course{{ID: 1, CourseID: "CS101", CourseName: "Intro"}},
		Pagination: dto.Pagination{Page: 1, Limit: 10, Total: 1, TotalPages: 1},
	}, nil
}

func (m *mockCourseService) Compare(ctx context.Context, ids []int64) (*dto.CompareResponse, error) {
	m.lastIDs = ids
	return services.NewCourseService(nopStore{}).Compare(ctx, ids)
}

type mockAskService struct{ lastQuestion string }

func (m *mockAskService) Ask(_ context.Context, question string) (*dto.AskResponse, error) {
	m.lastQuestion = question
	if question == "" {
		return nil, apperrors.NewValidationError("question", "question required")
	}
	return &dto.AskResponse{Courses: []*models.Course{}}, nil
}

type mockIngestService struct {
	filename string
	body     string
	called   bool
}

func (m *mockIngestService) Ingest(_ context.Context, filename string, r io.Reader) (*dto.IngestResult, error) {
	m.called = true
	m.filename = filename
	b, _ := io.ReadAll(r)
	m.body = string(b)
	return &dto.IngestResult{Total: 3, Ingested: 2, Skipped: 1}, nil
}

type mockSystemService struct {
	setupCalls int
	healthErr  error
}

func (m *mockSystemService) Setup(context.Context) error {
	m.setupCalls++
	return nil
}

func (m *mockSystemService) Health(context.Context) error { return m.healthErr }

// nopStore lets Compare run its real range checks without a database.
type nopStore struct{ services.CourseStore }

func (nopStore) FindByIDs(context.Context, []int64) ([]*models.Course, error) {
	return []*models.Course{}, nil
}

type fixture struct {
	router *gin.Engine
	course *mockCourseService
	ask    *mockAskService
	ingest *mockIngestService
	system *mockSystemService
}

func newFixture() *fixture {
	f := &fixture{
		router: gin.New(),
		course: &mockCourseService{},
		ask:    &mockAskService{},
		ingest: &mockIngestService{},
		system: &mockSystemService{},
	}
	routes.SetupRouter(f.router, routes.Controllers{
		Course: controllers.NewCourseController(f.course),
		Ask:    controllers.NewAskController(f.ask),
		Ingest: controllers.NewIngestController(f.ingest),
		System: controllers.NewSystemController(f.system),
	}, "s3cret", 1<<20)
	return f
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	return body["error"].(map[string]interface{})["message"].(string)
}

// --- tests ---

func TestRoot(t *testing.T) {
	w := newFixture().do(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"CourseQuest API is running!"}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	f := newFixture()
	w := f.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	f.system.healthErr = assert.AnError
	w = f.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSetup(t *testing.T) {
	f := newFixture()
	w := f.do(httptest.NewRequest(http.MethodPost, "/api/setup", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Database ready!"}`, w.Body.String())
	assert.Equal(t, 1, f.system.setupCalls)
}

func TestGetCourses_ParsesQuery(t *testing.T) {
	f := newFixture()
	w := f.do(httptest.NewRequest(http.MethodGet,
		"/api/courses?department=cs&level=PG&delivery_mode=online&min_rating=4.2&max_fee=50000&search=data&page=2&limit=500", nil))

	require.Equal(t, http.StatusOK, w.Code)
	req := f.course.lastReq
	assert.Equal(t, "cs", *req.Department)
	assert.Equal(t, "PG", *req.Level)
	assert.Equal(t, "online", *req.DeliveryMode)
	assert.Equal(t, 4.2, *req.MinRating)
	assert.Equal(t, 50000, *req.MaxFee)
	assert.Equal(t, "data", *req.Search)
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, 100, req.Limit, "limit is capped")

	body := decode(t, w)
	data := body["data"].(map[string]interface{})
	assert.Contains(t, data, "courses")
	assert.Contains(t, data, "pagination")
}

func TestGetCourses_Defaults(t *testing.T) {
	f := newFixture()
	w := f.do(httptest.NewRequest(http.MethodGet, "/api/courses", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, f.course.lastReq.Department)
	assert.Nil(t, f.course.lastReq.MinRating)
	assert.Equal(t, 1, f.course.lastReq.Page)
	assert.Equal(t, 10, f.course.lastReq.Limit)
}

func TestGetCourses_MalformedParams(t *testing.T) {
	for _, q := range []string{
		"page=0", "page=abc", "limit=-1", "min_rating=high", "max_fee=5k",
		"page=1844674407370955161&limit=10",
		"min_rating=NaN", "min_rating=Inf", "min_rating=-inf",
		"max_fee=2147483648", "max_fee=-2147483649",
	} {
		t.Run(q, func(t *testing.T) {
			w := newFixture().do(httptest.NewRequest(http.MethodGet, "/api/courses?"+q, nil))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetCourses_StorageError(t *testing.T) {
	f := newFixture()
	f.course.err = apperrors.NewStorageError(assert.AnError, "failed to search courses: boom")

	w := f.do(httptest.NewRequest(http.MethodGet, "/api/courses", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "failed to search courses: boom", errorMessage(t, w))
}

func TestCompareCourses(t *testing.T) {
	tests := []struct {
		query   string
		status  int
		message string
	}{
		{"", http.StatusBadRequest, "ids required"},
		{"ids=1", http.StatusBadRequest, "Compare 2-4 courses"},
		{"ids=1,2,3,4,5", http.StatusBadRequest, "Compare 2-4 courses"},
		{"ids=1,x", http.StatusBadRequest, "ids must be comma separated integers"},
		{"ids=1,2", http.StatusOK, ""},
		{"ids=1,%202,3", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := newFixture().do(httptest.NewRequest(http.MethodGet, "/api/compare?"+tt.query, nil))
			assert.Equal(t, tt.status, w.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, errorMessage(t, w))
			}
		})
	}
}

func TestAsk(t *testing.T) {
	f := newFixture()
	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"question":"online PG courses under 50000"}`))
	req.Header.Set("Content-Type", "application/json")

	w := f.do(req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "online PG courses under 50000", f.ask.lastQuestion)
}

func TestAsk_QuestionRequired(t *testing.T) {
	for _, body := range []string{`{}`, `{"question":""}`} {
		t.Run(body, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			w := newFixture().do(req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "question required", errorMessage(t, w))
		})
	}
}

func TestAsk_BlankQuestionPassesThrough(t *testing.T) {
	f := newFixture()
	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"question":"  "}`))
	req.Header.Set("Content-Type", "application/json")

	w := f.do(req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "  ", f.ask.lastQuestion)
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestIngest(t *testing.T) {
	f := newFixture()
	body, contentType := multipartBody(t, "file", "courses.csv", "course_id\nCS101\n")
	req := httptest.NewRequest(http.MethodPost, "/api/ingest", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-ingest-token", "s3cret")

	w := f.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ingested 2 courses", decode(t, w)["message"])
	assert.Equal(t, "courses.csv", f.ingest.filename)
	assert.Equal(t, "course_id\nCS101\n", f.ingest.body)
}

func TestIngest_TokenCheckedBeforePayload(t *testing.T) {
	f := newFixture()
	for _, token := range []string{"", "wrong"} {
		body, contentType := multipartBody(t, "file", "courses.csv", "anything")
		req := httptest.NewRequest(http.MethodPost, "/api/ingest", body)
		req.Header.Set("Content-Type", contentType)
		if token != "" {
			req.Header.Set("x-ingest-token", token)
		}

		w := f.do(req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	// No file and no token is still 401, not 400.
	w := f.do(httptest.NewRequest(http.MethodPost, "/api/ingest", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, f.ingest.called)
}

func TestIngest_NoFile(t *testing.T) {
	f := newFixture()
	body, contentType := multipartBody(t, "", "", "")
	req := httptest.NewRequest(http.MethodPost, "/api/ingest", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-ingest-token", "s3cret")

	w := f.do(req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file uploaded", errorMessage(t, w))
	assert.False(t, f.ingest.called)
}

func TestNoRoute(t *testing.T) {
	w := newFixture().do(httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
