package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prepwise/prepwise/config"
	"github.com/prepwise/prepwise/internal/dto"
	"github.com/prepwise/prepwise/internal/middleware"
	"github.com/prepwise/prepwise/internal/model"
	"github.com/prepwise/prepwise/internal/repository"
	"github.com/prepwise/prepwise/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// fakeLLM replaces the Gemini backend so handler tests run offline.
type fakeLLM struct {
	structured    *dto.GeneratedFeedback
	structuredErr error
	text          string
	textErr       error
}

func (f *fakeLLM) GenerateStructuredFeedback(prompt, system string) (*dto.GeneratedFeedback, error) {
	if f.structuredErr != nil {
		return nil, f.structuredErr
	}
	return f.structured, nil
}

func (f *fakeLLM) GenerateText(prompt, system string) (string, error) {
	if f.textErr != nil {
		return "", f.textErr
	}
	return f.text, nil
}

func generatedFeedbackFixture() *dto.GeneratedFeedback {
	return &dto.GeneratedFeedback{
		TotalScore: 75,
		CategoryScores: []dto.GeneratedCategoryScore{
			{Name: "Communication Skills", Score: 78, Comment: "Clear and structured"},
			{Name: "Technical Knowledge", Score: 72, Comment: "Solid fundamentals"},
		},
		Strengths:           []string{"Composed delivery"},
		AreasForImprovement: []string{"More concrete examples"},
		FinalAssessment:     "Ready for the role with minor polish.",
	}
}

type testEnv struct {
	router *gin.Engine
	llm    *fakeLLM
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Session{}, &model.Interview{}, &model.Feedback{}))

	llm := &fakeLLM{
		structured: generatedFeedbackFixture(),
		text:       `["What is a goroutine?", "Explain indexes.", "Describe a rollout.", "How do you debug latency?", "What is a deadlock?"]`,
	}
	cfg := &config.Config{Server: config.Server{Port: "8080", Env: "test"}}

	prompts := service.NewPromptService()
	authService := service.NewAuthService(repository.NewUserRepository(db), repository.NewSessionRepository(db))
	interviewService := service.NewInterviewService(repository.NewInterviewRepository(db), prompts, llm)
	feedbackService := service.NewFeedbackService(repository.NewFeedbackRepository(db), prompts, llm, service.NewFeedbackValidator())

	authCtrl := NewAuthController(authService, cfg)
	interviewCtrl := NewInterviewController(interviewService)
	feedbackCtrl := NewFeedbackController(feedbackService)

	router := gin.New()
	api := router.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/sign-up", authCtrl.SignUp)
		authGroup.POST("/sign-in", authCtrl.SignIn)
		authGroup.POST("/sign-out", authCtrl.SignOut)
		authGroup.GET("/me", middleware.RequireAuth(authService), authCtrl.Me)

		interviews := api.Group("/interviews")
		interviews.POST("/generate", interviewCtrl.Generate)
		interviews.GET("/generate", interviewCtrl.Capabilities)

		authed := interviews.Group("", middleware.RequireAuth(authService))
		authed.GET("/my", interviewCtrl.GetMyInterviews)
		authed.GET("/latest", interviewCtrl.GetLatestInterviews)
		authed.GET("/:interview_id", interviewCtrl.GetInterviewDetails)
		authed.POST("/:interview_id/feedback", feedbackCtrl.CreateFeedback)
		authed.GET("/:interview_id/feedback", feedbackCtrl.GetFeedback)

		feedback := api.Group("/feedback", middleware.RequireAuth(authService))
		feedback.POST("/tips", feedbackCtrl.GenerateTips)
		feedback.POST("/ask", feedbackCtrl.AskQuestion)
		feedback.GET("/analytics", feedbackCtrl.GetAnalytics)
	}

	return &testEnv{router: router, llm: llm}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// signIn registers an account and returns the session cookie issued for it.
func (e *testEnv) signIn(t *testing.T, email string) *http.Cookie {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/auth/sign-up", gin.H{
		"name":     "Dana",
		"email":    email,
		"password": "correct horse battery",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = e.do(t, http.MethodPost, "/api/v1/auth/sign-in", gin.H{
		"email":    email,
		"password": "correct horse battery",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			return cookie
		}
	}
	t.Fatal("sign-in did not set a session cookie")
	return nil
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestGenerateInterviewEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/interviews/generate", gin.H{
		"role":   "Backend Engineer",
		"level":  "mid",
		"type":   "technical",
		"skills": "Go, PostgreSQL",
		"amount": 5,
		"userid": "user-1",
	}, nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[dto.GenerateInterviewResponse](t, rec)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.InterviewID)
	assert.Equal(t, 5, resp.QuestionCount)
}

func TestGenerateInterviewEndpointAmountOutOfRange(t *testing.T) {
	env := newTestEnv(t)

	for _, amount := range []int{3, 51} {
		rec := env.do(t, http.MethodPost, "/api/v1/interviews/generate", gin.H{
			"role":   "Backend Engineer",
			"level":  "mid",
			"type":   "technical",
			"skills": "Go",
			"amount": amount,
			"userid": "user-1",
		}, nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decode[dto.ErrorResponse](t, rec)
		assert.False(t, resp.Success)
		assert.Equal(t, "Amount must be between 5 and 50", resp.Error)
	}
}

func TestGenerateInterviewEndpointMissingFields(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/interviews/generate", gin.H{
		"role":   "Backend Engineer",
		"amount": 5,
	}, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[dto.ErrorResponse](t, rec)
	assert.Equal(t, "Missing required fields", resp.Error)
}

func TestGenerateInterviewEndpointParseFailure(t *testing.T) {
	env := newTestEnv(t)
	env.llm.text = "not a json array"

	rec := env.do(t, http.MethodPost, "/api/v1/interviews/generate", gin.H{
		"role":   "Backend Engineer",
		"level":  "mid",
		"type":   "technical",
		"skills": "Go",
		"amount": 5,
		"userid": "user-1",
	}, nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode[dto.ErrorResponse](t, rec)
	assert.Contains(t, resp.Error, "Failed to parse AI response")
}

func TestCapabilitiesEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/interviews/generate", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[dto.CapabilityResponse](t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"entry", "junior", "mid", "senior"}, resp.Endpoints.SupportedLevels)
	assert.Equal(t, []string{"technical", "behavioral", "balanced"}, resp.Endpoints.SupportedTypes)
}

func TestProtectedRoutesRequireSessionCookie(t *testing.T) {
	env := newTestEnv(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/auth/me"},
		{http.MethodGet, "/api/v1/interviews/my"},
		{http.MethodGet, "/api/v1/interviews/latest"},
		{http.MethodGet, "/api/v1/feedback/analytics"},
		{http.MethodPost, "/api/v1/interviews/abc/feedback"},
	}
	for _, tc := range paths {
		rec := env.do(t, tc.method, tc.path, nil, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code, tc.path)
		resp := decode[dto.ErrorResponse](t, rec)
		assert.False(t, resp.Success)
		assert.Equal(t, "Authentication required", resp.Error)
	}
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t)

	cookie := env.signIn(t, "dana@example.com")
	assert.True(t, cookie.HttpOnly)

	rec := env.do(t, http.MethodGet, "/api/v1/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[dto.AuthResponse](t, rec)
	require.NotNil(t, resp.User)
	assert.Equal(t, "dana@example.com", resp.User.Email)

	// Sign out invalidates the session server-side.
	rec = env.do(t, http.MethodPost, "/api/v1/auth/sign-out", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/auth/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSignInWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, "dana@example.com")

	rec := env.do(t, http.MethodPost, "/api/v1/auth/sign-in", gin.H{
		"email":    "dana@example.com",
		"password": "wrong password",
	}, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[dto.ErrorResponse](t, rec)
	assert.Equal(t, "invalid email or password", resp.Error)
}

func TestFeedbackFlow(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signIn(t, "dana@example.com")

	genRec := env.do(t, http.MethodPost, "/api/v1/interviews/generate", gin.H{
		"role":   "Backend Engineer",
		"level":  "mid",
		"type":   "technical",
		"skills": "Go",
		"amount": 5,
		"userid": "user-1",
	}, nil)
	require.Equal(t, http.StatusOK, genRec.Code)
	interviewID := decode[dto.GenerateInterviewResponse](t, genRec).InterviewID

	rec := env.do(t, http.MethodPost, "/api/v1/interviews/"+interviewID+"/feedback", gin.H{
		"transcript": []gin.H{
			{"role": "interviewer", "content": "Tell me about Go."},
			{"role": "candidate", "content": "It compiles fast and has goroutines."},
		},
		"interviewRole": "Backend Engineer",
		"interviewType": "Technical Interview",
	}, cookie)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode[dto.CreateFeedbackResponse](t, rec)
	assert.True(t, created.Success)
	assert.NotEmpty(t, created.FeedbackID)
	require.NotNil(t, created.Feedback)
	assert.Equal(t, 75.0, created.Feedback.TotalScore)
	assert.Equal(t, 2, created.Feedback.Metadata.TranscriptLength)
	assert.Equal(t, "2.0", created.Feedback.Metadata.Version)

	getRec := env.do(t, http.MethodGet, "/api/v1/interviews/"+interviewID+"/feedback", nil, cookie)
	require.Equal(t, http.StatusOK, getRec.Code)
	fetched := decode[dto.GetFeedbackResponse](t, getRec)
	require.NotNil(t, fetched.Feedback)
	assert.Equal(t, created.FeedbackID, fetched.Feedback.ID)
}

func TestGetFeedbackNoneRecorded(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signIn(t, "dana@example.com")

	rec := env.do(t, http.MethodGet, "/api/v1/interviews/never-attempted/feedback", nil, cookie)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[dto.GetFeedbackResponse](t, rec)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Feedback)
}

func TestGenerateTipsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signIn(t, "dana@example.com")
	env.llm.text = "Tip one\nTip two\nTip three"

	rec := env.do(t, http.MethodPost, "/api/v1/feedback/tips", gin.H{
		"categoryName":  "Communication Skills",
		"interviewRole": "Backend Engineer",
		"score":         60,
	}, cookie)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[dto.TipsResponse](t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"Tip one", "Tip two", "Tip three"}, resp.Tips)
}

func TestAskQuestionWithoutFeedback(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signIn(t, "dana@example.com")

	rec := env.do(t, http.MethodPost, "/api/v1/feedback/ask", gin.H{
		"interviewId": "never-attempted",
		"question":    "How do I improve?",
	}, cookie)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[dto.ErrorResponse](t, rec)
	assert.Contains(t, resp.Error, "no feedback exists")
}

func TestGetLatestInterviewsInvalidLimit(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signIn(t, "dana@example.com")

	for _, limit := range []string{"abc", "0", "-3"} {
		rec := env.do(t, http.MethodGet, "/api/v1/interviews/latest?limit="+limit, nil, cookie)
		require.Equal(t, http.StatusBadRequest, rec.Code, limit)
		resp := decode[dto.ErrorResponse](t, rec)
		assert.Equal(t, "Invalid limit", resp.Error)
	}
}

func TestGetInterviewDetailsNotFound(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signIn(t, "dana@example.com")

	rec := env.do(t, http.MethodGet, "/api/v1/interviews/missing", nil, cookie)

	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decode[dto.ErrorResponse](t, rec)
	assert.Equal(t, "Interview not found", resp.Error)
}
