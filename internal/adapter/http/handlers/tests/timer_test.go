package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"timetracker/internal/adapter/http/dto"
	"timetracker/internal/adapter/http/handlers"
	"timetracker/internal/adapter/http/middleware"
	"timetracker/internal/core/domain"
	"timetracker/internal/core/ports"
	"timetracker/pkg/apierrors"
	"timetracker/pkg/translator"
)

func newTimerRouter(serviceMock *taskServiceMock) *gin.Engine {
	handler := handlers.NewTimerHandler(serviceMock, dto.Catalog{
		Tasks:          []string{"Code review", "Standup"},
		IssueKeyPrefix: "WPM-",
	})

	router := gin.New()
	api := router.Group("/api", middleware.LanguageMiddleware())
	api.GET("/timer", handler.Current)
	api.POST("/timer/start", handler.Start)
	api.POST("/timer/toggle", handler.Toggle)
	api.GET("/catalog", handler.Catalog)
	api.POST("/tasks/:id/pause", handler.Pause)
	api.POST("/tasks/:id/resume", handler.Resume)
	api.POST("/tasks/:id/stop", handler.Stop)
	return router
}

func TestTimerHandler_Start(t *testing.T) {
	issueKey := "PROJ-1"
	serviceMock := new(taskServiceMock)
	serviceMock.On("Start", mock.Anything, domain.CreateTaskInput{Name: "Fix bug", IssueKey: &issueKey}).Return(int64(2), nil).Once()

	rec := perform(newTimerRouter(serviceMock), http.MethodPost, "/api/timer/start", `{"name": " Fix bug ", "issue_key": "PROJ-1"}`, translator.LanguageEn)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got dto.TransitionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, int64(2), got.TaskID)
	require.Equal(t, "running", got.State)
	require.Nil(t, got.Duration)
	serviceMock.AssertExpectations(t)
}

func TestTimerHandler_Start_Validation(t *testing.T) {
	serviceMock := new(taskServiceMock)
	router := newTimerRouter(serviceMock)

	rec := perform(router, http.MethodPost, "/api/timer/start", `{}`, translator.LanguageEn)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = perform(router, http.MethodPost, "/api/timer/start", `{"name": "   "}`, translator.LanguageEn)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	serviceMock.AssertNotCalled(t, "Start", mock.Anything, mock.Anything)
}

func TestTimerHandler_Start_TimerActive(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("Start", mock.Anything, mock.Anything).Return(int64(0), domain.ErrTimerActive).Once()

	rec := perform(newTimerRouter(serviceMock), http.MethodPost, "/api/timer/start", `{"name": "Second"}`, translator.LanguageEn)
	require.Equal(t, http.StatusConflict, rec.Code)

	got := decodeError(t, rec)
	require.Equal(t, apierrors.MsgTimerActive, got.ErrDetails.Key)
	require.Equal(t, "Another task is already running.", got.ErrDetails.Message)
}

func TestTimerHandler_Toggle(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("Toggle", mock.Anything, domain.CreateTaskInput{Name: "Widget"}).Return(int64(4), nil).Once()

	rec := perform(newTimerRouter(serviceMock), http.MethodPost, "/api/timer/toggle", `{"name": "Widget"}`, translator.LanguageEn)
	require.Equal(t, http.StatusCreated, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestTimerHandler_PauseReturnsDuration(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("Pause", mock.Anything, int64(2)).Return(0.5, nil).Once()

	rec := perform(newTimerRouter(serviceMock), http.MethodPost, "/api/tasks/2/pause", "", translator.LanguageEn)
	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.TransitionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "paused", got.State)
	require.Equal(t, 0.5, *got.Duration)
	require.Equal(t, "30m", *got.DurationText)
}

func TestTimerHandler_TransitionErrors(t *testing.T) {
	cases := []struct {
		name   string
		method string
		path   string
		err    error
		status int
		key    string
	}{
		{"pause never started", "Pause", "/api/tasks/1/pause", domain.ErrTaskNotStarted, http.StatusConflict, apierrors.MsgTaskNotStarted},
		{"pause paused", "Pause", "/api/tasks/1/pause", domain.ErrTaskNotRunning, http.StatusConflict, apierrors.MsgTaskNotRunning},
		{"stop stopped", "Stop", "/api/tasks/1/stop", domain.ErrTaskStopped, http.StatusConflict, apierrors.MsgTaskStopped},
		{"stop missing", "Stop", "/api/tasks/1/stop", domain.ErrTaskNotFound, http.StatusNotFound, apierrors.MsgTaskNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			serviceMock := new(taskServiceMock)
			serviceMock.On(tc.method, mock.Anything, int64(1)).Return(0.0, tc.err).Once()

			rec := perform(newTimerRouter(serviceMock), http.MethodPost, tc.path, "", translator.LanguageEn)
			require.Equal(t, tc.status, rec.Code)
			require.Equal(t, tc.key, decodeError(t, rec).ErrDetails.Key)
			serviceMock.AssertExpectations(t)
		})
	}
}

func TestTimerHandler_Resume(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("Resume", mock.Anything, int64(2)).Return(nil).Once()
	serviceMock.On("Resume", mock.Anything, int64(3)).Return(domain.ErrTaskStopped).Once()

	router := newTimerRouter(serviceMock)
	rec := perform(router, http.MethodPost, "/api/tasks/2/resume", "", translator.LanguageEn)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = perform(router, http.MethodPost, "/api/tasks/3/resume", "", translator.LanguageEn)
	require.Equal(t, http.StatusConflict, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestTimerHandler_Current(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("Current").Return(ports.SessionSnapshot{
		TaskID:   2,
		Name:     "Fix bug",
		IssueKey: "PROJ-1",
		State:    domain.TaskStateRunning,
		Elapsed:  90*time.Minute + 5*time.Second,
	}).Once()
	serviceMock.On("Current").Return(ports.SessionSnapshot{}).Once()

	router := newTimerRouter(serviceMock)
	rec := perform(router, http.MethodGet, "/api/timer", "", translator.LanguageEn)
	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.TimerStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.True(t, got.Active)
	require.Equal(t, int64(2), *got.TaskID)
	require.Equal(t, "01:30:05", got.Elapsed)
	require.Equal(t, int64(5405), got.ElapsedSeconds)

	rec = perform(router, http.MethodGet, "/api/timer", "", translator.LanguageEn)
	got = dto.TimerStatus{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.False(t, got.Active)
	require.Nil(t, got.TaskID)
	require.Equal(t, "00:00:00", got.Elapsed)
}

func TestTimerHandler_Catalog(t *testing.T) {
	rec := perform(newTimerRouter(new(taskServiceMock)), http.MethodGet, "/api/catalog", "", translator.LanguageEn)
	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.Catalog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, []string{"Code review", "Standup"}, got.Tasks)
	require.Equal(t, "WPM-", got.IssueKeyPrefix)
}
