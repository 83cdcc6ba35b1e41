package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DeTr1ll/Task-Manager/internal/adapter/http/dto"
	"github.com/DeTr1ll/Task-Manager/internal/adapter/http/handlers"
	"github.com/DeTr1ll/Task-Manager/internal/adapter/http/middleware"
	"github.com/DeTr1ll/Task-Manager/internal/core/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTaskAPIRouter(handler *handlers.TaskAPIHandler, userID uint64) *gin.Engine {
	router := gin.New()
	router.Use(middleware.LanguageMiddleware(), middleware.RequireAuth(authStub{userID: userID}))
	router.GET("/api/tasks", handler.ListTasks)
	router.POST("/api/tasks", handler.CreateTask)
	router.GET("/api/tasks/:id", handler.GetTask)
	router.PATCH("/api/tasks/:id", handler.UpdateTask)
	router.DELETE("/api/tasks/:id", handler.DeleteTask)
	return router
}

func apiRequest(method, target, body string) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer session-token")
	return req
}

func TestTaskAPIHandler_ListTasks_Unauthorized(t *testing.T) {
	serviceMock := new(taskServiceMock)
	handler := handlers.NewTaskAPIHandler(serviceMock)
	router := newTaskAPIRouter(handler, 7)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	serviceMock.AssertNotCalled(t, "ListTasks", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskAPIHandler_CreateTask_Created(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("CreateTask", mock.Anything, uint64(7), mock.MatchedBy(func(input domain.CreateTaskInput) bool {
		return input.Title == "Plan sprint" &&
			input.Status == domain.TaskStatusPending &&
			len(input.TagNames) == 1 && input.TagNames[0] == "work"
	})).Return(domain.Task{
		ID:     11,
		UserID: 7,
		Title:  "Plan sprint",
		Status: domain.TaskStatusPending,
		Tags:   []domain.Tag{{ID: 3, UserID: 7, Name: "work"}},
	}, nil).Once()
	handler := handlers.NewTaskAPIHandler(serviceMock)
	router := newTaskAPIRouter(handler, 7)

	req := apiRequest(http.MethodPost, "/api/tasks", `{"title":"Plan sprint","tags_names":["work"]}`)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, uint64(11), got.ID)
	require.Equal(t, "pending", got.Status)
	require.Equal(t, []string{"work"}, got.TagNames)
	serviceMock.AssertExpectations(t)
}

func TestTaskAPIHandler_CreateTask_UnknownStatus(t *testing.T) {
	serviceMock := new(taskServiceMock)
	handler := handlers.NewTaskAPIHandler(serviceMock)
	router := newTaskAPIRouter(handler, 7)

	req := apiRequest(http.MethodPost, "/api/tasks", `{"title":"Plan sprint","status":"archived"}`)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	serviceMock.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskAPIHandler_GetTask_NotFound(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("GetTask", mock.Anything, uint64(7), uint64(99)).
		Return(domain.Task{}, domain.ErrTaskNotFound).Once()
	handler := handlers.NewTaskAPIHandler(serviceMock)
	router := newTaskAPIRouter(handler, 7)

	req := apiRequest(http.MethodGet, "/api/tasks/99", "")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestTaskAPIHandler_UpdateTask_NullClearsDueDate(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("UpdateTask", mock.Anything, uint64(7), uint64(5), mock.MatchedBy(func(input domain.UpdateTaskInput) bool {
		return input.DueDateSet && input.DueDate == nil &&
			!input.DueTimeSet && !input.DescriptionSet && !input.TagNamesSet &&
			input.Title == nil && input.Status == nil
	})).Return(domain.Task{ID: 5, UserID: 7, Title: "Write report"}, nil).Once()
	handler := handlers.NewTaskAPIHandler(serviceMock)
	router := newTaskAPIRouter(handler, 7)

	req := apiRequest(http.MethodPatch, "/api/tasks/5", `{"due_date":null}`)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestTaskAPIHandler_UpdateTask_AbsentFieldsUntouched(t *testing.T) {
	newTitle := "Write the final report"

	serviceMock := new(taskServiceMock)
	serviceMock.On("UpdateTask", mock.Anything, uint64(7), uint64(5), mock.MatchedBy(func(input domain.UpdateTaskInput) bool {
		return input.Title != nil && *input.Title == newTitle &&
			!input.DueDateSet && !input.DueTimeSet && !input.DescriptionSet && !input.TagNamesSet
	})).Return(domain.Task{ID: 5, UserID: 7, Title: newTitle}, nil).Once()
	handler := handlers.NewTaskAPIHandler(serviceMock)
	router := newTaskAPIRouter(handler, 7)

	req := apiRequest(http.MethodPatch, "/api/tasks/5", `{"title":"Write the final report"}`)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestTaskAPIHandler_DeleteTask_NoContent(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("DeleteTask", mock.Anything, uint64(7), uint64(5)).Return(nil).Once()
	handler := handlers.NewTaskAPIHandler(serviceMock)
	router := newTaskAPIRouter(handler, 7)

	req := apiRequest(http.MethodDelete, "/api/tasks/5", "")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.Bytes())
	serviceMock.AssertExpectations(t)
}
