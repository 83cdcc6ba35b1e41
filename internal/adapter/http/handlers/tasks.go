package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DeTr1ll/Task-Manager/internal/adapter/http/dto"
	"github.com/DeTr1ll/Task-Manager/internal/adapter/http/mapper"
	"github.com/DeTr1ll/Task-Manager/internal/adapter/http/middleware"
	"github.com/DeTr1ll/Task-Manager/internal/adapter/http/validation"
	"github.com/DeTr1ll/Task-Manager/internal/core/domain"
	"github.com/DeTr1ll/Task-Manager/internal/core/ports"
	"github.com/DeTr1ll/Task-Manager/pkg/apierrors"
)

// TaskHandler serves the browser-facing task pages: form posts redirect back
// to the list, the status toggle and tag autocomplete answer JSON.
type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID, _ := middleware.CurrentUserID(c)

	filter := domain.TaskFilter{Query: c.Query("q")}
	if statusParam := c.Query("status"); statusParam != "" {
		status := domain.TaskStatus(statusParam)
		if !status.Valid() {
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidStatus, lang),
			)
			return
		}
		filter.Status = &status
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), userID, filter)
	if err != nil {
		zap.L().Error("failed to list tasks", zap.Uint64("user_id", userID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListTask, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks, time.Now()))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID, _ := middleware.CurrentUserID(c)

	var form dto.TaskForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	input, err := validation.BuildCreateTaskInputFromForm(form)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	if _, err := h.taskService.CreateTask(c.Request.Context(), userID, input); err != nil {
		zap.L().Error("failed to create task", zap.Uint64("user_id", userID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailCreateTask, lang),
		)
		return
	}

	c.Redirect(http.StatusFound, "/tasks")
}

func (h *TaskHandler) EditTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID, _ := middleware.CurrentUserID(c)

	taskID, ok := taskIDParam(c, lang)
	if !ok {
		return
	}

	var form dto.TaskForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	input, err := validation.BuildUpdateTaskInputFromForm(form)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	if _, err := h.taskService.UpdateTask(c.Request.Context(), userID, taskID, input); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
			)
			return
		}

		zap.L().Error("failed to update task", zap.Uint64("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailUpdateTask, lang),
		)
		return
	}

	c.Redirect(http.StatusFound, "/tasks")
}

// UpdateTaskStatus is the AJAX status toggle. Unknown values leave the task
// untouched and come back as a 400 with success=false.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID, _ := middleware.CurrentUserID(c)

	taskID, ok := taskIDParam(c, lang)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.UpdateStatusResponse{
			Success: false,
			Error:   apierrors.GetTransErrorMsg(apierrors.MsgInvalidStatus, lang),
		})
		return
	}

	label, err := h.taskService.UpdateTaskStatus(c.Request.Context(), userID, taskID, domain.TaskStatus(req.Status))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, dto.UpdateStatusResponse{
				Success: false,
				Error:   apierrors.GetTransErrorMsg(apierrors.MsgInvalidStatus, lang),
			})
			return
		}
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
			)
			return
		}

		zap.L().Error("failed to update task status", zap.Uint64("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailUpdateTask, lang),
		)
		return
	}

	c.JSON(http.StatusOK, dto.UpdateStatusResponse{Success: true, NewStatusLabel: label})
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID, _ := middleware.CurrentUserID(c)

	taskID, ok := taskIDParam(c, lang)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), userID, taskID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
			)
			return
		}

		zap.L().Error("failed to delete task", zap.Uint64("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailDeleteTask, lang),
		)
		return
	}

	c.Redirect(http.StatusFound, "/tasks")
}

func (h *TaskHandler) AutocompleteTags(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID, _ := middleware.CurrentUserID(c)

	names, err := h.taskService.AutocompleteTags(c.Request.Context(), userID, c.Query("term"))
	if err != nil {
		zap.L().Error("failed to autocomplete tags", zap.Uint64("user_id", userID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailAutocomplete, lang),
		)
		return
	}

	c.JSON(http.StatusOK, names)
}

func taskIDParam(c *gin.Context, lang string) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || taskID == 0 {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return 0, false
	}
	return taskID, true
}
