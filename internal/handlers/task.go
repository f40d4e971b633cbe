package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	dom "taskboard/internal/domain"
	"taskboard/internal/dto"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	svc    *service.TaskService
	logger *slog.Logger
}

func NewTaskHandler(svc *service.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, logger: logger}
}

// List godoc
// @Summary      List tasks, newest first
// @Tags         tasks
// @Produce      json
// @Security     CookieAuth
// @Param        status  query     string  false  "all, active or completed"
// @Param        q       query     string  false  "Case-insensitive title substring"
// @Param        sort    query     string  false  "newest, oldest, az or za"
// @Success      200     {array}   dto.TaskResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      401     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	q, err := service.ParseTaskQuery(c.Query("status"), c.Query("q"), c.Query("sort"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	list, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		serverError(c, h.logger, "list tasks failed", err)
		return
	}
	c.JSON(http.StatusOK, tasksToResponses(list))
}

// Stats godoc
// @Summary      Task counters
// @Tags         tasks
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.TaskStatsResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /tasks/stats [get]
func (h *TaskHandler) Stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		serverError(c, h.logger, "task stats failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.TaskStatsResponse{Total: st.Total, Completed: st.Completed, Active: st.Active})
}

// GetByID godoc
// @Summary      Get a task by ID
// @Tags         tasks
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  dto.TaskResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, dom.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		serverError(c, h.logger, "get task failed", err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Create godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateTaskRequest  true  "Task body"
// @Success      201   {object}  dto.CreatedTaskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.svc.Create(c.Request.Context(), req.Title)
	if err != nil {
		if errors.Is(err, dom.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
			return
		}
		serverError(c, h.logger, "create task failed", err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreatedTaskResponse{ID: t.ID, Title: t.Title, Completed: t.Completed})
}

// Update godoc
// @Summary      Update a task
// @Description  Changes only the supplied fields. An unknown id is not reported.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int                    true  "Task ID"
// @Param        body  body      dto.UpdateTaskRequest  true  "Partial update"
// @Success      200   {object}  dto.UpdatedTaskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	patch, err := h.svc.Update(c.Request.Context(), id, dom.TaskPatch{Title: req.Title, Completed: req.Completed})
	if err != nil {
		switch {
		case errors.Is(err, dom.ErrNoFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		case errors.Is(err, dom.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "title must not be empty"})
		default:
			serverError(c, h.logger, "update task failed", err)
		}
		return
	}
	c.JSON(http.StatusOK, dto.UpdatedTaskResponse{ID: id, Title: patch.Title, Completed: patch.Completed})
}

// Delete godoc
// @Summary      Delete a task
// @Tags         tasks
// @Security     CookieAuth
// @Param        id   path  int  true  "Task ID"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		serverError(c, h.logger, "delete task failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func taskToResponse(t dom.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt,
	}
}

func tasksToResponses(list []dom.Task) []dto.TaskResponse {
	out := make([]dto.TaskResponse, len(list))
	for i := range list {
		out[i] = taskToResponse(list[i])
	}
	return out
}
