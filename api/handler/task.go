package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskboard/api/transport"
	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/pkg/httpcontext"
	taskUC "github.com/fastygo/taskboard/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List the caller's tasks
// @Tags tasks
// @Router /api/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	ownerID, ok := h.ownerID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx, ownerID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.TaskListResponse{
		Tasks:  transport.NewTasks(tasks),
		Status: true,
		Msg:    "Tasks found successfully..",
	})
}

// @Summary Get one task
// @Tags tasks
// @Router /api/tasks/{id} [get]
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	ownerID, ok := h.ownerID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.GetTask(stdCtx, ownerID, taskID(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondTask(ctx, task, "Task found successfully..")
}

// @Summary Create task
// @Tags tasks
// @Router /api/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	ownerID, ok := h.ownerID(ctx)
	if !ok {
		return
	}

	var req transport.TaskRequest
	if err := h.decode(ctx, &req); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.CreateTask(stdCtx, ownerID, taskInput(req))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondTask(ctx, task, "Task created successfully..")
}

// @Summary Update task
// @Tags tasks
// @Router /api/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	ownerID, ok := h.ownerID(ctx)
	if !ok {
		return
	}

	var req transport.TaskRequest
	if err := h.decode(ctx, &req); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.UpdateTask(stdCtx, ownerID, taskID(ctx), taskInput(req))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondTask(ctx, task, "Task updated successfully..")
}

// @Summary Delete task
// @Tags tasks
// @Router /api/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	ownerID, ok := h.ownerID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTask(stdCtx, ownerID, taskID(ctx)); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess("Task deleted successfully.."))
}

func (h *TaskHandler) respondTask(ctx *fasthttp.RequestCtx, task *domain.Task, msg string) {
	h.respondJSON(ctx, http.StatusOK, transport.TaskResponse{
		Task:   transport.NewTask(task),
		Status: true,
		Msg:    msg,
	})
}

func (h *TaskHandler) ownerID(ctx *fasthttp.RequestCtx) (string, bool) {
	account, ok := httpcontext.AccountFrom(ctx)
	if !ok {
		h.respondError(ctx, domain.ErrMissingToken)
		return "", false
	}
	return account.ID, true
}

func taskID(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue("id").(string)
	return id
}

func taskInput(req transport.TaskRequest) taskUC.Input {
	return taskUC.Input{
		Description: req.Description,
		DueDate:     req.DueDate,
		DueTime:     req.DueTime,
		Priority:    req.Priority,
	}
}
