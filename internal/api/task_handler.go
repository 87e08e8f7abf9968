package api

import (
	"github.com/gin-gonic/gin"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/services"
)

type taskStatusRequest struct {
	Status models.TaskStatus `json:"status" binding:"required"`
}

func (h *Handler) createTask(c *gin.Context) {
	var req services.TaskInput
	if !h.bindJSON(c, &req) {
		return
	}
	task, err := h.svc.Tasks.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.created(c, task)
}

func (h *Handler) getTask(c *gin.Context) {
	task, err := h.svc.Tasks.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, task)
}

func (h *Handler) updateTask(c *gin.Context) {
	var req services.UpdateTaskInput
	if !h.bindJSON(c, &req) {
		return
	}
	task, err := h.svc.Tasks.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(c, task)
}

func (h *Handler) updateTaskStatus(c *gin.Context) {
	var req taskStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	task, err := h.svc.Tasks.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(c, task)
}

func (h *Handler) removeTask(c *gin.Context) {
	if err := h.svc.Tasks.Remove(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	h.deleted(c)
}
