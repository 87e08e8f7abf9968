package api

import (
	"github.com/gin-gonic/gin"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/services"
)

type workOrderStatusRequest struct {
	Status models.WorkOrderStatus `json:"status" binding:"required"`
}

func (h *Handler) createWorkOrder(c *gin.Context) {
	var req services.CreateWorkOrderInput
	if !h.bindJSON(c, &req) {
		return
	}
	view, err := h.svc.WorkOrders.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.created(c, view)
}

func (h *Handler) listWorkOrders(c *gin.Context) {
	var query services.WorkOrderQuery
	if !h.bindQuery(c, &query) {
		return
	}
	views, err := h.svc.WorkOrders.FindAll(c.Request.Context(), query)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, views)
}

func (h *Handler) myWorkOrders(c *gin.Context) {
	views, err := h.svc.WorkOrders.FindByAssignedEmployee(c.Request.Context(), actorFrom(c).UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, views)
}

func (h *Handler) getWorkOrder(c *gin.Context) {
	view, err := h.svc.WorkOrders.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, view)
}

func (h *Handler) updateWorkOrder(c *gin.Context) {
	var req services.UpdateWorkOrderInput
	if !h.bindJSON(c, &req) {
		return
	}
	view, err := h.svc.WorkOrders.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(c, view)
}

func (h *Handler) removeWorkOrder(c *gin.Context) {
	if err := h.svc.WorkOrders.Remove(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	h.deleted(c)
}

func (h *Handler) assignWorkOrderEmployees(c *gin.Context) {
	var req services.AssignEmployeesInput
	if !h.bindJSON(c, &req) {
		return
	}
	view, err := h.svc.WorkOrders.AssignEmployees(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(c, view)
}

func (h *Handler) changeWorkOrderStatus(c *gin.Context) {
	var req workOrderStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	view, err := h.svc.WorkOrders.ChangeStatus(c.Request.Context(), actorFrom(c), c.Param("id"), req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(c, view)
}
