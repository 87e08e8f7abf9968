package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/services"
)

type addServicesRequest struct {
	Services []services.ServiceLineInput `json:"services"`
}

type orderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

type guaranteeStatusRequest struct {
	Status models.GuaranteeStatus `json:"status" binding:"required"`
}

type guaranteeAcceptanceRequest struct {
	Accepted *bool `json:"accepted" binding:"required"`
}

func (h *Handler) createOrderForClient(c *gin.Context) {
	var req services.CreateOrderInput
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.svc.Orders.CreateOrderForExistingClient(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.created(c, result)
}

func (h *Handler) listOrders(c *gin.Context) {
	var query services.OrderQuery
	if !h.bindQuery(c, &query) {
		return
	}
	orders, err := h.svc.Orders.FindAll(c.Request.Context(), query)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, orders)
}

func (h *Handler) listClientOrders(c *gin.Context) {
	orders, err := h.svc.Orders.FindByClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, orders)
}

func (h *Handler) ordersByStatus(c *gin.Context) {
	orders, err := h.svc.Orders.FindByStatus(c.Request.Context(), models.OrderStatus(c.Param("status")))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, orders)
}

func (h *Handler) getOrder(c *gin.Context) {
	order, err := h.svc.Orders.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, order)
}

func (h *Handler) updateOrder(c *gin.Context) {
	var req services.UpdateOrderInput
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.svc.Orders.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(c, order)
}

func (h *Handler) removeOrder(c *gin.Context) {
	if err := h.svc.Orders.Remove(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	h.deleted(c)
}

func (h *Handler) addOrderServices(c *gin.Context) {
	var req addServicesRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.svc.Orders.AddServicesToOrder(c.Request.Context(), actorFrom(c), c.Param("id"), req.Services)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(c, result)
}

func (h *Handler) changeOrderStatus(c *gin.Context) {
	var req orderStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.svc.Orders.ChangeStatus(c.Request.Context(), actorFrom(c), c.Param("id"), req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(c, order)
}

func (h *Handler) orderStatusHistory(c *gin.Context) {
	history, err := h.svc.Orders.GetStatusHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, history)
}

func (h *Handler) getOrderInvoice(c *gin.Context) {
	view, err := h.svc.Invoices.FindInvoiceByOrderID(c.Request.Context(), c.Param("id"), language(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, view)
}

func (h *Handler) updateGuaranteeStatus(c *gin.Context) {
	var req guaranteeStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.svc.Orders.ManuallyUpdateGuaranteeStatus(c.Request.Context(),
		c.Param("id"), c.Param("serviceId"), c.Param("guaranteeId"), req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, http.StatusOK, i18n.GuaranteeStatusUpdated, order)
}

func (h *Handler) updateGuaranteeAcceptance(c *gin.Context) {
	var req guaranteeAcceptanceRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.svc.Orders.UpdateGuaranteeAcceptance(c.Request.Context(),
		c.Param("id"), c.Param("serviceId"), c.Param("guaranteeId"), *req.Accepted)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, http.StatusOK, i18n.GuaranteeStatusUpdated, order)
}

func (h *Handler) requestGuaranteeApproval(c *gin.Context) {
	order, err := h.svc.Orders.SendApproveGuaranteeRequest(c.Request.Context(),
		c.Param("id"), c.Param("serviceId"), c.Param("guaranteeId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, http.StatusOK, i18n.GuaranteeRequestSent, order)
}

func (h *Handler) pendingGuarantees(c *gin.Context) {
	orders, err := h.svc.Orders.FindUnacceptedGuaranteesAwaitingApproval(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, orders)
}

func (h *Handler) activeGuarantees(c *gin.Context) {
	orders, err := h.svc.Orders.FindActiveGuarantees(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, orders)
}
