package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/services"
)

type createClientRequest struct {
	services.CreateClientInput
	ConfirmExisting bool `json:"confirmExisting"`
}

type searchQuery struct {
	Term  string `form:"q"`
	Limit int    `form:"limit"`
}

func (h *Handler) createClient(c *gin.Context) {
	var req createClientRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.svc.Clients.CreateClient(c.Request.Context(), actorFrom(c), req.CreateClientInput, req.ConfirmExisting, language(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	if result.RequiresConfirmation {
		// nothing was written; the caller must resend with confirmExisting
		c.JSON(http.StatusOK, Response{Status: statusSuccess, Code: http.StatusOK, Data: result, Message: result.Message})
		return
	}
	h.created(c, result)
}

func (h *Handler) checkClientExists(c *gin.Context) {
	var identity services.ClientIdentity
	if !h.bindQuery(c, &identity) {
		return
	}
	result, err := h.svc.Clients.CheckExists(c.Request.Context(), identity, language(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Status: statusSuccess, Code: http.StatusOK, Data: result, Message: result.Message})
}

func (h *Handler) listClients(c *gin.Context) {
	var query services.ClientQuery
	if !h.bindQuery(c, &query) {
		return
	}
	page, err := h.svc.Clients.ListClients(c.Request.Context(), query)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, page)
}

func (h *Handler) searchClients(c *gin.Context) {
	var query searchQuery
	if !h.bindQuery(c, &query) {
		return
	}
	clients, err := h.svc.Clients.SearchClients(c.Request.Context(), query.Term, query.Limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, clients)
}

func (h *Handler) getClient(c *gin.Context) {
	client, err := h.svc.Clients.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, client)
}

func (h *Handler) getClientWithOrders(c *gin.Context) {
	details, err := h.svc.Clients.GetClientWithOrders(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, details)
}

func (h *Handler) updateClient(c *gin.Context) {
	var req services.UpdateClientInput
	if !h.bindJSON(c, &req) {
		return
	}
	client, err := h.svc.Clients.UpdateClient(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(c, client)
}

func (h *Handler) deleteClient(c *gin.Context) {
	if err := h.svc.Clients.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	h.deleted(c)
}
