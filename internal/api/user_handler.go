package api

import (
	"github.com/gin-gonic/gin"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/services"
)

func (h *Handler) createUser(c *gin.Context) {
	var req services.CreateUserInput
	if !h.bindJSON(c, &req) {
		return
	}
	user, err := h.svc.Users.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.created(c, user)
}

func (h *Handler) listUsers(c *gin.Context) {
	var query services.UserQuery
	if !h.bindQuery(c, &query) {
		return
	}
	page, err := h.svc.Users.ListUsers(c.Request.Context(), query)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, page)
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.svc.Users.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, user)
}

func (h *Handler) updateUser(c *gin.Context) {
	var req services.UpdateUserInput
	if !h.bindJSON(c, &req) {
		return
	}
	user, err := h.svc.Users.UpdateUser(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(c, user)
}

func (h *Handler) removeUser(c *gin.Context) {
	if err := h.svc.Users.RemoveUser(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	h.deleted(c)
}
