package api

import (
	"github.com/gin-gonic/gin"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/services"
)

func (h *Handler) login(c *gin.Context) {
	var req services.LoginInput
	if !h.bindJSON(c, &req) {
		return
	}
	session, err := h.svc.Auth.Login(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, session)
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.svc.Auth.Me(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, user)
}

func (h *Handler) changeOwnPassword(c *gin.Context) {
	var req services.ChangePasswordInput
	if !h.bindJSON(c, &req) {
		return
	}
	if err := h.svc.Users.ChangePassword(c.Request.Context(), actorFrom(c).UserID, req); err != nil {
		h.fail(c, err)
		return
	}
	h.updated(c, nil)
}
