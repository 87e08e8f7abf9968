package api

import (
	"github.com/gin-gonic/gin"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/services"
)

func (h *Handler) listCarTypes(c *gin.Context) {
	carTypes, err := h.svc.CarTypes.FindAll(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, carTypes)
}

func (h *Handler) getCarType(c *gin.Context) {
	carType, err := h.svc.CarTypes.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, carType)
}

func (h *Handler) createCarType(c *gin.Context) {
	var req services.CarTypeInput
	if !h.bindJSON(c, &req) {
		return
	}
	carType, err := h.svc.CarTypes.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.created(c, carType)
}

func (h *Handler) updateCarType(c *gin.Context) {
	var req services.CarTypeInput
	if !h.bindJSON(c, &req) {
		return
	}
	carType, err := h.svc.CarTypes.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(c, carType)
}

func (h *Handler) removeCarType(c *gin.Context) {
	if err := h.svc.CarTypes.Remove(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	h.deleted(c)
}
