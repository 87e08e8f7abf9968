package api

import (
	"github.com/gin-gonic/gin"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/services"
)

func (h *Handler) createOffer(c *gin.Context) {
	var req services.CreateOfferInput
	if !h.bindJSON(c, &req) {
		return
	}
	offer, err := h.svc.Offers.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.created(c, offer)
}

func (h *Handler) listOffers(c *gin.Context) {
	var page services.PageQuery
	if !h.bindQuery(c, &page) {
		return
	}
	offers, err := h.svc.Offers.FindAll(c.Request.Context(), page)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, offers)
}

func (h *Handler) listClientOffers(c *gin.Context) {
	offers, err := h.svc.Offers.FindByClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, offers)
}

func (h *Handler) getOffer(c *gin.Context) {
	offer, err := h.svc.Offers.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, offer)
}

func (h *Handler) offerTotal(c *gin.Context) {
	total, err := h.svc.Offers.TotalPrice(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, gin.H{"totalPrice": total})
}

func (h *Handler) updateOffer(c *gin.Context) {
	var req services.UpdateOfferInput
	if !h.bindJSON(c, &req) {
		return
	}
	offer, err := h.svc.Offers.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(c, offer)
}

func (h *Handler) removeOffer(c *gin.Context) {
	if err := h.svc.Offers.Remove(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	h.deleted(c)
}

func (h *Handler) addOfferService(c *gin.Context) {
	var req services.ServiceLineInput
	if !h.bindJSON(c, &req) {
		return
	}
	offer, err := h.svc.Offers.AddService(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(c, offer)
}

func (h *Handler) updateOfferService(c *gin.Context) {
	var req services.ServiceLineInput
	if !h.bindJSON(c, &req) {
		return
	}
	offer, err := h.svc.Offers.UpdateService(c.Request.Context(), c.Param("id"), c.Param("serviceId"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(c, offer)
}

func (h *Handler) removeOfferService(c *gin.Context) {
	offer, err := h.svc.Offers.RemoveService(c.Request.Context(), c.Param("id"), c.Param("serviceId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(c, offer)
}

func (h *Handler) convertOffer(c *gin.Context) {
	var req services.ConvertOfferInput
	if !h.bindJSON(c, &req) {
		return
	}
	converted, err := h.svc.Offers.ConvertOfferToOrder(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.created(c, converted)
}
