package api

import (
	"github.com/gin-gonic/gin"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/services"
)

func (h *Handler) listCatalog(c *gin.Context) {
	entries, err := h.svc.Catalog.FindAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, entries)
}

func (h *Handler) getCatalogEntry(c *gin.Context) {
	entry, err := h.svc.Catalog.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, entry)
}

func (h *Handler) createCatalogEntry(c *gin.Context) {
	var req services.CatalogInput
	if !h.bindJSON(c, &req) {
		return
	}
	entry, err := h.svc.Catalog.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.created(c, entry)
}

func (h *Handler) updateCatalogEntry(c *gin.Context) {
	var req services.CatalogInput
	if !h.bindJSON(c, &req) {
		return
	}
	entry, err := h.svc.Catalog.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(c, entry)
}

func (h *Handler) removeCatalogEntry(c *gin.Context) {
	if err := h.svc.Catalog.Remove(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	h.deleted(c)
}
