package api

import (
	"github.com/gin-gonic/gin"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/services"
)

type reportStatusRequest struct {
	Status models.ReportStatus `json:"status" binding:"required"`
}

func (h *Handler) createReport(c *gin.Context) {
	var req services.ReportInput
	if !h.bindJSON(c, &req) {
		return
	}
	report, err := h.svc.Reports.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.created(c, report)
}

func (h *Handler) listReports(c *gin.Context) {
	var query services.ReportQuery
	if !h.bindQuery(c, &query) {
		return
	}
	reports, err := h.svc.Reports.FindAll(c.Request.Context(), actorFrom(c), query)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, reports)
}

func (h *Handler) getReport(c *gin.Context) {
	report, err := h.svc.Reports.FindOne(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, report)
}

func (h *Handler) updateReportStatus(c *gin.Context) {
	var req reportStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	report, err := h.svc.Reports.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(c, report)
}

func (h *Handler) removeReport(c *gin.Context) {
	if err := h.svc.Reports.Remove(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	h.deleted(c)
}
