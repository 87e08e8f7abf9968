package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type invoiceStatusRequest struct {
	Status models.InvoiceStatus `json:"status" binding:"required"`
}

func (h *Handler) createInvoice(c *gin.Context) {
	var req services.CreateInvoiceInput
	if !h.bindJSON(c, &req) {
		return
	}
	invoice, err := h.svc.Invoices.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.created(c, invoice)
}

func (h *Handler) listInvoices(c *gin.Context) {
	var query services.InvoiceQuery
	if !h.bindQuery(c, &query) {
		return
	}
	invoices, err := h.svc.Invoices.FindAll(c.Request.Context(), query)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, invoices)
}

func (h *Handler) exportInvoices(c *gin.Context) {
	var query services.InvoiceQuery
	if !h.bindQuery(c, &query) {
		return
	}
	var buf bytes.Buffer
	if err := h.svc.Invoices.ExportInvoices(c.Request.Context(), &buf, query, language(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="invoices-%s.xlsx"`, c.GetString(requestIDKey)))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *Handler) getInvoice(c *gin.Context) {
	view, err := h.svc.Invoices.FindOne(c.Request.Context(), c.Param("id"), language(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, view)
}

func (h *Handler) updateInvoice(c *gin.Context) {
	var req services.UpdateInvoiceInput
	if !h.bindJSON(c, &req) {
		return
	}
	invoice, err := h.svc.Invoices.UpdateInvoice(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(c, invoice)
}

func (h *Handler) updateInvoiceStatus(c *gin.Context) {
	var req invoiceStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	invoice, err := h.svc.Invoices.UpdateInvoiceStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(c, invoice)
}

func (h *Handler) softDeleteInvoice(c *gin.Context) {
	if err := h.svc.Invoices.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	h.deleted(c)
}

func (h *Handler) restoreInvoice(c *gin.Context) {
	invoice, err := h.svc.Invoices.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, http.StatusOK, i18n.InvoiceRestored, invoice)
}

func (h *Handler) listClientInvoices(c *gin.Context) {
	invoices, err := h.svc.Invoices.FindByClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, invoices)
}

func (h *Handler) clientFinancialReport(c *gin.Context) {
	report, err := h.svc.Invoices.GetClientFinancialReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, report)
}
