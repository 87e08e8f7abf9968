package api

import (
	"github.com/gin-gonic/gin"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/services"
)

func (h *Handler) createVoucher(c *gin.Context) {
	var req services.VoucherInput
	if !h.bindJSON(c, &req) {
		return
	}
	voucher, err := h.svc.Vouchers.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.created(c, voucher)
}

func (h *Handler) listVouchers(c *gin.Context) {
	var query services.VoucherQuery
	if !h.bindQuery(c, &query) {
		return
	}
	vouchers, err := h.svc.Vouchers.FindAll(c.Request.Context(), query)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, vouchers)
}

func (h *Handler) voucherStatistics(c *gin.Context) {
	stats, err := h.svc.Vouchers.GetStatistics(c.Request.Context(), c.Query("branchId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, stats)
}

func (h *Handler) getVoucher(c *gin.Context) {
	voucher, err := h.svc.Vouchers.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, voucher)
}

func (h *Handler) updateVoucher(c *gin.Context) {
	var req services.UpdateVoucherInput
	if !h.bindJSON(c, &req) {
		return
	}
	voucher, err := h.svc.Vouchers.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(c, voucher)
}

func (h *Handler) removeVoucher(c *gin.Context) {
	if err := h.svc.Vouchers.Remove(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	h.deleted(c)
}

func (h *Handler) approveVoucher(c *gin.Context) {
	voucher, err := h.svc.Vouchers.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(c, voucher)
}

func (h *Handler) rejectVoucher(c *gin.Context) {
	voucher, err := h.svc.Vouchers.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(c, voucher)
}
