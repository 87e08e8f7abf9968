package api

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/services"
)

type expenseRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) createBranch(c *gin.Context) {
	var req services.BranchInput
	if !h.bindJSON(c, &req) {
		return
	}
	branch, err := h.svc.Branches.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.created(c, branch)
}

func (h *Handler) listBranches(c *gin.Context) {
	var page services.PageQuery
	if !h.bindQuery(c, &page) {
		return
	}
	branches, err := h.svc.Branches.FindAll(c.Request.Context(), page)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, branches)
}

func (h *Handler) getBranch(c *gin.Context) {
	branch, err := h.svc.Branches.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, branch)
}

func (h *Handler) updateBranch(c *gin.Context) {
	var req services.UpdateBranchInput
	if !h.bindJSON(c, &req) {
		return
	}
	branch, err := h.svc.Branches.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(c, branch)
}

func (h *Handler) removeBranch(c *gin.Context) {
	if err := h.svc.Branches.Remove(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	h.deleted(c)
}

func (h *Handler) addBranchExpense(c *gin.Context) {
	var req expenseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	branch, err := h.svc.Branches.AddExpense(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(c, branch)
}

func (h *Handler) branchFinancialReport(c *gin.Context) {
	report, err := h.svc.Branches.GetFinancialReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, report)
}

func (h *Handler) listBranchTasks(c *gin.Context) {
	var query services.TaskQuery
	if !h.bindQuery(c, &query) {
		return
	}
	page, err := h.svc.Tasks.FindForBranch(c.Request.Context(), c.Param("id"), query)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, page)
}
