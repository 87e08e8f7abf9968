package api

import (
	"github.com/gin-gonic/gin"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/services"
)

// Handler serves the /api/v1 tree
type Handler struct {
	svc *services.Services
	tr  i18n.Translator
}

// NewHandler creates a new handler
func NewHandler(svc *services.Services, tr i18n.Translator) *Handler {
	return &Handler{svc: svc, tr: tr}
}

// RegisterRoutes registers every route under group. Employees and admins
// share one tree; admin-only routes carry the role guard.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/auth/login", h.login)

	authed := group.Group("", Auth(h.svc.Auth, h.tr))
	admin := RequireRole(h.tr, models.RoleAdmin)
	employee := RequireRole(h.tr, models.RoleEmployee)

	authed.GET("/auth/me", h.me)
	authed.PATCH("/auth/password", h.changeOwnPassword)

	clients := authed.Group("/clients")
	{
		clients.GET("", h.listClients)
		clients.POST("", h.createClient)
		clients.GET("/check-exists", h.checkClientExists)
		clients.GET("/search", h.searchClients)
		clients.GET("/:id", h.getClient)
		clients.GET("/:id/details", h.getClientWithOrders)
		clients.GET("/:id/orders", h.listClientOrders)
		clients.POST("/:id/orders", h.createOrderForClient)
		clients.GET("/:id/invoices", h.listClientInvoices)
		clients.GET("/:id/financial-report", h.clientFinancialReport)
		clients.GET("/:id/offers", h.listClientOffers)
		clients.PATCH("/:id", h.updateClient)
		clients.DELETE("/:id", admin, h.deleteClient)
	}

	orders := authed.Group("/orders")
	{
		orders.GET("", h.listOrders)
		orders.GET("/status/:status", h.ordersByStatus)
		orders.GET("/:id", h.getOrder)
		orders.PATCH("/:id", h.updateOrder)
		orders.DELETE("/:id", admin, h.removeOrder)
		orders.POST("/:id/services", h.addOrderServices)
		orders.PATCH("/:id/status", h.changeOrderStatus)
		orders.GET("/:id/status-history", h.orderStatusHistory)
		orders.GET("/:id/invoice", h.getOrderInvoice)

		guarantee := "/:id/services/:serviceId/guarantees/:guaranteeId"
		orders.PATCH(guarantee+"/status", admin, h.updateGuaranteeStatus)
		orders.PATCH(guarantee+"/acceptance", admin, h.updateGuaranteeAcceptance)
		orders.POST(guarantee+"/approval-request", employee, h.requestGuaranteeApproval)
	}

	guarantees := authed.Group("/guarantees")
	{
		guarantees.GET("/pending", admin, h.pendingGuarantees)
		guarantees.GET("/active", h.activeGuarantees)
	}

	invoices := authed.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/export", h.exportInvoices)
		invoices.GET("/:id", h.getInvoice)
		invoices.PATCH("/:id", h.updateInvoice)
		invoices.PATCH("/:id/status", admin, h.updateInvoiceStatus)
		invoices.DELETE("/:id", admin, h.softDeleteInvoice)
		invoices.POST("/:id/restore", admin, h.restoreInvoice)
	}

	offers := authed.Group("/offers")
	{
		offers.POST("", h.createOffer)
		offers.GET("", h.listOffers)
		offers.GET("/:id", h.getOffer)
		offers.GET("/:id/total", h.offerTotal)
		offers.PATCH("/:id", h.updateOffer)
		offers.DELETE("/:id", h.removeOffer)
		offers.POST("/:id/services", h.addOfferService)
		offers.PATCH("/:id/services/:serviceId", h.updateOfferService)
		offers.DELETE("/:id/services/:serviceId", h.removeOfferService)
		offers.POST("/:id/convert", h.convertOffer)
	}

	workOrders := authed.Group("/work-orders")
	{
		workOrders.POST("", h.createWorkOrder)
		workOrders.GET("", h.listWorkOrders)
		workOrders.GET("/mine", h.myWorkOrders)
		workOrders.GET("/:id", h.getWorkOrder)
		workOrders.PATCH("/:id", h.updateWorkOrder)
		workOrders.DELETE("/:id", admin, h.removeWorkOrder)
		workOrders.PUT("/:id/employees", h.assignWorkOrderEmployees)
		workOrders.PATCH("/:id/status", h.changeWorkOrderStatus)
	}

	branches := authed.Group("/branches")
	{
		branches.GET("", h.listBranches)
		branches.POST("", admin, h.createBranch)
		branches.GET("/:id", h.getBranch)
		branches.PATCH("/:id", admin, h.updateBranch)
		branches.DELETE("/:id", admin, h.removeBranch)
		branches.POST("/:id/expenses", admin, h.addBranchExpense)
		branches.GET("/:id/financial-report", admin, h.branchFinancialReport)
		branches.GET("/:id/tasks", h.listBranchTasks)
	}

	vouchers := authed.Group("/vouchers")
	{
		vouchers.POST("", h.createVoucher)
		vouchers.GET("", h.listVouchers)
		vouchers.GET("/statistics", admin, h.voucherStatistics)
		vouchers.GET("/:id", h.getVoucher)
		vouchers.PATCH("/:id", h.updateVoucher)
		vouchers.DELETE("/:id", admin, h.removeVoucher)
		vouchers.PATCH("/:id/approve", admin, h.approveVoucher)
		vouchers.PATCH("/:id/reject", admin, h.rejectVoucher)
	}

	tasks := authed.Group("/tasks")
	{
		tasks.POST("", admin, h.createTask)
		tasks.GET("/:id", h.getTask)
		tasks.PATCH("/:id", admin, h.updateTask)
		tasks.PATCH("/:id/status", h.updateTaskStatus)
		tasks.DELETE("/:id", admin, h.removeTask)
	}

	users := authed.Group("/users", admin)
	{
		users.POST("", h.createUser)
		users.GET("", h.listUsers)
		users.GET("/:id", h.getUser)
		users.PATCH("/:id", h.updateUser)
		users.DELETE("/:id", h.removeUser)
	}

	carTypes := authed.Group("/car-types")
	{
		carTypes.GET("", h.listCarTypes)
		carTypes.GET("/:id", h.getCarType)
		carTypes.POST("", admin, h.createCarType)
		carTypes.PATCH("/:id", admin, h.updateCarType)
		carTypes.DELETE("/:id", admin, h.removeCarType)
	}

	reports := authed.Group("/reports")
	{
		reports.POST("", employee, h.createReport)
		reports.GET("", h.listReports)
		reports.GET("/:id", h.getReport)
		reports.PATCH("/:id/status", admin, h.updateReportStatus)
		reports.DELETE("/:id", h.removeReport)
	}

	catalog := authed.Group("/services-catalog")
	{
		catalog.GET("", h.listCatalog)
		catalog.GET("/:id", h.getCatalogEntry)
		catalog.POST("", admin, h.createCatalogEntry)
		catalog.PATCH("/:id", admin, h.updateCatalogEntry)
		catalog.DELETE("/:id", admin, h.removeCatalogEntry)
	}
}
