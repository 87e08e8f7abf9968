package i18n

// Message keys
const (
	MsgOK      = "success.ok"
	MsgCreated = "success.created"
	MsgUpdated = "success.updated"
	MsgDeleted = "success.deleted"

	ErrInternal     = "error.internal"
	ErrBadRequest   = "error.bad_request"
	ErrValidation   = "error.validation"
	ErrNotFound     = "error.not_found"
	ErrConflict     = "error.conflict"
	ErrUnauthorized = "error.unauthorized"
	ErrForbidden    = "error.forbidden"

	AuthInvalidCredentials = "auth.invalid_credentials"
	AuthTokenMissing       = "auth.token_missing"
	AuthTokenInvalid       = "auth.token_invalid"
	AuthUserInactive       = "auth.user_inactive"

	ClientNotFound            = "client.not_found"
	ClientNotExists           = "client.not_exists"
	ClientExistsPhone         = "client.exists_phone"
	ClientExistsSecondPhone   = "client.exists_second_phone"
	ClientExistsName          = "client.exists_name"
	ClientExistsBothSame      = "client.exists_both_same"
	ClientExistsBothDifferent = "client.exists_both_different"
	ClientConfirmExisting     = "client.confirm_existing"
	ClientPhoneTaken          = "client.phone_taken"
	ClientEmailTaken          = "client.email_taken"
	ClientInvalidLimit        = "client.invalid_limit"
	ClientInvalidOffset       = "client.invalid_offset"
	ClientCarDetailsRequired  = "client.car_details_required"

	OrderNotFound           = "order.not_found"
	OrderServicesRequired   = "order.services_required"
	OrderCarDetailsRequired = "order.car_details_required"
	OrderInvalidTransition  = "order.invalid_transition"
	OrderInvalidStatus      = "order.invalid_status"

	ServiceInvalidType     = "service.invalid_type"
	ServiceVariantMismatch = "service.variant_mismatch"
	ServicePolishGuarantee = "service.polish_guarantee"
	GuaranteeNotFound      = "guarantee.not_found"
	GuaranteeInvalidDates  = "guarantee.invalid_dates"
	GuaranteeInvalidStatus = "guarantee.invalid_status"
	GuaranteeRequestSent   = "guarantee.request_sent"
	GuaranteeStatusUpdated = "guarantee.status_updated"

	InvoiceNotFound          = "invoice.not_found"
	InvoiceOrderMismatch     = "invoice.order_mismatch"
	InvoiceAlreadyExists     = "invoice.already_exists"
	InvoiceInvalidTransition = "invoice.invalid_transition"
	InvoiceInvalidDateRange  = "invoice.invalid_date_range"
	InvoiceRestored          = "invoice.restored"

	OfferNotFound         = "offer.not_found"
	OfferServiceNotFound  = "offer.service_not_found"
	OfferAlreadyConverted = "offer.already_converted"
	OfferCarModelRequired = "offer.car_model_required"
	OfferInvalidCarSize   = "offer.invalid_car_size"
	OfferConverted        = "offer.converted"

	WorkOrderNotFound          = "work_order.not_found"
	WorkOrderEmployeesRequired = "work_order.employees_required"
	WorkOrderEmployeeNotFound  = "work_order.employee_not_found"
	WorkOrderTooManyEmployees  = "work_order.too_many_employees"
	WorkOrderInvalidTransition = "work_order.invalid_transition"

	BranchNotFound       = "branch.not_found"
	BranchNameTaken      = "branch.name_taken"
	BranchInvalidAmount  = "branch.invalid_amount"
	BranchBudgetExceeded = "branch.budget_exceeded"

	VoucherNotFound      = "voucher.not_found"
	VoucherNotDraft      = "voucher.not_draft"
	VoucherInvalidAmount = "voucher.invalid_amount"

	TaskNotFound     = "task.not_found"
	TaskInvalidDates = "task.invalid_dates"

	UserNotFound        = "user.not_found"
	UserEmployeeIDTaken = "user.employee_id_taken"
	UserWrongPassword   = "user.wrong_password"

	CarTypeNotFound  = "car_type.not_found"
	CarTypeNameTaken = "car_type.name_taken"

	ReportNotFound = "report.not_found"

	CatalogNotFound  = "catalog.not_found"
	CatalogNameTaken = "catalog.name_taken"
)
