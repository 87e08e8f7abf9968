package i18n

var english = map[string]string{
	MsgOK:      "Operation completed successfully",
	MsgCreated: "Created successfully",
	MsgUpdated: "Updated successfully",
	MsgDeleted: "Deleted successfully",

	ErrInternal:     "Internal server error",
	ErrBadRequest:   "Invalid request",
	ErrValidation:   "Validation failed",
	ErrNotFound:     "Resource not found",
	ErrConflict:     "Resource already exists",
	ErrUnauthorized: "Unauthorized",
	ErrForbidden:    "You do not have permission to perform this action",

	AuthInvalidCredentials: "Invalid employee id or password",
	AuthTokenMissing:       "Authorization token is missing",
	AuthTokenInvalid:       "Authorization token is invalid or expired",
	AuthUserInactive:       "This account is inactive",

	ClientNotFound:            "Client not found",
	ClientNotExists:           "No matching client exists",
	ClientExistsPhone:         "A client with this phone number already exists",
	ClientExistsSecondPhone:   "A client with this second phone number already exists",
	ClientExistsName:          "A client with this full name already exists",
	ClientExistsBothSame:      "Phone number and full name belong to the same existing client",
	ClientExistsBothDifferent: "Phone number and full name belong to different existing clients",
	ClientConfirmExisting:     "The client already exists, confirm to add the order to the existing client",
	ClientPhoneTaken:          "Phone number is already used by another client",
	ClientEmailTaken:          "Email is already used by another client",
	ClientInvalidLimit:        "limit must be between 1 and 100",
	ClientInvalidOffset:       "offset must not be negative",
	ClientCarDetailsRequired:  "Car model, color and plate number are required when services are provided",

	OrderNotFound:           "Order not found",
	OrderServicesRequired:   "At least one service is required",
	OrderCarDetailsRequired: "Car model, manufacturer, color and plate number are required",
	OrderInvalidTransition:  "Order cannot move from %s to %s",
	OrderInvalidStatus:      "Invalid order status",

	ServiceInvalidType:     "Invalid service type %q",
	ServiceVariantMismatch: "Service %d must carry exactly the %s details",
	ServicePolishGuarantee: "Polish services cannot carry a guarantee",
	GuaranteeNotFound:      "Guarantee not found for this order and service",
	GuaranteeInvalidDates:  "Guarantee end date must be after its start date",
	GuaranteeInvalidStatus: "Guarantee status must be active or inactive",
	GuaranteeRequestSent:   "Guarantee approval request sent",
	GuaranteeStatusUpdated: "Guarantee status updated",

	InvoiceNotFound:          "Invoice not found",
	InvoiceOrderMismatch:     "The order does not belong to this client",
	InvoiceAlreadyExists:     "This order already has an invoice",
	InvoiceInvalidTransition: "Invoice cannot move from %s to %s",
	InvoiceInvalidDateRange:  "Start date must not be after end date",
	InvoiceRestored:          "Invoice restored",

	OfferNotFound:         "Price offer not found",
	OfferServiceNotFound:  "Service not found in this price offer",
	OfferAlreadyConverted: "This price offer was already converted to an order",
	OfferCarModelRequired: "Car model is required",
	OfferInvalidCarSize:   "Car size must be small, medium or large",
	OfferConverted:        "Price offer converted to an order",

	WorkOrderNotFound:          "Work order not found",
	WorkOrderEmployeesRequired: "At least one employee is required",
	WorkOrderEmployeeNotFound:  "Employee not found",
	WorkOrderTooManyEmployees:  "A work order takes at most three employees",
	WorkOrderInvalidTransition: "Work order cannot move from %s to %s",

	BranchNotFound:       "Branch not found",
	BranchNameTaken:      "A branch with this name already exists",
	BranchInvalidAmount:  "Expense amount must be greater than zero",
	BranchBudgetExceeded: "Expense exceeds the branch budget",

	VoucherNotFound:      "Voucher not found",
	VoucherNotDraft:      "Only draft vouchers can be changed",
	VoucherInvalidAmount: "Voucher amount must be greater than zero",

	TaskNotFound:     "Task not found",
	TaskInvalidDates: "Task dates are inconsistent",

	UserNotFound:        "User not found",
	UserEmployeeIDTaken: "Employee id is already in use",
	UserWrongPassword:   "Current password is incorrect",

	CarTypeNotFound:  "Car type not found",
	CarTypeNameTaken: "A car type with this name already exists",

	ReportNotFound: "Report not found",

	CatalogNotFound:  "Service not found",
	CatalogNameTaken: "A service with this name already exists",

	"label.service_type.protection": "Protection",
	"label.service_type.insulation": "Insulation",
	"label.service_type.polish":     "Polish",
	"label.service_type.addition":   "Addition",

	"label.client_branch.abhur":   "Abhur branch clients",
	"label.client_branch.madinah": "Madinah branch clients",
	"label.client_branch.other":   "Other",

	"label.invoice_status.open":     "Open",
	"label.invoice_status.pending":  "Pending",
	"label.invoice_status.approved": "Approved",
	"label.invoice_status.rejected": "Rejected",

	"label.guarantee_status.active":   "Active",
	"label.guarantee_status.inactive": "Inactive",

	"label.order_status.NEW_ORDER":   "New order",
	"label.order_status.IN_PROGRESS": "In progress",
	"label.order_status.MAINTENANCE": "Maintenance",
	"label.order_status.COMPLETED":   "Completed",
	"label.order_status.DELIVERED":   "Delivered",
	"label.order_status.CANCELLED":   "Cancelled",

	"label.car_size.small":  "Small",
	"label.car_size.medium": "Medium",
	"label.car_size.large":  "Large",
}

var arabic = map[string]string{
	MsgOK:      "تمت العملية بنجاح",
	MsgCreated: "تم الإنشاء بنجاح",
	MsgUpdated: "تم التحديث بنجاح",
	MsgDeleted: "تم الحذف بنجاح",

	ErrInternal:     "حدث خطأ في الخادم",
	ErrBadRequest:   "طلب غير صالح",
	ErrValidation:   "فشل التحقق من البيانات",
	ErrNotFound:     "العنصر غير موجود",
	ErrConflict:     "العنصر موجود مسبقاً",
	ErrUnauthorized: "غير مصرح",
	ErrForbidden:    "ليس لديك صلاحية لتنفيذ هذا الإجراء",

	AuthInvalidCredentials: "الرقم الوظيفي أو كلمة المرور غير صحيحة",
	AuthTokenMissing:       "رمز التفويض مفقود",
	AuthTokenInvalid:       "رمز التفويض غير صالح أو منتهي الصلاحية",
	AuthUserInactive:       "هذا الحساب غير مفعل",

	ClientNotFound:            "العميل غير موجود",
	ClientNotExists:           "لا يوجد عميل مطابق",
	ClientExistsPhone:         "يوجد عميل بنفس رقم الهاتف",
	ClientExistsSecondPhone:   "يوجد عميل بنفس رقم الهاتف الثاني",
	ClientExistsName:          "يوجد عميل بنفس الاسم الرباعي",
	ClientExistsBothSame:      "رقم الهاتف والاسم الرباعي يعودان لنفس العميل",
	ClientExistsBothDifferent: "رقم الهاتف والاسم الرباعي يعودان لعملاء مختلفين",
	ClientConfirmExisting:     "العميل موجود مسبقاً، يرجى التأكيد لإضافة الطلب للعميل الحالي",
	ClientPhoneTaken:          "رقم الهاتف مستخدم من قبل عميل آخر",
	ClientEmailTaken:          "البريد الإلكتروني مستخدم من قبل عميل آخر",
	ClientInvalidLimit:        "يجب أن يكون الحد بين 1 و 100",
	ClientInvalidOffset:       "يجب ألا تكون الإزاحة سالبة",
	ClientCarDetailsRequired:  "موديل السيارة ولونها ورقم اللوحة مطلوبة عند إضافة خدمات",

	OrderNotFound:           "الطلب غير موجود",
	OrderServicesRequired:   "يجب إضافة خدمة واحدة على الأقل",
	OrderCarDetailsRequired: "موديل السيارة والشركة المصنعة واللون ورقم اللوحة مطلوبة",
	OrderInvalidTransition:  "لا يمكن نقل الطلب من %s إلى %s",
	OrderInvalidStatus:      "حالة الطلب غير صالحة",

	ServiceInvalidType:     "نوع الخدمة %q غير صالح",
	ServiceVariantMismatch: "الخدمة رقم %d يجب أن تحتوي على تفاصيل %s فقط",
	ServicePolishGuarantee: "لا يمكن إضافة ضمان لخدمة التلميع",
	GuaranteeNotFound:      "الضمان غير موجود لهذا الطلب وهذه الخدمة",
	GuaranteeInvalidDates:  "يجب أن يكون تاريخ انتهاء الضمان بعد تاريخ بدايته",
	GuaranteeInvalidStatus: "حالة الضمان يجب أن تكون مفعل أو غير مفعل",
	GuaranteeRequestSent:   "تم إرسال طلب اعتماد الضمان",
	GuaranteeStatusUpdated: "تم تحديث حالة الضمان",

	InvoiceNotFound:          "الفاتورة غير موجودة",
	InvoiceOrderMismatch:     "الطلب لا يخص هذا العميل",
	InvoiceAlreadyExists:     "يوجد فاتورة لهذا الطلب مسبقاً",
	InvoiceInvalidTransition: "لا يمكن نقل الفاتورة من %s إلى %s",
	InvoiceInvalidDateRange:  "يجب ألا يكون تاريخ البداية بعد تاريخ النهاية",
	InvoiceRestored:          "تم استعادة الفاتورة",

	OfferNotFound:         "عرض السعر غير موجود",
	OfferServiceNotFound:  "الخدمة غير موجودة في عرض السعر",
	OfferAlreadyConverted: "تم تحويل عرض السعر إلى طلب مسبقاً",
	OfferCarModelRequired: "موديل السيارة مطلوب",
	OfferInvalidCarSize:   "حجم السيارة يجب أن يكون صغير أو متوسط أو كبير",
	OfferConverted:        "تم تحويل عرض السعر إلى طلب",

	WorkOrderNotFound:          "أمر العمل غير موجود",
	WorkOrderEmployeesRequired: "يجب تحديد موظف واحد على الأقل",
	WorkOrderEmployeeNotFound:  "الموظف غير موجود",
	WorkOrderTooManyEmployees:  "أمر العمل يقبل ثلاثة موظفين كحد أقصى",
	WorkOrderInvalidTransition: "لا يمكن نقل أمر العمل من %s إلى %s",

	BranchNotFound:       "الفرع غير موجود",
	BranchNameTaken:      "يوجد فرع بنفس الاسم",
	BranchInvalidAmount:  "يجب أن يكون مبلغ المصروف أكبر من صفر",
	BranchBudgetExceeded: "المصروف يتجاوز ميزانية الفرع",

	VoucherNotFound:      "السند غير موجود",
	VoucherNotDraft:      "لا يمكن تعديل إلا السندات في حالة المسودة",
	VoucherInvalidAmount: "يجب أن يكون مبلغ السند أكبر من صفر",

	TaskNotFound:     "المهمة غير موجودة",
	TaskInvalidDates: "تواريخ المهمة غير متسقة",

	UserNotFound:        "المستخدم غير موجود",
	UserEmployeeIDTaken: "الرقم الوظيفي مستخدم مسبقاً",
	UserWrongPassword:   "كلمة المرور الحالية غير صحيحة",

	CarTypeNotFound:  "نوع السيارة غير موجود",
	CarTypeNameTaken: "يوجد نوع سيارة بنفس الاسم",

	ReportNotFound: "التقرير غير موجود",

	CatalogNotFound:  "الخدمة غير موجودة",
	CatalogNameTaken: "توجد خدمة بنفس الاسم",

	"label.service_type.protection": "حماية",
	"label.service_type.insulation": "عزل حراري",
	"label.service_type.polish":     "تلميع",
	"label.service_type.addition":   "إضافات",

	"label.client_branch.abhur":   "عملاء فرع ابحر",
	"label.client_branch.madinah": "عملاء فرع المدينة",
	"label.client_branch.other":   "اخرى",

	"label.invoice_status.open":     "مفتوحة",
	"label.invoice_status.pending":  "قيد المراجعة",
	"label.invoice_status.approved": "معتمدة",
	"label.invoice_status.rejected": "مرفوضة",

	"label.guarantee_status.active":   "مفعل",
	"label.guarantee_status.inactive": "غير مفعل",

	"label.order_status.NEW_ORDER":   "طلب جديد",
	"label.order_status.IN_PROGRESS": "قيد التنفيذ",
	"label.order_status.MAINTENANCE": "صيانة",
	"label.order_status.COMPLETED":   "مكتمل",
	"label.order_status.DELIVERED":   "تم التسليم",
	"label.order_status.CANCELLED":   "ملغي",

	"label.car_size.small":  "صغير",
	"label.car_size.medium": "متوسط",
	"label.car_size.large":  "كبير",
}
