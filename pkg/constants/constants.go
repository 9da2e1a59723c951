package constants

// Shared enumerations. Services validate writes against these values and the
// client consumes them from /api/meta/enums, so there is exactly one place
// where they are defined.

// --- EQUIPMENT ---
const (
	EquipmentStatusActive           = "Active"
	EquipmentStatusUnderMaintenance = "Under Maintenance"
	EquipmentStatusScrapped         = "Scrapped"
)

var EquipmentStatuses = []string{
	EquipmentStatusActive,
	EquipmentStatusUnderMaintenance,
	EquipmentStatusScrapped,
}

// --- MAINTENANCE REQUESTS ---
const (
	RequestStatusNew        = "New"
	RequestStatusInProgress = "In Progress"
	RequestStatusRepaired   = "Repaired"
	RequestStatusScrap      = "Scrap"
)

var RequestStatuses = []string{
	RequestStatusNew,
	RequestStatusInProgress,
	RequestStatusRepaired,
	RequestStatusScrap,
}

const (
	RequestTypeCorrective = "Corrective"
	RequestTypePreventive = "Preventive"

	// SLARequestTypeBoth is only valid on SLA policies, never on requests.
	SLARequestTypeBoth = "Both"
)

const (
	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// PriorityRank orders priorities for board sorting, highest first.
var PriorityRank = map[string]int{
	PriorityCritical: 4,
	PriorityHigh:     3,
	PriorityMedium:   2,
	PriorityLow:      1,
}

// --- SPARE PARTS ---
const (
	StockStatusInStock      = "In Stock"
	StockStatusLowStock     = "Low Stock"
	StockStatusOutOfStock   = "Out of Stock"
	StockStatusDiscontinued = "Discontinued"
)

// --- BUDGETS ---
const (
	BudgetStatusActive   = "Active"
	BudgetStatusExceeded = "Exceeded"
	BudgetStatusClosed   = "Closed"
)

const (
	BudgetPeriodMonthly   = "Monthly"
	BudgetPeriodQuarterly = "Quarterly"
	BudgetPeriodAnnual    = "Annual"
)

// --- USERS ---
const (
	RoleUser       = "User"
	RoleTechnician = "Technician"
	RoleManager    = "Manager"
)

var Roles = []string{RoleUser, RoleTechnician, RoleManager}

// --- SLA TIME UNITS ---
const (
	TimeUnitMinutes = "minutes"
	TimeUnitHours   = "hours"
	TimeUnitDays    = "days"
)

// --- NOTIFICATIONS ---
const (
	NotificationTypeStockAlert    = "stock_alert"
	NotificationTypeBudgetAlert   = "budget_alert"
	NotificationTypeRequestUpdate = "request_update"
)

const (
	NotificationPriorityLow    = "low"
	NotificationPriorityMedium = "medium"
	NotificationPriorityHigh   = "high"
)

// --- AUDIT ---
const (
	AuditActionCreate       = "CREATE"
	AuditActionUpdate       = "UPDATE"
	AuditActionDelete       = "DELETE"
	AuditActionScrap        = "SCRAP"
	AuditActionStockAdjust  = "STOCK_ADJUST"
	AuditActionExpenseAdd   = "EXPENSE_ADD"
	AuditActionMemberAdd    = "MEMBER_ADD"
	AuditActionMemberRemove = "MEMBER_REMOVE"
)

// --- POLYMORPHIC ENTITY REFERENCES (attachments, audit logs) ---
const (
	EntityTypeEquipment          = "equipment"
	EntityTypeMaintenanceRequest = "maintenance_request"
	EntityTypeTeam               = "team"
	EntityTypeSparePart          = "spare_part"
	EntityTypeBudget             = "budget"
	EntityTypeSLA                = "sla"
	EntityTypeUser               = "user"
)

var EntityTypes = []string{
	EntityTypeEquipment,
	EntityTypeMaintenanceRequest,
	EntityTypeTeam,
	EntityTypeSparePart,
	EntityTypeBudget,
	EntityTypeSLA,
	EntityTypeUser,
}

func IsValidEntityType(v string) bool {
	for _, t := range EntityTypes {
		if t == v {
			return true
		}
	}
	return false
}

func Contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
