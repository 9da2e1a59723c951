package dto

// Grouped statistics rows scanned with pgx.RowToStructByName; the db tags
// must match the column aliases in the stats repository.

type CountByGroupDTO struct {
	GroupName string `json:"group_name" db:"group_name"`
	Count     int64  `json:"count" db:"count"`
}

type RequestTrendPointDTO struct {
	Month    string `json:"month" db:"month"`
	Status   string `json:"status" db:"status"`
	Priority string `json:"priority" db:"priority"`
	Count    int64  `json:"count" db:"count"`
}

type CostSummaryDTO struct {
	TotalEstimated   float64 `json:"total_estimated" db:"total_estimated"`
	TotalActual      float64 `json:"total_actual" db:"total_actual"`
	AverageEstimated float64 `json:"average_estimated" db:"average_estimated"`
	AverageActual    float64 `json:"average_actual" db:"average_actual"`
	RequestCount     int64   `json:"request_count" db:"request_count"`
}

type SLAComplianceDTO struct {
	TotalWithSLA   int64   `json:"total_with_sla" db:"total_with_sla"`
	OnTime         int64   `json:"on_time" db:"on_time"`
	ComplianceRate float64 `json:"compliance_rate"`
}

type TeamPerformanceDTO struct {
	TeamID             uint64  `json:"team_id" db:"team_id"`
	TeamName           string  `json:"team_name" db:"team_name"`
	CompletedCount     int64   `json:"completed_count" db:"completed_count"`
	AvgResolutionDays  float64 `json:"avg_resolution_days" db:"avg_resolution_days"`
}

type DashboardSummaryDTO struct {
	EquipmentByStatus []CountByGroupDTO `json:"equipment_by_status"`
	RequestsByStatus  []CountByGroupDTO `json:"requests_by_status"`
	OpenRequests      int64             `json:"open_requests"`
	CriticalRequests  int64             `json:"critical_requests"`
	LowStockParts     int64             `json:"low_stock_parts"`
	ExceededBudgets   int64             `json:"exceeded_budgets"`
}

// ReportRowDTO is one line of the maintenance-request report (JSON or XLSX).
type ReportRowDTO struct {
	RequestID     uint64 `json:"request_id" db:"request_id"`
	Title         string `json:"title" db:"title"`
	RequestType   string `json:"request_type" db:"request_type"`
	Priority      string `json:"priority" db:"priority"`
	Status        string `json:"status" db:"status"`
	EquipmentName string `json:"equipment_name" db:"equipment_name"`
	TeamName      string `json:"team_name" db:"team_name"`
	CreatedAt     string `json:"created_at" db:"created_at"`
	CompletedAt   string `json:"completed_at" db:"completed_at"`
	ActualCost    float64 `json:"actual_cost" db:"actual_cost"`
}
