package dto

type StatItemDTO struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type MaintenanceStatsDTO struct {
	TeamStats     []StatItemDTO `json:"teamStats"`
	CategoryStats []StatItemDTO `json:"categoryStats"`
}

type MaintenanceKpiDTO struct {
	TotalRequests     int     `json:"totalRequests"`
	OpenRequests      int     `json:"openRequests"`
	AvgRepairDuration float64 `json:"avgRepairDuration"`
}
