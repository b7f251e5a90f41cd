package constants

// --- ЭТАПЫ ЗАЯВОК НА ОБСЛУЖИВАНИЕ (совпадают с CHECK в БД) ---
const (
	StageNew        = "New"
	StageInProgress = "In Progress"
	StageRepaired   = "Repaired"
	StageScrap      = "Scrap"
)

var Stages = []string{StageNew, StageInProgress, StageRepaired, StageScrap}

// Закрытые этапы: заявка больше не считается открытой
var ClosedStages = []string{StageRepaired, StageScrap}

func IsClosedStage(stage string) bool {
	for _, s := range ClosedStages {
		if s == stage {
			return true
		}
	}
	return false
}

// --- ТИПЫ ЗАЯВОК ---
const (
	RequestTypeCorrective = "Corrective"
	RequestTypePreventive = "Preventive"
)

var RequestTypes = []string{RequestTypeCorrective, RequestTypePreventive}

// --- ПРИОРИТЕТЫ ---
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}

// --- СТАТУСЫ ОБОРУДОВАНИЯ ---
const (
	EquipmentOperational = "Operational"
	EquipmentDown        = "Down"
	EquipmentMaintenance = "Maintenance"
	EquipmentScrap       = "Scrap"
)

var EquipmentStatuses = []string{EquipmentOperational, EquipmentDown, EquipmentMaintenance, EquipmentScrap}

// --- РОЛИ ПОЛЬЗОВАТЕЛЕЙ ---
const (
	RoleTechnician = "Technician"
	RoleManager    = "Manager"
	RoleEmployee   = "Employee"
)

var Roles = []string{RoleTechnician, RoleManager, RoleEmployee}

// Роли, которым можно назначать заявки
var AssignableRoles = []string{RoleTechnician, RoleManager}

// Категория для оборудования без категории в отчетах
const UncategorizedLabel = "Uncategorized"

func Contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
