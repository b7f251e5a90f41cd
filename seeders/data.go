package seeders

import "gearguard/pkg/constants"

var teamsData = []string{
	"Electrical Team",
	"Mechanical Team",
	"IT Support",
}

type userSeed struct {
	Name     string
	Role     string
	TeamName string
}

var usersData = []userSeed{
	{Name: "John Doe", Role: constants.RoleTechnician, TeamName: "Electrical Team"},
	{Name: "Jane Smith", Role: constants.RoleManager, TeamName: "Mechanical Team"},
	{Name: "Mike Ross", Role: constants.RoleEmployee},
}

type equipmentSeed struct {
	Name           string
	SerialNumber   string
	Category       string
	Location       string
	Status         string
	TeamName       string
	TechnicianName string
}

var equipmentsData = []equipmentSeed{
	{
		Name: "Industrial Generator X500", SerialNumber: "GEN-2023-001", Category: "Heavy Machinery",
		Location: "Warehouse A", Status: constants.EquipmentOperational,
		TeamName: "Electrical Team", TechnicianName: "John Doe",
	},
	{
		Name: "CNC Milling Machine", SerialNumber: "CNC-99-X", Category: "Manufacturing",
		Location: "Production Floor", Status: constants.EquipmentOperational,
		TeamName: "Mechanical Team", TechnicianName: "John Doe",
	},
	{
		Name: "Office Server Rack", SerialNumber: "SRV-DELL-88", Category: "Electronics",
		Location: "Server Room", Status: constants.EquipmentMaintenance,
		TeamName: "IT Support", TechnicianName: "John Doe",
	},
	{
		Name: "Forklift Toyota 8FGU25", SerialNumber: "FL-TOY-25", Category: "Logistics",
		Location: "Loading Dock", Status: constants.EquipmentOperational,
		TeamName: "Mechanical Team",
	},
	{
		Name: "3D Printer Prusa i3", SerialNumber: "3DP-PRU-01", Category: "R&D",
		Location: "Lab 2", Status: constants.EquipmentDown,
		TeamName: "Mechanical Team",
	},
}
