// Файл: internal/routes/main_router_test.go
package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/migrator"
	"gearguard/migrations"
	"gearguard/pkg/customvalidator"
	"gearguard/pkg/database/postgresql"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/utils"
)

// MaintenanceTestSuite гоняет API против настоящего PostgreSQL.
// Запускается только если задан TEST_DATABASE_URL.
type MaintenanceTestSuite struct {
	suite.Suite
	Echo *echo.Echo
	DB   *pgxpool.Pool
	Bus  *eventbus.Bus
}

func (s *MaintenanceTestSuite) SetupSuite() {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		s.T().Skip("TEST_DATABASE_URL не задан, интеграционные тесты пропущены")
	}

	nopLogger := zap.NewNop()
	dbConn, err := postgresql.Connect(context.Background(), dsn)
	s.Require().NoError(err)
	s.DB = dbConn

	m := migrator.FromPool(dbConn, migrations.FS, nopLogger)
	s.Require().NoError(m.Up())

	e := echo.New()
	v := validator.New()
	s.Require().NoError(customvalidator.RegisterCustomValidations(v))
	e.Validator = utils.NewValidator(v)

	s.Bus = eventbus.New(nopLogger)
	InitRouter(e, dbConn, s.Bus, &Loggers{Main: nopLogger, Maintenance: nopLogger, Report: nopLogger})
	s.Echo = e
}

func (s *MaintenanceTestSuite) SetupTest() {
	_, err := s.DB.Exec(context.Background(),
		`TRUNCATE maintenance_requests, equipments, users, teams RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}

func (s *MaintenanceTestSuite) TearDownSuite() {
	if s.Bus != nil {
		s.Bus.Wait()
	}
	if s.DB != nil {
		s.DB.Close()
	}
}

func (s *MaintenanceTestSuite) do(method, target string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		s.Require().NoError(err)
	}

	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	return rec, decoded
}

func (s *MaintenanceTestSuite) createTeam(name string) uint64 {
	rec, body := s.do(http.MethodPost, "/api/teams", map[string]interface{}{"name": name})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return uint64(body["id"].(float64))
}

func (s *MaintenanceTestSuite) createEquipment(payload map[string]interface{}) uint64 {
	rec, body := s.do(http.MethodPost, "/api/equipment", payload)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return uint64(body["id"].(float64))
}

func (s *MaintenanceTestSuite) TestEmptyStats() {
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/maintenance/stats", nil))

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"teamStats":[],"categoryStats":[]}`, rec.Body.String())
}

func (s *MaintenanceTestSuite) TestRequestLifecycle() {
	t1 := s.createTeam("Mechanics")
	t2 := s.createTeam("IT Support")
	equipmentID := s.createEquipment(map[string]interface{}{
		"name":              "CNC Machine 01",
		"serialNumber":      "CNC-2023-001",
		"category":          "Machinery",
		"maintenanceTeamId": t1,
	})

	// заявка получает команду оборудования и этап New
	rec, created := s.do(http.MethodPost, "/api/maintenance", map[string]interface{}{
		"subject":      "Spindle noise",
		"equipmentId":  equipmentID,
		"stage":        "Repaired",
		"technicianId": "",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	s.Equal(float64(t1), created["teamId"])
	s.Equal("New", created["stage"])
	requestID := uint64(created["id"].(float64))

	// смена команды оборудования не влияет на уже созданную заявку
	_, err := s.DB.Exec(context.Background(), `UPDATE equipments SET maintenance_team_id = $1 WHERE id = $2`, t2, equipmentID)
	s.Require().NoError(err)

	rec, repaired := s.do(http.MethodPatch, fmt.Sprintf("/api/maintenance/%d/stage", requestID),
		map[string]interface{}{"stage": "Repaired", "duration": 2.5})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal(float64(t1), repaired["teamId"])
	s.Equal(2.5, repaired["duration"])
	s.NotNil(repaired["completionDate"])

	rec, _ = s.do(http.MethodPatch, fmt.Sprintf("/api/maintenance/%d/stage", requestID),
		map[string]interface{}{"stage": "Scrap"})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec, equipment := s.do(http.MethodGet, fmt.Sprintf("/api/equipment/%d", equipmentID), nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("Scrap", equipment["status"])
	s.Equal(float64(0), equipment["openRequestsCount"])

	rec = httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/maintenance/stats", nil))
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"teamStats":[{"name":"Mechanics","count":1}],"categoryStats":[{"name":"Machinery","count":1}]}`, rec.Body.String())
}

func (s *MaintenanceTestSuite) createRequest(equipmentID uint64, subject string) uint64 {
	rec, body := s.do(http.MethodPost, "/api/maintenance", map[string]interface{}{
		"subject":     subject,
		"equipmentId": equipmentID,
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return uint64(body["id"].(float64))
}

func (s *MaintenanceTestSuite) getStats() dto.MaintenanceStatsDTO {
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/maintenance/stats", nil))
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var stats dto.MaintenanceStatsDTO
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &stats))
	return stats
}

func sumCounts(items []dto.StatItemDTO) int64 {
	var total int64
	for _, item := range items {
		total += item.Count
	}
	return total
}

func (s *MaintenanceTestSuite) TestStatsFoldCategoriesAndSkipUnresolvedTeams() {
	electrical := s.createTeam("Electrical")
	hydraulics := s.createTeam("Hydraulics")

	// без категории и без команды
	bare := s.createEquipment(map[string]interface{}{"name": "Workbench"})
	// пустая категория из формы
	blank := s.createEquipment(map[string]interface{}{
		"name":              "Generator",
		"category":          "",
		"maintenanceTeamId": electrical,
	})
	pump := s.createEquipment(map[string]interface{}{
		"name":              "Pump P-1",
		"category":          "Pumps",
		"maintenanceTeamId": hydraulics,
	})

	// категория из одних пробелов попадает в базу только в обход API
	var spaces uint64
	err := s.DB.QueryRow(context.Background(),
		`INSERT INTO equipments (name, category, maintenance_team_id) VALUES ($1, $2, $3) RETURNING id`,
		"Compressor", "   ", electrical,
	).Scan(&spaces)
	s.Require().NoError(err)

	s.createRequest(bare, "Loose leg")
	s.createRequest(blank, "No output")
	s.createRequest(spaces, "Pressure drop")
	s.createRequest(pump, "Seal leak")
	orphan := s.createRequest(pump, "Noise")

	// снимок команды указывает на несуществующую команду
	_, err = s.DB.Exec(context.Background(), `UPDATE maintenance_requests SET team_id = 999999 WHERE id = $1`, orphan)
	s.Require().NoError(err)

	stats := s.getStats()

	s.ElementsMatch([]dto.StatItemDTO{
		{Name: "Uncategorized", Count: 3},
		{Name: "Pumps", Count: 2},
	}, stats.CategoryStats)
	s.Equal(int64(5), sumCounts(stats.CategoryStats))

	s.ElementsMatch([]dto.StatItemDTO{
		{Name: "Electrical", Count: 2},
		{Name: "Hydraulics", Count: 1},
	}, stats.TeamStats)
	s.Equal(int64(3), sumCounts(stats.TeamStats))
}

func (s *MaintenanceTestSuite) TestDuplicateSerialAndUnknownEquipment() {
	s.createEquipment(map[string]interface{}{"name": "Printer", "serialNumber": "PRN-1"})

	rec, _ := s.do(http.MethodPost, "/api/equipment", map[string]interface{}{"name": "Printer 2", "serialNumber": "PRN-1"})
	s.Equal(http.StatusBadRequest, rec.Code)

	// пустой серийный номер хранится как NULL и не конфликтует
	s.createEquipment(map[string]interface{}{"name": "Chair", "serialNumber": ""})
	s.createEquipment(map[string]interface{}{"name": "Desk", "serialNumber": ""})

	rec, body := s.do(http.MethodPost, "/api/maintenance", map[string]interface{}{"subject": "Ghost", "equipmentId": 9999})
	s.Equal(http.StatusNotFound, rec.Code)
	s.NotEmpty(body["error"])

	rec, _ = s.do(http.MethodPatch, "/api/maintenance/9999/stage", map[string]interface{}{"stage": "Repaired"})
	s.Equal(http.StatusNotFound, rec.Code)
}

func TestMaintenanceSuite(t *testing.T) {
	suite.Run(t, new(MaintenanceTestSuite))
}
