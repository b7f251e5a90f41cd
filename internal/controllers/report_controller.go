package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	"gearguard/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) GetStats(ctx echo.Context) error {
	stats, err := c.reportService.GetStats(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetStats: ошибка при расчете статистики", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, stats, http.StatusOK)
}

func (c *ReportController) GetKpis(ctx echo.Context) error {
	kpi, err := c.reportService.ComputeKpis(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetKpis: ошибка при расчете KPI", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, kpi, http.StatusOK)
}

func (c *ReportController) Export(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	data, err := c.reportService.GetRequestsForExport(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("Export: ошибка при выборке заявок", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	c.logger.Debug("Выгрузка заявок в Excel", zap.Int("rows", len(data)))
	return c.respondWithXLSX(ctx, data)
}

const exportSheet = "Заявки"

var exportHeaders = []string{
	"ID", "Тема", "Тип", "Приоритет", "Этап", "Оборудование", "Категория", "Команда",
	"Техник", "Плановая дата", "Длительность (ч)", "Дата завершения", "Просрочена", "Создана",
}

func requestToRow(item dto.MaintenanceRequestDTO) []interface{} {
	dateFmt := "02.01.2006"
	var equipment, category, team, technician, scheduled, completed string
	if item.Equipment != nil {
		equipment = item.Equipment.Name
		category = item.Equipment.Category.String
	}
	if item.Team != nil {
		team = item.Team.Name
	}
	if item.Technician != nil {
		technician = item.Technician.Name
	}
	if item.ScheduledDate.Valid {
		scheduled = item.ScheduledDate.Time.Format(dateFmt)
	}
	if item.CompletionDate.Valid {
		completed = item.CompletionDate.Time.Format(dateFmt + " 15:04")
	}
	overdue := "Нет"
	if item.IsOverdue {
		overdue = "Да"
	}

	return []interface{}{
		item.ID, item.Subject, item.Type, item.Priority, item.Stage, equipment, category, team,
		technician, scheduled, item.Duration, completed, overdue, item.CreatedAt.Format(dateFmt),
	}
}

// buildExportWorkbook собирает книгу: строка заголовков и по строке на заявку.
func buildExportWorkbook(data []dto.MaintenanceRequestDTO) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return nil, err
	}

	lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(exportSheet, "A1", lastHeader, style)
	}

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := requestToRow(item)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	_ = f.SetColWidth(exportSheet, "B", "B", 40)
	_ = f.SetColWidth(exportSheet, "F", "I", 25)
	_ = f.SetColWidth(exportSheet, "J", "N", 18)
	return f, nil
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, data []dto.MaintenanceRequestDTO) error {
	f, err := buildExportWorkbook(data)
	if err != nil {
		c.logger.Error("Export: не удалось сформировать файл", zap.Error(err))
		return utils.ErrorResponse(ctx, fmt.Errorf("формирование xlsx: %w", err), c.logger)
	}
	defer f.Close()

	fileName := fmt.Sprintf("maintenance_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
