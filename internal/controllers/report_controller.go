package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"gearguard/internal/entities"
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

func (c *ReportController) GetReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	filter, format := c.parseFilters(ctx)
	c.logger.Debug("Запрос на отчет с фильтрами", zap.Any("filters", filter), zap.String("format", format))

	data, total, err := c.reportService.GetReport(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, data)
	}

	return utils.SuccessResponse(ctx, data, "Отчет успешно сформирован", http.StatusOK, total)
}

func (c *ReportController) GetSummary(ctx echo.Context) error {
	filter, _ := c.parseFilters(ctx)
	summary, err := c.reportService.GetSummary(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, summary, "Сводка успешно сформирована", http.StatusOK)
}

func (c *ReportController) parseFilters(ctx echo.Context) (entities.ReportFilter, string) {
	stdFilter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	filter := entities.ReportFilter{
		Page:    stdFilter.Page,
		PerPage: stdFilter.Limit,
	}
	format := strings.ToLower(ctx.QueryParam("format"))

	if format == "xlsx" {
		filter.Page = 1
		filter.PerPage = 100000 // выгружаем все для экспорта
	}

	if df := ctx.QueryParam("date_from"); df != "" {
		if t, err := time.Parse("2006-01-02", df); err == nil {
			filter.DateFrom = &t
		}
	}
	if dt := ctx.QueryParam("date_to"); dt != "" {
		if t, err := time.Parse("2006-01-02", dt); err == nil {
			filter.DateTo = &t
		}
	}

	parseIDs := func(name string) []uint64 {
		var strs []string
		if arr, ok := ctx.QueryParams()[name+"[]"]; ok {
			strs = arr
		} else if s := ctx.QueryParam(name); s != "" {
			strs = strings.Split(s, ",")
		}
		ids, _ := utils.ParseUint64Slice(strs)
		return ids
	}

	filter.TeamIDs = parseIDs("team_ids")
	filter.CategoryIDs = parseIDs("category_ids")
	filter.TechnicianIDs = parseIDs("technician_ids")
	filter.EquipmentIDs = parseIDs("equipment_ids")

	if stages := ctx.QueryParam("stages"); stages != "" {
		filter.Stages = strings.Split(stages, ",")
	}
	filter.MaintenanceType = ctx.QueryParam("maintenance_type")
	filter.SortOrder = strings.ToLower(ctx.QueryParam("sort_order"))

	return filter, format
}

var reportHeaders = []string{
	"№", "Заявка", "Этап", "Тип", "Приоритет", "Оборудование", "Серийный номер",
	"Категория", "Команда", "Техник", "Дата заявки", "Плановая дата", "Дата закрытия",
	"Решение (дни)", "Простой (часы)", "Запчасти", "Работы", "Итого",
}

func reportRowToSlice(item entities.ReportItem) []interface{} {
	dateFmt := "02.01.2006"
	var scheduleDate, closeDate, resolutionDays string
	if item.ScheduleDate.Valid {
		scheduleDate = item.ScheduleDate.Time.Format(dateFmt)
	}
	if item.CloseDate.Valid {
		closeDate = item.CloseDate.Time.Format(dateFmt)
	}
	if item.ResolutionDays.Valid {
		resolutionDays = fmt.Sprintf("%.2f", item.ResolutionDays.Float64)
	}

	return []interface{}{
		item.RequestID, item.RequestName, item.Stage, item.MaintenanceType, item.Priority,
		item.EquipmentName, item.SerialNumber.String,
		item.CategoryName.String, item.TeamName, item.TechnicianName.String,
		item.RequestDate.Format(dateFmt), scheduleDate, closeDate,
		resolutionDays, item.DurationHours, item.CostParts, item.CostLabor, item.CostTotal,
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, data []entities.ReportItem) error {
	f := excelize.NewFile()
	sheet := "Отчет по обслуживанию"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &reportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "R1", style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := reportRowToSlice(item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "B", 35)
	f.SetColWidth(sheet, "F", "F", 30)
	f.SetColWidth(sheet, "H", "J", 22)
	f.SetColWidth(sheet, "K", "M", 14)

	fileName := fmt.Sprintf("maintenance_report_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
