package controller

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"github.com/RonaldMark17/agridata-backend/internals/features/registry/farmers/model"
	helper "github.com/RonaldMark17/agridata-backend/internals/helpers"
	helperAuth "github.com/RonaldMark17/agridata-backend/internals/helpers/auth"
)

var exportHeader = []string{
	"Farmer Code", "First Name", "Last Name", "Age", "Gender",
	"Education", "Barangay", "Municipality", "Province",
	"Annual Income", "Farm Size (ha)", "Years Farming",
}

func exportRow(f *model.FarmerModel) []string {
	str := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	num := func(p *float64) string {
		if p == nil {
			return ""
		}
		return strconv.FormatFloat(*p, 'f', 2, 64)
	}
	barangay, municipality, province := "", "", ""
	if f.Barangay != nil {
		barangay = f.Barangay.Name
		municipality = f.Barangay.Municipality
		province = f.Barangay.Province
	}
	yearsFarming := ""
	if f.YearsFarming != nil {
		yearsFarming = strconv.Itoa(*f.YearsFarming)
	}
	return []string{
		str(f.FarmerCode),
		f.FirstName,
		f.LastName,
		strconv.Itoa(f.Age),
		f.Gender,
		f.EducationLevel,
		barangay,
		municipality,
		province,
		num(f.AnnualIncome),
		num(f.FarmSizeHectares),
		yearsFarming,
	}
}

// GET /api/export/farmers
//
// Streams the full registry as CSV, or as a styled XLSX workbook when
// ?format=xlsx is given. Exports are not paginated.
func (ctrl *FarmerController) ExportFarmers(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var farmers []model.FarmerModel
	if err := ctrl.DB.Preload("Barangay").Order("last_name ASC, first_name ASC").Find(&farmers).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch farmers")
	}

	stamp := time.Now().Format("20060102")

	if c.Query("format") == "xlsx" {
		payload, err := buildExportWorkbook(farmers)
		if err != nil {
			log.Printf("[ERROR] XLSX export failed: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build export")
		}
		ctrl.Activity.Log(c, &userID, "FARMERS_EXPORTED", "Farmer", 0,
			fmt.Sprintf("Exported %d farmers (xlsx)", len(farmers)))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="farmers_export_%s.xlsx"`, stamp))
		return c.Send(payload)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build export")
	}
	for i := range farmers {
		if err := w.Write(exportRow(&farmers[i])); err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build export")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build export")
	}

	ctrl.Activity.Log(c, &userID, "FARMERS_EXPORTED", "Farmer", 0,
		fmt.Sprintf("Exported %d farmers (csv)", len(farmers)))

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="farmers_export_%s.csv"`, stamp))
	return c.Send(buf.Bytes())
}

func buildExportWorkbook(farmers []model.FarmerModel) ([]byte, error) {
	wb := excelize.NewFile()
	defer wb.Close()

	const sheet = "Farmers"
	wb.SetSheetName("Sheet1", sheet)

	headerStyle, err := wb.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2E7D32"}},
	})
	if err != nil {
		return nil, err
	}

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := wb.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
		if err := wb.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for i := range farmers {
		for col, value := range exportRow(&farmers[i]) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := wb.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
