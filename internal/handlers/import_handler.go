package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"storefront-service/internal/catalog"
	"storefront-service/internal/events"
	"storefront-service/internal/models"
)

const importSheetName = "Products"

// ImportHandler replaces the in-memory catalog from an uploaded Excel
// workbook and serves the matching template.
type ImportHandler struct {
	loader    *catalog.Loader
	publisher *events.Publisher
	logger    *logrus.Entry
}

func NewImportHandler(loader *catalog.Loader, publisher *events.Publisher, logger *logrus.Logger) *ImportHandler {
	return &ImportHandler{
		loader:    loader,
		publisher: publisher,
		logger:    logger.WithField("component", "import"),
	}
}

// GetImportTemplate downloads the catalog import template
// @Summary Catalog import template
// @Tags Catalog
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /catalog/import/template [get]
func (h *ImportHandler) GetImportTemplate(c *gin.Context) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", importSheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	requiredStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C65911"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	columns := models.CatalogImportColumns()
	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		headerText := col.Name
		if col.Required {
			headerText = col.Name + " *"
		}
		f.SetCellValue(importSheetName, cell, headerText)

		if col.Required {
			f.SetCellStyle(importSheetName, cell, cell, requiredStyle)
		} else {
			f.SetCellStyle(importSheetName, cell, cell, headerStyle)
		}

		// Sample row under the header, taken from the column examples.
		sampleCell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(importSheetName, sampleCell, col.Example)

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(importSheetName, colName, colName, 20)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=catalog_import_template.xlsx")
	f.Write(c.Writer)
}

// ImportCatalog replaces the catalog from an uploaded Excel file
// @Summary Import catalog
// @Description Parse an xlsx upload and replace the in-memory catalog with its rows
// @Tags Catalog
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Catalog xlsx file"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /catalog/import [post]
func (h *ImportHandler) ImportCatalog(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "FILE_REQUIRED",
				Message: "Please upload an Excel (.xlsx) file",
			},
		})
		return
	}
	defer file.Close()

	products, result, err := parseCatalogWorkbook(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "IMPORT_PARSE_FAILED",
				Message: err.Error(),
			},
		})
		return
	}

	if result.SuccessCount > 0 {
		h.loader.ReplaceAll(products)
		h.publisher.PublishCatalogImported(len(products), header.Filename)
	}
	result.Success = result.FailedCount == 0

	h.logger.WithFields(logrus.Fields{
		"file":     header.Filename,
		"imported": result.SuccessCount,
		"failed":   result.FailedCount,
	}).Info("Catalog import finished")

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    result,
	})
}

// parseCatalogWorkbook reads the upload into products plus a per-row result.
// Rows missing id, title or a parseable price are reported and skipped; the
// remaining rows still import.
func parseCatalogWorkbook(file io.Reader) ([]models.Product, *models.ImportResult, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("no sheets found in Excel file")
	}
	sheetName := sheets[0]
	for _, name := range sheets {
		if strings.EqualFold(name, importSheetName) {
			sheetName = name
			break
		}
	}

	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(excelRows) < 2 {
		return nil, nil, fmt.Errorf("file must have a header row and at least one data row")
	}

	headers := excelRows[0]
	for i := range headers {
		headers[i] = strings.TrimSuffix(strings.TrimSpace(strings.ToLower(headers[i])), " *")
	}

	result := &models.ImportResult{}
	seen := make(map[string]bool)
	var products []models.Product

	for rowIdx, excelRow := range excelRows[1:] {
		rowNum := rowIdx + 2
		row := make(map[string]string, len(headers))
		for i, value := range excelRow {
			if i < len(headers) {
				row[headers[i]] = strings.TrimSpace(value)
			}
		}

		empty := true
		for _, v := range row {
			if v != "" {
				empty = false
				break
			}
		}
		if empty {
			result.SkippedCount++
			continue
		}
		result.TotalRows++

		product, rowErr := productFromRow(row)
		if rowErr != nil {
			rowErr.Row = rowNum
			result.Errors = append(result.Errors, *rowErr)
			result.FailedCount++
			continue
		}
		if seen[product.ID] {
			result.Errors = append(result.Errors, models.ImportRowError{
				Row:     rowNum,
				Column:  "id",
				Code:    "DUPLICATE",
				Message: fmt.Sprintf("Duplicate product id %q", product.ID),
			})
			result.FailedCount++
			continue
		}
		seen[product.ID] = true

		products = append(products, product)
		result.SuccessCount++
		result.ImportedIDs = append(result.ImportedIDs, product.ID)
	}

	return products, result, nil
}

func productFromRow(row map[string]string) (models.Product, *models.ImportRowError) {
	if row["id"] == "" {
		return models.Product{}, &models.ImportRowError{Column: "id", Code: "REQUIRED", Message: "Product id is required"}
	}
	title := row["title"]
	if title == "" {
		title = row["name"]
	}
	if title == "" {
		return models.Product{}, &models.ImportRowError{Column: "title", Code: "REQUIRED", Message: "Product title is required"}
	}
	price, err := strconv.ParseFloat(row["price"], 64)
	if err != nil {
		return models.Product{}, &models.ImportRowError{Column: "price", Code: "INVALID", Message: "Price must be a valid number"}
	}

	rating, _ := strconv.ParseFloat(row["rating"], 64)
	reviews, _ := strconv.Atoi(row["reviews"])
	featured, _ := strconv.ParseBool(row["featured"])
	isNew, _ := strconv.ParseBool(row["new"])

	return models.Product{
		ID:          row["id"],
		Title:       title,
		Description: row["description"],
		Brand:       row["brand"],
		Category:    row["category"],
		Price:       price,
		Rating:      rating,
		Reviews:     reviews,
		Featured:    featured,
		New:         isNew,
		Image:       row["image"],
	}, nil
}
