package menuControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/junaidrashid-git/rivaleats-api/models"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
)

var menuHeaders = []string{"ID", "Name", "Description", "Section", "Price", "ImageURL", "Tags", "IsActive"}

// parseMenuSheet reads rows below the header. Rows without a name,
// description or known section, or with an unparseable price, are skipped.
func parseMenuSheet(sheet *xlsx.Sheet) (items []models.MenuItem, skipped int) {
	for i := 1; i < sheet.MaxRow; i++ {
		row := sheet.Rows[i]
		if row == nil || len(row.Cells) < 4 {
			skipped++
			continue
		}

		get := func(index int) string {
			if index < len(row.Cells) {
				return strings.TrimSpace(row.Cells[index].String())
			}
			return ""
		}

		section, ok := models.ParseMenuSection(strings.ToLower(get(3)))
		name, description := get(1), get(2)
		if name == "" || description == "" || !ok {
			skipped++
			continue
		}

		item := models.MenuItem{
			ID:          get(0),
			Name:        name,
			Description: description,
			Section:     section,
			ImageURL:    get(5),
			Tags:        cleanTags(strings.Split(get(6), ",")),
			IsActive:    true,
		}
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if priceStr := get(4); priceStr != "" {
			price, err := decimal.NewFromString(priceStr)
			if err != nil || price.IsNegative() {
				skipped++
				continue
			}
			item.Price = decimal.NewNullDecimal(price.Round(2))
		}
		if active := get(7); active != "" {
			if b, err := strconv.ParseBool(active); err == nil {
				item.IsActive = b
			}
		}
		items = append(items, item)
	}
	return items, skipped
}

func (h *Handler) ImportMenuFromExcel(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	excelFileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
		return
	}

	file, err := excelFileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
		return
	}
	defer file.Close()

	xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse Excel file"})
		return
	}
	if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
		return
	}

	items, skipped := parseMenuSheet(xlFile.Sheets[0])
	saved, err := h.Menu.UpsertMenuItems(c.Request.Context(), items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save menu items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Import completed",
		"saved_count":   saved,
		"skipped_count": skipped,
	})
}

func (h *Handler) ExportMenuToExcel(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	items, err := h.Menu.ListMenuItems(c.Request.Context(), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu items"})
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Menu")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
		return
	}

	headerRow := sheet.AddRow()
	for _, h := range menuHeaders {
		headerRow.AddCell().SetValue(h)
	}
	for _, it := range items {
		row := sheet.AddRow()
		row.AddCell().SetValue(it.ID)
		row.AddCell().SetValue(it.Name)
		row.AddCell().SetValue(it.Description)
		row.AddCell().SetValue(string(it.Section))
		price := ""
		if it.Price.Valid {
			price = it.Price.Decimal.StringFixed(2)
		}
		row.AddCell().SetValue(price)
		row.AddCell().SetValue(it.ImageURL)
		row.AddCell().SetValue(strings.Join(it.Tags, ", "))
		row.AddCell().SetValue(strconv.FormatBool(it.IsActive))
	}

	c.Header("Content-Disposition", "attachment; filename=menu.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")

	if err := file.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		return
	}
}
