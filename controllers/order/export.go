package orderControllers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/rivaleats-api/models"
	"github.com/tealeg/xlsx"
)

const exportLimit = 500

var orderHeaders = []string{
	"OrderRef", "CreatedAt", "Customer", "Email", "Phone", "ContactPreference",
	"Fulfillment", "DeliveryDay", "TimeWindow", "Address", "City", "State", "Zip",
	"Subtotal", "DeliveryFee", "OutOfZoneFee", "Total", "LateOrder", "OutsideZone",
	"Status", "PaymentStatus", "Notes",
}

var itemHeaders = []string{
	"OrderRef", "Customer", "DeliveryDay", "TimeWindow", "Item", "Quantity",
	"Allergies", "DietaryPreferences", "SpecialRequests",
}

func addRow(sheet *xlsx.Sheet, values ...interface{}) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetValue(v)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// buildPrepSheet lays out a week's orders for the kitchen: one sheet of
// orders and one of line items with their dietary notes.
func buildPrepSheet(orders []models.Order) (*xlsx.File, error) {
	file := xlsx.NewFile()
	ordersSheet, err := file.AddSheet("Orders")
	if err != nil {
		return nil, err
	}
	itemsSheet, err := file.AddSheet("Items")
	if err != nil {
		return nil, err
	}

	header := ordersSheet.AddRow()
	for _, h := range orderHeaders {
		header.AddCell().SetValue(h)
	}
	header = itemsSheet.AddRow()
	for _, h := range itemHeaders {
		header.AddCell().SetValue(h)
	}

	for _, o := range orders {
		addRow(ordersSheet,
			o.OrderRef, o.CreatedAt.Format("2006-01-02 15:04:05"), o.CustomerName, o.Email, o.Phone, o.ContactPreference,
			o.DeliveryType, o.DeliveryDay, o.TimeWindow, o.AddressLine1+" "+o.AddressLine2, o.City, o.State, o.Zip,
			o.Subtotal.StringFixed(2), o.DeliveryFee.StringFixed(2), o.OutOfZoneFee.StringFixed(2), o.TotalPrice.StringFixed(2),
			yesNo(o.IsLateOrder), yesNo(o.OutsideZone), string(o.Status), string(o.PaymentStatus), o.Notes,
		)
		for _, it := range o.Items {
			addRow(itemsSheet,
				o.OrderRef, o.CustomerName, o.DeliveryDay, o.TimeWindow, it.Name, it.Quantity,
				it.Allergies, it.DietaryPreferences, it.SpecialRequests,
			)
		}
	}
	return file, nil
}

// ExportOrders downloads the prep sheet for ?week=YYYY-MM-DD.
func (h *Handler) ExportOrders(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	filter, err := filterFromQuery(c)
	if err != nil || filter.WeekStart == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week=YYYY-MM-DD is required"})
		return
	}
	filter.Limit = exportLimit + 1

	orders, err := h.Orders.ListOrders(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	truncated := len(orders) > exportLimit
	if truncated {
		orders = orders[:exportLimit]
		log.Printf("⚠️ Prep sheet for week %s truncated to %d orders", filter.WeekStart, exportLimit)
	}

	file, err := buildPrepSheet(orders)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=orders-%s.xlsx", filter.WeekStart))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")
	if truncated {
		c.Header("X-Export-Truncated", "true")
	}

	if err := file.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		return
	}
}
