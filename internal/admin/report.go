package admin

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/dnminh/vshop/internal/app/model"
)

const reportSheet = "Orders"

var reportHeader = []string{
	"Order ID", "Customer", "Email", "City", "Items", "Total",
	"Payment", "Status", "Ordered At", "Delivered At",
}

// WriteOrdersReport renders the given users' orders as an XLSX workbook,
// one row per order, for the back-office export button.
func WriteOrdersReport(users []model.User, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(reportSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for col, title := range reportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(reportSheet, cell, title); err != nil {
			return err
		}
	}

	row := 2
	for _, user := range users {
		for _, order := range user.Orders {
			delivered := ""
			if order.DeliveryDate != nil {
				delivered = order.DeliveryDate.Format("2006-01-02 15:04")
			}
			itemCount := 0
			for _, item := range order.Items {
				itemCount += item.Quantity
			}
			values := []interface{}{
				order.ID,
				user.Name,
				user.Email,
				order.ShippingAddress.City,
				itemCount,
				order.Total,
				string(order.PaymentMethod),
				string(order.Status),
				order.OrderDate.Format("2006-01-02 15:04"),
				delivered,
			}
			for col, value := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(reportSheet, cell, value); err != nil {
					return err
				}
			}
			row++
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
