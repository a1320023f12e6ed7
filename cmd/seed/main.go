// Seeds the fixture API database from an XLSX product sheet plus a default
// admin account.
//
// Usage: go run cmd/seed/main.go <xlsx_file_path>
//
// Expected columns: name, price, description, category, image, discount
// percent, original price, featured (1/0). First row is the header.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dnminh/vshop/config"
	"github.com/dnminh/vshop/internal/app/model"
	"github.com/dnminh/vshop/internal/db"
	"github.com/dnminh/vshop/pkg/util"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}
	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}
	fmt.Printf("Total products to import: %d\n", len(products))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	conn := db.GetDB()
	imported := 0
	for i := range products {
		if err := conn.Create(&products[i]).Error; err != nil {
			fmt.Printf("Failed to import %q: %v\n", products[i].Name, err)
			continue
		}
		imported++
	}
	fmt.Printf("Imported %d/%d products\n", imported, len(products))

	if err := seedAdmin(); err != nil {
		log.Fatal("Failed to seed admin account:", err)
	}
	fmt.Println("Done.")
}

func readProductsFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product
	skipped := 0
	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}
		if len(row) < 4 {
			skipped++
			continue
		}

		name := strings.TrimSpace(row[0])
		price := parseFloat(row[1])
		if name == "" || price <= 0 {
			skipped++
			continue
		}

		product := model.Product{
			Name:        name,
			Price:       price,
			Description: cell(row, 2),
			Category:    cell(row, 3),
			Image:       cell(row, 4),
		}
		product.DiscountPercent = parseFloat(cell(row, 5))
		product.OriginalPrice = parseFloat(cell(row, 6))
		product.Featured = cell(row, 7) == "1"
		products = append(products, product)
	}
	if skipped > 0 {
		fmt.Printf("Skipped %d invalid rows\n", skipped)
	}
	return products, nil
}

func seedAdmin() error {
	conn := db.GetDB()

	var count int64
	conn.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count)
	if count > 0 {
		fmt.Println("Admin account already present, skipping")
		return nil
	}

	hash, err := util.HashPassword("admin123")
	if err != nil {
		return err
	}
	admin := model.User{
		Name:     "Administrator",
		Email:    "admin@vshop.local",
		Username: "admin",
		Password: hash,
		Role:     model.RoleAdmin,
	}
	if err := conn.Create(&admin).Error; err != nil {
		return err
	}
	fmt.Println("Seeded admin account admin@vshop.local (password: admin123)")
	return nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}
