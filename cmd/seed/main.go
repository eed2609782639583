package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jmercado/tienda-backend/config"
	"github.com/jmercado/tienda-backend/internal/app/model"
	"github.com/jmercado/tienda-backend/internal/app/repository"
	"github.com/jmercado/tienda-backend/internal/app/service"
	"github.com/jmercado/tienda-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports a product catalog from an XLSX file. Expected columns:
// name | base_price | gender | type | season | tags | variants
// where tags is comma-separated ("winter,offer") and variants is
// semicolon-separated color:size:stock triples ("Red:M:5;Blue:L:2").
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

	productService := service.NewProductService(repository.NewProductRepository(db.GetDB()))

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	inputs, skipped, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d (skipped %d malformed rows)\n", len(inputs), skipped)

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	imported := 0
	for _, input := range inputs {
		if _, err := productService.CreateProduct(input); err != nil {
			log.Printf("Failed to import %q: %v", input.Name, err)
			continue
		}
		imported++
	}

	fmt.Printf("Import completed: %d/%d products\n", imported, len(inputs))
}

func readProductsFromXLSX(filePath string) ([]service.CreateProductInput, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no data found in XLSX file")
	}

	var inputs []service.CreateProductInput
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}
		if len(row) < 2 {
			skipped++
			continue
		}

		name := strings.TrimSpace(row[0])
		price, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if name == "" || err != nil || price < 0 {
			skipped++
			continue
		}

		input := service.CreateProductInput{
			Name:      name,
			BasePrice: price,
		}
		if len(row) > 2 {
			input.Gender = model.ProductGender(strings.TrimSpace(row[2]))
		}
		if len(row) > 3 {
			input.Type = strings.TrimSpace(row[3])
		}
		if len(row) > 4 {
			input.Season = model.ProductSeason(strings.TrimSpace(row[4]))
		}
		if len(row) > 5 {
			input.Tags = splitList(row[5], ",")
		}
		if len(row) > 6 {
			input.Variants = parseVariants(row[6])
		}

		inputs = append(inputs, input)
	}

	return inputs, skipped, nil
}

func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parseVariants decodes "Red:M:5;Blue:L:2" triples; malformed entries are
// dropped silently, the import reports totals at the end.
func parseVariants(s string) []service.VariantInput {
	var variants []service.VariantInput
	for _, entry := range splitList(s, ";") {
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			continue
		}
		stock, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || stock < 0 {
			continue
		}
		variants = append(variants, service.VariantInput{
			Color: strings.TrimSpace(parts[0]),
			Size:  strings.TrimSpace(parts[1]),
			Stock: stock,
		})
	}
	return variants
}
