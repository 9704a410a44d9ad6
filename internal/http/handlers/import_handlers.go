package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	models "github.com/salespilot/backoffice/internal/models"
)

type csvRow struct {
	Name         string
	Price        decimal.Decimal
	Cost         decimal.Decimal
	StockQty     int
	InventoryQty int
	SupplyQty    int
}

func parseCSV(file multipart.File) ([]csvRow, error) {
	reader := csv.NewReader(file)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"name", "price", "cost"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing CSV column %q", required)
		}
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		row := csvRow{
			Name:         field(record, index, "name"),
			Price:        parseDecimal(field(record, index, "price")),
			Cost:         parseDecimal(field(record, index, "cost")),
			StockQty:     parseInt(field(record, index, "stock_qty")),
			InventoryQty: parseInt(field(record, index, "inventory_qty")),
			SupplyQty:    parseInt(field(record, index, "supply_qty")),
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func validateRow(r csvRow) error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("missing name")
	}
	if r.Price.IsNegative() || r.Price.IsZero() {
		return errors.New("invalid price")
	}
	if r.Cost.IsNegative() {
		return errors.New("invalid cost")
	}
	if r.StockQty < 0 || r.InventoryQty < 0 || r.SupplyQty < 0 {
		return errors.New("invalid quantity")
	}
	return nil
}

func parseDecimal(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(strings.TrimSpace(s))
	return d
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}

func nowRFC3339() string {
	return time.Now().Format(time.RFC3339)
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file with name, price, cost and quantity columns"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Router /products/import [post]
// @Security BearerAuth
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode != "update" {
		mode = "skip" // default
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := parseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	imported := 0
	errorsList := []ProductValidationError{}

	for i, rec := range records {
		rowNum := i + 2 // header is row 1

		if err := validateRow(rec); err != nil {
			errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			continue
		}

		existing, err := productRepo.GetByName(r.Context(), rec.Name)
		if err == nil && existing.ID != 0 {
			if mode == "skip" {
				errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: product '%s' already exists", rowNum, rec.Name)})
				continue
			}
			existing.Price = rec.Price
			existing.Cost = rec.Cost
			existing.StockQty = rec.StockQty
			existing.InventoryQty = rec.InventoryQty
			existing.SupplyQty = rec.SupplyQty
			existing.UpdatedAt = nowRFC3339()
			if _, err := productRepo.Update(r.Context(), existing); err != nil {
				errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: failed to update '%s'", rowNum, rec.Name)})
				continue
			}
			imported++
			continue
		}

		newProduct := models.Product{
			Name:         rec.Name,
			Price:        rec.Price,
			Cost:         rec.Cost,
			StockQty:     rec.StockQty,
			InventoryQty: rec.InventoryQty,
			SupplyQty:    rec.SupplyQty,
			CreatedAt:    nowRFC3339(),
			UpdatedAt:    nowRFC3339(),
		}
		if _, err := productRepo.Create(r.Context(), newProduct); err != nil {
			errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			continue
		}
		imported++
	}

	logEncodeError(writeJSON(w, http.StatusOK, ImportProductsResult{
		ImportedProductsCount: imported,
		Errors:                errorsList,
	}))
}
