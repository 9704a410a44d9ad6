package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	models "github.com/salespilot/backoffice/internal/models"
	repo "github.com/salespilot/backoffice/internal/repo"
)

// CreateSaleHandler godoc
// @Summary Record a sale
// @Description Appends a row to the sales ledger; unit price is taken from the product
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sale body SaleRequest true "Sale to record"
// @Success 201 {object} models.Sale
// @Failure 400 {array} ProductValidationError
// @Failure 404 {string} string "Product not found"
// @Router /sales [post]
func CreateSaleHandler(w http.ResponseWriter, r *http.Request) {
	var req SaleRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateSale(req)
	if len(validationErrors) > 0 {
		logEncodeError(writeJSON(w, http.StatusBadRequest, validationErrors))
		return
	}

	product, err := productRepo.GetByID(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}

	qty := decimal.NewFromInt(int64(req.SalesQty))
	sale := models.Sale{
		ProductID:    req.ProductID,
		SaleDate:     req.SaleDate,
		SalesQty:     req.SalesQty,
		SalesPrice:   product.Price,
		TotalPrice:   product.Price.Mul(qty),
		SaleStatus:   req.SaleStatus,
		SaleNote:     req.SaleNote,
		StaffName:    req.StaffName,
		CustomerName: req.CustomerName,
		CreatedAt:    time.Now().Format(time.RFC3339),
	}

	created, err := saleRepo.Create(r.Context(), sale)
	if err != nil {
		http.Error(w, "could not record sale", http.StatusInternalServerError)
		return
	}

	logEncodeError(writeJSON(w, http.StatusCreated, created))
}

// GetSalesHandler godoc
// @Summary List sales with optional filters and paging
// @Tags sales
// @Produce json
// @Param product_id query int false "Filter by product"
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} SalesSearchResult
// @Failure 400 {string} string "Invalid filter"
// @Router /sales [get]
func GetSalesHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := saleFilterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sales, total, err := saleRepo.Find(r.Context(), filter)
	if err != nil {
		http.Error(w, "could not fetch sales", http.StatusInternalServerError)
		return
	}

	logEncodeError(writeJSON(w, http.StatusOK, SalesSearchResult{
		Data: sales,
		Meta: Meta{TotalCount: total},
	}))
}

// GetSaleByIDHandler godoc
// @Summary Get sale by ID
// @Tags sales
// @Produce json
// @Param id path int true "Sale ID"
// @Success 200 {object} models.Sale
// @Failure 404 {string} string "Not found"
// @Router /sales/{id} [get]
func GetSaleByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		http.Error(w, "invalid sale ID", http.StatusBadRequest)
		return
	}

	sale, err := saleRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrSaleNotFound) {
			http.Error(w, "sale not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch sale", http.StatusInternalServerError)
		return
	}
	logEncodeError(writeJSON(w, http.StatusOK, sale))
}

// UpdateSaleHandler godoc
// @Summary Update a sale row
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sale ID"
// @Param sale body SaleRequest true "Sale fields"
// @Success 200 {object} models.Sale
// @Failure 404 {string} string "Not found"
// @Router /sales/{id} [put]
func UpdateSaleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		http.Error(w, "invalid sale ID", http.StatusBadRequest)
		return
	}

	var req SaleRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateSale(req)
	if len(validationErrors) > 0 {
		logEncodeError(writeJSON(w, http.StatusBadRequest, validationErrors))
		return
	}

	product, err := productRepo.GetByID(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}

	qty := decimal.NewFromInt(int64(req.SalesQty))
	sale := models.Sale{
		ID:           id,
		ProductID:    req.ProductID,
		SaleDate:     req.SaleDate,
		SalesQty:     req.SalesQty,
		SalesPrice:   product.Price,
		TotalPrice:   product.Price.Mul(qty),
		SaleStatus:   req.SaleStatus,
		SaleNote:     req.SaleNote,
		StaffName:    req.StaffName,
		CustomerName: req.CustomerName,
	}

	updated, err := saleRepo.Update(r.Context(), sale)
	if err != nil {
		if errors.Is(err, repo.ErrSaleNotFound) {
			http.Error(w, "sale not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not update sale", http.StatusInternalServerError)
		return
	}
	logEncodeError(writeJSON(w, http.StatusOK, updated))
}

// DeleteSaleHandler godoc
// @Summary Delete a sale row
// @Tags sales
// @Security BearerAuth
// @Param id path int true "Sale ID"
// @Success 204 {string} string "No content"
// @Failure 404 {string} string "Not found"
// @Router /sales/{id} [delete]
func DeleteSaleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		http.Error(w, "invalid sale ID", http.StatusBadRequest)
		return
	}

	if err := saleRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrSaleNotFound) {
			http.Error(w, "sale not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete sale", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func saleFilterFromQuery(r *http.Request) (repo.SaleFilter, error) {
	var filter repo.SaleFilter
	q := r.URL.Query()

	if v := q.Get("product_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return filter, errors.New("invalid product_id")
		}
		filter.ProductID = &id
	}
	if v := q.Get("start_date"); v != "" {
		if !validDate(v) {
			return filter, errors.New("invalid start_date")
		}
		filter.StartDate = &v
	}
	if v := q.Get("end_date"); v != "" {
		if !validDate(v) {
			return filter, errors.New("invalid end_date")
		}
		filter.EndDate = &v
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return filter, errors.New("invalid limit")
		}
		filter.Limit = &limit
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return filter, errors.New("invalid offset")
		}
		filter.Offset = &offset
	}
	return filter, nil
}
