package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	models "github.com/salespilot/backoffice/internal/models"
	repo "github.com/salespilot/backoffice/internal/repo"
)

// CreateInvoiceHandler godoc
// @Summary Create an invoice
// @Description Line item amounts and the invoice totals are computed server-side
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param invoice body InvoiceRequest true "Invoice to create"
// @Success 201 {object} models.Invoice
// @Failure 400 {array} ProductValidationError
// @Router /invoices [post]
func CreateInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	var req InvoiceRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateInvoice(req)
	if len(validationErrors) > 0 {
		logEncodeError(writeJSON(w, http.StatusBadRequest, validationErrors))
		return
	}

	created, err := invoiceRepo.Create(r.Context(), invoiceFromRequest(req, 0))
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "invoice number already exists", http.StatusConflict)
			return
		}
		http.Error(w, "could not create invoice", http.StatusInternalServerError)
		return
	}
	logEncodeError(writeJSON(w, http.StatusCreated, created))
}

// GetInvoicesHandler godoc
// @Summary List invoices without line items
// @Tags invoices
// @Produce json
// @Success 200 {array} models.Invoice
// @Router /invoices [get]
func GetInvoicesHandler(w http.ResponseWriter, r *http.Request) {
	invoices, err := invoiceRepo.GetAll(r.Context())
	if err != nil {
		http.Error(w, "could not fetch invoices", http.StatusInternalServerError)
		return
	}
	logEncodeError(writeJSON(w, http.StatusOK, invoices))
}

// GetInvoiceByIDHandler godoc
// @Summary Get an invoice with its line items
// @Tags invoices
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} models.Invoice
// @Failure 404 {string} string "Not found"
// @Router /invoices/{id} [get]
func GetInvoiceByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		http.Error(w, "invalid invoice ID", http.StatusBadRequest)
		return
	}

	invoice, err := invoiceRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrInvoiceNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch invoice", http.StatusInternalServerError)
		return
	}
	logEncodeError(writeJSON(w, http.StatusOK, invoice))
}

// UpdateInvoiceHandler godoc
// @Summary Replace an invoice and its line items
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invoice ID"
// @Param invoice body InvoiceRequest true "Invoice fields"
// @Success 200 {object} models.Invoice
// @Failure 404 {string} string "Not found"
// @Router /invoices/{id} [put]
func UpdateInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		http.Error(w, "invalid invoice ID", http.StatusBadRequest)
		return
	}

	var req InvoiceRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateInvoice(req)
	if len(validationErrors) > 0 {
		logEncodeError(writeJSON(w, http.StatusBadRequest, validationErrors))
		return
	}

	updated, err := invoiceRepo.Update(r.Context(), invoiceFromRequest(req, id))
	if err != nil {
		if errors.Is(err, repo.ErrInvoiceNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not update invoice", http.StatusInternalServerError)
		return
	}
	logEncodeError(writeJSON(w, http.StatusOK, updated))
}

// DeleteInvoiceHandler godoc
// @Summary Delete an invoice
// @Tags invoices
// @Security BearerAuth
// @Param id path int true "Invoice ID"
// @Success 204 {string} string "No content"
// @Failure 404 {string} string "Not found"
// @Router /invoices/{id} [delete]
func DeleteInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		http.Error(w, "invalid invoice ID", http.StatusBadRequest)
		return
	}

	if err := invoiceRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrInvoiceNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete invoice", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func invoiceFromRequest(req InvoiceRequest, id int) models.Invoice {
	status := req.Status
	if status == "" {
		status = "draft"
	}

	var subtotal decimal.Decimal
	items := make([]models.InvoiceItem, 0, len(req.Items))
	for _, item := range req.Items {
		amount := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Qty)))
		subtotal = subtotal.Add(amount)
		items = append(items, models.InvoiceItem{
			Name:      item.Name,
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice,
			Amount:    amount,
		})
	}

	now := time.Now().Format(time.RFC3339)
	return models.Invoice{
		ID:           id,
		InvoiceNo:    req.InvoiceNo,
		CustomerName: req.CustomerName,
		IssueDate:    req.IssueDate,
		DueDate:      req.DueDate,
		Status:       status,
		Subtotal:     subtotal,
		Tax:          req.Tax,
		Total:        subtotal.Add(req.Tax),
		Items:        items,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
