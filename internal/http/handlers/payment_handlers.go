package handlers

import (
	"errors"
	"net/http"

	repo "github.com/salespilot/backoffice/internal/repo"
)

// CreatePaymentOrderHandler godoc
// @Summary Open a PayPal order for an invoice
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param order body CreatePaymentOrderRequest true "Invoice to pay"
// @Success 201 {object} payment.Order
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Invoice not found"
// @Failure 501 {string} string "Payments not configured"
// @Router /payments/orders [post]
func CreatePaymentOrderHandler(w http.ResponseWriter, r *http.Request) {
	if paypalClient == nil || !paypalClient.Configured() {
		http.Error(w, "payments not configured", http.StatusNotImplemented)
		return
	}

	var req CreatePaymentOrderRequest
	if err := readJSON(w, r, &req); err != nil || req.InvoiceID <= 0 {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	invoice, err := invoiceRepo.GetByID(r.Context(), req.InvoiceID)
	if err != nil {
		if errors.Is(err, repo.ErrInvoiceNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch invoice", http.StatusInternalServerError)
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	order, err := paypalClient.CreateOrder(r.Context(), invoice.Total, currency)
	if err != nil {
		http.Error(w, "could not create payment order", http.StatusBadGateway)
		return
	}
	logEncodeError(writeJSON(w, http.StatusCreated, order))
}

// CapturePaymentOrderHandler godoc
// @Summary Capture an approved PayPal order
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "PayPal order ID"
// @Success 200 {object} payment.Order
// @Failure 501 {string} string "Payments not configured"
// @Failure 502 {string} string "Capture failed"
// @Router /payments/orders/{id}/capture [post]
func CapturePaymentOrderHandler(w http.ResponseWriter, r *http.Request) {
	if paypalClient == nil || !paypalClient.Configured() {
		http.Error(w, "payments not configured", http.StatusNotImplemented)
		return
	}

	orderID := urlParam(r, "id")
	if orderID == "" {
		http.Error(w, "missing order ID", http.StatusBadRequest)
		return
	}

	order, err := paypalClient.CaptureOrder(r.Context(), orderID)
	if err != nil {
		http.Error(w, "could not capture payment order", http.StatusBadGateway)
		return
	}
	logEncodeError(writeJSON(w, http.StatusOK, order))
}
