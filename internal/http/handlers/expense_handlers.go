package handlers

import (
	"errors"
	"net/http"
	"time"

	models "github.com/salespilot/backoffice/internal/models"
	repo "github.com/salespilot/backoffice/internal/repo"
)

// CreateExpenseHandler godoc
// @Summary Record an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param expense body ExpenseRequest true "Expense to record"
// @Success 201 {object} models.Expense
// @Failure 400 {array} ProductValidationError
// @Router /expenses [post]
func CreateExpenseHandler(w http.ResponseWriter, r *http.Request) {
	var req ExpenseRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateExpense(req)
	if len(validationErrors) > 0 {
		logEncodeError(writeJSON(w, http.StatusBadRequest, validationErrors))
		return
	}

	expense := models.Expense{
		ExpenseDate: req.ExpenseDate,
		Amount:      req.Amount,
		Description: req.Description,
		CreatedAt:   time.Now().Format(time.RFC3339),
	}
	created, err := expenseRepo.Create(r.Context(), expense)
	if err != nil {
		http.Error(w, "could not record expense", http.StatusInternalServerError)
		return
	}
	logEncodeError(writeJSON(w, http.StatusCreated, created))
}

// GetExpensesHandler godoc
// @Summary List expenses, optionally bounded by date
// @Tags expenses
// @Produce json
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Success 200 {array} models.Expense
// @Failure 400 {string} string "Invalid filter"
// @Router /expenses [get]
func GetExpensesHandler(w http.ResponseWriter, r *http.Request) {
	var start, end *string
	if v := r.URL.Query().Get("start_date"); v != "" {
		if !validDate(v) {
			http.Error(w, "invalid start_date", http.StatusBadRequest)
			return
		}
		start = &v
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		if !validDate(v) {
			http.Error(w, "invalid end_date", http.StatusBadRequest)
			return
		}
		end = &v
	}

	expenses, err := expenseRepo.Find(r.Context(), start, end)
	if err != nil {
		http.Error(w, "could not fetch expenses", http.StatusInternalServerError)
		return
	}
	logEncodeError(writeJSON(w, http.StatusOK, expenses))
}

// DeleteExpenseHandler godoc
// @Summary Delete an expense
// @Tags expenses
// @Security BearerAuth
// @Param id path int true "Expense ID"
// @Success 204 {string} string "No content"
// @Failure 404 {string} string "Not found"
// @Router /expenses/{id} [delete]
func DeleteExpenseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		http.Error(w, "invalid expense ID", http.StatusBadRequest)
		return
	}

	if err := expenseRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrExpenseNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete expense", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
