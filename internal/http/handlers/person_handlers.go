package handlers

import (
	"errors"
	"net/http"

	"github.com/salespilot/backoffice/internal/models"
	"github.com/salespilot/backoffice/internal/repo"
)

// The people ledger serves three contact kinds through one handler set.
// Each route is registered with its kind fixed.

// SavePersonHandler godoc
// @Summary Create or update a contact
// @Description Names are unique per kind; posting an existing name updates its contact details
// @Tags people
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param person body PersonRequest true "Contact details"
// @Success 200 {object} models.Person
// @Failure 400 {array} ProductValidationError
// @Router /customers [post]
func SavePersonHandler(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PersonRequest
		if err := readJSON(w, r, &req); err != nil {
			http.Error(w, "invalid input", http.StatusBadRequest)
			return
		}

		validationErrors := validatePerson(kind, req)
		if len(validationErrors) > 0 {
			logEncodeError(writeJSON(w, http.StatusBadRequest, validationErrors))
			return
		}

		person := models.Person{
			Kind:     kind,
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
			Location: req.Location,
		}
		saved, err := personRepo.Upsert(r.Context(), person)
		if err != nil {
			http.Error(w, "could not save contact", http.StatusInternalServerError)
			return
		}
		logEncodeError(writeJSON(w, http.StatusOK, saved))
	}
}

// ListPeopleHandler godoc
// @Summary List contacts of one kind
// @Tags people
// @Produce json
// @Success 200 {array} models.Person
// @Router /customers [get]
func ListPeopleHandler(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		people, err := personRepo.Find(r.Context(), kind)
		if err != nil {
			http.Error(w, "could not fetch contacts", http.StatusInternalServerError)
			return
		}
		logEncodeError(writeJSON(w, http.StatusOK, people))
	}
}

// GetPersonHandler godoc
// @Summary Fetch one contact
// @Tags people
// @Produce json
// @Param id path int true "Contact ID"
// @Success 200 {object} models.Person
// @Failure 404 {string} string "Not found"
// @Router /customers/{id} [get]
func GetPersonHandler(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamInt(r, "id")
		if err != nil {
			http.Error(w, "invalid contact ID", http.StatusBadRequest)
			return
		}

		person, err := personRepo.GetByID(r.Context(), id)
		if err != nil || person.Kind != kind {
			if errors.Is(err, repo.ErrPersonNotFound) || err == nil {
				http.Error(w, "contact not found", http.StatusNotFound)
				return
			}
			http.Error(w, "could not fetch contact", http.StatusInternalServerError)
			return
		}
		logEncodeError(writeJSON(w, http.StatusOK, person))
	}
}

// DeletePersonHandler godoc
// @Summary Delete a contact
// @Tags people
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 204 {string} string "No content"
// @Failure 404 {string} string "Not found"
// @Router /customers/{id} [delete]
func DeletePersonHandler(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamInt(r, "id")
		if err != nil {
			http.Error(w, "invalid contact ID", http.StatusBadRequest)
			return
		}

		person, err := personRepo.GetByID(r.Context(), id)
		if err != nil || person.Kind != kind {
			http.Error(w, "contact not found", http.StatusNotFound)
			return
		}

		if err := personRepo.Delete(r.Context(), id); err != nil {
			if errors.Is(err, repo.ErrPersonNotFound) {
				http.Error(w, "contact not found", http.StatusNotFound)
				return
			}
			http.Error(w, "could not delete contact", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
