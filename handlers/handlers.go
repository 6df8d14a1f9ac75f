// Package handlers provides the HTTP request handlers of the prescription
// API: drug lookup, interaction analysis, prescription generation and the
// CRUD surface over prescriptions, folders and the prescriber profile,
// with input decoding, error mapping and JSON response formatting.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/prescrito/prescrito-api/controller"
	"github.com/prescrito/prescrito-api/domain"
	"github.com/prescrito/prescrito-api/logging"
)

// RespondWithJSON writes a JSON response
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error body with the user-facing message.
func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"error": msg})
}

// statusForError maps the domain error taxonomy to HTTP status codes.
func statusForError(err error) int {
	var validationErr *domain.ValidationError
	var generationErr *domain.GenerationError
	var persistenceErr *domain.PersistenceError
	var lookupErr *domain.LookupError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &generationErr):
		return http.StatusBadGateway
	case errors.As(err, &persistenceErr):
		return http.StatusInternalServerError
	case errors.As(err, &lookupErr):
		if lookupErr.Kind == domain.LookupNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(w http.ResponseWriter, err error) {
	RespondWithError(w, statusForError(err), err.Error())
}

// decodeBody decodes a JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logging.Warn("Invalid request body", "path", r.URL.Path, "error", err)
		RespondWithError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return false
	}
	return true
}

// Suggest returns autocomplete candidates for a partial drug name.
func Suggest(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := chi.URLParam(r, "query")
		RespondWithJSON(w, http.StatusOK, ctrl.Suggest(query))
	}
}

// SearchDrug looks up structured drug information, flagging whether the
// backend recognized the queried name.
func SearchDrug(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		info, err := ctrl.SearchDrug(r.Context(), name)
		if err != nil {
			respondError(w, err)
			return
		}

		RespondWithJSON(w, http.StatusOK, map[string]any{
			"drugInfo":   info,
			"recognized": domain.IsDrugRecognized(*info),
		})
	}
}

// CheckInteractions analyses pairwise interactions between drugs.
func CheckInteractions(ctrl *controller.Controller) http.HandlerFunc {
	type request struct {
		Medicamentos []string `json:"medicamentos"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeBody(w, r, &req) {
			return
		}

		results, err := ctrl.CheckInteractions(r.Context(), req.Medicamentos)
		if err != nil {
			respondError(w, err)
			return
		}
		RespondWithJSON(w, http.StatusOK, results)
	}
}

// GeneratePrescription drafts a prescription template for a diagnosis.
func GeneratePrescription(ctrl *controller.Controller) http.HandlerFunc {
	type request struct {
		Diagnostico string             `json:"diagnostico"`
		Tipo        domain.TipoReceita `json:"tipo"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeBody(w, r, &req) {
			return
		}

		draft, err := ctrl.GeneratePrescription(r.Context(), req.Diagnostico, req.Tipo)
		if err != nil {
			respondError(w, err)
			return
		}
		RespondWithJSON(w, http.StatusOK, draft)
	}
}

// GetProfile returns the stored prescriber profile, or null when the
// setup flow has not run yet.
func GetProfile(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, ctrl.Snapshot().Profile)
	}
}

// SaveProfile replaces the stored prescriber profile.
func SaveProfile(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var profile domain.ProfileData
		if !decodeBody(w, r, &profile) {
			return
		}

		if err := ctrl.SaveProfile(profile); err != nil {
			respondError(w, err)
			return
		}
		RespondWithJSON(w, http.StatusOK, profile)
	}
}

// LookupCnes resolves a facility registry code to profile fields.
func LookupCnes(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		profile, err := ctrl.LookupCnes(r.Context(), code)
		if err != nil {
			respondError(w, err)
			return
		}
		RespondWithJSON(w, http.StatusOK, profile)
	}
}

// ListPrescriptions returns every saved prescription.
func ListPrescriptions(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, ctrl.Snapshot().Prescriptions)
	}
}

// SavePrescription saves a draft, assigning its identifier.
func SavePrescription(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft domain.Prescription
		if !decodeBody(w, r, &draft) {
			return
		}

		saved, err := ctrl.SavePrescription(draft)
		if err != nil {
			respondError(w, err)
			return
		}
		RespondWithJSON(w, http.StatusCreated, saved)
	}
}

// DeletePrescription removes a saved prescription by identifier.
func DeletePrescription(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.DeletePrescription(chi.URLParam(r, "id")); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// MovePrescription files a prescription under a folder; an empty folderId
// unfiles it.
func MovePrescription(ctrl *controller.Controller) http.HandlerFunc {
	type request struct {
		FolderID string `json:"folderId"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeBody(w, r, &req) {
			return
		}

		if err := ctrl.MovePrescriptionToFolder(chi.URLParam(r, "id"), req.FolderID); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// SharePrescription returns the plain-text share format of a saved
// prescription.
func SharePrescription(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		text, err := ctrl.SharePrescription(chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(text))
	}
}

// ListFolders returns every folder.
func ListFolders(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, ctrl.Snapshot().Folders)
	}
}

// CreateFolder adds a named folder.
func CreateFolder(ctrl *controller.Controller) http.HandlerFunc {
	type request struct {
		Name string `json:"name"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeBody(w, r, &req) {
			return
		}

		folder, err := ctrl.CreateFolder(req.Name)
		if err != nil {
			respondError(w, err)
			return
		}
		RespondWithJSON(w, http.StatusCreated, folder)
	}
}

// DeleteFolder removes a folder, unfiling its prescriptions.
func DeleteFolder(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.DeleteFolder(chi.URLParam(r, "id")); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GetLanding reports the one-time onboarding flag.
func GetLanding(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]bool{"hasSeenLanding": ctrl.HasSeenLanding()})
	}
}

// MarkLanding sets the one-time onboarding flag.
func MarkLanding(ctrl *controller.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.MarkLandingSeen(); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
