package v1alpha1

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"
	api "github.com/powhr/talentflow/api/v1alpha1"
	"github.com/powhr/talentflow/internal/auth"
	"github.com/powhr/talentflow/internal/handlers/v1alpha1/mappers"
	"github.com/powhr/talentflow/internal/handlers/validator"
)

// (GET /api/v1/candidates)
func (h *Handler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	user := auth.MustHaveUser(r.Context())

	var email *string
	if e := r.URL.Query().Get("email"); e != "" {
		email = &e
	}

	candidates, err := h.candidateSrv.List(r.Context(), user.Organization, email)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, mappers.CandidateListToApi(candidates))
}

// (POST /api/v1/candidates)
func (h *Handler) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	var request api.CandidateCreate
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewCandidateValidationRules()...)
	if err := v.Struct(request); err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user := auth.MustHaveUser(r.Context())

	candidate, err := h.candidateSrv.Create(r.Context(), mappers.CandidateFormApi(request, user.Organization))
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, mappers.CandidateToApi(candidate))
}

// (GET /api/v1/candidates/{id})
func (h *Handler) GetCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid candidate id")
		return
	}

	candidate, err := h.candidateSrv.Get(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	user := auth.MustHaveUser(r.Context())
	if user.Organization != candidate.OrgID {
		renderError(w, r, http.StatusForbidden, "forbidden access to candidate")
		return
	}

	render.JSON(w, r, mappers.CandidateToApi(candidate))
}
