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

// (GET /api/v1/positions)
func (h *Handler) ListPositions(w http.ResponseWriter, r *http.Request) {
	user := auth.MustHaveUser(r.Context())

	var department *string
	if d := r.URL.Query().Get("department"); d != "" {
		department = &d
	}

	positions, err := h.positionSrv.List(r.Context(), user.Organization, department)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, mappers.JobPositionListToApi(positions))
}

// (POST /api/v1/positions)
func (h *Handler) CreatePosition(w http.ResponseWriter, r *http.Request) {
	var request api.JobPositionCreate
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewPositionValidationRules()...)
	if err := v.Struct(request); err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user := auth.MustHaveUser(r.Context())

	position, err := h.positionSrv.Create(r.Context(), mappers.JobPositionFormApi(request, user.Organization))
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, mappers.JobPositionToApi(position))
}

// (GET /api/v1/positions/{id})
func (h *Handler) GetPosition(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid position id")
		return
	}

	position, err := h.positionSrv.Get(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	user := auth.MustHaveUser(r.Context())
	if user.Organization != position.OrgID {
		renderError(w, r, http.StatusForbidden, "forbidden access to position")
		return
	}

	render.JSON(w, r, mappers.JobPositionToApi(position))
}

// (DELETE /api/v1/positions/{id})
func (h *Handler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid position id")
		return
	}

	position, err := h.positionSrv.Get(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	user := auth.MustHaveUser(r.Context())
	if user.Organization != position.OrgID {
		renderError(w, r, http.StatusForbidden, "forbidden access to position")
		return
	}

	if err := h.positionSrv.Delete(r.Context(), id); err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, mappers.JobPositionToApi(position))
}
