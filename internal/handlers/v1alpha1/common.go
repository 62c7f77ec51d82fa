package v1alpha1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	api "github.com/powhr/talentflow/api/v1alpha1"
	"github.com/powhr/talentflow/internal/events"
	"github.com/powhr/talentflow/internal/service"
)

// Handler serves the v1alpha1 REST API.
type Handler struct {
	pipelineSrv  *service.PipelineService
	positionSrv  *service.PositionService
	candidateSrv *service.CandidateService
	eventWriter  *events.EventProducer
}

func NewHandler(
	pipelineService *service.PipelineService,
	positionService *service.PositionService,
	candidateService *service.CandidateService,
	eventWriter *events.EventProducer,
) *Handler {
	return &Handler{
		pipelineSrv:  pipelineService,
		positionSrv:  positionService,
		candidateSrv: candidateService,
		eventWriter:  eventWriter,
	}
}

func renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, api.Error{Message: message})
}

// renderServiceError maps a service error to its HTTP status. Unknown
// errors are reported as 500 without leaking the message.
func renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch err.(type) {
	case *service.ErrResourceNotFound:
		renderError(w, r, http.StatusNotFound, err.Error())
	case *service.ErrInvalidTransition, *service.ErrMissingOfferStatus, *service.ErrInvalidRejectionReason:
		renderError(w, r, http.StatusBadRequest, err.Error())
	case *service.ErrConcurrentModification, *service.ErrDuplicateResource:
		renderError(w, r, http.StatusConflict, err.Error())
	default:
		renderError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func idParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}
