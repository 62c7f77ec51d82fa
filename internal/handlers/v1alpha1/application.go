package v1alpha1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/google/uuid"
	api "github.com/powhr/talentflow/api/v1alpha1"
	"github.com/powhr/talentflow/internal/auth"
	"github.com/powhr/talentflow/internal/events"
	"github.com/powhr/talentflow/internal/handlers/v1alpha1/mappers"
	"github.com/powhr/talentflow/internal/handlers/validator"
	"github.com/powhr/talentflow/internal/pipeline"
	"github.com/powhr/talentflow/internal/service"
	"github.com/powhr/talentflow/internal/store/model"
	"github.com/powhr/talentflow/pkg/metrics"
	"go.uber.org/zap"
)

// (GET /api/v1/applications)
func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	user := auth.MustHaveUser(r.Context())

	opts := []service.ApplicationFilterOption{service.WithOrgID(user.Organization)}

	if positionID := r.URL.Query().Get("positionId"); positionID != "" {
		id, err := uuid.Parse(positionID)
		if err != nil {
			renderError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid positionId %q", positionID))
			return
		}
		opts = append(opts, service.WithPositionID(id))
	}
	if stage := r.URL.Query().Get("stage"); stage != "" {
		parsed, err := pipeline.ParseStage(stage)
		if err != nil {
			renderError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		opts = append(opts, service.WithStage(parsed))
	}
	if status := r.URL.Query().Get("status"); status != "" {
		parsed, err := pipeline.ParseStageStatus(status)
		if err != nil {
			renderError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		opts = append(opts, service.WithStageStatus(parsed))
	}

	applications, err := h.pipelineSrv.ListApplications(r.Context(), service.NewApplicationFilter(opts...))
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, mappers.ApplicationListToApi(applications))
}

// (POST /api/v1/applications)
func (h *Handler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	var request api.ApplicationCreate
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	v := validator.NewValidator()
	if err := v.Struct(request); err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user := auth.MustHaveUser(r.Context())

	application, err := h.pipelineSrv.CreateApplication(r.Context(), mappers.ApplicationFormApi(request, user.Organization))
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	h.emitApplicationEvent(application)
	h.emitStageEvent(application, nil, nil)

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, mappers.ApplicationToApi(application))
}

// (GET /api/v1/applications/{id})
func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid application id")
		return
	}

	application, err := h.pipelineSrv.GetApplication(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	user := auth.MustHaveUser(r.Context())
	if user.Organization != application.OrgID {
		renderError(w, r, http.StatusForbidden, fmt.Sprintf("forbidden access to application %q", id))
		return
	}

	render.JSON(w, r, mappers.ApplicationToApi(application))
}

// (POST /api/v1/applications/{id}/transition)
func (h *Handler) TransitionApplication(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid application id")
		return
	}

	var request api.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewTransitionValidationRules()...)
	if err := v.Struct(request); err != nil {
		renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user := auth.MustHaveUser(r.Context())

	current, err := h.pipelineSrv.GetApplication(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	if user.Organization != current.OrgID {
		renderError(w, r, http.StatusForbidden, fmt.Sprintf("forbidden access to application %q", id))
		return
	}

	fromStage := current.CurrentStage

	updated, err := h.pipelineSrv.Transition(r.Context(), mappers.TransitionFormApi(id, request), &user.Username)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	metrics.IncreaseTransitionsTotalMetric(string(fromStage), string(updated.CurrentStage))
	h.emitStageEvent(updated, &fromStage, &user.Username)

	render.JSON(w, r, mappers.ApplicationToApi(updated))
}

// (GET /api/v1/applications/{id}/history)
func (h *Handler) GetApplicationHistory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid application id")
		return
	}

	application, err := h.pipelineSrv.GetApplication(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	user := auth.MustHaveUser(r.Context())
	if user.Organization != application.OrgID {
		renderError(w, r, http.StatusForbidden, fmt.Sprintf("forbidden access to application %q", id))
		return
	}

	history, err := h.pipelineSrv.GetHistory(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, mappers.StageHistoryListToApi(history))
}

func (h *Handler) emitApplicationEvent(application *model.Application) {
	if h.eventWriter == nil {
		return
	}

	event := events.ApplicationEvent{
		ApplicationID: application.ID.String(),
		CandidateID:   application.CandidateID.String(),
		PositionID:    application.PositionID.String(),
		OrgID:         application.OrgID,
	}
	data, err := json.Marshal(event)
	if err != nil {
		zap.S().Named("handlers").Errorw("failed to marshal application event", "error", err)
		return
	}
	if err := h.eventWriter.Write(context.TODO(), events.ApplicationMessageKind, bytes.NewReader(data)); err != nil {
		zap.S().Named("handlers").Errorw("failed to write application event", "error", err)
	}
}

func (h *Handler) emitStageEvent(application *model.Application, fromStage *pipeline.Stage, changedBy *string) {
	if h.eventWriter == nil {
		return
	}

	event := events.StageEvent{
		ApplicationID: application.ID.String(),
		OrgID:         application.OrgID,
		ToStage:       string(application.CurrentStage),
		Status:        string(application.CurrentStageStatus),
		ChangedBy:     changedBy,
	}
	if fromStage != nil {
		v := string(*fromStage)
		event.FromStage = &v
	}
	if application.FinalOutcome != nil {
		v := string(*application.FinalOutcome)
		event.FinalOutcome = &v
	}
	data, err := json.Marshal(event)
	if err != nil {
		zap.S().Named("handlers").Errorw("failed to marshal stage event", "error", err)
		return
	}
	if err := h.eventWriter.Write(context.TODO(), events.StageMessageKind, bytes.NewReader(data)); err != nil {
		zap.S().Named("handlers").Errorw("failed to write stage event", "error", err)
	}
}
