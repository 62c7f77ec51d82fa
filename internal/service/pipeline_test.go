package service_test

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/powhr/talentflow/internal/config"
	"github.com/powhr/talentflow/internal/pipeline"
	"github.com/powhr/talentflow/internal/service"
	"github.com/powhr/talentflow/internal/service/mappers"
	"github.com/powhr/talentflow/internal/store"
	"github.com/powhr/talentflow/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

const (
	insertCandidateStm = "INSERT INTO candidates (id, first_name, last_name, email, org_id) VALUES ('%s', 'Jane', 'Doe', '%s', '%s');"
	insertPositionStm  = "INSERT INTO job_positions (id, title, org_id) VALUES ('%s', 'Backend Engineer', '%s');"
)

var _ = Describe("pipeline service", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		srv    *service.PipelineService

		candidateID uuid.UUID
		positionID  uuid.UUID
	)

	seedParents := func(orgID string) {
		candidateID = uuid.New()
		positionID = uuid.New()
		tx := gormdb.Exec(fmt.Sprintf(insertCandidateStm, candidateID, fmt.Sprintf("%s@example.com", uuid.NewString()), orgID))
		Expect(tx.Error).To(BeNil())
		tx = gormdb.Exec(fmt.Sprintf(insertPositionStm, positionID, orgID))
		Expect(tx.Error).To(BeNil())
	}

	createApplication := func(orgID string) *model.Application {
		seedParents(orgID)
		application, err := srv.CreateApplication(context.TODO(), mappers.ApplicationCreateForm{
			CandidateID: candidateID,
			PositionID:  positionID,
			OrgID:       orgID,
		})
		Expect(err).To(BeNil())
		return application
	}

	transition := func(id uuid.UUID, form mappers.TransitionForm) (*model.Application, error) {
		form.ApplicationID = id
		actor := "recruiter@powhr.io"
		return srv.Transition(context.TODO(), form, &actor)
	}

	advanceTo := func(id uuid.UUID, target pipeline.Stage) *model.Application {
		application, err := srv.GetApplication(context.TODO(), id)
		Expect(err).To(BeNil())
		for application.CurrentStage != target {
			next, ok := pipeline.NextStage(application.CurrentStage)
			Expect(ok).To(BeTrue())
			form := mappers.TransitionForm{ToStage: next}
			if next == pipeline.StageOffer {
				offerStatus := pipeline.OfferSent
				form.OfferStatus = &offerStatus
			}
			application, err = transition(id, form)
			Expect(err).To(BeNil())
		}
		return application
	}

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(BeNil())

		srv = service.NewPipelineService(s)
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM stage_histories;")
		gormdb.Exec("DELETE FROM applications;")
		gormdb.Exec("DELETE FROM candidates;")
		gormdb.Exec("DELETE FROM job_positions;")
	})

	Context("create", func() {
		It("seeds the projection and two history entries", func() {
			application := createApplication("org-1")

			Expect(application.CurrentStage).To(Equal(pipeline.StageHRReview))
			Expect(application.CurrentStageStatus).To(Equal(pipeline.StatusPending))
			Expect(application.OfferStatus).To(BeNil())
			Expect(application.FinalOutcome).To(BeNil())

			history, err := srv.GetHistory(context.TODO(), application.ID)
			Expect(err).To(BeNil())
			Expect(history).To(HaveLen(2))

			Expect(history[0].FromStage).To(BeNil())
			Expect(history[0].ToStage).To(Equal(pipeline.StageCVReceived))
			Expect(history[0].Status).To(Equal(pipeline.StatusCompleted))
			Expect(history[0].ChangedBy).To(BeNil())

			Expect(*history[1].FromStage).To(Equal(pipeline.StageCVReceived))
			Expect(history[1].ToStage).To(Equal(pipeline.StageHRReview))
			Expect(history[1].Status).To(Equal(pipeline.StatusPending))
		})

		It("rejects an unknown candidate", func() {
			seedParents("org-1")
			_, err := srv.CreateApplication(context.TODO(), mappers.ApplicationCreateForm{
				CandidateID: uuid.New(),
				PositionID:  positionID,
				OrgID:       "org-1",
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})

		It("rejects an unknown position", func() {
			seedParents("org-1")
			_, err := srv.CreateApplication(context.TODO(), mappers.ApplicationCreateForm{
				CandidateID: candidateID,
				PositionID:  uuid.New(),
				OrgID:       "org-1",
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})

	Context("transition", func() {
		It("advances one stage forward", func() {
			application := createApplication("org-1")

			updated, err := transition(application.ID, mappers.TransitionForm{ToStage: pipeline.StageHRInterview})
			Expect(err).To(BeNil())
			Expect(updated.CurrentStage).To(Equal(pipeline.StageHRInterview))
			Expect(updated.CurrentStageStatus).To(Equal(pipeline.StatusPending))
		})

		It("allows one stage back", func() {
			application := createApplication("org-1")
			advanceTo(application.ID, pipeline.StageHRInterview)

			updated, err := transition(application.ID, mappers.TransitionForm{ToStage: pipeline.StageHRReview})
			Expect(err).To(BeNil())
			Expect(updated.CurrentStage).To(Equal(pipeline.StageHRReview))
		})

		It("rejects skipping a stage and leaves no trace", func() {
			application := createApplication("org-1")

			_, err := transition(application.ID, mappers.TransitionForm{ToStage: pipeline.StageLeadInterview})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidTransition{}))

			current, err := srv.GetApplication(context.TODO(), application.ID)
			Expect(err).To(BeNil())
			Expect(current.CurrentStage).To(Equal(pipeline.StageHRReview))

			history, err := srv.GetHistory(context.TODO(), application.ID)
			Expect(err).To(BeNil())
			Expect(history).To(HaveLen(2))
		})

		It("keeps the stage on a self-transition and records the status change", func() {
			application := createApplication("org-1")

			status := pipeline.StatusInProgress
			updated, err := transition(application.ID, mappers.TransitionForm{
				ToStage: pipeline.StageHRReview,
				Status:  &status,
			})
			Expect(err).To(BeNil())
			Expect(updated.CurrentStage).To(Equal(pipeline.StageHRReview))
			Expect(updated.CurrentStageStatus).To(Equal(pipeline.StatusInProgress))

			history, err := srv.GetHistory(context.TODO(), application.ID)
			Expect(err).To(BeNil())
			Expect(history).To(HaveLen(3))
			Expect(*history[2].FromStage).To(Equal(pipeline.StageHRReview))
			Expect(history[2].ToStage).To(Equal(pipeline.StageHRReview))
		})

		It("requires an offer status when entering the offer stage", func() {
			application := createApplication("org-1")
			advanceTo(application.ID, pipeline.StageSelectedForOffer)

			_, err := transition(application.ID, mappers.TransitionForm{ToStage: pipeline.StageOffer})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrMissingOfferStatus{}))

			offerStatus := pipeline.OfferPendingToSend
			updated, err := transition(application.ID, mappers.TransitionForm{
				ToStage:     pipeline.StageOffer,
				OfferStatus: &offerStatus,
			})
			Expect(err).To(BeNil())
			Expect(*updated.OfferStatus).To(Equal(pipeline.OfferPendingToSend))
		})

		It("closes from any stage", func() {
			application := createApplication("org-1")

			outcome := pipeline.OutcomeRoleCancelled
			offerStatus := pipeline.OfferWithdrawnByPOW
			updated, err := transition(application.ID, mappers.TransitionForm{
				ToStage:      pipeline.StageClosed,
				OfferStatus:  &offerStatus,
				FinalOutcome: &outcome,
			})
			Expect(err).To(BeNil())
			Expect(updated.CurrentStage).To(Equal(pipeline.StageClosed))
			Expect(*updated.FinalOutcome).To(Equal(pipeline.OutcomeRoleCancelled))
		})

		It("treats the closed stage as terminal", func() {
			application := createApplication("org-1")

			offerStatus := pipeline.OfferWithdrawnByPOW
			_, err := transition(application.ID, mappers.TransitionForm{
				ToStage:     pipeline.StageClosed,
				OfferStatus: &offerStatus,
			})
			Expect(err).To(BeNil())

			_, err = transition(application.ID, mappers.TransitionForm{ToStage: pipeline.StageOffer})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidTransition{}))
		})

		It("derives the hired outcome from an accepted offer", func() {
			application := createApplication("org-1")
			advanceTo(application.ID, pipeline.StageOffer)

			offerStatus := pipeline.OfferAccepted
			updated, err := transition(application.ID, mappers.TransitionForm{
				ToStage:     pipeline.StageClosed,
				OfferStatus: &offerStatus,
			})
			Expect(err).To(BeNil())
			Expect(*updated.FinalOutcome).To(Equal(pipeline.OutcomeHired))
		})

		It("derives rejection outcomes from the offer status", func() {
			application := createApplication("org-1")
			advanceTo(application.ID, pipeline.StageOffer)

			offerStatus := pipeline.OfferRejectedByCandidate
			updated, err := transition(application.ID, mappers.TransitionForm{
				ToStage:     pipeline.StageClosed,
				OfferStatus: &offerStatus,
			})
			Expect(err).To(BeNil())
			Expect(*updated.FinalOutcome).To(Equal(pipeline.OutcomeRejectedByCandidate))
		})

		It("lets an explicit outcome win over the derived one", func() {
			application := createApplication("org-1")
			advanceTo(application.ID, pipeline.StageOffer)

			offerStatus := pipeline.OfferAccepted
			outcome := pipeline.OutcomeTalentPool
			updated, err := transition(application.ID, mappers.TransitionForm{
				ToStage:      pipeline.StageClosed,
				OfferStatus:  &offerStatus,
				FinalOutcome: &outcome,
			})
			Expect(err).To(BeNil())
			Expect(*updated.FinalOutcome).To(Equal(pipeline.OutcomeTalentPool))
		})

		It("rejects a final outcome before closing", func() {
			application := createApplication("org-1")

			outcome := pipeline.OutcomeHired
			_, err := transition(application.ID, mappers.TransitionForm{
				ToStage:      pipeline.StageHRInterview,
				FinalOutcome: &outcome,
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidTransition{}))
		})

		It("rejects a rejection reason without an outcome", func() {
			application := createApplication("org-1")

			reason := pipeline.ReasonOther
			_, err := transition(application.ID, mappers.TransitionForm{
				ToStage:         pipeline.StageHRInterview,
				RejectionReason: &reason,
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidRejectionReason{}))
		})

		It("rejects a reason outside the outcome's catalogue", func() {
			application := createApplication("org-1")
			advanceTo(application.ID, pipeline.StageOffer)

			// candidate-side reason paired with an employer-side rejection
			offerStatus := pipeline.OfferWithdrawnByPOW
			reason := pipeline.ReasonAcceptedAnotherOffer
			_, err := transition(application.ID, mappers.TransitionForm{
				ToStage:         pipeline.StageClosed,
				OfferStatus:     &offerStatus,
				RejectionReason: &reason,
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidRejectionReason{}))
		})

		It("accepts a matching rejection reason", func() {
			application := createApplication("org-1")
			advanceTo(application.ID, pipeline.StageOffer)

			offerStatus := pipeline.OfferWithdrawnByPOW
			reason := pipeline.ReasonFailedInterview
			updated, err := transition(application.ID, mappers.TransitionForm{
				ToStage:         pipeline.StageClosed,
				OfferStatus:     &offerStatus,
				RejectionReason: &reason,
			})
			Expect(err).To(BeNil())
			Expect(*updated.FinalOutcome).To(Equal(pipeline.OutcomeRejectedByPOW))
			Expect(*updated.FinalRejectionReason).To(Equal(pipeline.ReasonFailedInterview))
		})

		It("reports not found for an unknown application", func() {
			_, err := transition(uuid.New(), mappers.TransitionForm{ToStage: pipeline.StageHRInterview})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})

	Context("history", func() {
		It("folds back to the projection", func() {
			application := createApplication("org-1")
			advanceTo(application.ID, pipeline.StageOffer)

			current, err := srv.GetApplication(context.TODO(), application.ID)
			Expect(err).To(BeNil())

			history, err := srv.GetHistory(context.TODO(), application.ID)
			Expect(err).To(BeNil())
			Expect(history).NotTo(BeEmpty())

			last := history[len(history)-1]
			Expect(last.ToStage).To(Equal(current.CurrentStage))
			Expect(last.Status).To(Equal(current.CurrentStageStatus))

			// every entry chains onto the previous one
			for i := 1; i < len(history); i++ {
				Expect(history[i].FromStage).NotTo(BeNil())
				Expect(*history[i].FromStage).To(Equal(history[i-1].ToStage))
			}
		})

		It("reports not found for an unknown application", func() {
			_, err := srv.GetHistory(context.TODO(), uuid.New())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})

	Context("concurrent modification", func() {
		It("maps a stale projection write to a conflict", func() {
			application := createApplication("org-1")

			stale := &staleStore{Store: s}
			staleSrv := service.NewPipelineService(stale)

			actor := "recruiter@powhr.io"
			_, err := staleSrv.Transition(context.TODO(), mappers.TransitionForm{
				ApplicationID: application.ID,
				ToStage:       pipeline.StageHRInterview,
			}, &actor)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrConcurrentModification{}))
		})
	})

	Context("list", func() {
		It("filters by org, stage and position", func() {
			first := createApplication("org-1")
			firstPosition := positionID
			createApplication("org-2")

			applications, err := srv.ListApplications(context.TODO(), service.NewApplicationFilter(service.WithOrgID("org-1")))
			Expect(err).To(BeNil())
			Expect(applications).To(HaveLen(1))
			Expect(applications[0].ID).To(Equal(first.ID))

			applications, err = srv.ListApplications(context.TODO(), service.NewApplicationFilter(
				service.WithOrgID("org-1"),
				service.WithStage(pipeline.StageHRReview),
				service.WithPositionID(firstPosition),
			))
			Expect(err).To(BeNil())
			Expect(applications).To(HaveLen(1))

			applications, err = srv.ListApplications(context.TODO(), service.NewApplicationFilter(
				service.WithOrgID("org-1"),
				service.WithStage(pipeline.StageClosed),
			))
			Expect(err).To(BeNil())
			Expect(applications).To(HaveLen(0))
		})
	})

	Context("reconcile", func() {
		It("rebuilds the ledger for applications without history", func() {
			applicationID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(
				"INSERT INTO applications (id, candidate_id, position_id, org_id, current_stage, current_stage_status, created_at) VALUES ('%s', '%s', '%s', 'org-1', '%s', '%s', '2026-02-01 09:00:00');",
				applicationID, uuid.NewString(), uuid.NewString(), pipeline.StageHRInterview, pipeline.StatusInProgress))
			Expect(tx.Error).To(BeNil())

			repaired, err := srv.ReconcileHistories(context.TODO())
			Expect(err).To(BeNil())
			Expect(repaired).To(Equal(1))

			history, err := srv.GetHistory(context.TODO(), applicationID)
			Expect(err).To(BeNil())
			Expect(history).To(HaveLen(3))
			Expect(history[0].FromStage).To(BeNil())
			Expect(history[0].ToStage).To(Equal(pipeline.StageCVReceived))
			Expect(history[2].ToStage).To(Equal(pipeline.StageHRInterview))
			Expect(history[2].Status).To(Equal(pipeline.StatusInProgress))

			// a second run finds nothing to repair
			repaired, err = srv.ReconcileHistories(context.TODO())
			Expect(err).To(BeNil())
			Expect(repaired).To(BeZero())
		})
	})
})

// staleStore simulates a lost optimistic lock on the projection write.
type staleStore struct {
	store.Store
}

func (s *staleStore) Application() store.Application {
	return &staleApplicationStore{s.Store.Application()}
}

type staleApplicationStore struct {
	store.Application
}

func (a *staleApplicationStore) UpdateState(ctx context.Context, update model.ApplicationStateUpdate) (*model.Application, error) {
	return nil, store.ErrStaleRecord
}
