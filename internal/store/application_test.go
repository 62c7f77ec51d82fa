package store_test

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/powhr/talentflow/internal/config"
	"github.com/powhr/talentflow/internal/pipeline"
	st "github.com/powhr/talentflow/internal/store"
	"github.com/powhr/talentflow/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

const (
	insertApplicationStm = "INSERT INTO applications (id, candidate_id, position_id, org_id, current_stage, current_stage_status) VALUES ('%s', '%s', '%s', '%s', '%s', '%s');"
	insertHistoryStm     = "INSERT INTO stage_histories (application_id, to_stage, status, changed_at) VALUES ('%s', '%s', '%s', '%s');"
)

var _ = Describe("application store", Ordered, func() {
	var (
		s      st.Store
		gormdb *gorm.DB
	)

	insertApplication := func(id uuid.UUID, orgID string, stage pipeline.Stage, status pipeline.StageStatus) {
		tx := gormdb.Exec(fmt.Sprintf(insertApplicationStm, id, uuid.NewString(), uuid.NewString(), orgID, stage, status))
		Expect(tx.Error).To(BeNil())
	}

	BeforeAll(func() {
		db, err := st.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = st.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(BeNil())
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM stage_histories;")
		gormdb.Exec("DELETE FROM applications;")
	})

	Context("list", func() {
		It("successfully list all the applications", func() {
			insertApplication(uuid.New(), "org-1", pipeline.StageHRReview, pipeline.StatusPending)
			insertApplication(uuid.New(), "org-1", pipeline.StageOffer, pipeline.StatusInProgress)

			applications, err := s.Application().List(context.TODO(), st.NewApplicationQueryFilter())
			Expect(err).To(BeNil())
			Expect(applications).To(HaveLen(2))
		})

		It("filters by org", func() {
			insertApplication(uuid.New(), "org-1", pipeline.StageHRReview, pipeline.StatusPending)
			insertApplication(uuid.New(), "org-2", pipeline.StageHRReview, pipeline.StatusPending)

			applications, err := s.Application().List(context.TODO(), st.NewApplicationQueryFilter().ByOrgID("org-1"))
			Expect(err).To(BeNil())
			Expect(applications).To(HaveLen(1))
			Expect(applications[0].OrgID).To(Equal("org-1"))
		})

		It("filters by stage and status", func() {
			insertApplication(uuid.New(), "org-1", pipeline.StageHRReview, pipeline.StatusPending)
			insertApplication(uuid.New(), "org-1", pipeline.StageOffer, pipeline.StatusPending)
			insertApplication(uuid.New(), "org-1", pipeline.StageOffer, pipeline.StatusInProgress)

			applications, err := s.Application().List(context.TODO(), st.NewApplicationQueryFilter().ByStage(pipeline.StageOffer))
			Expect(err).To(BeNil())
			Expect(applications).To(HaveLen(2))

			applications, err = s.Application().List(context.TODO(), st.NewApplicationQueryFilter().
				ByStage(pipeline.StageOffer).
				ByStageStatus(pipeline.StatusInProgress))
			Expect(err).To(BeNil())
			Expect(applications).To(HaveLen(1))
		})

		It("finds applications missing their history", func() {
			withHistory := uuid.New()
			withoutHistory := uuid.New()
			insertApplication(withHistory, "org-1", pipeline.StageCVReceived, pipeline.StatusCompleted)
			insertApplication(withoutHistory, "org-1", pipeline.StageCVReceived, pipeline.StatusCompleted)

			tx := gormdb.Exec(fmt.Sprintf(insertHistoryStm, withHistory, pipeline.StageCVReceived, pipeline.StatusCompleted, "2026-01-01 10:00:00"))
			Expect(tx.Error).To(BeNil())

			applications, err := s.Application().List(context.TODO(), st.NewApplicationQueryFilter().WithoutHistory())
			Expect(err).To(BeNil())
			Expect(applications).To(HaveLen(1))
			Expect(applications[0].ID).To(Equal(withoutHistory))
		})
	})

	Context("get", func() {
		It("successfully retrieves an application", func() {
			id := uuid.New()
			insertApplication(id, "org-1", pipeline.StageHRReview, pipeline.StatusPending)

			application, err := s.Application().Get(context.TODO(), id)
			Expect(err).To(BeNil())
			Expect(application.CurrentStage).To(Equal(pipeline.StageHRReview))
			Expect(application.CurrentStageStatus).To(Equal(pipeline.StatusPending))
		})

		It("returns not found for an unknown id", func() {
			_, err := s.Application().Get(context.TODO(), uuid.New())
			Expect(err).To(MatchError(st.ErrRecordNotFound))
		})
	})

	Context("create", func() {
		It("rejects a duplicate id", func() {
			id := uuid.New()
			application := model.Application{
				ID:                 id,
				CandidateID:        uuid.New(),
				PositionID:         uuid.New(),
				OrgID:              "org-1",
				CurrentStage:       pipeline.StageCVReceived,
				CurrentStageStatus: pipeline.StatusCompleted,
			}

			_, err := s.Application().Create(context.TODO(), application)
			Expect(err).To(BeNil())

			_, err = s.Application().Create(context.TODO(), application)
			Expect(err).To(MatchError(st.ErrDuplicateKey))
		})
	})

	Context("update state", func() {
		It("moves the projection when the observed stage matches", func() {
			id := uuid.New()
			insertApplication(id, "org-1", pipeline.StageHRReview, pipeline.StatusPending)

			updated, err := s.Application().UpdateState(context.TODO(), model.ApplicationStateUpdate{
				ID:            id,
				ObservedStage: pipeline.StageHRReview,
				Stage:         pipeline.StageHRInterview,
				StageStatus:   pipeline.StatusPending,
			})
			Expect(err).To(BeNil())
			Expect(updated.CurrentStage).To(Equal(pipeline.StageHRInterview))
		})

		It("writes offer status and outcome when supplied", func() {
			id := uuid.New()
			insertApplication(id, "org-1", pipeline.StageOffer, pipeline.StatusInProgress)

			offerStatus := pipeline.OfferAccepted
			outcome := pipeline.OutcomeHired
			updated, err := s.Application().UpdateState(context.TODO(), model.ApplicationStateUpdate{
				ID:            id,
				ObservedStage: pipeline.StageOffer,
				Stage:         pipeline.StageClosed,
				StageStatus:   pipeline.StatusCompleted,
				OfferStatus:   &offerStatus,
				FinalOutcome:  &outcome,
			})
			Expect(err).To(BeNil())
			Expect(updated.CurrentStage).To(Equal(pipeline.StageClosed))
			Expect(*updated.OfferStatus).To(Equal(pipeline.OfferAccepted))
			Expect(*updated.FinalOutcome).To(Equal(pipeline.OutcomeHired))
		})

		It("reports a stale record when the stage moved underneath", func() {
			id := uuid.New()
			insertApplication(id, "org-1", pipeline.StageLeadInterview, pipeline.StatusPending)

			_, err := s.Application().UpdateState(context.TODO(), model.ApplicationStateUpdate{
				ID:            id,
				ObservedStage: pipeline.StageHRReview,
				Stage:         pipeline.StageHRInterview,
				StageStatus:   pipeline.StatusPending,
			})
			Expect(err).To(MatchError(st.ErrStaleRecord))
		})

		It("reports not found for a missing application", func() {
			_, err := s.Application().UpdateState(context.TODO(), model.ApplicationStateUpdate{
				ID:            uuid.New(),
				ObservedStage: pipeline.StageHRReview,
				Stage:         pipeline.StageHRInterview,
				StageStatus:   pipeline.StatusPending,
			})
			Expect(err).To(MatchError(st.ErrRecordNotFound))
		})
	})
})
