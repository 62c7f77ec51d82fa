package store_test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/powhr/talentflow/internal/config"
	"github.com/powhr/talentflow/internal/pipeline"
	st "github.com/powhr/talentflow/internal/store"
	"github.com/powhr/talentflow/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("stage history store", Ordered, func() {
	var (
		s      st.Store
		gormdb *gorm.DB
	)

	insertApplication := func(id uuid.UUID, stage pipeline.Stage) {
		tx := gormdb.Exec(fmt.Sprintf(insertApplicationStm, id, uuid.NewString(), uuid.NewString(), "org-1", stage, pipeline.StatusPending))
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

	Context("append", func() {
		It("accepts the first entry without a from stage", func() {
			applicationID := uuid.New()
			insertApplication(applicationID, pipeline.StageCVReceived)

			entry, err := s.StageHistory().Append(context.TODO(), model.StageHistory{
				ApplicationID: applicationID,
				ToStage:       pipeline.StageCVReceived,
				Status:        pipeline.StatusCompleted,
				ChangedAt:     time.Now().UTC(),
			})
			Expect(err).To(BeNil())
			Expect(entry.ID).NotTo(BeZero())
		})

		It("accepts an entry whose from stage matches the current stage", func() {
			applicationID := uuid.New()
			insertApplication(applicationID, pipeline.StageHRReview)

			fromStage := pipeline.StageHRReview
			_, err := s.StageHistory().Append(context.TODO(), model.StageHistory{
				ApplicationID: applicationID,
				FromStage:     &fromStage,
				ToStage:       pipeline.StageHRInterview,
				Status:        pipeline.StatusPending,
				ChangedAt:     time.Now().UTC(),
			})
			Expect(err).To(BeNil())
		})

		It("rejects an entry whose from stage does not match", func() {
			applicationID := uuid.New()
			insertApplication(applicationID, pipeline.StageLeadInterview)

			fromStage := pipeline.StageHRReview
			_, err := s.StageHistory().Append(context.TODO(), model.StageHistory{
				ApplicationID: applicationID,
				FromStage:     &fromStage,
				ToStage:       pipeline.StageHRInterview,
				Status:        pipeline.StatusPending,
				ChangedAt:     time.Now().UTC(),
			})
			Expect(err).To(MatchError(st.ErrInvalidHistoryEntry))
		})

		It("rejects an entry without a to stage", func() {
			_, err := s.StageHistory().Append(context.TODO(), model.StageHistory{
				ApplicationID: uuid.New(),
				Status:        pipeline.StatusPending,
				ChangedAt:     time.Now().UTC(),
			})
			Expect(err).To(MatchError(st.ErrInvalidHistoryEntry))
		})

		It("reports not found for an unknown application", func() {
			fromStage := pipeline.StageHRReview
			_, err := s.StageHistory().Append(context.TODO(), model.StageHistory{
				ApplicationID: uuid.New(),
				FromStage:     &fromStage,
				ToStage:       pipeline.StageHRInterview,
				Status:        pipeline.StatusPending,
				ChangedAt:     time.Now().UTC(),
			})
			Expect(err).To(MatchError(st.ErrRecordNotFound))
		})
	})

	Context("list", func() {
		It("returns entries in chronological order with id tiebreak", func() {
			applicationID := uuid.New()
			insertApplication(applicationID, pipeline.StageHRReview)

			now := time.Now().UTC().Truncate(time.Second)
			hrReview := pipeline.StageHRReview
			cvReceived := pipeline.StageCVReceived

			// both seed entries share the creation timestamp
			_, err := s.StageHistory().Append(context.TODO(), model.StageHistory{
				ApplicationID: applicationID,
				ToStage:       pipeline.StageCVReceived,
				Status:        pipeline.StatusCompleted,
				ChangedAt:     now,
			})
			Expect(err).To(BeNil())
			_, err = s.StageHistory().Append(context.TODO(), model.StageHistory{
				ApplicationID: applicationID,
				FromStage:     &cvReceived,
				ToStage:       pipeline.StageHRReview,
				Status:        pipeline.StatusPending,
				ChangedAt:     now,
			})
			Expect(err).To(BeNil())
			_, err = s.StageHistory().Append(context.TODO(), model.StageHistory{
				ApplicationID: applicationID,
				FromStage:     &hrReview,
				ToStage:       pipeline.StageHRInterview,
				Status:        pipeline.StatusPending,
				ChangedAt:     now.Add(time.Minute),
			})
			Expect(err).To(BeNil())

			entries, err := s.StageHistory().ListFor(context.TODO(), applicationID)
			Expect(err).To(BeNil())
			Expect(entries).To(HaveLen(3))
			Expect(entries[0].FromStage).To(BeNil())
			Expect(entries[0].ToStage).To(Equal(pipeline.StageCVReceived))
			Expect(entries[1].ToStage).To(Equal(pipeline.StageHRReview))
			Expect(entries[2].ToStage).To(Equal(pipeline.StageHRInterview))
		})

		It("returns an empty list for an application without entries", func() {
			entries, err := s.StageHistory().ListFor(context.TODO(), uuid.New())
			Expect(err).To(BeNil())
			Expect(entries).To(HaveLen(0))
		})
	})

	Context("backfill", func() {
		It("inserts reconstructed entries without the consistency check", func() {
			applicationID := uuid.New()
			insertApplication(applicationID, pipeline.StageHRInterview)

			cvReceived := pipeline.StageCVReceived
			hrReview := pipeline.StageHRReview
			now := time.Now().UTC()

			err := s.StageHistory().Backfill(context.TODO(), []model.StageHistory{
				{ApplicationID: applicationID, ToStage: pipeline.StageCVReceived, Status: pipeline.StatusCompleted, ChangedAt: now},
				{ApplicationID: applicationID, FromStage: &cvReceived, ToStage: pipeline.StageHRReview, Status: pipeline.StatusCompleted, ChangedAt: now},
				{ApplicationID: applicationID, FromStage: &hrReview, ToStage: pipeline.StageHRInterview, Status: pipeline.StatusPending, ChangedAt: now},
			})
			Expect(err).To(BeNil())

			entries, err := s.StageHistory().ListFor(context.TODO(), applicationID)
			Expect(err).To(BeNil())
			Expect(entries).To(HaveLen(3))
		})

		It("is a no-op for an empty batch", func() {
			Expect(s.StageHistory().Backfill(context.TODO(), nil)).To(BeNil())
		})
	})
})
