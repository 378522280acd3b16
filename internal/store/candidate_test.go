package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/recruithub/hiring-pipeline/internal/config"
	"github.com/recruithub/hiring-pipeline/internal/lifecycle"
	"github.com/recruithub/hiring-pipeline/internal/store"
	"github.com/recruithub/hiring-pipeline/internal/store/model"
)

func TestStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "store suite")
}

const insertJobStm = "INSERT INTO jobs (id, title, is_active) VALUES ('%s', '%s', %t);"

var _ = Describe("candidate store", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		jobID  uuid.UUID
	)

	newCandidate := func(displayID string) model.Candidate {
		return model.Candidate{
			ID:        uuid.New(),
			DisplayID: displayID,
			JobID:     jobID,
			Name:      "Jordan Blake",
			Email:     "jordan@example.com",
			CVRef:     "cv/jordan.pdf",
			Status:    string(lifecycle.StatusApplied),
			Version:   1,
			Experiences: []model.Experience{
				{Name: "go"},
				{Name: "postgres"},
			},
		}
	}

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(Succeed())
	})

	AfterAll(func() {
		s.Close()
	})

	BeforeEach(func() {
		jobID = uuid.New()
		tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, "Backend Engineer", true))
		Expect(tx.Error).To(BeNil())
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM candidate_experiences;")
		gormdb.Exec("DELETE FROM candidates;")
		gormdb.Exec("DELETE FROM experiences;")
		gormdb.Exec("DELETE FROM jobs;")
	})

	Context("create", func() {
		It("persists a candidate with its experience tags", func() {
			created, err := s.Candidate().Create(context.TODO(), newCandidate("APP000001"))
			Expect(err).To(BeNil())
			Expect(created.Version).To(Equal(1))

			loaded, err := s.Candidate().Get(context.TODO(), created.ID)
			Expect(err).To(BeNil())
			Expect(loaded.DisplayID).To(Equal("APP000001"))
			Expect(loaded.Experiences).To(HaveLen(2))
		})

		It("shares experience rows between candidates", func() {
			_, err := s.Candidate().Create(context.TODO(), newCandidate("APP000001"))
			Expect(err).To(BeNil())
			_, err = s.Candidate().Create(context.TODO(), newCandidate("APP000002"))
			Expect(err).To(BeNil())

			var count int64
			Expect(gormdb.Model(&model.Experience{}).Count(&count).Error).To(BeNil())
			Expect(count).To(Equal(int64(2)))
		})

		It("refuses a duplicate display id", func() {
			_, err := s.Candidate().Create(context.TODO(), newCandidate("APP000001"))
			Expect(err).To(BeNil())

			_, err = s.Candidate().Create(context.TODO(), newCandidate("APP000001"))
			Expect(errors.Is(err, store.ErrDuplicateKey)).To(BeTrue())
		})
	})

	Context("get", func() {
		It("returns not found for an unknown id", func() {
			_, err := s.Candidate().Get(context.TODO(), uuid.New())
			Expect(errors.Is(err, store.ErrRecordNotFound)).To(BeTrue())
		})

		It("finds a candidate by display id", func() {
			created, err := s.Candidate().Create(context.TODO(), newCandidate("APP000001"))
			Expect(err).To(BeNil())

			loaded, err := s.Candidate().GetByDisplayID(context.TODO(), "APP000001")
			Expect(err).To(BeNil())
			Expect(loaded.ID).To(Equal(created.ID))
		})
	})

	Context("update", func() {
		It("persists engine-owned fields under the expected version", func() {
			created, err := s.Candidate().Create(context.TODO(), newCandidate("APP000001"))
			Expect(err).To(BeNil())

			created.Status = string(lifecycle.StatusTaskSubmitted)
			created.TaskSubmission = model.MakeJSONField(lifecycle.TaskSubmission{
				Links:       []lifecycle.TaskLink{{Type: lifecycle.TaskLinkGithub, URL: "https://github.com/jordan/task"}},
				SubmittedAt: time.Now(),
			})

			updated, err := s.Candidate().Update(context.TODO(), *created, 1)
			Expect(err).To(BeNil())
			Expect(updated.Version).To(Equal(2))
			Expect(updated.Status).To(Equal(string(lifecycle.StatusTaskSubmitted)))
			Expect(updated.TaskSubmission).ToNot(BeNil())
			Expect(updated.TaskSubmission.Data.Links).To(HaveLen(1))
		})

		It("refuses a stale version", func() {
			created, err := s.Candidate().Create(context.TODO(), newCandidate("APP000001"))
			Expect(err).To(BeNil())

			created.Status = string(lifecycle.StatusTaskPending)
			_, err = s.Candidate().Update(context.TODO(), *created, 1)
			Expect(err).To(BeNil())

			_, err = s.Candidate().Update(context.TODO(), *created, 1)
			Expect(errors.Is(err, store.ErrConcurrentModification)).To(BeTrue())
		})

		It("round-trips the interview records", func() {
			created, err := s.Candidate().Create(context.TODO(), newCandidate("APP000001"))
			Expect(err).To(BeNil())

			interviewID := uuid.New()
			created.Status = string(lifecycle.StatusInterviewScheduled)
			created.Interviews = model.MakeJSONField([]lifecycle.Interview{{
				ID:            interviewID,
				ScheduledDate: time.Now().Add(24 * time.Hour),
				InterviewerID: "INT-7",
				Location:      lifecycle.LocationOnline,
				MeetingLink:   "https://meet.example.com/abc",
			}})

			_, err = s.Candidate().Update(context.TODO(), *created, 1)
			Expect(err).To(BeNil())

			loaded, err := s.Candidate().Get(context.TODO(), created.ID)
			Expect(err).To(BeNil())
			Expect(loaded.Interviews.Data).To(HaveLen(1))
			Expect(loaded.Interviews.Data[0].ID).To(Equal(interviewID))
			Expect(loaded.Interviews.Data[0].Location).To(Equal(lifecycle.LocationOnline))
		})
	})

	Context("list", func() {
		It("filters by status", func() {
			first := newCandidate("APP000001")
			_, err := s.Candidate().Create(context.TODO(), first)
			Expect(err).To(BeNil())

			second := newCandidate("APP000002")
			second.Status = string(lifecycle.StatusRejected)
			_, err = s.Candidate().Create(context.TODO(), second)
			Expect(err).To(BeNil())

			candidates, err := s.Candidate().List(context.TODO(),
				store.NewCandidateQueryFilter().ByStatus(string(lifecycle.StatusApplied)),
				store.NewCandidateQueryOptions())
			Expect(err).To(BeNil())
			Expect(candidates).To(HaveLen(1))
			Expect(candidates[0].DisplayID).To(Equal("APP000001"))
		})
	})

	Context("transaction", func() {
		It("rolls back a create", func() {
			ctx, err := s.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			_, err = s.Candidate().Create(ctx, newCandidate("APP000001"))
			Expect(err).To(BeNil())

			_, err = store.Rollback(ctx)
			Expect(err).To(BeNil())

			candidates, err := s.Candidate().List(context.TODO(), store.NewCandidateQueryFilter(), store.NewCandidateQueryOptions())
			Expect(err).To(BeNil())
			Expect(candidates).To(BeEmpty())
		})

		It("commits a create", func() {
			ctx, err := s.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			created, err := s.Candidate().Create(ctx, newCandidate("APP000001"))
			Expect(err).To(BeNil())

			_, err = store.Commit(ctx)
			Expect(err).To(BeNil())

			_, err = s.Candidate().Get(context.TODO(), created.ID)
			Expect(err).To(BeNil())
		})
	})

	Context("seed and statistics", func() {
		It("creates the default posting exactly once", func() {
			Expect(s.Seed()).To(Succeed())
			Expect(s.Seed()).To(Succeed())

			jobs, err := s.Job().List(context.TODO(), store.NewJobQueryFilter())
			Expect(err).To(BeNil())
			// the one from BeforeEach plus the seeded default
			Expect(jobs).To(HaveLen(2))
		})

		It("counts candidates per status", func() {
			_, err := s.Candidate().Create(context.TODO(), newCandidate("APP000001"))
			Expect(err).To(BeNil())
			second := newCandidate("APP000002")
			second.Status = string(lifecycle.StatusRejected)
			_, err = s.Candidate().Create(context.TODO(), second)
			Expect(err).To(BeNil())

			stats, err := s.Statistics(context.TODO())
			Expect(err).To(BeNil())
			Expect(stats.TotalCandidates).To(Equal(2))
			Expect(stats.CandidatesPerStatus[string(lifecycle.StatusApplied)]).To(Equal(1))
			Expect(stats.CandidatesPerStatus[string(lifecycle.StatusRejected)]).To(Equal(1))
		})
	})
})
