package service_test

import (
	"context"
	"errors"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/recruithub/hiring-pipeline/internal/config"
	"github.com/recruithub/hiring-pipeline/internal/service"
	"github.com/recruithub/hiring-pipeline/internal/service/mappers"
	"github.com/recruithub/hiring-pipeline/internal/store"
)

var _ = Describe("job service", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

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

	AfterEach(func() {
		gormdb.Exec("DELETE FROM jobs;")
	})

	Context("create", func() {
		It("creates an active posting", func() {
			srv := service.NewJobService(s)

			job, err := srv.CreateJob(context.TODO(), mappers.JobCreateForm{Title: "Platform Engineer", Location: "Remote"})
			Expect(err).To(BeNil())
			Expect(job.IsActive).To(BeTrue())
			Expect(job.Title).To(Equal("Platform Engineer"))
		})

		It("refuses a posting without a title", func() {
			srv := service.NewJobService(s)

			_, err := srv.CreateJob(context.TODO(), mappers.JobCreateForm{})
			var ferr *service.ErrInvalidForm
			Expect(errors.As(err, &ferr)).To(BeTrue())
		})
	})

	Context("activation", func() {
		It("flips the active flag", func() {
			srv := service.NewJobService(s)

			job, err := srv.CreateJob(context.TODO(), mappers.JobCreateForm{Title: "Platform Engineer"})
			Expect(err).To(BeNil())

			closed, err := srv.SetActive(context.TODO(), job.ID, false)
			Expect(err).To(BeNil())
			Expect(closed.IsActive).To(BeFalse())

			active, err := srv.ListJobs(context.TODO(), true)
			Expect(err).To(BeNil())
			Expect(active).To(BeEmpty())
		})

		It("fails for an unknown posting", func() {
			srv := service.NewJobService(s)

			_, err := srv.SetActive(context.TODO(), uuid.New(), false)
			var nerr *service.ErrResourceNotFound
			Expect(errors.As(err, &nerr)).To(BeTrue())
		})
	})
})
