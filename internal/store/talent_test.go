package store_test

import (
	"context"
	"errors"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/recruithub/hiring-pipeline/internal/config"
	"github.com/recruithub/hiring-pipeline/internal/store"
	"github.com/recruithub/hiring-pipeline/internal/store/model"
)

var _ = Describe("talent store", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	newProfile := func(displayID string) model.TalentProfile {
		return model.TalentProfile{
			ID:        uuid.New(),
			DisplayID: displayID,
			Name:      "Sam Rivera",
			Email:     "sam@example.com",
			CVRef:     "cv/sam.pdf",
			IsActive:  true,
			Version:   1,
			Experiences: []model.Experience{
				{Name: "go"},
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

	AfterEach(func() {
		gormdb.Exec("DELETE FROM talent_experiences;")
		gormdb.Exec("DELETE FROM talent_profiles;")
		gormdb.Exec("DELETE FROM experiences;")
	})

	Context("create", func() {
		It("persists a profile with its tags", func() {
			created, err := s.Talent().Create(context.TODO(), newProfile("TP000001"))
			Expect(err).To(BeNil())

			loaded, err := s.Talent().Get(context.TODO(), created.ID)
			Expect(err).To(BeNil())
			Expect(loaded.DisplayID).To(Equal("TP000001"))
			Expect(loaded.IsActive).To(BeTrue())
			Expect(loaded.Experiences).To(HaveLen(1))
		})
	})

	Context("update", func() {
		It("replaces the tag set and bumps the version", func() {
			created, err := s.Talent().Create(context.TODO(), newProfile("TP000001"))
			Expect(err).To(BeNil())

			created.Experiences = []model.Experience{{Name: "go"}, {Name: "kubernetes"}}
			created.ExpectedSalary = 95000
			updated, err := s.Talent().Update(context.TODO(), *created, 1)
			Expect(err).To(BeNil())
			Expect(updated.Version).To(Equal(2))
			Expect(updated.ExpectedSalary).To(Equal(int64(95000)))
			Expect(updated.Experiences).To(HaveLen(2))
		})

		It("refuses a stale version", func() {
			created, err := s.Talent().Create(context.TODO(), newProfile("TP000001"))
			Expect(err).To(BeNil())

			created.IsActive = false
			_, err = s.Talent().Update(context.TODO(), *created, 1)
			Expect(err).To(BeNil())

			_, err = s.Talent().Update(context.TODO(), *created, 1)
			Expect(errors.Is(err, store.ErrConcurrentModification)).To(BeTrue())
		})
	})

	Context("list", func() {
		It("filters by pool state", func() {
			_, err := s.Talent().Create(context.TODO(), newProfile("TP000001"))
			Expect(err).To(BeNil())

			inactive := newProfile("TP000002")
			inactive.IsActive = false
			_, err = s.Talent().Create(context.TODO(), inactive)
			Expect(err).To(BeNil())

			profiles, err := s.Talent().List(context.TODO(), store.NewTalentQueryFilter().ByActive(true))
			Expect(err).To(BeNil())
			Expect(profiles).To(HaveLen(1))
			Expect(profiles[0].DisplayID).To(Equal("TP000001"))
		})
	})
})
