package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/recruithub/hiring-pipeline/internal/config"
	"github.com/recruithub/hiring-pipeline/internal/events"
	"github.com/recruithub/hiring-pipeline/internal/lifecycle"
	"github.com/recruithub/hiring-pipeline/internal/service"
	"github.com/recruithub/hiring-pipeline/internal/service/mappers"
	"github.com/recruithub/hiring-pipeline/internal/store"
)

var _ = Describe("talent service", Ordered, func() {
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
		gormdb.Exec("DELETE FROM talent_experiences;")
		gormdb.Exec("DELETE FROM talent_profiles;")
		gormdb.Exec("DELETE FROM experiences;")
	})

	newService := func(w *testwriter) *service.TalentService {
		return service.NewTalentService(s, events.NewEventProducer(w))
	}

	createForm := func() mappers.TalentCreateForm {
		return mappers.TalentCreateForm{
			Name:           "Sam Rivera",
			Email:          "sam@example.com",
			CVRef:          "cv/sam.pdf",
			ExpectedSalary: 80000,
			ExperienceTags: []string{"go"},
		}
	}

	Context("create", func() {
		It("creates an active profile", func() {
			srv := newService(newTestWriter())

			profile, err := srv.CreateProfile(context.TODO(), createForm())
			Expect(err).To(BeNil())
			Expect(profile.IsActive).To(BeTrue())
			Expect(profile.Version).To(Equal(1))
			Expect(profile.DisplayID).To(HavePrefix("TP"))
		})

		It("refuses an invalid form", func() {
			srv := newService(newTestWriter())

			form := createForm()
			form.ExperienceTags = nil
			_, err := srv.CreateProfile(context.TODO(), form)
			var ferr *service.ErrInvalidForm
			Expect(errors.As(err, &ferr)).To(BeTrue())
		})
	})

	Context("toggle", func() {
		It("deactivates and reactivates", func() {
			w := newTestWriter()
			srv := newService(w)

			profile, err := srv.CreateProfile(context.TODO(), createForm())
			Expect(err).To(BeNil())

			deactivated, err := srv.Toggle(context.TODO(), profile.ID, lifecycle.EventDeactivate, 1)
			Expect(err).To(BeNil())
			Expect(deactivated.Profile.IsActive).To(BeFalse())
			Expect(deactivated.Version).To(Equal(2))

			reactivated, err := srv.Toggle(context.TODO(), profile.ID, lifecycle.EventActivate, 2)
			Expect(err).To(BeNil())
			Expect(reactivated.Profile.IsActive).To(BeTrue())
			Expect(reactivated.Version).To(Equal(3))

			Eventually(func() int { return len(w.Messages) }, 2*time.Second).Should(Equal(2))
			Expect(w.Messages[0].Context.GetType()).To(Equal(events.TalentMessageKind))
		})

		It("refuses toggling to the current state", func() {
			srv := newService(newTestWriter())

			profile, err := srv.CreateProfile(context.TODO(), createForm())
			Expect(err).To(BeNil())

			_, err = srv.Toggle(context.TODO(), profile.ID, lifecycle.EventActivate, 1)
			var terr *lifecycle.TransitionError
			Expect(errors.As(err, &terr)).To(BeTrue())
			Expect(terr.Kind).To(Equal(lifecycle.KindInvalidTransition))
		})

		It("detects a stale version", func() {
			srv := newService(newTestWriter())

			profile, err := srv.CreateProfile(context.TODO(), createForm())
			Expect(err).To(BeNil())

			_, err = srv.Toggle(context.TODO(), profile.ID, lifecycle.EventDeactivate, 1)
			Expect(err).To(BeNil())

			_, err = srv.Toggle(context.TODO(), profile.ID, lifecycle.EventActivate, 1)
			var cerr *service.ErrConcurrentModification
			Expect(errors.As(err, &cerr)).To(BeTrue())
		})
	})

	Context("update", func() {
		It("edits fields without touching the pool state", func() {
			srv := newService(newTestWriter())

			profile, err := srv.CreateProfile(context.TODO(), createForm())
			Expect(err).To(BeNil())

			salary := int64(95000)
			updated, err := srv.UpdateProfile(context.TODO(), profile.ID, mappers.TalentUpdateForm{
				ExpectedSalary: &salary,
				ExperienceTags: []string{"go", "kubernetes"},
			}, 1)
			Expect(err).To(BeNil())
			Expect(updated.ExpectedSalary).To(Equal(salary))
			Expect(updated.IsActive).To(BeTrue())
			Expect(updated.Version).To(Equal(2))
			Expect(updated.Experiences).To(HaveLen(2))
		})
	})

	Context("list", func() {
		It("filters by pool state", func() {
			srv := newService(newTestWriter())

			first, err := srv.CreateProfile(context.TODO(), createForm())
			Expect(err).To(BeNil())
			second := createForm()
			second.Email = "lee@example.com"
			_, err = srv.CreateProfile(context.TODO(), second)
			Expect(err).To(BeNil())

			_, err = srv.Toggle(context.TODO(), first.ID, lifecycle.EventDeactivate, 1)
			Expect(err).To(BeNil())

			active := true
			profiles, err := srv.ListProfiles(context.TODO(), &service.TalentFilter{Active: &active})
			Expect(err).To(BeNil())
			Expect(profiles).To(HaveLen(1))
			Expect(profiles[0].Email).To(Equal("lee@example.com"))
		})
	})
})
