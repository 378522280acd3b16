package migrations_test

import (
	"fmt"
	"os"
	"path"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/recruithub/hiring-pipeline/internal/config"
	"github.com/recruithub/hiring-pipeline/internal/store"
	"github.com/recruithub/hiring-pipeline/pkg/migrations"
)

func TestMigrations(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "migrations suite")
}

var _ = Describe("migrations", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
	})

	AfterAll(func() {
		s.Close()
	})

	Context("store migrations", Ordered, func() {
		It("fails to migrate the db -- migration folder does not exist", func() {
			cfg := config.NewDefault()
			cfg.Service.MigrationFolder = "some folder"
			err := migrations.MigrateStore(gormdb, cfg)
			Expect(err).NotTo(BeNil())
		})

		It("successfully migrates the db", func() {
			currentFolder, err := os.Getwd()
			Expect(err).To(BeNil())
			cfg := config.NewDefault()
			cfg.Service.MigrationFolder = path.Join(currentFolder, "sql")

			err = migrations.MigrateStore(gormdb, cfg)
			Expect(err).To(BeNil())

			tableExists := func(name string) bool {
				exists := 0
				tx := gormdb.Raw(fmt.Sprintf("SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = '%s';", name)).Scan(&exists)
				Expect(tx.Error).To(BeNil())
				return exists == 1
			}

			for _, table := range []string{"jobs", "experiences", "candidates", "candidate_experiences", "talent_profiles", "talent_experiences"} {
				Expect(tableExists(table)).To(BeTrue(), "expected table %s to exist", table)
			}
		})
	})
})
