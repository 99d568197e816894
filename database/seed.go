package database

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/uni-portal/model"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed seed_data.yaml
var defaultSeedData []byte

// SeedData is the YAML layout accepted by the seeder
type SeedData struct {
	Universities []SeedUniversity `yaml:"universities"`
}

type SeedUniversity struct {
	Name       string       `yaml:"name"`
	Location   string       `yaml:"location"`
	Ranking    int          `yaml:"ranking"`
	PictureURL string       `yaml:"picture_url"`
	Courses    []SeedCourse `yaml:"courses"`
	Events     []SeedEvent  `yaml:"events"`
}

type SeedCourse struct {
	Name              string `yaml:"name"`
	DurationSemesters int    `yaml:"duration_semesters"`
	Description       string `yaml:"description"`
}

type SeedEvent struct {
	Name string    `yaml:"name"`
	City string    `yaml:"city"`
	Date time.Time `yaml:"date"`
}

// ParseSeedData decodes seed YAML
func ParseSeedData(raw []byte) (*SeedData, error) {
	var data SeedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return &data, nil
}

// LoadSeedData reads seed YAML from path, or the embedded catalog when path is empty
func LoadSeedData(path string) (*SeedData, error) {
	if path == "" {
		return ParseSeedData(defaultSeedData)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeedData(raw)
}

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll(data *SeedData) error {
	log.Info("Starting database seeding...")

	if err := s.SeedCatalog(data); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	log.Info("Database seeding completed successfully!")
	return nil
}

// SeedCatalog creates universities with their courses and events.
// It is a no-op when universities already exist.
func (s *Seeder) SeedCatalog(data *SeedData) error {
	var count int64
	if err := s.db.Model(&model.University{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Info("Universities already exist, skipping...")
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, u := range data.Universities {
			university := model.University{
				Name:       u.Name,
				Location:   u.Location,
				Ranking:    u.Ranking,
				PictureURL: u.PictureURL,
			}
			if err := tx.Create(&university).Error; err != nil {
				return err
			}

			for _, c := range u.Courses {
				course := model.Course{
					Name:              c.Name,
					DurationSemesters: c.DurationSemesters,
					Description:       c.Description,
					UniversityID:      university.ID,
				}
				if err := tx.Create(&course).Error; err != nil {
					return err
				}
			}

			for _, e := range u.Events {
				event := model.Event{
					Name:         e.Name,
					City:         e.City,
					Date:         e.Date,
					UniversityID: university.ID,
				}
				if err := tx.Create(&event).Error; err != nil {
					return err
				}
			}

			log.Infof("Created university %s (%d courses, %d events)", university.Name, len(u.Courses), len(u.Events))
		}
		return nil
	})
}
