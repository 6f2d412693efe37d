// Package seed resets the company table to a fixed set of sample rows.
// It is the Go counterpart of a framework "populate data" management
// command: wipe everything, insert the fixtures, report what happened.
package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mkoval/companyboard/internal/company/events"
	"github.com/mkoval/companyboard/internal/company/models"
	"go.uber.org/zap"
)

// Repository is the storage surface the seeder needs.
type Repository interface {
	DeleteAllCompanies(ctx context.Context) error
	CreateCompany(ctx context.Context, company *models.Company) error
}

// EventProducer publishes an event for every row the seeder creates.
type EventProducer interface {
	Produce(eventType events.EventType, company *models.Company)
}

// Fixtures is the literal data set the seeder installs. The rows are
// intentionally hardcoded; seeding twice leaves exactly these four rows.
var Fixtures = []models.Company{
	{Name: "Tech Innovations Inc", CEO: "John Smith", Origin: "Silicon Valley, USA", EstYear: 2010},
	{Name: "Global Solutions Ltd", CEO: "Sarah Johnson", Origin: "London, UK", EstYear: 2015},
	{Name: "Digital Dynamics Corp", CEO: "Michael Chen", Origin: "Tokyo, Japan", EstYear: 2018},
	{Name: "Future Systems", CEO: "Emily Davis", Origin: "Berlin, Germany", EstYear: 2020},
}

type Seeder struct {
	repo     Repository
	producer EventProducer
	logger   *zap.Logger
}

func NewSeeder(repo Repository, producer EventProducer, logger *zap.Logger) *Seeder {
	return &Seeder{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("seeder"),
	}
}

// Run clears the company table and inserts the fixtures. The first
// creation failure aborts the run; rows already deleted or inserted stay
// that way, there is no rollback.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.repo.DeleteAllCompanies(ctx); err != nil {
		return fmt.Errorf("failed to clear companies: %w", err)
	}

	for _, fixture := range Fixtures {
		company := fixture
		company.ID = uuid.New()
		if err := s.repo.CreateCompany(ctx, &company); err != nil {
			return fmt.Errorf("failed to create company %q: %w", company.Name, err)
		}
		s.logger.Info("Successfully created company", zap.String("name", company.Name))
		s.producer.Produce(events.CompanySeeded, &company)
	}

	s.logger.Info("Successfully populated companies", zap.Int("count", len(Fixtures)))
	return nil
}
