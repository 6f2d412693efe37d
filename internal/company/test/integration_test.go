package test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mkoval/companyboard/internal/company/controller"
	"github.com/mkoval/companyboard/internal/company/db"
	"github.com/mkoval/companyboard/internal/company/events"
	"github.com/mkoval/companyboard/internal/company/seed"
	"github.com/mkoval/companyboard/internal/company/web"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// IntegrationTestSuite wires the real repository, seeder, controller and
// router together over an in-memory database and drives them through HTTP.
type IntegrationTestSuite struct {
	suite.Suite
	repo   *db.Repository
	router *gin.Engine
	logger *zap.Logger
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}

func (s *IntegrationTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.logger = zap.NewNop()

	var err error
	s.repo, err = db.NewRepository(&db.Config{Driver: db.DriverSQLite, Path: ":memory:"})
	s.Require().NoError(err, "database initialization failed")

	svc := controller.NewCompanyService(s.repo, events.Discard{}, s.logger)
	s.router = web.NewRouter(svc, &web.Config{
		Debug:         false,
		AppRoot:       s.T().TempDir(),
		JWTSecret:     "integration-secret",
		AdminUser:     "admin",
		AdminPassword: "admin",
	}, s.logger)
}

func (s *IntegrationTestSuite) TearDownTest() {
	s.Require().NoError(s.repo.Close())
}

func (s *IntegrationTestSuite) seedDatabase() {
	seeder := seed.NewSeeder(s.repo, events.Discard{}, s.logger)
	s.Require().NoError(seeder.Run(context.Background()))
}

func (s *IntegrationTestSuite) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *IntegrationTestSuite) TestHealthBeforeSeeding() {
	w := s.get("/health/")
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"healthy"}`, w.Body.String())
}

func (s *IntegrationTestSuite) TestHomeAfterSeeding() {
	s.seedDatabase()

	w := s.get("/")
	s.Equal(http.StatusOK, w.Code)
	for _, fixture := range seed.Fixtures {
		s.Contains(w.Body.String(), fixture.Name)
		s.Contains(w.Body.String(), fixture.CEO)
	}
}

func (s *IntegrationTestSuite) TestSeedingIsIdempotent() {
	s.seedDatabase()
	s.seedDatabase()

	count, err := s.repo.CountCompanies(context.Background())
	s.Require().NoError(err)
	s.Equal(int64(4), count)
}

func (s *IntegrationTestSuite) TestCompanyDirectory() {
	s.seedDatabase()

	w := s.get("/company/")
	s.Require().Equal(http.StatusOK, w.Code)

	companies, err := s.repo.ListCompanies(context.Background())
	s.Require().NoError(err)
	s.Require().Len(companies, 4)

	detail := s.get("/company/" + companies[0].ID.String())
	s.Equal(http.StatusOK, detail.Code)
	s.Contains(detail.Body.String(), companies[0].Name)
	s.Contains(detail.Body.String(), companies[0].CEO)
}

func (s *IntegrationTestSuite) TestHomeFallbackWhenDatabaseDown() {
	s.seedDatabase()
	s.Require().NoError(s.repo.Close())

	w := s.get("/")
	s.Equal(http.StatusOK, w.Code, "home should answer even with the database gone")
	s.Contains(w.Body.String(), "temporarily unavailable")
}

func (s *IntegrationTestSuite) TestAdminFlow() {
	s.seedDatabase()

	// Unauthenticated access is rejected.
	w := s.get("/admin/companies")
	s.Equal(http.StatusUnauthorized, w.Code)

	// Log in and list through the API.
	loginBody := `{"username":"admin","password":"admin"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Require().Equal(http.StatusOK, rec.Code)

	var login map[string]string
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &login))
	s.Require().NotEmpty(login["token"])

	req = httptest.NewRequest(http.MethodGet, "/admin/companies", nil)
	req.Header.Set("Authorization", "Bearer "+login["token"])
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Require().Equal(http.StatusOK, rec.Code)

	var listing struct {
		Companies []struct {
			Name string `json:"name"`
		} `json:"companies"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &listing))
	s.Len(listing.Companies, 4)
}
