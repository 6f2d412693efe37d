// Package web serves the HTTP surface: the company list home page with
// its fallback, the health endpoint, the admin API and the company
// directory sub-app.
package web

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mkoval/companyboard/internal/company/auth"
	e "github.com/mkoval/companyboard/internal/company/errors"
	"github.com/mkoval/companyboard/internal/company/models"
	"go.uber.org/zap"
)

// CompanyService defines the business logic interface the handlers invoke.
type CompanyService interface {
	ListCompanies(ctx context.Context) ([]*models.Company, error)
	GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error)
	CreateCompany(ctx context.Context, company *models.Company) (*models.Company, error)
	DeleteCompany(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	service       CompanyService
	logger        *zap.Logger
	debug         bool
	appRoot       string
	jwtSecret     string
	adminUser     string
	adminPassword string
}

func NewHandler(service CompanyService, cfg *Config, logger *zap.Logger) *Handler {
	return &Handler{
		service:       service,
		logger:        logger.Named("web_handler"),
		debug:         cfg.Debug,
		appRoot:       cfg.AppRoot,
		jwtSecret:     cfg.JWTSecret,
		adminUser:     cfg.AdminUser,
		adminPassword: cfg.AdminPassword,
	}
}

// Health reports a constant healthy status regardless of database state.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Home renders the company list. Any failure on the primary path is
// answered with a fallback page instead of a server error: the page stays
// up even when the database is broken.
func (h *Handler) Home(c *gin.Context) {
	companies, err := h.service.ListCompanies(c.Request.Context())
	if err != nil {
		h.renderFallback(c, err)
		return
	}
	h.renderHTML(c, http.StatusOK, homeTmpl, gin.H{"Companies": companies})
}

// renderFallback answers a failed home request. With debug on it exposes
// the error and process state; otherwise the visitor gets a generic page.
func (h *Handler) renderFallback(c *gin.Context, cause error) {
	h.logger.Error("home handler failed, serving fallback", zap.Error(cause))

	if !h.debug {
		h.renderHTML(c, http.StatusOK, unavailableTmpl, nil)
		return
	}

	wd, _ := os.Getwd()
	exe, _ := os.Executable()
	entries, err := os.ReadDir(h.appRoot)
	if err != nil {
		// Best effort ends here: listing the app root failed too.
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	h.renderHTML(c, http.StatusOK, debugTmpl, gin.H{
		"Error":      cause.Error(),
		"WorkingDir": wd,
		"Executable": exe,
		"AppRoot":    h.appRoot,
		"Entries":    names,
	})
}

// CompanyList renders the /company/ directory page.
func (h *Handler) CompanyList(c *gin.Context) {
	companies, err := h.service.ListCompanies(c.Request.Context())
	if err != nil {
		h.logger.Error("company list failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to load companies")
		return
	}
	h.renderHTML(c, http.StatusOK, companyListTmpl, gin.H{"Companies": companies})
}

// CompanyDetail renders a single company page.
func (h *Handler) CompanyDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "company not found")
		return
	}

	company, err := h.service.GetCompany(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			c.String(http.StatusNotFound, "company not found")
			return
		}
		h.logger.Error("company detail failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to load company")
		return
	}
	h.renderHTML(c, http.StatusOK, companyDetailTmpl, gin.H{"Company": company})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin exchanges the configured admin credentials for a JWT.
func (h *Handler) AdminLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
		return
	}
	if req.Username != h.adminUser || req.Password != h.adminPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(req.Username, h.jwtSecret)
	if err != nil {
		h.logger.Error("token generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// AdminListCompanies returns every company as JSON.
func (h *Handler) AdminListCompanies(c *gin.Context) {
	companies, err := h.service.ListCompanies(c.Request.Context())
	if err != nil {
		h.logger.Error("admin list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list companies"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

type createCompanyRequest struct {
	Name    string `json:"name" binding:"required"`
	CEO     string `json:"ceo"`
	Origin  string `json:"origin"`
	EstYear int    `json:"est_year"`
}

// AdminCreateCompany inserts a new company row.
func (h *Handler) AdminCreateCompany(c *gin.Context) {
	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	company, err := h.service.CreateCompany(c.Request.Context(), &models.Company{
		Name:    req.Name,
		CEO:     req.CEO,
		Origin:  req.Origin,
		EstYear: req.EstYear,
	})
	if err != nil {
		if errors.Is(err, e.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("admin create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create company"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"company": company})
}

// AdminDeleteCompany removes a company row by ID.
func (h *Handler) AdminDeleteCompany(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID"})
		return
	}

	if err := h.service.DeleteCompany(c.Request.Context(), id); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
			return
		}
		h.logger.Error("admin delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete company"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) renderHTML(c *gin.Context, status int, tmpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
