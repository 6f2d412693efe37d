package web

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkoval/companyboard/internal/company/auth"
	"go.uber.org/zap"
)

// Config carries the settings the web layer needs.
type Config struct {
	Debug         bool
	AppRoot       string
	JWTSecret     string
	AdminUser     string
	AdminPassword string
}

// NewRouter assembles the route table:
//
//	GET  /            home page (company list, fallback on error)
//	GET  /health/     health check
//	/admin/...        JWT-protected admin API plus login
//	/company/...      company directory sub-app, mounted defensively
func NewRouter(service CompanyService, cfg *Config, logger *zap.Logger) *gin.Engine {
	h := NewHandler(service, cfg, logger)

	r := gin.New()
	r.Use(requestLogger(logger), gin.Recovery())

	r.GET("/", h.Home)
	r.GET("/health/", h.Health)

	admin := r.Group("/admin")
	admin.POST("/login", h.AdminLogin)
	protected := admin.Group("", auth.Middleware(cfg.JWTSecret))
	protected.GET("/companies", h.AdminListCompanies)
	protected.POST("/companies", h.AdminCreateCompany)
	protected.DELETE("/companies/:id", h.AdminDeleteCompany)

	mountCompanyApp(r, h.registerCompanyRoutes, logger)

	return r
}

// registerCompanyRoutes wires the /company/ directory pages.
func (h *Handler) registerCompanyRoutes(g gin.IRouter) {
	g.GET("/", h.CompanyList)
	g.GET("/:id", h.CompanyDetail)
}

// mountCompanyApp attaches the company sub-app to the router. Registration
// failures (gin panics on invalid route setups) do not take the whole
// route table down: the failure is logged and the /company/ routes are
// simply absent.
func mountCompanyApp(r *gin.Engine, register func(gin.IRouter), logger *zap.Logger) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Warn("company app registration failed, /company/ routes disabled",
				zap.Any("reason", rec),
			)
		}
	}()
	register(r.Group("/company"))
}

// requestLogger logs each request through the service logger.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	logger = logger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
