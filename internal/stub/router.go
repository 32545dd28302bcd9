package stub

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/tetoca/tetoca-go/internal/data/fixture"
)

type Options struct {
	CORSAllowed string
}

func Router(store *fixture.Store, logger zerolog.Logger, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Logger(logger))
	r.Use(BearerToken())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if opts.CORSAllowed == "" || opts.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{opts.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &Handler{
		Store:     store,
		Validator: validator.New(),
		Logger:    logger,
	}

	r.GET("/healthz", h.Healthz)

	auth := r.Group("/auth/user")
	{
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/logout", h.Logout)
	}

	public := r.Group("/public")
	{
		public.GET("/companies", h.CompaniesList)
		public.GET("/companies/search", h.CompanySearch)
		public.GET("/companies/:id", h.CompanyDetails)
		public.GET("/companies/:id/queues", h.QueuesByCompany)
		public.GET("/categories", h.CategoriesList)
		public.GET("/categories/:id/companies", h.CompaniesByCategory)
		public.GET("/queues/:id", h.QueueDetails)
	}

	// Tenant-scoped variants of the public catalog.
	tenant := r.Group("/tenant/:tenantId")
	{
		tenant.GET("/public/companies", h.CompaniesList)
		tenant.GET("/public/companies/:id/queues", h.QueuesByCompany)
		tenant.POST("/queues/:id/join", h.JoinQueue)
	}

	r.POST("/queues/:id/join", h.JoinQueue)
	r.GET("/tickets/:id", h.TicketDetails)
	r.PUT("/tickets/:id/pause", h.PauseTicket)
	r.PUT("/tickets/:id/resume", h.ResumeTicket)
	r.DELETE("/tickets/:id/cancel", h.CancelTicket)

	user := r.Group("/user")
	{
		user.GET("/profile", h.Profile)
		user.GET("/tickets", h.MyTickets)
		user.POST("/push-token", h.RegisterPushToken)
	}

	return r
}
