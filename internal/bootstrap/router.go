package bootstrap

import (
	"time"

	httpapi "github.com/GoSim-25-26J-441/ece-project-architect/internal/api/http"
	"github.com/GoSim-25-26J-441/ece-project-architect/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/ece-project-architect/internal/api/http/routes"
	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/service"
	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/workspace"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	ServiceName      string
	Version          string
	Manager          *workspace.Manager
	Store            httpapi.StoreStatus
	Limiter          *middleware.SessionLimiter
	AllowedOrigins   []string
	SecureCookies    bool
	MaxImageBytes    int64
	ProgressInterval time.Duration
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store).
		WithLiveSessions(dep.Manager.Live).
		WithMetrics(func() any { return service.GetMetrics().Snapshot() })
	healthHandler.RegisterRoutes(r)

	if len(dep.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     dep.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "X-Request-Id", middleware.SessionHeader},
			ExposeHeaders:    []string{"X-Request-Id", middleware.SessionHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(middleware.SessionMiddleware(dep.SecureCookies))

	routes.RegisterV1(r, routes.V1Deps{
		Manager:          dep.Manager,
		Limiter:          dep.Limiter,
		MaxImageBytes:    dep.MaxImageBytes,
		ProgressInterval: dep.ProgressInterval,
	})

	return r
}
