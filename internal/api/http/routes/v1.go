package routes

import (
	"time"

	"github.com/GoSim-25-26J-441/ece-project-architect/internal/api/http/middleware"
	architecthttp "github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/http"
	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/workspace"

	"github.com/gin-gonic/gin"
)

type V1Deps struct {
	Manager          *workspace.Manager
	Limiter          *middleware.SessionLimiter
	MaxImageBytes    int64
	ProgressInterval time.Duration
}

// RegisterV1 mounts the server-rendered workspace at / and the JSON API at /api/v1.
func RegisterV1(r *gin.Engine, dep V1Deps) {
	var paid []gin.HandlerFunc
	if dep.Limiter != nil {
		paid = append(paid, dep.Limiter.Middleware())
	}

	h := architecthttp.New(dep.Manager, architecthttp.Options{
		MaxImageBytes:    dep.MaxImageBytes,
		ProgressInterval: dep.ProgressInterval,
	})
	h.RegisterPages(r, paid...)

	api := r.Group("/api/v1")
	h.Register(api, paid...)
}
