package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/domain"
	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/view"
	"github.com/GoSim-25-26J-441/ece-project-architect/internal/requestid"
	"github.com/gin-gonic/gin"
)

var errImageTooLarge = errors.New("image is too large")

// statusFor maps a workspace error to its HTTP status.
func statusFor(err error) int {
	var (
		genErr *domain.GenerationError
		anErr  *domain.AnalysisError
		valErr *domain.ValidationError
	)
	switch {
	case errors.As(err, &genErr), errors.As(err, &anErr):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrGenerationInFlight),
		errors.Is(err, domain.ErrAnalysisInFlight),
		errors.Is(err, domain.ErrSimulatorUnavailable):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidTab),
		errors.Is(err, domain.ErrInvalidImage),
		errors.Is(err, domain.ErrNoImage),
		errors.Is(err, view.ErrUnknownFormat),
		errors.As(err, &valErr):
		return http.StatusBadRequest
	case errors.Is(err, errImageTooLarge):
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

// writeError answers with the {ok:false, error} envelope. Only the user
// message leaves the process.
func writeError(c *gin.Context, operation string, err error, extra gin.H) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[error] request_id=%s operation=%s error=%v", requestid.From(c.Request.Context()), operation, err)
	}
	body := gin.H{"ok": false, "error": domain.UserMessage(err)}
	if status == http.StatusInternalServerError {
		body["error"] = "internal error"
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}
