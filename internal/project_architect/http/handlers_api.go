package http

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/GoSim-25-26J-441/ece-project-architect/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/domain"
	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/service"
	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/view"
	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/workspace"
	"github.com/gin-gonic/gin"
)

// workspaceBody is the JSON shape of a workspace response.
func workspaceBody(v workspace.View) gin.H {
	return gin.H{
		"ok":         true,
		"workspace":  v,
		"details":    view.NewDetails(v.State.Project),
		"transcript": view.NewTranscript(v.State.Simulator, v.Analyzing),
	}
}

// GetWorkspace returns the session workspace, creating it on first use.
func (h *Handler) GetWorkspace(c *gin.Context) {
	v := h.mgr.View(c.Request.Context(), middleware.SessionID(c))
	c.JSON(http.StatusOK, workspaceBody(v))
}

// UpdateInputs replaces the constraint form values.
func (h *Handler) UpdateInputs(c *gin.Context) {
	var in domain.ConstraintInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
		return
	}
	v, err := h.mgr.UpdateInputs(c.Request.Context(), middleware.SessionID(c), in)
	if err != nil {
		writeError(c, "update_inputs", err, nil)
		return
	}
	c.JSON(http.StatusOK, workspaceBody(v))
}

// SelectTab switches the active tab.
func (h *Handler) SelectTab(c *gin.Context) {
	var body struct {
		Tab string `json:"tab"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
		return
	}
	v, err := h.mgr.SelectTab(c.Request.Context(), middleware.SessionID(c), domain.Tab(strings.ToLower(body.Tab)))
	if err != nil {
		writeError(c, "select_tab", err, nil)
		return
	}
	c.JSON(http.StatusOK, workspaceBody(v))
}

// Generate runs one generation. An optional JSON body replaces the inputs
// once the session is free to generate.
func (h *Handler) Generate(c *gin.Context) {
	var in *domain.ConstraintInput
	var body domain.ConstraintInput
	switch err := c.ShouldBindJSON(&body); {
	case err == nil:
		in = &body
	case !errors.Is(err, io.EOF):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
		return
	}

	v, err := h.mgr.GenerateWith(c.Request.Context(), middleware.SessionID(c), in)
	if err != nil {
		writeError(c, "generate", err, gin.H{"workspace": v})
		return
	}
	c.JSON(http.StatusOK, workspaceBody(v))
}

// GetDetails returns the details tab model.
func (h *Handler) GetDetails(c *gin.Context) {
	v := h.mgr.View(c.Request.Context(), middleware.SessionID(c))
	c.JSON(http.StatusOK, gin.H{"ok": true, "details": view.NewDetails(v.State.Project)})
}

// GetReport returns the report tab model.
func (h *Handler) GetReport(c *gin.Context) {
	v := h.mgr.View(c.Request.Context(), middleware.SessionID(c))
	c.JSON(http.StatusOK, gin.H{"ok": true, "report": view.NewReport(v.State.Project)})
}

// Export downloads the current record as JSON or YAML.
func (h *Handler) Export(c *gin.Context) {
	v := h.mgr.View(c.Request.Context(), middleware.SessionID(c))
	body, ct, name, err := view.Export(v.State.Project, c.DefaultQuery("format", "json"))
	if err != nil {
		writeError(c, "export", err, nil)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, ct, body)
}

// GetOptions lists the choices of the architect form.
func (h *Handler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"options":  h.options,
		"defaults": domain.DefaultConstraints(),
	})
}

// GetSimulator returns the panel state with its transcript.
func (h *Handler) GetSimulator(c *gin.Context) {
	v := h.mgr.View(c.Request.Context(), middleware.SessionID(c))
	if !v.ShowSimulator {
		writeError(c, "get_simulator", domain.ErrSimulatorUnavailable, nil)
		return
	}
	c.JSON(http.StatusOK, simulatorBody(v))
}

func simulatorBody(v workspace.View) gin.H {
	return gin.H{
		"ok":          true,
		"simulator":   v.State.Simulator,
		"analyzing":   v.Analyzing,
		"can_analyze": v.CanAnalyze(),
		"transcript":  view.NewTranscript(v.State.Simulator, v.Analyzing),
	}
}

// SelectImage accepts either a multipart "image" file or a JSON data URL.
func (h *Handler) SelectImage(c *gin.Context) {
	image, err := h.readImage(c)
	if err != nil {
		writeError(c, "select_image", err, nil)
		return
	}
	v, err := h.mgr.SelectImage(c.Request.Context(), middleware.SessionID(c), image)
	if err != nil {
		writeError(c, "select_image", err, nil)
		return
	}
	c.JSON(http.StatusOK, simulatorBody(v))
}

// Analyze runs the hazard analysis for the selected image.
func (h *Handler) Analyze(c *gin.Context) {
	v, err := h.mgr.Analyze(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		writeError(c, "analyze", err, gin.H{"simulator": v.State.Simulator})
		return
	}
	c.JSON(http.StatusOK, simulatorBody(v))
}

// bodySlack covers the data URL prefix, JSON framing and multipart headers.
const bodySlack = 16 << 10

// bodyLimit is the largest request body that can carry a maxImage upload.
func (h *Handler) bodyLimit() int64 {
	return int64(base64.StdEncoding.EncodedLen(int(h.maxImage))) + bodySlack
}

// readImage returns the upload as a data URL after checking its size and type.
// The body is capped before it is read at all.
func (h *Handler) readImage(c *gin.Context) (string, error) {
	limit := h.bodyLimit()
	if c.Request.ContentLength > limit {
		return "", errImageTooLarge
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("image")
		if err != nil {
			if tooLarge(err) {
				return "", errImageTooLarge
			}
			return "", domain.ErrNoImage
		}
		if fh.Size > h.maxImage {
			return "", errImageTooLarge
		}
		f, err := fh.Open()
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, h.maxImage+1))
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
		}
		return h.checkImage(data, fh.Header.Get("Content-Type"))
	}

	var body struct {
		Image string `json:"image"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		if tooLarge(err) {
			return "", errImageTooLarge
		}
		return "", fmt.Errorf("%w: invalid request body", domain.ErrInvalidImage)
	}
	data, mimeType, err := service.DecodeImage(body.Image)
	if err != nil {
		return "", err
	}
	return h.checkImage(data, mimeType)
}

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large")
}

func (h *Handler) checkImage(data []byte, declared string) (string, error) {
	if len(data) == 0 {
		return "", domain.ErrNoImage
	}
	if int64(len(data)) > h.maxImage {
		return "", errImageTooLarge
	}
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("%w: detected %s", domain.ErrInvalidImage, mimeType)
	}
	if strings.HasPrefix(declared, "image/") {
		mimeType = declared
	}
	return service.EncodeDataURL(data, mimeType), nil
}
