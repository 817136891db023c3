package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/ece-project-architect/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/domain"
	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/view"
	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/workspace"
	"github.com/GoSim-25-26J-441/ece-project-architect/internal/requestid"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

func parsePages() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

type tabLink struct {
	Name   string
	Label  string
	Active bool
}

type pageData struct {
	V                workspace.View
	ActiveTab        string
	HeaderTitle      string
	Tabs             []tabLink
	Options          domain.FormOptions
	KnownProjectType bool
	FormError        string
	Details          view.Details
	Report           view.Report
	Transcript       view.Transcript
	ImageURL         template.URL
	Clock            string
}

var tabLabels = []tabLink{
	{Name: string(domain.TabArchitect), Label: "Project Architect"},
	{Name: string(domain.TabDetails), Label: "Project Details"},
	{Name: string(domain.TabReport), Label: "Full Report"},
}

func (h *Handler) newPage(v workspace.View, formError string) pageData {
	d := pageData{
		V:                v,
		ActiveTab:        string(v.State.ActiveTab),
		HeaderTitle:      v.State.Project.Title,
		Options:          h.options,
		KnownProjectType: slices.Contains(h.options.ProjectTypes, v.State.Inputs.ProjectType),
		FormError:        formError,
		Details:          view.NewDetails(v.State.Project),
		Report:           view.NewReport(v.State.Project),
		Transcript:       view.NewTranscript(v.State.Simulator, v.Analyzing),
		Clock:            time.Now().Format("15:04:05"),
	}
	if v.State.ActiveTab == domain.TabArchitect {
		d.HeaderTitle = "Engineer Your Future"
	}
	for _, t := range tabLabels {
		t.Active = t.Name == d.ActiveTab
		d.Tabs = append(d.Tabs, t)
	}
	// Only data URLs produced by the image upload path are trusted here.
	if img := v.State.Simulator.Image; strings.HasPrefix(img, "data:image/") {
		d.ImageURL = template.URL(img)
	}
	return d
}

func (h *Handler) render(c *gin.Context, status int, d pageData) {
	var buf bytes.Buffer
	if err := h.pages.ExecuteTemplate(&buf, "page", d); err != nil {
		log.Printf("[error] request_id=%s operation=render_page error=%v", requestid.From(c.Request.Context()), err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (h *Handler) back(c *gin.Context, anchor string) {
	c.Redirect(http.StatusSeeOther, "/"+anchor)
}

// Index renders the workspace page for the active tab.
func (h *Handler) Index(c *gin.Context) {
	v := h.mgr.View(c.Request.Context(), middleware.SessionID(c))
	h.render(c, http.StatusOK, h.newPage(v, ""))
}

// SubmitGenerate stores the posted form and runs a generation.
func (h *Handler) SubmitGenerate(c *gin.Context) {
	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	var in domain.ConstraintInput
	if err := c.ShouldBind(&in); err != nil {
		h.render(c, http.StatusBadRequest, h.newPage(h.mgr.View(ctx, sid), "Please fill in every field."))
		return
	}
	// Busy and generation failures are already reflected in the workspace.
	v, err := h.mgr.GenerateWith(ctx, sid, &in)
	var genErr *domain.GenerationError
	switch {
	case err == nil, errors.Is(err, domain.ErrGenerationInFlight), errors.As(err, &genErr):
	case errors.Is(err, domain.ErrInvalidInput):
		v.State.Inputs = in
		h.render(c, http.StatusBadRequest, h.newPage(v, formMessage(err)))
		return
	default:
		h.render(c, statusFor(err), h.newPage(h.mgr.View(ctx, sid), formMessage(err)))
		return
	}
	h.back(c, "")
}

func formMessage(err error) string {
	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		return "Please check: " + strings.Join(valErr.Problems, ", ")
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return "Please fill in every field and enter a non-negative budget."
	}
	return domain.UserMessage(err)
}

// SubmitTab switches tabs from the navigation buttons.
func (h *Handler) SubmitTab(c *gin.Context) {
	tab := domain.Tab(c.PostForm("tab"))
	if _, err := h.mgr.SelectTab(c.Request.Context(), middleware.SessionID(c), tab); err != nil {
		c.String(statusFor(err), domain.UserMessage(err))
		return
	}
	h.back(c, "")
}

// SubmitImage loads the uploaded file into the simulator.
func (h *Handler) SubmitImage(c *gin.Context) {
	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	image, err := h.readImage(c)
	if err == nil {
		_, err = h.mgr.SelectImage(ctx, sid, image)
	}
	if err != nil {
		h.render(c, statusFor(err), h.newPage(h.mgr.View(ctx, sid), domain.UserMessage(err)))
		return
	}
	h.back(c, "#simulator")
}

// SubmitAnalyze runs the analysis; its outcome shows in the transcript.
func (h *Handler) SubmitAnalyze(c *gin.Context) {
	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	_, err := h.mgr.Analyze(ctx, sid)
	var anErr *domain.AnalysisError
	if err != nil && !errors.As(err, &anErr) && !errors.Is(err, domain.ErrAnalysisInFlight) {
		h.render(c, statusFor(err), h.newPage(h.mgr.View(ctx, sid), domain.UserMessage(err)))
		return
	}
	h.back(c, "#simulator")
}
