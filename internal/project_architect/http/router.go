package http

import "github.com/gin-gonic/gin"

// Register registers the workspace API routes. paid wraps the routes that
// call the model.
func (h *Handler) Register(rg *gin.RouterGroup, paid ...gin.HandlerFunc) {
	rg.GET("/options", h.GetOptions)

	ws := rg.Group("/workspace")
	ws.GET("", h.GetWorkspace)
	ws.PUT("/inputs", h.UpdateInputs)
	ws.PUT("/tab", h.SelectTab)
	ws.POST("/generate", chain(paid, h.Generate)...)
	ws.GET("/progress", h.StreamProgress)
	ws.GET("/details", h.GetDetails)
	ws.GET("/report", h.GetReport)
	ws.GET("/export", h.Export)

	ws.GET("/simulator", h.GetSimulator)
	ws.POST("/simulator/image", h.SelectImage)
	ws.POST("/simulator/analyze", chain(paid, h.Analyze)...)
}

// RegisterPages registers the server-rendered workspace.
func (h *Handler) RegisterPages(r gin.IRoutes, paid ...gin.HandlerFunc) {
	r.GET("/", h.Index)
	r.POST("/generate", chain(paid, h.SubmitGenerate)...)
	r.POST("/tab", h.SubmitTab)
	r.POST("/simulator/image", h.SubmitImage)
	r.POST("/simulator/analyze", chain(paid, h.SubmitAnalyze)...)
	r.GET("/export", h.Export)
}

func chain(mw []gin.HandlerFunc, last gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(mw)+1)
	out = append(out, mw...)
	return append(out, last)
}
