package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(router *gin.Engine, h *Handler) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/health", h.Health)

		analyticsGroup := apiGroup.Group("/analytics")
		{
			analyticsGroup.GET("/casos-por-estado", h.StatusBreakdown)
			analyticsGroup.GET("/casos-por-estado/:estado", h.CasesByStatus)
			analyticsGroup.GET("/causas-iniciadas-por-ano", h.CasesByYear)
			analyticsGroup.GET("/delitos-mas-frecuentes", h.TopCrimes)
			analyticsGroup.GET("/causas-en-tramite-por-juzgado", h.OpenCasesByCourt)
			analyticsGroup.GET("/causas-terminadas-por-juzgado", h.ClosedCasesByCourt)
			analyticsGroup.GET("/causas-por-fuero", h.CasesByForum)
			analyticsGroup.GET("/causas-por-fiscal", h.CasesByProsecutor)
			analyticsGroup.GET("/causas-por-fiscalia", h.CasesByOffice)
			analyticsGroup.GET("/jueces-mayor-demora", h.JudgeDelays)
			analyticsGroup.GET("/duracion-instruccion", h.InstructionDuration)
			analyticsGroup.GET("/duracion-outliers", h.DurationOutliers)
			analyticsGroup.GET("/personas-mas-denunciadas", h.MostDenounced)
			analyticsGroup.GET("/personas-que-mas-denunciaron", h.MostDenouncing)
			analyticsGroup.GET("/ultima-actualizacion", h.LastRefresh)
		}

		exportGroup := apiGroup.Group("/exportacion")
		{
			exportGroup.GET("/descargar", h.DownloadArchive)
		}
	}
}
