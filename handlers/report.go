package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"onboarding-service/middleware"
	"onboarding-service/services"
)

type ReportHandler struct {
	reports *services.ReportService
	media   *services.MediaService
}

func NewReportHandler(reports *services.ReportService, media *services.MediaService) *ReportHandler {
	return &ReportHandler{reports: reports, media: media}
}

func (h *ReportHandler) GetReports(c *gin.Context) {
	clientEmail := c.Param("clientEmail")
	if clientEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client email is required"})
		return
	}
	if !allowed(c, clientEmail, selfOrManager) {
		return
	}

	reports, err := h.reports.ListReportsWithImages(c.Request.Context(), clientEmail)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	clientEmail := c.Param("clientEmail")
	reportID, err := parseID(c.Param("reportId"))
	if clientEmail == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client email and report id are required"})
		return
	}
	if !allowed(c, clientEmail, selfOrManager) {
		return
	}

	report, err := h.reports.FindReportByID(c.Request.Context(), clientEmail, reportID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// PutReport creates a report and uploads its media files in one request.
func (h *ReportHandler) PutReport(c *gin.Context) {
	clientEmail := c.Param("clientEmail")
	reportName := c.PostForm("reportName")
	if clientEmail == "" || reportName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client email and report name are required"})
		return
	}
	if !allowed(c, clientEmail, managerOnly) {
		return
	}

	files, err := formFiles(c)
	if err != nil || len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "files are required"})
		return
	}

	if err := h.reports.Save(c.Request.Context(), clientEmail, reportName, files); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// GetReportZipped streams the report's media as one ZIP archive.
func (h *ReportHandler) GetReportZipped(c *gin.Context) {
	clientEmail := c.Param("clientEmail")
	reportID, err := parseID(c.Param("reportId"))
	if clientEmail == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client email and report id are required"})
		return
	}
	if !allowed(c, clientEmail, selfOrManager) {
		return
	}

	data, err := h.media.ReportZip(c.Request.Context(), clientEmail, reportID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/zip", data)
}

// DeleteReport tombstones a report. Any authenticated user may call it; the
// missing role restriction matches the current product behavior.
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	reportID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}
	if _, ok := middleware.PrincipalFrom(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	remaining, err := h.reports.DeleteReport(reportID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": remaining})
}
