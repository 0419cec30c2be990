package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/civicgridhq/civicgrid/db"
	errs "github.com/civicgridhq/civicgrid/errors"
	"github.com/civicgridhq/civicgrid/models"
	"github.com/civicgridhq/civicgrid/server/response"
	"github.com/civicgridhq/civicgrid/services"
)

func (s *Server) handleCreateReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, err)
			return
		}

		var params services.CreateReportParams
		if err := c.ShouldBindJSON(&params); err != nil {
			if verrs, ok := err.(validator.ValidationErrors); ok {
				response.JSON(c, "invalid report payload", http.StatusBadRequest, nil, verrs)
				return
			}
			response.JSON(c, "invalid report payload", http.StatusBadRequest, nil, err)
			return
		}

		report, err := s.ReportService.CreateReport(user.ID, params)
		if err != nil {
			response.JSON(c, "unable to create report", errs.StatusFor(err), nil, err)
			return
		}

		response.JSON(c, "report submitted successfully", http.StatusCreated, report, nil)
	}
}

func (s *Server) handleGetReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		reportID, err := uuid.Parse(c.Param("reportID"))
		if err != nil {
			response.JSON(c, "invalid report id", http.StatusBadRequest, nil, err)
			return
		}

		report, err := s.ReportService.GetReport(reportID)
		if err != nil {
			response.JSON(c, "", errs.StatusFor(err), nil, err)
			return
		}

		response.JSON(c, "", http.StatusOK, report, nil)
	}
}

func (s *Server) handleListReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := getPageFromQuery(c)
		if err != nil {
			response.JSON(c, "invalid page number", http.StatusBadRequest, nil, err)
			return
		}

		filter := db.ReportFilter{
			Status: models.ReportStatus(c.Query("status")),
			Type:   models.ReportType(c.Query("type")),
			Page:   page,
		}

		reports, err := s.ReportService.ListReports(filter)
		if err != nil {
			response.JSON(c, "", errs.StatusFor(err), nil, err)
			return
		}

		response.JSON(c, "", http.StatusOK, gin.H{"reports": reports, "page": page}, nil)
	}
}

func getPageFromQuery(c *gin.Context) (int, error) {
	pageStr := c.Query("page")
	if pageStr == "" {
		return 1, nil
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 0, errs.New("page must be a positive integer", http.StatusBadRequest)
	}

	return page, nil
}

func (s *Server) handleGetReportStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		statusCounts, typeCounts, err := s.ReportService.GetReportStats()
		if err != nil {
			response.JSON(c, "", errs.StatusFor(err), nil, err)
			return
		}

		response.JSON(c, "", http.StatusOK, gin.H{
			"by_status": statusCounts,
			"by_type":   typeCounts,
		}, nil)
	}
}
