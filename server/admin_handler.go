package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	errs "github.com/civicgridhq/civicgrid/errors"
	"github.com/civicgridhq/civicgrid/server/response"
)

type assignReportRequest struct {
	WorkerID uint `json:"worker_id" binding:"required"`
}

func (s *Server) handleAssignReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		reportID, err := uuid.Parse(c.Param("reportID"))
		if err != nil {
			response.JSON(c, "invalid report id", http.StatusBadRequest, nil, err)
			return
		}

		var req assignReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.JSON(c, "invalid assignment payload", http.StatusBadRequest, nil, err)
			return
		}

		report, err := s.AssignmentService.Assign(reportID, req.WorkerID)
		if err != nil {
			response.JSON(c, "unable to assign report", errs.StatusFor(err), nil, err)
			return
		}

		response.JSON(c, "report assigned", http.StatusOK, report, nil)
	}
}

func (s *Server) handleConfirmResolution() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, err)
			return
		}

		reportID, err := uuid.Parse(c.Param("reportID"))
		if err != nil {
			response.JSON(c, "invalid report id", http.StatusBadRequest, nil, err)
			return
		}

		report, err := s.ResolutionService.ConfirmResolution(reportID, user.ID)
		if err != nil {
			response.JSON(c, "unable to confirm resolution", errs.StatusFor(err), nil, err)
			return
		}

		response.JSON(c, "resolution confirmed", http.StatusOK, report, nil)
	}
}
