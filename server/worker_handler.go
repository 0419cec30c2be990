package server

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	errs "github.com/civicgridhq/civicgrid/errors"
	"github.com/civicgridhq/civicgrid/server/response"
)

const locationPingTimeout = 2 * time.Second

func (s *Server) handleListAssignedReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, err)
			return
		}

		includeHistory := c.Query("history") == "true"
		reports, err := s.AssignmentService.ListAssignedTo(user.ID, includeHistory)
		if err != nil {
			response.JSON(c, "", errs.StatusFor(err), nil, err)
			return
		}

		response.JSON(c, "", http.StatusOK, gin.H{"reports": reports}, nil)
	}
}

func (s *Server) handleSubmitProof() gin.HandlerFunc {
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

		photo, err := c.FormFile("photo")
		if err != nil {
			response.JSON(c, "a proof photo is required", http.StatusBadRequest, nil, err)
			return
		}
		notes := strings.TrimSpace(c.PostForm("notes"))

		report, err := s.ResolutionService.SubmitProof(reportID, user.ID, photo, notes)
		if err != nil {
			response.JSON(c, "unable to submit proof", errs.StatusFor(err), nil, err)
			return
		}

		response.JSON(c, "resolution proof submitted", http.StatusOK, report, nil)
	}
}

func (s *Server) handleMarkResolved() gin.HandlerFunc {
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

		report, err := s.ResolutionService.MarkResolvedByWorker(reportID, user.ID)
		if err != nil {
			response.JSON(c, "unable to mark resolved", errs.StatusFor(err), nil, err)
			return
		}

		response.JSON(c, "report marked resolved, awaiting confirmation", http.StatusOK, report, nil)
	}
}

// handleWorkerLocationPing is at-most-once: the update gets a bounded timeout
// and a dropped ping is just the next ping's problem.
func (s *Server) handleWorkerLocationPing() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, err)
			return
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(c.PostForm("latitude")), 64)
		if err != nil {
			response.JSON(c, "invalid latitude", http.StatusBadRequest, nil, err)
			return
		}
		lng, err := strconv.ParseFloat(strings.TrimSpace(c.PostForm("longitude")), 64)
		if err != nil {
			response.JSON(c, "invalid longitude", http.StatusBadRequest, nil, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), locationPingTimeout)
		defer cancel()
		if err := s.UserRepository.UpdateWorkerLocation(ctx, user.ID, lat, lng); err != nil {
			log.Printf("dropping location ping for worker %d: %v", user.ID, err)
		}

		response.JSON(c, "location received", http.StatusAccepted, nil, nil)
	}
}
