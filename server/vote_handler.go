package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	errs "github.com/civicgridhq/civicgrid/errors"
	"github.com/civicgridhq/civicgrid/models"
	"github.com/civicgridhq/civicgrid/server/response"
)

type castVoteRequest struct {
	VoteType string `json:"vote_type" binding:"required"`
}

func (s *Server) handleCastVote() gin.HandlerFunc {
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

		var req castVoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.JSON(c, "invalid vote payload", http.StatusBadRequest, nil, err)
			return
		}

		report, err := s.VoteService.CastVote(user.ID, reportID, models.VoteType(req.VoteType))
		if err != nil {
			response.JSON(c, "unable to cast vote", errs.StatusFor(err), nil, err)
			return
		}

		response.JSON(c, "vote recorded", http.StatusOK, gin.H{
			"report_id":        report.ID,
			"status":           report.Status,
			"support_count":    report.SupportCount,
			"opposition_count": report.OppositionCount,
			"my_reaction":      req.VoteType,
		}, nil)
	}
}

func (s *Server) handleMyVote() gin.HandlerFunc {
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

		voteType, voted, err := s.VoteService.MyVote(user.ID, reportID)
		if err != nil {
			response.JSON(c, "", errs.StatusFor(err), nil, err)
			return
		}

		response.JSON(c, "", http.StatusOK, gin.H{
			"voted":     voted,
			"vote_type": voteType,
		}, nil)
	}
}
