package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	errs "github.com/civicgridhq/civicgrid/errors"
	"github.com/civicgridhq/civicgrid/server/response"
)

func (s *Server) handleListNotifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, err)
			return
		}

		notifications, err := s.NotificationService.ListForUser(user.ID)
		if err != nil {
			response.JSON(c, "", errs.StatusFor(err), nil, err)
			return
		}

		response.JSON(c, "", http.StatusOK, gin.H{"notifications": notifications}, nil)
	}
}

func (s *Server) handleMarkNotificationRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, err)
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			response.JSON(c, "invalid notification id", http.StatusBadRequest, nil, err)
			return
		}

		if err := s.NotificationService.MarkRead(user.ID, uint(id)); err != nil {
			response.JSON(c, "", errs.StatusFor(err), nil, err)
			return
		}

		response.JSON(c, "notification marked read", http.StatusOK, nil, nil)
	}
}
