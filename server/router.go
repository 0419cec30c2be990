package server

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/civicgridhq/civicgrid/models"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = 32 << 20
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	apirouter := router.Group("/api/v1")
	apirouter.GET("/reports", s.handleListReports())
	apirouter.GET("/reports/:reportID", s.handleGetReport())
	apirouter.GET("/stats/reports", s.handleGetReportStats())
	apirouter.GET("/map/markers", s.handleGetMapMarkers())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.POST("/reports", s.handleCreateReport())
	authorized.POST("/reports/:reportID/votes", voteRateLimiter(), s.handleCastVote())
	authorized.GET("/reports/:reportID/votes/me", s.handleMyVote())
	authorized.GET("/notifications", s.handleListNotifications())
	authorized.PUT("/notifications/:id/read", s.handleMarkNotificationRead())

	worker := authorized.Group("/worker")
	worker.Use(s.RequireRole(models.RoleWorker))
	worker.GET("/reports", s.handleListAssignedReports())
	worker.POST("/reports/:reportID/proof", s.handleSubmitProof())
	worker.POST("/reports/:reportID/resolve", s.handleMarkResolved())
	worker.POST("/location", s.handleWorkerLocationPing())

	admin := authorized.Group("/admin")
	admin.Use(s.RequireRole(models.RoleAdmin))
	admin.POST("/reports/:reportID/assign", s.handleAssignReport())
	admin.POST("/reports/:reportID/confirm", s.handleConfirmResolution())
}
