package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/civicgridhq/civicgrid/config"
	"github.com/civicgridhq/civicgrid/db"
	"github.com/civicgridhq/civicgrid/services"
)

type Server struct {
	Config *config.Config

	ReportRepository       db.ReportRepository
	VoteRepository         db.VoteRepository
	UserRepository         db.UserRepository
	FacilityRepository     db.FacilityRepository
	NotificationRepository db.NotificationRepository

	ReportService       services.ReportService
	VoteService         services.VoteService
	AssignmentService   services.AssignmentService
	ResolutionService   services.ResolutionService
	NotificationService services.NotificationService
	MediaService        services.MediaService
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests for up to ten seconds.
func (s *Server) Start() {
	r := s.setupRouter()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.Config.Port),
		Handler: r,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
}
