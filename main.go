package main

import (
	"log"

	"github.com/civicgridhq/civicgrid/config"
	"github.com/civicgridhq/civicgrid/db"
	"github.com/civicgridhq/civicgrid/server"
	"github.com/civicgridhq/civicgrid/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	gormDB := db.GetDB(conf)
	reportRepo := db.NewReportRepo(gormDB)
	voteRepo := db.NewVoteRepo(gormDB)
	userRepo := db.NewUserRepo(gormDB)
	facilityRepo := db.NewFacilityRepo(gormDB)
	notificationRepo := db.NewNotificationRepo(gormDB)

	notificationService := services.NewNotificationService(notificationRepo)
	mediaService := services.NewMediaService(conf)
	reportService := services.NewReportService(reportRepo, conf)
	voteService := services.NewVoteService(voteRepo, reportRepo, notificationService, conf)
	assignmentService := services.NewAssignmentService(reportRepo, userRepo, notificationService, conf)
	resolutionService := services.NewResolutionService(reportRepo, mediaService, notificationService, conf)

	s := &server.Server{
		Config:                 conf,
		ReportRepository:       reportRepo,
		VoteRepository:         voteRepo,
		UserRepository:         userRepo,
		FacilityRepository:     facilityRepo,
		NotificationRepository: notificationRepo,
		ReportService:          reportService,
		VoteService:            voteService,
		AssignmentService:      assignmentService,
		ResolutionService:      resolutionService,
		NotificationService:    notificationService,
		MediaService:           mediaService,
	}

	s.Start()
}
