package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/civicgridhq/civicgrid/errors"
	"github.com/civicgridhq/civicgrid/models"
	"github.com/civicgridhq/civicgrid/server/response"
)

// handleGetMapMarkers serves the combined facilities + worker-location feed.
func (s *Server) handleGetMapMarkers() gin.HandlerFunc {
	return func(c *gin.Context) {
		facilities, err := s.FacilityRepository.ListFacilities()
		if err != nil {
			response.JSON(c, "", errs.StatusFor(err), nil, err)
			return
		}

		workers, err := s.UserRepository.ListWorkersWithLocation()
		if err != nil {
			response.JSON(c, "", errs.StatusFor(err), nil, err)
			return
		}

		markers := make([]models.Marker, 0, len(facilities)+len(workers))
		for _, f := range facilities {
			markers = append(markers, models.Marker{
				ID:        f.ID,
				Kind:      f.Kind,
				Latitude:  f.Latitude,
				Longitude: f.Longitude,
			})
		}
		for _, w := range workers {
			if w.LastLatitude == nil || w.LastLongitude == nil {
				continue
			}
			markers = append(markers, models.Marker{
				ID:        w.ID,
				Kind:      "worker",
				Latitude:  *w.LastLatitude,
				Longitude: *w.LastLongitude,
			})
		}

		response.JSON(c, "", http.StatusOK, gin.H{"markers": markers}, nil)
	}
}
