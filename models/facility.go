package models

// Facility is a fixed municipal asset shown on the map feed (depot, dump
// site, water station).
type Facility struct {
	Model
	Name      string  `json:"name" gorm:"not null"`
	Kind      string  `json:"kind" gorm:"type:varchar(32);index"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Marker is one entry in the combined facilities/worker-location feed.
type Marker struct {
	ID        uint    `json:"id"`
	Kind      string  `json:"kind"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}
