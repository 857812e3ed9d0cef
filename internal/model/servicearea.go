package model

// ServiceArea is the business's claimed coverage zone. It is loaded once at
// startup and passed by value.
type ServiceArea struct {
	Center       Coordinates `json:"center"`
	RadiusMiles  float64     `json:"radius_miles"`
	City         string      `json:"city"`
	State        string      `json:"state"`
	BusinessName string      `json:"business_name"`
}

// Label returns the "City, ST" form used in titles.
func (a ServiceArea) Label() string {
	return a.City + ", " + a.State
}
