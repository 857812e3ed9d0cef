package model

// GeoFilter restricts results to a radius around a point. It is never sent
// to the index; the client filters locally.
type GeoFilter struct {
	Lat         float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon         float64 `json:"lon" validate:"gte=-180,lte=180"`
	RadiusMiles float64 `json:"radius" validate:"gt=0,lte=3000"`
}

// SearchCriteria is the query accepted by the inventory client and the
// public equipment endpoint.
type SearchCriteria struct {
	PrimaryType string     `json:"type,omitempty" validate:"max=100"`
	Make        string     `json:"make,omitempty" validate:"max=100"`
	Model       string     `json:"model,omitempty" validate:"max=100"`
	Keywords    []string   `json:"keywords,omitempty" validate:"max=20,dive,max=100"`
	CatClass    string     `json:"catClass,omitempty" validate:"max=50"`
	MinCapacity *float64   `json:"minCapacity,omitempty" validate:"omitempty,gte=0"`
	MaxCapacity *float64   `json:"maxCapacity,omitempty" validate:"omitempty,gte=0"`
	Location    *GeoFilter `json:"location,omitempty"`
	Limit       int        `json:"limit,omitempty" validate:"gte=0,lte=250"`
	Single      bool       `json:"single,omitempty"`
}

// HasTerms reports whether at least one selecting criterion is present.
func (c SearchCriteria) HasTerms() bool {
	return c.PrimaryType != "" || c.Make != "" || c.Model != "" ||
		len(c.Keywords) > 0 || c.CatClass != ""
}

// SearchResult is what the inventory client returns. Error is set when the
// upstream call failed and Items is then empty.
type SearchResult struct {
	Items      []EquipmentItem `json:"machines"`
	TotalCount int             `json:"totalCount"`
	Error      string          `json:"error,omitempty"`
}

// Listing is the resolved inventory for one page.
type Listing struct {
	Primary []EquipmentItem `json:"primary"`
	More    []EquipmentItem `json:"more"`
}
