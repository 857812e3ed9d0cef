package model

// Coordinates is a WGS 84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Location is the displayed city/state of an item.
type Location struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// RentalRate holds the per-period rental prices of a machine.
type RentalRate struct {
	Daily   float64 `json:"daily,omitempty"`
	Weekly  float64 `json:"weekly,omitempty"`
	Monthly float64 `json:"monthly,omitempty"`
}

// IsZero reports whether no rate component is set.
func (r RentalRate) IsZero() bool {
	return r.Daily == 0 && r.Weekly == 0 && r.Monthly == 0
}

// RateSchedule is one priced rental period as listed by the owner.
type RateSchedule struct {
	Label   string  `json:"label"`
	NumDays int     `json:"numDays"`
	Cost    float64 `json:"cost"`
}

// EquipmentItem is a rentable or purchasable machine from the inventory index.
type EquipmentItem struct {
	ID          string `json:"id"`
	PrimaryType string `json:"primaryType"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	Year        *int   `json:"year,omitempty"`
	Name        string `json:"name,omitempty"`
	CatClass    string `json:"catClass,omitempty"`

	Capacity *float64 `json:"capacity,omitempty"`

	RentalRate      RentalRate     `json:"rentalRate"`
	RateSchedules   []RateSchedule `json:"rateSchedules,omitempty"`
	BuyItNowEnabled bool           `json:"buyItNowEnabled"`
	BuyItNowPrice   *float64       `json:"buyItNowPrice,omitempty"`

	// Coordinates is nil when no raw shape carried a usable point.
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Location    Location     `json:"location"`

	// BuyItNowOnly marks items shown only through the buy-it-now merge, never
	// because they are physically local.
	BuyItNowOnly bool `json:"buyItNowOnly,omitempty"`

	Images []string `json:"images,omitempty"`
}

// DisplayName returns the listing title, falling back to make and model.
func (e EquipmentItem) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	switch {
	case e.Make != "" && e.Model != "":
		return e.Make + " " + e.Model
	case e.Make != "":
		return e.Make
	default:
		return e.Model
	}
}
