package repository

import (
	"encoding/json"
	"strconv"
	"strings"

	"rentalhub-storefront-api/internal/geo"
	"rentalhub-storefront-api/internal/model"
)

// NormalizeItem converts a raw index record into an EquipmentItem. Records
// without an id are rejected. Missing coordinates are not an error; the item
// is returned with nil Coordinates and drops out of radius-bound listings.
func NormalizeItem(raw map[string]any, imageBaseURL string) (model.EquipmentItem, bool) {
	id := stringField(raw, "id")
	if id == "" {
		id = stringField(raw, "_id")
	}
	if id == "" {
		return model.EquipmentItem{}, false
	}

	item := model.EquipmentItem{
		ID:              id,
		PrimaryType:     stringField(raw, "primaryType"),
		Make:            stringField(raw, "make"),
		Model:           stringField(raw, "model"),
		Name:            stringField(raw, "name"),
		CatClass:        stringField(raw, "catClass"),
		BuyItNowEnabled: boolField(raw, "buyItNowEnabled"),
		Coordinates:     geo.ExtractCoordinates(raw),
	}

	if y, ok := geo.Number(raw["year"]); ok && y > 0 {
		year := int(y)
		item.Year = &year
	}
	if c, ok := geo.Number(raw["capacity"]); ok {
		item.Capacity = &c
	}
	if p, ok := geo.Number(raw["buyItNowPrice"]); ok && p > 0 {
		item.BuyItNowPrice = &p
	}

	item.Location = location(raw)
	item.RateSchedules = rateSchedules(raw["rateSchedules"])
	item.RentalRate = DeriveRentalRate(rentalRate(raw["rentalRate"]), item.RateSchedules)
	item.Images = images(raw, imageBaseURL)

	return item, true
}

// Approved reports whether raw is approved or has no approval status yet.
func Approved(raw map[string]any) bool {
	status := stringField(raw, "approvalStatus")
	return status == "" || strings.EqualFold(status, "approved")
}

// DeriveRentalRate fills the components missing from rate using the
// schedules. Explicit components are never overwritten.
func DeriveRentalRate(rate model.RentalRate, schedules []model.RateSchedule) model.RentalRate {
	for _, s := range schedules {
		if s.Cost <= 0 {
			continue
		}
		label := strings.ToLower(s.Label)
		switch {
		case s.NumDays == 1 || (s.NumDays == 0 && strings.Contains(label, "day")):
			if rate.Daily == 0 {
				rate.Daily = s.Cost
			}
		case s.NumDays == 7 || (s.NumDays == 0 && strings.Contains(label, "week")):
			if rate.Weekly == 0 {
				rate.Weekly = s.Cost
			}
		case (s.NumDays >= 28 && s.NumDays <= 31) || (s.NumDays == 0 && strings.Contains(label, "month")):
			if rate.Monthly == 0 {
				rate.Monthly = s.Cost
			}
		}
	}
	return rate
}

// rentalRate accepts a bare number (monthly) or a {daily, weekly, monthly} object.
func rentalRate(v any) model.RentalRate {
	if n, ok := geo.Number(v); ok {
		return model.RentalRate{Monthly: n}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return model.RentalRate{}
	}
	var r model.RentalRate
	r.Daily, _ = geo.Number(m["daily"])
	r.Weekly, _ = geo.Number(m["weekly"])
	r.Monthly, _ = geo.Number(m["monthly"])
	return r
}

// rateSchedules keeps the schedules in the order the owner listed them.
func rateSchedules(v any) []model.RateSchedule {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]model.RateSchedule, 0, len(list))
	for _, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		s := model.RateSchedule{Label: stringField(m, "label")}
		if d, ok := geo.Number(m["numDays"]); ok {
			s.NumDays = int(d)
		}
		s.Cost, _ = geo.Number(m["cost"])
		out = append(out, s)
	}
	return out
}

func location(raw map[string]any) model.Location {
	loc := model.Location{
		City:  stringField(raw, "city"),
		State: stringField(raw, "state"),
	}
	if nested, ok := raw["location"].(map[string]any); ok {
		if loc.City == "" {
			loc.City = stringField(nested, "city")
		}
		if loc.State == "" {
			loc.State = stringField(nested, "state")
		}
	}
	return loc
}

// images prefers thumbnails over full-size images and joins relative
// fragments onto the configured image host.
func images(raw map[string]any, baseURL string) []string {
	list := stringList(raw["thumbnails"])
	if len(list) == 0 {
		list = stringList(raw["images"])
	}
	if len(list) == 0 {
		return nil
	}

	base := strings.TrimRight(baseURL, "/")
	out := make([]string, 0, len(list))
	for _, p := range list {
		if base != "" && !strings.HasPrefix(p, "http://") && !strings.HasPrefix(p, "https://") {
			p = base + "/" + strings.TrimLeft(p, "/")
		}
		out = append(out, p)
	}
	return out
}

func stringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		if s, ok := e.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func boolField(m map[string]any, key string) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(v))
		return b
	default:
		return false
	}
}
