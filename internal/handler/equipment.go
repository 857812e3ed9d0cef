package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"rentalhub-storefront-api/internal/model"
	"rentalhub-storefront-api/internal/service"
	"rentalhub-storefront-api/pkg/apierror"
	"rentalhub-storefront-api/pkg/response"
)

const maxBodyBytes = 64 << 10

// EquipmentHandler serves the public equipment query API.
type EquipmentHandler struct {
	svc *service.InventoryService
	log *slog.Logger
}

// NewEquipmentHandler creates a new equipment handler.
func NewEquipmentHandler(svc *service.InventoryService, log *slog.Logger) *EquipmentHandler {
	return &EquipmentHandler{svc: svc, log: log.With("component", "equipment_handler")}
}

// keywordList accepts either a JSON array or a comma-separated string.
type keywordList []string

func (k *keywordList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*k = list
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.New("keywords must be a string or an array of strings")
	}
	*k = splitKeywords(raw)
	return nil
}

func splitKeywords(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// searchRequest is the equipment query as sent by clients, in either the
// query string or a JSON body. Location may be given flat (lat, lon,
// radius) or as a nested object.
type searchRequest struct {
	Type        string           `json:"type"`
	Make        string           `json:"make"`
	Model       string           `json:"model"`
	CatClass    string           `json:"catClass"`
	Keywords    keywordList      `json:"keywords"`
	MinCapacity *float64         `json:"minCapacity"`
	MaxCapacity *float64         `json:"maxCapacity"`
	Lat         *float64         `json:"lat"`
	Lon         *float64         `json:"lon"`
	Radius      *float64         `json:"radius"`
	Location    *model.GeoFilter `json:"location"`
	Limit       int              `json:"limit"`
	Single      bool             `json:"single"`
}

// Search handles GET /api/v1/equipment
func (h *EquipmentHandler) Search(w http.ResponseWriter, r *http.Request) {
	req, details := requestFromQuery(r.URL.Query())
	criteria, err := h.criteria(req, details)
	if err != nil {
		response.Error(w, err)
		return
	}
	h.respond(w, r, criteria)
}

// SearchJSON handles POST /api/v1/equipment
func (h *EquipmentHandler) SearchJSON(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		response.Error(w, apierror.BadRequest("failed to read request body"))
		return
	}

	var req searchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}

	criteria, err := h.criteria(req, nil)
	if err != nil {
		response.Error(w, err)
		return
	}
	h.respond(w, r, criteria)
}

func (h *EquipmentHandler) respond(w http.ResponseWriter, r *http.Request, criteria model.SearchCriteria) {
	if criteria.Single {
		item, err := h.svc.FindBest(r.Context(), criteria)
		if err != nil {
			writeError(w, r, h.log, err)
			return
		}
		response.OK(w, item)
		return
	}

	result, err := h.svc.Search(r.Context(), criteria)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	response.OK(w, result)
}

// criteria converts req into search criteria. A location filter needs both
// lat and lon; a missing or zero radius means the service area radius.
func (h *EquipmentHandler) criteria(req searchRequest, details []apierror.FieldError) (model.SearchCriteria, error) {
	c := model.SearchCriteria{
		PrimaryType: req.Type,
		Make:        req.Make,
		Model:       req.Model,
		CatClass:    req.CatClass,
		Keywords:    req.Keywords,
		MinCapacity: req.MinCapacity,
		MaxCapacity: req.MaxCapacity,
		Limit:       req.Limit,
		Single:      req.Single,
	}

	switch {
	case req.Lat != nil && req.Lon != nil:
		c.Location = &model.GeoFilter{Lat: *req.Lat, Lon: *req.Lon}
		if req.Radius != nil {
			c.Location.RadiusMiles = *req.Radius
		}
	case req.Lat != nil || req.Lon != nil:
		details = append(details, apierror.FieldError{Field: "location", Message: "lat and lon must be given together"})
	case req.Location != nil:
		loc := *req.Location
		c.Location = &loc
	}
	if c.Location != nil && c.Location.RadiusMiles == 0 {
		c.Location.RadiusMiles = h.svc.Area().RadiusMiles
	}

	if len(details) > 0 {
		return c, apierror.ValidationError("invalid query parameters", details...)
	}
	return c, nil
}

// requestFromQuery parses the query string into a searchRequest, collecting
// a field error for every value that does not parse.
func requestFromQuery(q url.Values) (searchRequest, []apierror.FieldError) {
	var (
		req     searchRequest
		details []apierror.FieldError
	)

	req.Type = q.Get("type")
	req.Make = q.Get("make")
	req.Model = q.Get("model")
	req.CatClass = q.Get("catClass")
	for _, raw := range q["keywords"] {
		req.Keywords = append(req.Keywords, splitKeywords(raw)...)
	}

	float := func(name string) *float64 {
		raw := strings.TrimSpace(q.Get(name))
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			details = append(details, apierror.FieldError{Field: name, Message: "must be a number"})
			return nil
		}
		return &v
	}

	req.MinCapacity = float("minCapacity")
	req.MaxCapacity = float("maxCapacity")
	req.Lat, req.Lon, req.Radius = float("lat"), float("lon"), float("radius")

	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			details = append(details, apierror.FieldError{Field: "limit", Message: "must be an integer"})
		}
		req.Limit = n
	}
	if raw := strings.TrimSpace(q.Get("single")); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			details = append(details, apierror.FieldError{Field: "single", Message: "must be a boolean"})
		}
		req.Single = b
	}

	return req, details
}
