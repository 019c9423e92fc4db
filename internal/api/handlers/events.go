package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/afrikoop/server/internal/api/middleware"
	"github.com/afrikoop/server/internal/api/problem"
	"github.com/afrikoop/server/internal/domain/events"
	"github.com/afrikoop/server/internal/metrics"
)

type EventsHandler struct {
	Service *events.Service
	Env     string
}

func NewEventsHandler(service *events.Service, env string) *EventsHandler {
	return &EventsHandler{Service: service, Env: env}
}

type eventListResponse struct {
	Results    []map[string]any `json:"results"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
	HasNext    bool             `json:"has_next"`
	HasPrev    bool             `json:"has_prev"`
}

func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := events.ParseListParams(query)
	lang := events.ParseLang(query)

	result, err := h.Service.List(r.Context(), params)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	items := make([]map[string]any, 0, len(result.Events))
	for _, event := range result.Events {
		items = append(items, eventPayload(event, lang))
	}

	writeJSON(w, http.StatusOK, eventListResponse{
		Results:    items,
		Page:       result.Page,
		PageSize:   result.PageSize,
		Total:      result.Total,
		TotalPages: result.TotalPages,
		HasNext:    result.HasNext,
		HasPrev:    result.HasPrev,
	})
}

func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	publicID := pathParam(r, "id")
	lang := events.ParseLang(r.URL.Query())

	event, err := h.Service.Get(r.Context(), publicID)
	if err != nil {
		if errors.Is(err, events.ErrNotFound) {
			problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Not found", err, h.Env,
				problem.WithDetail("Event not found."))
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, eventPayload(*event, lang))
}

func (h *EventsHandler) Register(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", nil, h.Env)
		return
	}

	publicID := pathParam(r, "id")
	registration, err := h.Service.RegisterForEvent(r.Context(), user.ID, publicID)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrNotFound):
			metrics.CountRegistration("not_found")
			problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Not found", err, h.Env,
				problem.WithDetail("Event not found."))
		case errors.Is(err, events.ErrAlreadyRegistered):
			metrics.CountRegistration("duplicate")
			problem.Write(w, r, http.StatusConflict, problem.TypeConflict, "Conflict", err, h.Env,
				problem.WithDetail("Already registered."))
		case errors.Is(err, events.ErrEventFull):
			metrics.CountRegistration("full")
			problem.Write(w, r, http.StatusConflict, problem.TypeConflict, "Conflict", err, h.Env,
				problem.WithDetail("Event is full."))
		default:
			problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		}
		return
	}

	metrics.CountRegistration("created")
	writeJSON(w, http.StatusCreated, registrationPayload(*registration))
}

func (h *EventsHandler) MyRegistrations(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", nil, h.Env)
		return
	}

	registrations, err := h.Service.ListRegistrationsForUser(r.Context(), user.ID)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	items := make([]map[string]any, 0, len(registrations))
	for _, registration := range registrations {
		items = append(items, registrationPayload(registration))
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": items})
}

func eventPayload(event events.Event, lang string) map[string]any {
	payload := map[string]any{
		"id":             event.PublicID,
		"start_datetime": event.StartTime.UTC().Format(time.RFC3339),
		"location":       event.Location,
		"capacity":       event.Capacity,
	}
	if slots := event.AvailableSlots(); slots != nil {
		payload["available_slots"] = *slots
	}

	// Images carry both captions regardless of lang; the frontend picks.
	images := make([]map[string]any, 0, len(event.Images))
	for _, image := range event.Images {
		images = append(images, map[string]any{
			"url":        image.URL,
			"caption_en": image.CaptionEN,
			"caption_ja": image.CaptionJA,
		})
	}
	payload["images"] = images

	switch lang {
	case events.LangEnglish, events.LangJapanese:
		payload["title"] = event.Title(lang)
		payload["description"] = event.Description(lang)
	default:
		payload["title_en"] = event.TitleEN
		payload["title_ja"] = event.TitleJA
		payload["description_en"] = event.DescriptionEN
		payload["description_ja"] = event.DescriptionJA
	}
	return payload
}

func registrationPayload(registration events.Registration) map[string]any {
	return map[string]any{
		"id":         registration.ID,
		"event_id":   registration.EventPublicID,
		"created_at": registration.CreatedAt.UTC().Format(time.RFC3339),
	}
}
