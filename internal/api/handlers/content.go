package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/afrikoop/server/internal/api/problem"
	"github.com/afrikoop/server/internal/domain/content"
	"github.com/afrikoop/server/internal/domain/events"
)

type ContentHandler struct {
	Service *content.Service
	Env     string
}

func NewContentHandler(service *content.Service, env string) *ContentHandler {
	return &ContentHandler{Service: service, Env: env}
}

func (h *ContentHandler) Mission(w http.ResponseWriter, r *http.Request) {
	page, err := h.Service.Mission(r.Context())
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	lang := events.ParseLang(r.URL.Query())
	payload := map[string]any{"hero_image": nullable(page.HeroImage)}
	switch lang {
	case events.LangEnglish:
		payload["title"] = page.TitleEN
		payload["body"] = page.BodyEN
	case events.LangJapanese:
		payload["title"] = page.TitleJA
		payload["body"] = page.BodyJA
	default:
		payload["title_en"] = page.TitleEN
		payload["title_ja"] = page.TitleJA
		payload["body_en"] = page.BodyEN
		payload["body_ja"] = page.BodyJA
	}
	if !page.UpdatedAt.IsZero() {
		payload["updated_at"] = page.UpdatedAt.UTC().Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, payload)
}

func (h *ContentHandler) CleaningService(w http.ResponseWriter, r *http.Request) {
	page, err := h.Service.CleaningService(r.Context())
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	lang := events.ParseLang(r.URL.Query())
	payload := map[string]any{"image": nullable(page.Image)}

	switch lang {
	case events.LangEnglish:
		payload["title"] = page.TitleEN
		payload["description"] = page.DescriptionEN
		payload["cta"] = page.CTAEN
		features := make([]map[string]any, 0, len(page.Features))
		for _, feature := range page.Features {
			features = append(features, map[string]any{"text": feature.TextEN, "color": feature.Color})
		}
		payload["features"] = features
	case events.LangJapanese:
		payload["title"] = page.TitleJA
		payload["description"] = page.DescriptionJA
		payload["cta"] = page.CTAJA
		features := make([]map[string]any, 0, len(page.Features))
		for _, feature := range page.Features {
			text := feature.TextJA
			if text == "" {
				text = feature.TextEN
			}
			features = append(features, map[string]any{"text": text, "color": feature.Color})
		}
		payload["features"] = features
	default:
		payload["title_en"] = page.TitleEN
		payload["title_ja"] = page.TitleJA
		payload["description_en"] = page.DescriptionEN
		payload["description_ja"] = page.DescriptionJA
		payload["cta_en"] = page.CTAEN
		payload["cta_ja"] = page.CTAJA
		features := make([]map[string]any, 0, len(page.Features))
		for _, feature := range page.Features {
			features = append(features, map[string]any{
				"text_en": feature.TextEN,
				"text_ja": feature.TextJA,
				"color":   feature.Color,
			})
		}
		payload["features"] = features
	}

	gallery := make([]map[string]any, 0, 3)
	for i, image := range page.Gallery {
		if i == 3 {
			break
		}
		gallery = append(gallery, map[string]any{
			"url":        image.URL,
			"caption_en": image.CaptionEN,
			"caption_ja": image.CaptionJA,
		})
	}
	payload["gallery"] = gallery

	if !page.UpdatedAt.IsZero() {
		payload["updated_at"] = page.UpdatedAt.UTC().Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, payload)
}

func (h *ContentHandler) EventsPage(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Service.EventsPage(r.Context())
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	lang := events.ParseLang(r.URL.Query())
	var payload map[string]any
	switch lang {
	case events.LangEnglish:
		payload = map[string]any{
			"title":      settings.TitleEN,
			"subtitle":   settings.SubtitleEN,
			"hero_image": nullable(settings.HeroImage),
		}
	case events.LangJapanese:
		payload = map[string]any{
			"title":      settings.TitleJA,
			"subtitle":   settings.SubtitleJA,
			"hero_image": nullable(settings.HeroImage),
		}
	default:
		payload = map[string]any{
			"title_en":    settings.TitleEN,
			"title_ja":    settings.TitleJA,
			"subtitle_en": settings.SubtitleEN,
			"subtitle_ja": settings.SubtitleJA,
			"hero_image":  nullable(settings.HeroImage),
		}
	}
	writeJSON(w, http.StatusOK, payload)
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (h *ContentHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var input contactRequest
	if err := decodeJSON(r, &input); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}

	_, err := h.Service.SubmitContact(r.Context(), content.ContactParams{
		Name:    input.Name,
		Email:   input.Email,
		Message: input.Message,
	})
	if err != nil {
		var invalid content.ValidationError
		if errors.As(err, &invalid) {
			problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", invalid, h.Env,
				problem.WithDetail(invalid.Error()))
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"detail": "Message received. Thank you!"})
}

// I18n serves merged UI translations for one or more namespaces as a
// flat {key: text} map with a weak ETag derived from the newest row.
func (h *ContentHandler) I18n(w http.ResponseWriter, r *http.Request) {
	lang := pathParam(r, "lang")
	namespaces := splitNamespaces(r.URL.Query().Get("ns"))
	h.serveTranslations(w, r, lang, namespaces, fmt.Sprintf("i18n-%s", lang))
}

// I18nNamespace serves a single namespace.
func (h *ContentHandler) I18nNamespace(w http.ResponseWriter, r *http.Request) {
	lang := pathParam(r, "lang")
	namespace := pathParam(r, "namespace")
	h.serveTranslations(w, r, lang, []string{namespace}, fmt.Sprintf("i18n-%s-%s", lang, namespace))
}

func (h *ContentHandler) serveTranslations(w http.ResponseWriter, r *http.Request, lang string, namespaces []string, etagBase string) {
	translations, latest, err := h.Service.Translations(r.Context(), lang, namespaces)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	if !latest.IsZero() {
		w.Header().Set("ETag", fmt.Sprintf("W/%q", fmt.Sprintf("%s-%d", etagBase, latest.Unix())))
	}
	writeJSON(w, http.StatusOK, translations)
}

func splitNamespaces(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	namespaces := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			namespaces = append(namespaces, item)
		}
	}
	return namespaces
}

// nullable maps "" to JSON null for optional image URLs.
func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}
