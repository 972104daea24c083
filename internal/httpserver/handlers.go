package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"rawg-catalog-service/api/dto"
	"rawg-catalog-service/internal/integration"
	"rawg-catalog-service/internal/manager"
)

type handlers struct {
	catalog manager.Catalog
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Errorw("encode error", "error", err)
	}
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

// writeQueryError: upstream failures are 502, everything else 500.
func writeQueryError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, integration.ErrUpstreamUnavailable) {
		status = http.StatusBadGateway
	}
	zap.S().Warnw("catalog query failed", "path", r.URL.Path, "status", status, "error", err)
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func (h *handlers) search(w http.ResponseWriter, r *http.Request) {
	req := parseSearch(r)
	if err := getValidator().Struct(req); err != nil {
		writeBadRequest(w, validationMessage(err))
		return
	}
	page, err := h.catalog.SearchAndFilter(r.Context(), req.filter())
	if err != nil {
		writeQueryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *handlers) popular(w http.ResponseWriter, r *http.Request) {
	games, err := h.catalog.GetPopular(r.Context(), intQuery(r, "page", dto.DefaultPage), intQuery(r, "pageSize", dto.DefaultPageSize))
	if err != nil {
		writeQueryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

func (h *handlers) detail(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	detail, err := h.catalog.GetDetail(r.Context(), id)
	if err != nil {
		writeQueryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *handlers) relations(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	rel := h.catalog.Relations(r.Context(), id, strings.TrimSpace(r.URL.Query().Get("publisherIds")))
	writeJSON(w, http.StatusOK, rel)
}

func (h *handlers) pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	req := gameRequest{ID: strictInt(chi.URLParam(r, "id"))}
	if err := getValidator().Struct(req); err != nil {
		writeBadRequest(w, validationMessage(err))
		return 0, false
	}
	return req.ID, true
}

func (h *handlers) byPublisher(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := publisherRequest{
		PublisherIDs: strings.TrimSpace(q.Get("publisherIds")),
		ExcludeID:    intQuery(r, "excludeId", 0),
	}
	if err := getValidator().Struct(req); err != nil {
		writeBadRequest(w, validationMessage(err))
		return
	}
	games, err := h.catalog.GetByPublisher(r.Context(), req.PublisherIDs, req.ExcludeID)
	if err != nil {
		writeQueryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

func (h *handlers) additions(w http.ResponseWriter, r *http.Request) {
	h.relatedList(w, r, h.catalog.GetDLCs)
}

func (h *handlers) sequels(w http.ResponseWriter, r *http.Request) {
	h.relatedList(w, r, h.catalog.GetSequels)
}

func (h *handlers) relatedList(w http.ResponseWriter, r *http.Request, list func(ctx context.Context, id int) ([]dto.GameSummary, error)) {
	req := gameRequest{ID: strictInt(r.URL.Query().Get("gameId"))}
	if err := getValidator().Struct(req); err != nil {
		writeBadRequest(w, validationMessage(err))
		return
	}
	games, err := list(r.Context(), req.ID)
	if err != nil {
		writeQueryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

// pageHandler serves one of the paged reference lists.
func pageHandler[T any](list func(ctx context.Context, page, pageSize int) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := list(r.Context(), intQuery(r, "page", dto.DefaultPage), intQuery(r, "pageSize", dto.DefaultPageSize))
		if err != nil {
			writeQueryError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
