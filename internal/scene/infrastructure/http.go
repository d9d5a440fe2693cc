package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mateusmacedo/go-dispatch/internal/scene/application"
	pkgDomain "github.com/mateusmacedo/go-dispatch/pkg/domain"
)

type SceneHTTPHandler struct {
	service *application.LifecycleService
	decode  func(eventName string, payload []byte) ([]any, error)
}

func NewSceneHTTPHandler(service *application.LifecycleService) *SceneHTTPHandler {
	return &SceneHTTPHandler{
		service: service,
		decode:  application.NewPayloadDecoder(service.Engine()),
	}
}

type createObjectRequest struct {
	Name   string `json:"name"`
	Script string `json:"script,omitempty"`
}

type raiseEventRequest struct {
	Contract string          `json:"contract"`
	Event    string          `json:"event"`
	Args     json.RawMessage `json:"args,omitempty"`
}

func (h *SceneHTTPHandler) HandleCreateObject(w http.ResponseWriter, r *http.Request) {
	var req createObjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	object, err := h.service.CreateObject(ctx, req.Name, req.Script)
	if err != nil {
		handleError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(object); err != nil {
		handleError(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *SceneHTTPHandler) HandleGetObject(w http.ResponseWriter, r *http.Request) {
	objectID := chi.URLParam(r, "objectID")

	object, ok := h.service.Object(objectID)
	if !ok {
		handleError(w, "scene object not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(object); err != nil {
		handleError(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *SceneHTTPHandler) HandleRaiseEvent(w http.ResponseWriter, r *http.Request) {
	objectID := chi.URLParam(r, "objectID")

	var req raiseEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	args, err := h.decode(req.Event, req.Args)
	if err != nil {
		handleError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.RaiseEvent(ctx, objectID, req.Contract, req.Event, args); err != nil {
		handleError(w, err.Error(), dispatchStatusCode(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"message": "event dispatched", "event": req.Event}); err != nil {
		handleError(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *SceneHTTPHandler) HandleStep(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.StepAll(ctx); err != nil {
		handleError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"frame": h.service.Engine().Frame}); err != nil {
		handleError(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *SceneHTTPHandler) RegisterRoutes(router chi.Router) {
	router.Post("/scene/objects", h.HandleCreateObject)
	router.Get("/scene/objects/{objectID}", h.HandleGetObject)
	router.Post("/scene/objects/{objectID}/events", h.HandleRaiseEvent)
	router.Post("/scene/step", h.HandleStep)
}

func dispatchStatusCode(err error) int {
	var unknownEvent *pkgDomain.UnknownEventError
	var argumentMismatch *pkgDomain.ArgumentMismatchError
	var notImplemented *pkgDomain.ContractNotImplementedError

	switch {
	case errors.Is(err, application.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrUnknownContract):
		return http.StatusBadRequest
	case errors.As(err, &unknownEvent), errors.As(err, &argumentMismatch):
		return http.StatusBadRequest
	case errors.As(err, &notImplemented):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func handleError(w http.ResponseWriter, message string, statusCode int) {
	http.Error(w, message, statusCode)
}
