package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/modelmart/fhe-marketplace-client/interfaces"
	"github.com/modelmart/fhe-marketplace-client/workflow"
)

// Handler maps the JSON API onto the workflow coordinator.
type Handler struct {
	coordinator *workflow.Coordinator
	log         *slog.Logger
}

// NewHandler creates a handler delegating to coordinator.
func NewHandler(coordinator *workflow.Coordinator, log *slog.Logger) *Handler {
	return &Handler{
		coordinator: coordinator,
		log:         log,
	}
}

type assetListResponse struct {
	Assets []interfaces.AssetRecord `json:"assets"`
	Stats  workflow.Stats           `json:"stats"`
}

type publishResponse struct {
	ID interfaces.AssetID `json:"id"`
}

type revealResponse struct {
	// Value is null when a concurrent verification won the race; the
	// refreshed asset list carries the revealed value in that case.
	Value *uint64 `json:"value"`
}

type availabilityResponse struct {
	Available bool `json:"available"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandleListAssets serves the display cache with statistics.
func (h *Handler) HandleListAssets(w http.ResponseWriter, r *http.Request) {
	assets := h.coordinator.Assets()
	if assets == nil {
		assets = []interfaces.AssetRecord{}
	}
	h.writeJSON(w, http.StatusOK, assetListResponse{
		Assets: assets,
		Stats:  h.coordinator.Stats(),
	})
}

// HandlePublish runs the publish lifecycle from a JSON draft.
func (h *Handler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	var input workflow.PublishInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.DisplayName == "" {
		h.writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	id, err := h.coordinator.Publish(r.Context(), input)
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, publishResponse{ID: id})
}

// HandleReveal runs the reveal lifecycle for one asset.
func (h *Handler) HandleReveal(w http.ResponseWriter, r *http.Request) {
	id := interfaces.AssetID(chi.URLParam(r, "asset_id"))

	value, err := h.coordinator.Reveal(r.Context(), id)
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, revealResponse{Value: value})
}

// HandleRefresh re-fetches the asset list and serves the result.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.coordinator.Refresh(r.Context()); err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	h.HandleListAssets(w, r)
}

// HandleStatus serves the workflow status register.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.coordinator.Status())
}

// HandleHistory serves the action log, newest first.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	history := h.coordinator.History()
	if history == nil {
		history = []workflow.HistoryEntry{}
	}
	h.writeJSON(w, http.StatusOK, history)
}

// HandleAvailability probes ledger liveness.
func (h *Handler) HandleAvailability(w http.ResponseWriter, r *http.Request) {
	available, err := h.coordinator.CheckAvailability(r.Context())
	if err != nil {
		h.writeJSON(w, http.StatusServiceUnavailable, availabilityResponse{Available: false})
		return
	}

	h.writeJSON(w, http.StatusOK, availabilityResponse{Available: available})
}

// HandleModelCard serves the off-chain card of a published asset.
func (h *Handler) HandleModelCard(w http.ResponseWriter, r *http.Request) {
	id := interfaces.AssetID(chi.URLParam(r, "asset_id"))

	card, err := h.coordinator.ModelCardFor(r.Context(), id)
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, card)
}

// writeWorkflowError maps the workflow error taxonomy onto HTTP codes.
func (h *Handler) writeWorkflowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, interfaces.ErrNotAuthenticated):
		h.writeError(w, http.StatusUnauthorized, "no identity connected")
	case errors.Is(err, interfaces.ErrAssetNotFound), errors.Is(err, interfaces.ErrContentNotFound):
		h.writeError(w, http.StatusNotFound, "asset not found")
	case errors.Is(err, interfaces.ErrTransactionRejected):
		h.writeError(w, http.StatusConflict, "transaction rejected by signer")
	case errors.Is(err, interfaces.ErrServiceNotReady), errors.Is(err, interfaces.ErrServiceUnavailable):
		h.writeError(w, http.StatusServiceUnavailable, "service unavailable")
	case errors.Is(err, interfaces.ErrEncryption), errors.Is(err, interfaces.ErrTransactionFailed):
		h.writeError(w, http.StatusBadGateway, err.Error())
	default:
		h.log.Error("Unhandled workflow error", "err", err)
		h.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error("Failed to encode response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, errorResponse{Error: message})
}
