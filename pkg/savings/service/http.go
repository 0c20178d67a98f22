package service

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apphttp "github.com/chainsafe/bitsave-middleware/pkg/app/http"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers the savings read endpoints on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Get("/chains", apphttp.HandleError(h.listChains))
	r.Get("/chains/{name}/tokens", apphttp.HandleError(h.listTokens))
	r.Get("/tokens/{address}", apphttp.HandleError(h.resolveToken))
	r.Get("/users/{address}/savings", apphttp.HandleError(h.overview))
	r.Get("/wallet", apphttp.HandleError(h.wallet))
}

func (h *HTTP) listChains(w http.ResponseWriter, r *http.Request) error {
	chains, err := h.service.ListChains(r.Context())
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, chains)
	return nil
}

func (h *HTTP) listTokens(w http.ResponseWriter, r *http.Request) error {
	tokens, err := h.service.ListTokens(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, tokens)
	return nil
}

func (h *HTTP) resolveToken(w http.ResponseWriter, r *http.Request) error {
	info, err := h.service.ResolveToken(r.Context(), chi.URLParam(r, "address"))
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, info)
	return nil
}

func (h *HTTP) overview(w http.ResponseWriter, r *http.Request) error {
	ov, err := h.service.Overview(r.Context(), chi.URLParam(r, "address"))
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, ov)
	return nil
}

func (h *HTTP) wallet(w http.ResponseWriter, r *http.Request) error {
	wallet, err := h.service.Wallet(r.Context())
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, wallet)
	return nil
}
