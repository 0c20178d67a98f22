package service

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/bitsave-middleware/pkg/app/errors"
	apphttp "github.com/chainsafe/bitsave-middleware/pkg/app/http"
	"github.com/chainsafe/bitsave-middleware/pkg/orchestrator"
)

type joinBody struct {
	ChainID int64 `json:"chain_id" validate:"required,gt=0"`
}

type createVaultBody struct {
	Name              string `json:"name"`
	ChainID           int64  `json:"chain_id" validate:"required,gt=0"`
	Token             string `json:"token" validate:"required,eth_addr"`
	Amount            string `json:"amount"`
	PenaltyPercentage uint8  `json:"penalty_percentage"`
	DurationDays      int    `json:"duration_days"`
}

type topUpBody struct {
	Plan    string `json:"plan"`
	ChainID int64  `json:"chain_id" validate:"required,gt=0"`
	Token   string `json:"token" validate:"required,eth_addr"`
	Amount  string `json:"amount"`
}

type withdrawBody struct {
	Plan    string `json:"plan"`
	ChainID int64  `json:"chain_id" validate:"required,gt=0"`
}

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service  Service
	validate *validator.Validate
	logger   *zap.Logger
}

// RegisterRoutes registers the flow endpoints on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		return name
	})

	h := &HTTP{
		service:  service,
		validate: v,
		logger:   logger,
	}

	r.Route("/flows", func(r chi.Router) {
		r.Get("/", apphttp.HandleError(h.listFlows))
		r.Post("/join", apphttp.HandleError(h.join))
		r.Post("/create-vault", apphttp.HandleError(h.createVault))
		r.Get("/top-up/balance", apphttp.HandleError(h.topUpBalance))
		r.Post("/top-up", apphttp.HandleError(h.topUp))
		r.Get("/withdraw/preview", apphttp.HandleError(h.withdrawPreview))
		r.Post("/withdraw", apphttp.HandleError(h.withdraw))
		r.Get("/{id}", apphttp.HandleError(h.getFlow))
		r.Post("/{id}/retry", apphttp.HandleError(h.retry))
	})
}

func (h *HTTP) decode(r *http.Request, v any) error {
	if err := apphttp.DecodeJSON(r, v); err != nil {
		return err
	}
	if err := h.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return apperrors.BadRequestError(err, fmt.Sprintf("invalid %s", verrs[0].Field()))
		}
		return apperrors.BadRequestError(err, "invalid request")
	}
	return nil
}

func (h *HTTP) join(w http.ResponseWriter, r *http.Request) error {
	var body joinBody
	if err := h.decode(r, &body); err != nil {
		return err
	}
	snap, err := h.service.Join(r.Context(), orchestrator.JoinRequest{ChainID: body.ChainID})
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusAccepted, snap)
	return nil
}

func (h *HTTP) createVault(w http.ResponseWriter, r *http.Request) error {
	var body createVaultBody
	if err := h.decode(r, &body); err != nil {
		return err
	}
	snap, err := h.service.CreateVault(r.Context(), orchestrator.CreateVaultRequest{
		Name:              body.Name,
		ChainID:           body.ChainID,
		Token:             common.HexToAddress(body.Token),
		Amount:            body.Amount,
		PenaltyPercentage: body.PenaltyPercentage,
		DurationDays:      body.DurationDays,
	})
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusAccepted, snap)
	return nil
}

func (h *HTTP) topUpBalance(w http.ResponseWriter, r *http.Request) error {
	chainID, err := chainIDParam(r)
	if err != nil {
		return err
	}
	token := r.URL.Query().Get("token")
	if !common.IsHexAddress(token) {
		return apperrors.BadRequestError(nil, "invalid token")
	}
	balance, err := h.service.TopUpBalance(r.Context(), chainID, common.HexToAddress(token))
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, balance)
	return nil
}

func (h *HTTP) topUp(w http.ResponseWriter, r *http.Request) error {
	var body topUpBody
	if err := h.decode(r, &body); err != nil {
		return err
	}
	snap, err := h.service.TopUp(r.Context(), orchestrator.TopUpRequest{
		Plan:    body.Plan,
		ChainID: body.ChainID,
		Token:   common.HexToAddress(body.Token),
	}, body.Amount)
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusAccepted, snap)
	return nil
}

func (h *HTTP) withdrawPreview(w http.ResponseWriter, r *http.Request) error {
	chainID, err := chainIDParam(r)
	if err != nil {
		return err
	}
	preview, err := h.service.WithdrawPreview(r.Context(), orchestrator.WithdrawRequest{
		Plan:    r.URL.Query().Get("plan"),
		ChainID: chainID,
	})
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, preview)
	return nil
}

func (h *HTTP) withdraw(w http.ResponseWriter, r *http.Request) error {
	var body withdrawBody
	if err := h.decode(r, &body); err != nil {
		return err
	}
	snap, err := h.service.Withdraw(r.Context(), orchestrator.WithdrawRequest{Plan: body.Plan, ChainID: body.ChainID})
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusAccepted, snap)
	return nil
}

func (h *HTTP) getFlow(w http.ResponseWriter, r *http.Request) error {
	id, err := flowIDParam(r)
	if err != nil {
		return err
	}
	snap, err := h.service.GetFlow(r.Context(), id)
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, snap)
	return nil
}

func (h *HTTP) retry(w http.ResponseWriter, r *http.Request) error {
	id, err := flowIDParam(r)
	if err != nil {
		return err
	}
	snap, err := h.service.Retry(r.Context(), id)
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusAccepted, snap)
	return nil
}

func (h *HTTP) listFlows(w http.ResponseWriter, r *http.Request) error {
	user := r.URL.Query().Get("user")
	if !common.IsHexAddress(user) {
		return apperrors.BadRequestError(nil, "invalid user")
	}
	snaps, err := h.service.ListFlows(r.Context(), common.HexToAddress(user))
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, snaps)
	return nil
}

func chainIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.URL.Query().Get("chain_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.BadRequestError(err, "invalid chain_id")
	}
	return id, nil
}

func flowIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apperrors.BadRequestError(err, "invalid flow id")
	}
	return id, nil
}
