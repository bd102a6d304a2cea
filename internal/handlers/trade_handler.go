package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"swapcycle/internal/models"
	"swapcycle/internal/services"
)

type TradeHandler struct {
	Service *services.TradeService
}

func (h *TradeHandler) CreateTrade(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var trade models.Trade
	if err := json.NewDecoder(r.Body).Decode(&trade); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	trade.ProposerID = userID

	created, err := h.Service.CreateTrade(r.Context(), trade)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidTradeItems):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, models.ErrProductNotFound), errors.Is(err, models.ErrServiceNotFound):
			writeError(w, http.StatusNotFound, "listing not found or unavailable")
		case errors.Is(err, models.ErrNotOwner):
			writeError(w, http.StatusForbidden, "offered item belongs to another user")
		default:
			writeError(w, http.StatusInternalServerError, "failed to create trade")
		}
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *TradeHandler) GetTradeByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid trade id")
		return
	}

	trade, err := h.Service.GetTradeByID(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, models.ErrTradeNotFound) {
			writeError(w, http.StatusNotFound, "trade not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load trade")
		return
	}

	writeJSON(w, http.StatusOK, trade)
}

func (h *TradeHandler) ListTrades(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	trades, err := h.Service.ListTradesByUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list trades")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"trades": trades})
}

type tradeAnswerRequest struct {
	ResponseMessage *string `json:"response_message,omitempty"`
}

func (h *TradeHandler) AcceptTrade(w http.ResponseWriter, r *http.Request) {
	h.answerTrade(w, r, h.Service.AcceptTrade)
}

func (h *TradeHandler) DeclineTrade(w http.ResponseWriter, r *http.Request) {
	h.answerTrade(w, r, h.Service.DeclineTrade)
}

func (h *TradeHandler) answerTrade(w http.ResponseWriter, r *http.Request,
	answer func(ctx context.Context, userID, id int, responseMessage *string) (models.Trade, error)) {
	userID, ok := authUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid trade id")
		return
	}

	var req tradeAnswerRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	trade, err := answer(r.Context(), userID, id, req.ResponseMessage)
	if err != nil {
		h.writeTradeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, trade)
}

func (h *TradeHandler) CancelTrade(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid trade id")
		return
	}

	trade, err := h.Service.CancelTrade(r.Context(), userID, id)
	if err != nil {
		h.writeTradeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, trade)
}

func (h *TradeHandler) writeTradeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrTradeNotFound):
		writeError(w, http.StatusNotFound, "trade not found")
	case errors.Is(err, models.ErrNotOwner):
		writeError(w, http.StatusForbidden, "trade belongs to another user")
	case errors.Is(err, models.ErrTradeNotPending):
		writeError(w, http.StatusConflict, "trade is no longer pending")
	default:
		writeError(w, http.StatusInternalServerError, "trade update failed")
	}
}
