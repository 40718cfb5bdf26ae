// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SiikHub/SiikHubWaitList/clientinfo"
	"github.com/SiikHub/SiikHubWaitList/cliparse"
	"github.com/SiikHub/SiikHubWaitList/middleware"
	"github.com/SiikHub/SiikHubWaitList/models"
	"github.com/SiikHub/SiikHubWaitList/waitlist"
)

const genericError = "Something went wrong. Please try again."

type WaitlistHandler struct {
	reg *waitlist.Registry
	cfg cliparse.Config
}

func NewWaitlistHandler(reg *waitlist.Registry, cfg cliparse.Config) *WaitlistHandler {
	return &WaitlistHandler{reg: reg, cfg: cfg}
}

// writeError maps registry errors onto status codes. Unknown errors are
// logged and hidden behind internalMsg.
func writeError(w http.ResponseWriter, r *http.Request, err error, op, internalMsg string) {
	var inputErr *waitlist.InputError
	switch {
	case errors.As(err, &inputErr):
		middleware.ErrorResponse(w, http.StatusBadRequest, inputErr.Message)
	case errors.Is(err, waitlist.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Email not found in active waitlist")
	default:
		slog.Error(op+" failed", "error", err, "request_id", middleware.RequestID(r.Context()))
		middleware.ErrorResponse(w, http.StatusInternalServerError, internalMsg)
	}
}

// Signup handles POST /waitlist
func (h *WaitlistHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	client := clientinfo.FromRequest(r, h.cfg.IPHashSalt)
	res, err := h.reg.Register(r.Context(), req.Email, req.Source, client)
	if err != nil {
		writeError(w, r, err, "signup", genericError)
		return
	}

	slog.Info("waitlist signup",
		"email", middleware.RedactEmail(res.Record.Email),
		"outcome", res.Outcome.String(),
		"position", res.Record.Position,
		"source", res.Record.Source,
		"request_id", middleware.RequestID(r.Context()),
	)

	middleware.JSONResponse(w, http.StatusOK, models.SignupResponse{
		Success:      res.Success(),
		Message:      res.Message,
		Email:        res.Record.Email,
		Position:     res.Record.Position,
		TotalSignups: res.Total,
	})
}

// Stats handles GET /waitlist
func (h *WaitlistHandler) Stats(w http.ResponseWriter, r *http.Request) {
	snap, err := h.reg.Stats(r.Context())
	if err != nil {
		writeError(w, r, err, "stats", "Failed to fetch statistics")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StatsResponse{
		Success:             true,
		TotalSignups:        snap.Total,
		ActiveSignups:       snap.Total,
		InactiveSignups:     snap.Inactive,
		RecentSignups:       snap.Recent,
		TodaySignups:        snap.Today,
		AverageDailySignups: snap.AverageDaily,
		TopSources:          snap.TopSources,
		LatestSignups:       snap.Latest,
	})
}

// Unsubscribe handles POST /waitlist/unsubscribe
func (h *WaitlistHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req models.UnsubscribeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	rec, err := h.reg.Unsubscribe(r.Context(), req.Email)
	if err != nil {
		writeError(w, r, err, "unsubscribe", genericError)
		return
	}

	slog.Info("waitlist unsubscribe",
		"email", middleware.RedactEmail(rec.Email),
		"request_id", middleware.RequestID(r.Context()),
	)

	middleware.JSONResponse(w, http.StatusOK, models.UnsubscribeResponse{
		Success: true,
		Message: "Successfully unsubscribed from waitlist",
		Email:   rec.Email,
	})
}

// Position handles GET /waitlist/position/{email}
func (h *WaitlistHandler) Position(w http.ResponseWriter, r *http.Request) {
	res, err := h.reg.Lookup(r.Context(), r.PathValue("email"))
	if err != nil {
		writeError(w, r, err, "position lookup", genericError)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PositionResponse{
		Success:      true,
		Email:        res.Record.Email,
		Position:     res.Record.Position,
		TotalSignups: res.Total,
		JoinedAt:     res.Record.Timestamp,
		Source:       res.Record.Source,
	})
}

// Entries handles GET /waitlist/entries?skip=&limit=&active_only=
func (h *WaitlistHandler) Entries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	skip, err := intParam(q.Get("skip"), 0)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "skip must be an integer")
		return
	}
	limit, err := intParam(q.Get("limit"), waitlist.DefaultEntriesLimit)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be an integer")
		return
	}
	// the registry reads 0 as "default"; over HTTP it is out of range
	if limit < 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", waitlist.MaxEntriesLimit))
		return
	}
	onlyActive, err := boolParam(q.Get("active_only"), true)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "active_only must be true or false")
		return
	}

	entries, err := h.reg.Entries(r.Context(), waitlist.EntryQuery{
		Skip:       skip,
		Limit:      limit,
		ActiveOnly: onlyActive,
	})
	if err != nil {
		writeError(w, r, err, "list entries", genericError)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.EntriesResponse{
		Success: true,
		Entries: entries,
		Count:   len(entries),
	})
}

// Export handles GET /waitlist/export?format=json|csv&active_only=
func (h *WaitlistHandler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	onlyActive, err := boolParam(q.Get("active_only"), true)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "active_only must be true or false")
		return
	}

	res, err := h.reg.Export(r.Context(), q.Get("format"), onlyActive)
	if err != nil {
		writeError(w, r, err, "export", genericError)
		return
	}

	slog.Info("waitlist exported",
		"format", res.Format,
		"count", len(res.Rows),
		"request_id", middleware.RequestID(r.Context()),
	)

	middleware.JSONResponse(w, http.StatusOK, models.ExportResponse{
		Success:    true,
		Format:     res.Format,
		Data:       res.Data(),
		Count:      len(res.Rows),
		ExportedAt: res.ExportedAt,
	})
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func boolParam(raw string, def bool) (bool, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.ParseBool(raw)
}
