package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/residuum/pkg/domain/model"
	"github.com/secmon-lab/residuum/pkg/domain/types"
	"github.com/secmon-lab/residuum/pkg/utils/errutil"
)

type recordResponse struct {
	ID            string    `json:"id"`
	BusinessUnit  string    `json:"business_unit"`
	RiskName      string    `json:"risk_name"`
	Inherent      string    `json:"inherent_rating"`
	ControlType   string    `json:"control_type"`
	Control       string    `json:"control_rating"`
	LossEvents    float64   `json:"loss_events"`
	AssessedAt    time.Time `json:"assessed_at"`
	InherentScore int       `json:"inherent_score"`
	ControlScore  int       `json:"control_score"`
	CombinedScore int       `json:"combined_score"`
	ResidualBand  string    `json:"residual_band"`
}

func toRecordResponse(r *model.RiskRecord) recordResponse {
	return recordResponse{
		ID:            r.ID.String(),
		BusinessUnit:  r.BusinessUnit,
		RiskName:      r.RiskName,
		Inherent:      r.Inherent.String(),
		ControlType:   r.ControlType.String(),
		Control:       r.Control.String(),
		LossEvents:    r.LossEvents,
		AssessedAt:    r.AssessedAt,
		InherentScore: r.InherentScore,
		ControlScore:  r.ControlScore,
		CombinedScore: r.CombinedScore,
		ResidualBand:  r.ResidualBand.String(),
	}
}

func toRecordResponses(records []*model.RiskRecord) []recordResponse {
	out := make([]recordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toRecordResponse(r))
	}
	return out
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.uc.Assessment.ReevaluateAll(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"records": toRecordResponses(records),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.uc.Assessment.Summary(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

type whatIfRequest struct {
	Units         []string `json:"units"`
	RiskNames     []string `json:"risk_names"`
	ControlRating string   `json:"control_rating"`
}

func (s *Server) handleWhatIf(w http.ResponseWriter, r *http.Request) {
	var req whatIfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	scope := model.Scope{
		Units:     req.Units,
		RiskNames: req.RiskNames,
	}

	result, err := s.uc.Assessment.WhatIf(r.Context(), scope, types.ControlRating(req.ControlRating))
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, types.ErrInvalidRating) {
			statusCode = http.StatusBadRequest
		}
		errutil.HandleHTTP(r.Context(), w, err, statusCode)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"records": toRecordResponses(result.Records),
		"before":  result.Before,
		"after":   result.After,
	})
}
