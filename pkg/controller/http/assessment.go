package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/mrm-lab/modelrisk/pkg/domain/model"
	"github.com/mrm-lab/modelrisk/pkg/domain/types"
	"github.com/mrm-lab/modelrisk/pkg/usecase"
	"github.com/mrm-lab/modelrisk/pkg/utils/errutil"
)

// factorRatingRequest mirrors model.FactorRating with string-typed fields
// so parse errors surface as 400, not 500
type factorRatingRequest struct {
	FactorID string `json:"factor_id"`
	Rating   string `json:"rating,omitempty"`
	Comment  string `json:"comment,omitempty"`
}

type assessmentRequest struct {
	RegionID string `json:"region_id,omitempty"`

	Quantitative        string `json:"quantitative_rating,omitempty"`
	QuantitativeComment string `json:"quantitative_comment,omitempty"`

	QuantitativeOverride        string `json:"quantitative_override,omitempty"`
	QuantitativeOverrideComment string `json:"quantitative_override_comment,omitempty"`

	QualitativeOverride        string `json:"qualitative_override,omitempty"`
	QualitativeOverrideComment string `json:"qualitative_override_comment,omitempty"`

	TierOverride        string `json:"derived_tier_override,omitempty"`
	TierOverrideComment string `json:"derived_tier_override_comment,omitempty"`

	FactorRatings []factorRatingRequest `json:"factor_ratings,omitempty"`

	Confirmed bool `json:"confirmed,omitempty"`
}

func (req *assessmentRequest) toSaveInput(modelID types.ModelID, assessmentID int64) (*usecase.SaveInput, error) {
	input := &usecase.SaveInput{
		ModelID:                     modelID,
		AssessmentID:                assessmentID,
		Scope:                       types.Scope{RegionID: types.RegionID(req.RegionID)},
		QuantitativeComment:         req.QuantitativeComment,
		QuantitativeOverrideComment: req.QuantitativeOverrideComment,
		QualitativeOverrideComment:  req.QualitativeOverrideComment,
		TierOverrideComment:         req.TierOverrideComment,
		Confirmed:                   req.Confirmed,
	}

	var err error
	if input.Quantitative, err = types.ParseRating(req.Quantitative); err != nil {
		return nil, goerr.Wrap(err, "invalid quantitative rating")
	}
	if input.QuantitativeOverride, err = types.ParseRating(req.QuantitativeOverride); err != nil {
		return nil, goerr.Wrap(err, "invalid quantitative override")
	}
	if input.QualitativeOverride, err = types.ParseRating(req.QualitativeOverride); err != nil {
		return nil, goerr.Wrap(err, "invalid qualitative override")
	}
	if input.TierOverride, err = types.ParseTier(req.TierOverride); err != nil {
		return nil, goerr.Wrap(err, "invalid derived tier override")
	}

	for _, fr := range req.FactorRatings {
		rating, err := types.ParseRating(fr.Rating)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid factor rating", goerr.V("factor_id", fr.FactorID))
		}
		input.FactorRatings = append(input.FactorRatings, model.FactorRating{
			FactorID: types.FactorID(fr.FactorID),
			Rating:   rating,
			Comment:  fr.Comment,
		})
	}

	return input, nil
}

// assessmentResponse pairs a stored assessment with its derived view
type assessmentResponse struct {
	Assessment *model.Assessment    `json:"assessment"`
	Effective  *model.EffectiveTier `json:"effective"`
}

// impactResponse is returned with 409 when open validations block an
// unconfirmed save. Retrying with confirmed=true completes the save.
type impactResponse struct {
	ConfirmationRequired bool        `json:"confirmation_required"`
	Impact               interface{} `json:"impact"`
}

type violationsResponse struct {
	Error      string            `json:"error"`
	Violations []model.Violation `json:"violations"`
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck // header already committed
}

// handleError maps use case errors onto HTTP status codes
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	var validationErr *model.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondJSON(w, http.StatusBadRequest, violationsResponse{
			Error:      validationErr.Error(),
			Violations: validationErr.Violations,
		})
	case errors.Is(err, usecase.ErrAssessmentNotFound):
		errutil.HandleHTTP(ctx, w, err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrScopeAlreadyAssessed):
		errutil.HandleHTTP(ctx, w, err, http.StatusConflict)
	case errors.Is(err, usecase.ErrPermissionDenied):
		errutil.HandleHTTP(ctx, w, err, http.StatusForbidden)
	default:
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
	}
}

func modelIDParam(r *http.Request) (types.ModelID, error) {
	id := types.ModelID(chi.URLParam(r, "modelID"))
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

func assessmentIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "assessmentID"), 10, 64)
	if err != nil {
		return 0, goerr.Wrap(err, "invalid assessment ID")
	}
	return id, nil
}

func (s *Server) listFactors(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"factors": s.uc.Assessment.Factors(r.Context()),
	})
}

func (s *Server) listRegions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"regions": s.uc.Assessment.Regions(r.Context()),
	})
}

func (s *Server) listAssessments(w http.ResponseWriter, r *http.Request) {
	modelID, err := modelIDParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	assessments, effectives, err := s.uc.Assessment.List(r.Context(), modelID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	items := make([]assessmentResponse, len(assessments))
	for i := range assessments {
		items[i] = assessmentResponse{
			Assessment: assessments[i],
			Effective:  &effectives[i],
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"assessments": items})
}

func (s *Server) getAssessment(w http.ResponseWriter, r *http.Request) {
	modelID, err := modelIDParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	id, err := assessmentIDParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	a, effective, err := s.uc.Assessment.Get(r.Context(), modelID, id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, assessmentResponse{Assessment: a, Effective: effective})
}

func (s *Server) createAssessment(w http.ResponseWriter, r *http.Request) {
	s.saveAssessment(w, r, 0)
}

func (s *Server) updateAssessment(w http.ResponseWriter, r *http.Request) {
	id, err := assessmentIDParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	s.saveAssessment(w, r, id)
}

func (s *Server) saveAssessment(w http.ResponseWriter, r *http.Request, assessmentID int64) {
	modelID, err := modelIDParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	var req assessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	input, err := req.toSaveInput(modelID, assessmentID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	result, err := s.uc.Assessment.Save(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if result.Impact != nil {
		respondJSON(w, http.StatusConflict, impactResponse{
			ConfirmationRequired: true,
			Impact:               result.Impact,
		})
		return
	}

	status := http.StatusOK
	if assessmentID == 0 {
		status = http.StatusCreated
	}
	respondJSON(w, status, assessmentResponse{
		Assessment: result.Assessment,
		Effective:  result.Effective,
	})
}

func (s *Server) deleteAssessment(w http.ResponseWriter, r *http.Request) {
	modelID, err := modelIDParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	id, err := assessmentIDParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	if err := s.uc.Assessment.Delete(r.Context(), modelID, id); err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) previewAssessment(w http.ResponseWriter, r *http.Request) {
	modelID, err := modelIDParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	var req assessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	input, err := req.toSaveInput(modelID, 0)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	effective := s.uc.Assessment.Preview(r.Context(), input)
	respondJSON(w, http.StatusOK, map[string]interface{}{"effective": effective})
}

func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	modelID, err := modelIDParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	entries, err := s.uc.Assessment.History(r.Context(), modelID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"history": entries})
}
