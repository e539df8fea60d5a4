package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/contextkeys"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/port"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/port/usecases_port"
)

const maxRequestBodyBytes = 1 << 16

type PredictionHandler struct {
	predictUC       usecases_port.PredictPriceUseCase
	getLocationsUC  usecases_port.GetLocationsUseCase
	getFormOptsUC   usecases_port.GetFormOptionsUseCase
	getPredictionUC usecases_port.GetPredictionUseCase
}

// NewPredictionHandler wires the use cases. getPredictionUC may be nil when
// predictions are not stored.
func NewPredictionHandler(predictUC usecases_port.PredictPriceUseCase,
	getLocationsUC usecases_port.GetLocationsUseCase,
	getFormOptsUC usecases_port.GetFormOptionsUseCase,
	getPredictionUC usecases_port.GetPredictionUseCase) *PredictionHandler {
	return &PredictionHandler{
		predictUC:       predictUC,
		getLocationsUC:  getLocationsUC,
		getFormOptsUC:   getFormOptsUC,
		getPredictionUC: getPredictionUC,
	}
}

// PredictPrice handles POST /api/v1/predictions
func (h *PredictionHandler) PredictPrice(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "PredictPrice"})

	var reqDTO PredictPriceRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(&reqDTO); err != nil {
		logger.Warn("Failed to decode request body", port.Fields{"error": err.Error()})
		RespondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Kind: KindInvalidRequest})
		return
	}
	if field := reqDTO.missingField(); field != "" {
		RespondWithJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: field + " is required",
			Kind:  KindInvalidRequest,
			Field: field,
		})
		return
	}

	result, err := h.predictUC.Execute(r.Context(), reqDTO.toDomain())
	if err != nil {
		status, body := mapDomainError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Predict price use case failed", err, port.Fields{"status_code": status})
		}
		RespondWithJSON(w, status, body)
		return
	}

	logger.Info("Price predicted", port.Fields{"prediction_id": result.ID.String(), "price": result.Price})
	RespondWithJSON(w, http.StatusOK, toPredictionResponse(result))
}

// GetPrediction handles GET /api/v1/predictions/{predictionID}
func (h *PredictionHandler) GetPrediction(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetPrediction"})

	id, err := uuid.Parse(chi.URLParam(r, "predictionID"))
	if err != nil {
		RespondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid prediction id", Kind: KindInvalidRequest})
		return
	}

	result, err := h.getPredictionUC.Execute(r.Context(), id)
	if err != nil {
		status, body := mapDomainError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Get prediction use case failed", err, nil)
		}
		RespondWithJSON(w, status, body)
		return
	}
	RespondWithJSON(w, http.StatusOK, toPredictionResponse(result))
}

func (h *PredictionHandler) Health(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
