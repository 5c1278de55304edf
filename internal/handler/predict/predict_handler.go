package predict

import (
	"github.com/Meesho/BharatMLStack/irisserve/internal/model"
)

// Handler wraps the loaded model handle and turns validated feature
// vectors into prediction results.
type Handler struct {
	model *model.Handle
}

func NewHandler(handle *model.Handle) *Handler {
	return &Handler{model: handle}
}

// Infer delegates to the model handle and stamps the result with the
// model version and the request id. It never fails on validated input;
// the only error path is an engine without a loaded model.
func (h *Handler) Infer(req *Request) (*Response, error) {
	if h == nil || h.model == nil {
		return nil, &NotReadyError{ErrorMsg: "model not loaded"}
	}

	class, confidence := h.model.Predict(req.Features)
	return &Response{
		Prediction:   class,
		Confidence:   confidence,
		ModelVersion: h.model.Version(),
		RequestID:    req.RequestID,
	}, nil
}

// FeatureCount reports the input arity the service validates against,
// shared by every artifact this service will accept.
func (h *Handler) FeatureCount() int {
	return model.FeatureCount
}

// ModelVersion is empty while no model is loaded.
func (h *Handler) ModelVersion() string {
	if h == nil || h.model == nil {
		return ""
	}
	return h.model.Version()
}
