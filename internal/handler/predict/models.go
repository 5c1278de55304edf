package predict

// Request is a validated prediction request. Features always has the
// arity the loaded model expects and RequestID is never empty.
type Request struct {
	Features  []float64
	RequestID string
}

type Response struct {
	Prediction   int     `json:"prediction"`
	Confidence   float64 `json:"confidence"`
	ModelVersion string  `json:"model_version"`
	RequestID    string  `json:"request_id"`
}
