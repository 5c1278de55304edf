package predict

// Error kinds surfaced to callers so they can tell "fix your input"
// from "try again later".
const (
	KindMalformedPayload = "MalformedPayload"
	KindWrongArity       = "WrongArity"
	KindInvalidValue     = "InvalidValue"
)

// ValidationError is a client-input defect detected before inference is
// attempted. It maps to HTTP 422 and is never treated as an operational
// failure.
type ValidationError struct {
	Kind   string
	Detail string

	// set for KindWrongArity
	Expected int
	Got      int

	// set for KindInvalidValue
	Index int
}

func (e *ValidationError) Error() string {
	return e.Detail
}

// NotReadyError indicates the engine has no loaded model attached. It
// maps to HTTP 503 and is safe for the client to retry.
type NotReadyError struct {
	ErrorMsg string
}

func (e *NotReadyError) Error() string {
	return e.ErrorMsg
}
