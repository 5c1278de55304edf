package predict

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/uuid"
)

type rawRequest struct {
	Features  *[]interface{} `json:"features"`
	RequestID string         `json:"request_id"`
}

// ParseAndValidate turns a raw payload into a validated Request. Rules
// apply in order and the first violation wins:
//  1. body is a JSON object carrying a features field
//  2. features has exactly wantArity elements
//  3. every element is a finite number
//
// A missing request_id is synthesized so every result carries one.
func ParseAndValidate(body []byte, wantArity int) (*Request, *ValidationError) {
	var raw rawRequest
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &ValidationError{
			Kind:   KindMalformedPayload,
			Detail: "request body is not a valid prediction payload",
		}
	}
	if raw.Features == nil {
		return nil, &ValidationError{
			Kind:   KindMalformedPayload,
			Detail: "features field is required",
		}
	}

	elems := *raw.Features
	if len(elems) != wantArity {
		return nil, &ValidationError{
			Kind:     KindWrongArity,
			Detail:   fmt.Sprintf("expected %d features, got %d", wantArity, len(elems)),
			Expected: wantArity,
			Got:      len(elems),
		}
	}

	features := make([]float64, wantArity)
	for i, elem := range elems {
		value, ok := elem.(float64)
		if !ok || math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, &ValidationError{
				Kind:   KindInvalidValue,
				Detail: fmt.Sprintf("feature at index %d is not a finite number", i),
				Index:  i,
			}
		}
		features[i] = value
	}

	requestID := raw.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	return &Request{Features: features, RequestID: requestID}, nil
}
