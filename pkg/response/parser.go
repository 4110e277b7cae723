// Package response decodes raw API response bodies into envelopes and
// classifies error payloads.
package response

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stopfstedt/local-iliosapiclient/pkg/apierr"
)

// Record is a single entity record. The client treats records as
// opaque; fields are whatever the server returned.
type Record map[string]any

// Envelope is the top-level JSON object of an API response. Success
// envelopes carry the entity collection under the lowercased entity
// type name; error envelopes carry errors or code/message fields.
type Envelope map[string]any

// Parse decodes a raw response body into an envelope.
//
// A blank body fails as empty_response; a body that is not a non-empty
// JSON object fails as undecodable_response; an envelope with a
// non-empty errors list fails as api_error carrying the first entry.
// Anything else is returned as-is.
func Parse(raw string) (Envelope, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, apierr.New(apierr.KindEmptyResponse, "response body is empty")
	}

	var env Envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil || len(env) == 0 {
		return nil, &apierr.Error{
			Kind:    apierr.KindUndecodableResponse,
			Message: "response body is not a JSON object",
			Err:     err,
		}
	}

	if errs, ok := env["errors"].([]any); ok && len(errs) > 0 {
		return nil, apierr.New(apierr.KindAPIError, fmt.Sprintf("%v", errs[0]))
	}

	return env, nil
}

// Records returns the record list stored under the entity key, or false
// when the key is absent or does not hold a list.
func (e Envelope) Records(entity string) ([]Record, bool) {
	raw, ok := e[entity]
	if !ok {
		return nil, false
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	records := make([]Record, 0, len(items))
	for _, item := range items {
		if rec, ok := item.(map[string]any); ok {
			records = append(records, Record(rec))
			continue
		}
		records = append(records, Record{"value": item})
	}
	return records, true
}

// ErrorCode returns the code/message pair of an error envelope, or
// false when either field is missing.
func (e Envelope) ErrorCode() (int, string, bool) {
	code, codeOK := e["code"].(float64)
	message, msgOK := e["message"].(string)
	if !codeOK || !msgOK {
		return 0, "", false
	}
	return int(code), message, true
}
