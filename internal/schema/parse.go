package schema

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrMalformedPayload marks extractor output that could not be parsed as
// JSON even after brace salvage.
var ErrMalformedPayload = eris.New("schema: payload is not valid JSON")

// ParseRecordJSON decodes extractor output into a JSON value. Models often
// wrap the object in prose or code fences, so a failed strict parse falls
// back to the substring between the first '{' and the last '}'. Returns
// ErrMalformedPayload when both attempts fail or no brace pair exists.
func ParseRecordJSON(text string) (any, error) {
	trimmed := strings.TrimSpace(text)

	if v, err := decodeJSON(trimmed); err == nil {
		return v, nil
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end <= start {
		return nil, eris.Wrap(ErrMalformedPayload, "no JSON object in payload")
	}

	v, err := decodeJSON(trimmed[start : end+1])
	if err != nil {
		return nil, eris.Wrap(ErrMalformedPayload, "brace salvage failed")
	}
	return v, nil
}

func decodeJSON(s string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	return v, nil
}
