package api

import (
	"encoding/json"
	"strings"

	"github.com/pcormier/wax/internal/domain"
)

// ParseOptions supplies fallback messages when the body carries none.
type ParseOptions struct {
	SuccessMessage string
	ErrorMessage   string
}

// ParseStatus normalizes a write-style webhook response into a
// domain.APIResult.
//
// This is a compatibility shim, not the primary contract: backend revisions
// have answered with a status string ("success"/"error"/"failed"/"fail"),
// a boolean success field, a boolean error field, a bare string body, or
// nothing at all. Every shape observed in the wild is enumerated here and
// nowhere else.
func ParseStatus(httpOK bool, rawBody []byte, opts ParseOptions) domain.APIResult {
	var data any
	if len(rawBody) > 0 {
		if err := json.Unmarshal(rawBody, &data); err != nil {
			data = nil
		}
	}

	status := normalizeStatus(data, httpOK)
	message := extractMessage(data, rawBody)

	if message == "" {
		if status == domain.StatusSuccess {
			message = opts.SuccessMessage
			if message == "" {
				message = "Action completed"
			}
		} else {
			message = opts.ErrorMessage
			if message == "" {
				message = "Action failed"
			}
		}
	}

	return domain.APIResult{Status: status, Message: message}
}

// normalizeStatus resolves the status field across legacy shapes, falling
// back to the HTTP status when the body decides nothing.
func normalizeStatus(data any, httpOK bool) domain.APIStatus {
	if obj, ok := data.(map[string]any); ok {
		if s, ok := obj["status"].(string); ok {
			switch strings.ToLower(s) {
			case "success":
				return domain.StatusSuccess
			case "error", "failed", "fail":
				return domain.StatusError
			}
		}
		if b, ok := obj["success"].(bool); ok {
			if b {
				return domain.StatusSuccess
			}
			return domain.StatusError
		}
		if b, ok := obj["error"].(bool); ok {
			if b {
				return domain.StatusError
			}
			return domain.StatusSuccess
		}
	}

	if httpOK {
		return domain.StatusSuccess
	}
	return domain.StatusError
}

// messageFields are checked in priority order.
var messageFields = []string{"message", "msg", "detail", "error", "statusText"}

// extractMessage pulls a human-readable message out of whatever the body
// happened to contain. Returns "" when nothing usable is found.
func extractMessage(data any, rawBody []byte) string {
	if obj, ok := data.(map[string]any); ok {
		for _, field := range messageFields {
			if s, ok := obj[field].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
		// Any string value in the object as a last structured resort
		for _, v := range obj {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}

	if s, ok := data.(string); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s)
	}

	if body := strings.TrimSpace(string(rawBody)); body != "" {
		return body
	}

	return ""
}
