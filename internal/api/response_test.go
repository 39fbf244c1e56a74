package api

import (
	"testing"

	"github.com/pcormier/wax/internal/domain"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name    string
		httpOK  bool
		body    string
		wantOK  bool
		wantMsg string
	}{
		{
			name:   "status string success",
			httpOK: true,
			body:   `{"status":"success","message":"Track added"}`,
			wantOK: true, wantMsg: "Track added",
		},
		{
			name:   "status string error wins over 200",
			httpOK: true,
			body:   `{"status":"error","message":"No such playlist"}`,
			wantOK: false, wantMsg: "No such playlist",
		},
		{
			// The status value itself doubles as the message; the
			// legacy webhooks sent nothing better.
			name:   "status failed variant",
			httpOK: true,
			body:   `{"status":"failed"}`,
			wantOK: false, wantMsg: "failed",
		},
		{
			// No string value anywhere, so the raw body is the message
			name:   "boolean success field",
			httpOK: false,
			body:   `{"success":true}`,
			wantOK: true, wantMsg: `{"success":true}`,
		},
		{
			name:   "boolean error field",
			httpOK: true,
			body:   `{"error":true,"detail":"rate limit"}`,
			wantOK: false, wantMsg: "rate limit",
		},
		{
			name:   "http fallback ok",
			httpOK: true,
			body:   `{}`,
			wantOK: true, wantMsg: "{}",
		},
		{
			name:   "http fallback error empty body",
			httpOK: false,
			body:   "",
			wantOK: false, wantMsg: "Action failed",
		},
		{
			name:   "message priority over other strings",
			httpOK: true,
			body:   `{"status":"success","note":"ignored","message":"kept"}`,
			wantOK: true, wantMsg: "kept",
		},
		{
			name:   "msg field",
			httpOK: true,
			body:   `{"msg":"saved"}`,
			wantOK: true, wantMsg: "saved",
		},
		{
			name:   "statusText field",
			httpOK: false,
			body:   `{"statusText":"Bad Gateway"}`,
			wantOK: false, wantMsg: "Bad Gateway",
		},
		{
			name:   "bare json string body",
			httpOK: true,
			body:   `"all good"`,
			wantOK: true, wantMsg: "all good",
		},
		{
			name:   "non-json body used verbatim",
			httpOK: false,
			body:   "502 upstream exploded",
			wantOK: false, wantMsg: "502 upstream exploded",
		},
		{
			name:   "any string value fallback",
			httpOK: true,
			body:   `{"playlist":"Sunday Morning"}`,
			wantOK: true, wantMsg: "Sunday Morning",
		},
		{
			name:   "status case insensitive",
			httpOK: false,
			body:   `{"status":"SUCCESS"}`,
			wantOK: true, wantMsg: "SUCCESS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseStatus(tt.httpOK, []byte(tt.body), ParseOptions{})
			if got.OK() != tt.wantOK {
				t.Errorf("OK() = %v, want %v", got.OK(), tt.wantOK)
			}
			if got.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", got.Message, tt.wantMsg)
			}
		})
	}
}

func TestParseStatusCustomFallbacks(t *testing.T) {
	// Fallback messages only apply when the body yields nothing at all
	opts := ParseOptions{SuccessMessage: "Rated", ErrorMessage: "Rating failed"}

	got := ParseStatus(true, nil, opts)
	if got.Message != "Rated" {
		t.Errorf("Message = %q", got.Message)
	}
	if got.Status != domain.StatusSuccess {
		t.Errorf("Status = %v", got.Status)
	}

	got = ParseStatus(false, nil, opts)
	if got.Message != "Rating failed" {
		t.Errorf("Message = %q", got.Message)
	}
	if got.Status != domain.StatusError {
		t.Errorf("Status = %v", got.Status)
	}
}
