package httpkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteErrEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteErr(rec, 409, "VIDEO_EXISTS", "video already exists", map[string]any{"video_id": "abc"})

	if rec.Code != 409 {
		t.Errorf("expected 409, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected content type: %q", ct)
	}

	var env ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if env.Error.Code != "VIDEO_EXISTS" || env.Error.Message != "video already exists" {
		t.Errorf("unexpected envelope: %+v", env.Error)
	}
	if env.Error.Details["video_id"] != "abc" {
		t.Errorf("unexpected details: %v", env.Error.Details)
	}
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/videos", strings.NewReader(`{"title":"a","bogus":1}`))

	var body struct {
		Title string `json:"title"`
	}
	if err := DecodeJSON(req, &body); err == nil {
		t.Error("expected unknown field to be rejected")
	}
}

func TestDecodeJSONCapsBodySize(t *testing.T) {
	huge := `{"title":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/videos", strings.NewReader(huge))

	var body struct {
		Title string `json:"title"`
	}
	if err := DecodeJSON(req, &body); err == nil {
		t.Error("expected oversized body to fail decoding")
	}
}
