package respond

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJSONSetsHeaderAndStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, 201, map[string]string{"a": "b"})

	if rec.Code != 201 {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `"a":"b"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, 404, "event not found")

	if rec.Code != 404 {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error":"event not found"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x"}`))
	if err := Decode(r, &v); err != nil {
		t.Fatalf("Decode valid body: %v", err)
	}
	if v.Name != "x" {
		t.Errorf("name = %q", v.Name)
	}

	r = httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x","typo":1}`))
	if err := Decode(r, &v); err == nil {
		t.Error("Decode accepted unknown field")
	}
}
