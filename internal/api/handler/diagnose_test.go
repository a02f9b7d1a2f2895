package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/autodiag/autodiag/internal/store"
	"github.com/autodiag/autodiag/pkg/models"
	"github.com/google/uuid"
)

// --- mock Diagnoser ---

type mockDiagnoser struct {
	fn func(faultCode, description string) []models.Suggestion
}

func (m *mockDiagnoser) Diagnose(faultCode, description string) []models.Suggestion {
	return m.fn(faultCode, description)
}

func stubSuggestions() []models.Suggestion {
	return []models.Suggestion{
		{Part: "Spark Plugs", Likelihood: 0.405, Reason: "Engine misfire detected (matched P030)"},
		{Part: "Ignition Coils", Likelihood: 0.27, Reason: "Weak/no spark (matched P030)"},
	}
}

func fixedDiagnoser() *mockDiagnoser {
	return &mockDiagnoser{fn: func(_, _ string) []models.Suggestion {
		return stubSuggestions()
	}}
}

// --- mock DiagnosisCreator ---

type mockCreator struct {
	err  error
	last *models.Diagnosis
}

func (m *mockCreator) CreateDiagnosis(_ context.Context, d *models.Diagnosis) error {
	m.last = d
	return m.err
}

// --- helpers ---

func diagnoseReq(t *testing.T, body any) *http.Request {
	t.Helper()
	b, _ := json.Marshal(body)
	r := httptest.NewRequest(http.MethodPost, "/api/diagnose", bytes.NewReader(b))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func parseOK(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body
}

func parseErr(t *testing.T, rec *httptest.ResponseRecorder) (int, string) {
	t.Helper()
	var env struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rec.Code, env.Error.Code
}

// --- tests ---

func TestDiagnoseHandler_Success(t *testing.T) {
	creator := &mockCreator{}
	h := NewDiagnoseHandler(fixedDiagnoser(), creator)
	rec := httptest.NewRecorder()

	body := map[string]any{
		"name":        "Toyota",
		"model":       "Camry 2015",
		"fault_code":  "P0301",
		"description": "rough idle in the morning",
	}
	h.ServeHTTP(rec, diagnoseReq(t, body))

	data := parseOK(t, rec)

	suggestions, ok := data["suggestions"].([]any)
	if !ok {
		t.Fatalf("suggestions not a list: %v", data["suggestions"])
	}
	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(suggestions))
	}
	first := suggestions[0].(map[string]any)
	if first["part"] != "Spark Plugs" {
		t.Errorf("unexpected part: %v", first["part"])
	}

	idStr, ok := data["id"].(string)
	if !ok {
		t.Fatalf("id should be a string, got %v", data["id"])
	}
	if _, err := uuid.Parse(idStr); err != nil {
		t.Errorf("id is not a valid UUID: %v", err)
	}
}

func TestDiagnoseHandler_PersistsRequestFields(t *testing.T) {
	creator := &mockCreator{}
	h := NewDiagnoseHandler(fixedDiagnoser(), creator)
	rec := httptest.NewRecorder()

	body := map[string]any{
		"name":        "Honda",
		"model":       "Civic 2018",
		"fault_code":  "P0171",
		"description": "hesitation on acceleration",
	}
	h.ServeHTTP(rec, diagnoseReq(t, body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if creator.last == nil {
		t.Fatal("expected a diagnosis to be persisted")
	}
	if creator.last.ID == uuid.Nil {
		t.Error("persisted diagnosis should carry a generated ID")
	}
	if creator.last.Name != "Honda" {
		t.Errorf("unexpected name: %q", creator.last.Name)
	}
	if creator.last.Model != "Civic 2018" {
		t.Errorf("unexpected model: %q", creator.last.Model)
	}
	if creator.last.FaultCode == nil || *creator.last.FaultCode != "P0171" {
		t.Errorf("unexpected fault_code: %v", creator.last.FaultCode)
	}
	if creator.last.Description != "hesitation on acceleration" {
		t.Errorf("unexpected description: %q", creator.last.Description)
	}
	if len(creator.last.Suggestions) != 2 {
		t.Errorf("expected 2 persisted suggestions, got %d", len(creator.last.Suggestions))
	}
}

func TestDiagnoseHandler_AbsentFaultCode(t *testing.T) {
	var gotCode string
	mock := &mockDiagnoser{fn: func(faultCode, _ string) []models.Suggestion {
		gotCode = faultCode
		return stubSuggestions()
	}}
	creator := &mockCreator{}
	h := NewDiagnoseHandler(mock, creator)
	rec := httptest.NewRecorder()

	body := map[string]any{
		"name":        "Mazda",
		"model":       "3 2020",
		"description": "won't start on cold mornings",
	}
	h.ServeHTTP(rec, diagnoseReq(t, body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotCode != "" {
		t.Errorf("expected empty fault code, got %q", gotCode)
	}
	if creator.last.FaultCode != nil {
		t.Errorf("expected nil fault_code in persisted record, got %v", *creator.last.FaultCode)
	}
}

func TestDiagnoseHandler_FaultCodePassedVerbatim(t *testing.T) {
	var gotCode string
	mock := &mockDiagnoser{fn: func(faultCode, _ string) []models.Suggestion {
		gotCode = faultCode
		return stubSuggestions()
	}}
	creator := &mockCreator{}
	h := NewDiagnoseHandler(mock, creator)
	rec := httptest.NewRecorder()

	body := map[string]any{
		"name":        "Ford",
		"model":       "Focus 2014",
		"fault_code":  " p0301 ",
		"description": "shakes at idle",
	}
	h.ServeHTTP(rec, diagnoseReq(t, body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotCode != " p0301 " {
		t.Errorf("engine should receive the raw code, got %q", gotCode)
	}
	if creator.last.FaultCode == nil || *creator.last.FaultCode != " p0301 " {
		t.Errorf("persisted fault_code should be raw, got %v", creator.last.FaultCode)
	}
}

func TestDiagnoseHandler_StoreFailureNullsID(t *testing.T) {
	creator := &mockCreator{err: store.ErrUnavailable}
	h := NewDiagnoseHandler(fixedDiagnoser(), creator)
	rec := httptest.NewRecorder()

	body := map[string]any{
		"name":        "Toyota",
		"model":       "Camry 2015",
		"fault_code":  "P0301",
		"description": "rough idle",
	}
	h.ServeHTTP(rec, diagnoseReq(t, body))

	data := parseOK(t, rec)
	if data["id"] != nil {
		t.Errorf("expected null id when persistence fails, got %v", data["id"])
	}
	if len(data["suggestions"].([]any)) != 2 {
		t.Error("suggestions should still be returned when persistence fails")
	}
}

func TestDiagnoseHandler_MissingName(t *testing.T) {
	h := NewDiagnoseHandler(fixedDiagnoser(), &mockCreator{})
	rec := httptest.NewRecorder()

	body := map[string]any{
		"model":       "Camry 2015",
		"description": "rough idle",
	}
	h.ServeHTTP(rec, diagnoseReq(t, body))

	status, code := parseErr(t, rec)
	if status != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", status)
	}
	if code != "INVALID_REQUEST" {
		t.Errorf("expected INVALID_REQUEST, got %s", code)
	}
}

func TestDiagnoseHandler_MissingModel(t *testing.T) {
	h := NewDiagnoseHandler(fixedDiagnoser(), &mockCreator{})
	rec := httptest.NewRecorder()

	body := map[string]any{
		"name":        "Toyota",
		"description": "rough idle",
	}
	h.ServeHTTP(rec, diagnoseReq(t, body))

	status, code := parseErr(t, rec)
	if status != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", status)
	}
	if code != "INVALID_REQUEST" {
		t.Errorf("expected INVALID_REQUEST, got %s", code)
	}
}

func TestDiagnoseHandler_MissingDescription(t *testing.T) {
	h := NewDiagnoseHandler(fixedDiagnoser(), &mockCreator{})
	rec := httptest.NewRecorder()

	body := map[string]any{
		"name":  "Toyota",
		"model": "Camry 2015",
	}
	h.ServeHTTP(rec, diagnoseReq(t, body))

	status, code := parseErr(t, rec)
	if status != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", status)
	}
	if code != "INVALID_REQUEST" {
		t.Errorf("expected INVALID_REQUEST, got %s", code)
	}
}

func TestDiagnoseHandler_InvalidJSON(t *testing.T) {
	h := NewDiagnoseHandler(fixedDiagnoser(), &mockCreator{})
	rec := httptest.NewRecorder()

	r := httptest.NewRequest(http.MethodPost, "/api/diagnose", bytes.NewReader([]byte("{invalid")))
	h.ServeHTTP(rec, r)

	status, code := parseErr(t, rec)
	if status != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", status)
	}
	if code != "INVALID_REQUEST" {
		t.Errorf("expected INVALID_REQUEST, got %s", code)
	}
}
