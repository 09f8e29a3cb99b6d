package doctor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHandler_CreateDoctor(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc)
	e := echo.New()

	body := `{"first_name":"Meera","last_name":"Nair","experience":"12","consultation_fee":"500.50"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateDoctor(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var d Doctor
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.DoctorID != "DOC000001" {
		t.Errorf("expected DOC000001, got %s", d.DoctorID)
	}
	if d.ConsultationFee != 500.50 {
		t.Errorf("expected fee 500.50, got %v", d.ConsultationFee)
	}
	if d.Availability != DefaultAvailability || d.Status != DefaultStatus {
		t.Errorf("expected defaults on create, got %s/%s", d.Availability, d.Status)
	}
}

func TestHandler_CreateDoctor_BadExperience(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc)
	e := echo.New()

	body := `{"first_name":"Meera","experience":"twelve"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreateDoctor(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", httpErr.Code)
	}
}

func TestHandler_SearchDoctors_Facets(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc)
	e := echo.New()

	for _, spec := range []string{"Cardiology", "Neurology"} {
		if _, err := svc.Create(context.Background(), Input{
			FirstName:      "M",
			Specialization: spec,
			Department:     "OPD",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/?specialization=Cardiology", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SearchDoctors(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp struct {
		Specializations        []string `json:"specializations"`
		Departments            []string `json:"departments"`
		SelectedSpecialization string   `json:"selected_specialization"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Specializations) != 2 {
		t.Errorf("expected 2 specializations for the filter choices, got %v", resp.Specializations)
	}
	if len(resp.Departments) != 1 {
		t.Errorf("expected 1 department, got %v", resp.Departments)
	}
	if resp.SelectedSpecialization != "Cardiology" {
		t.Errorf("expected selected specialization echoed, got %s", resp.SelectedSpecialization)
	}
}
