package core

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestRecordValidate(t *testing.T) {
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	good := Record{Timestamp: now, Name: "Alice", Type: VolunteerHours, Amount: 2}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		r    Record
		want error
	}{
		{Record{Timestamp: now, Name: "", Type: VolunteerHours, Amount: 1}, ErrMissingName},
		{Record{Timestamp: now, Name: "   ", Type: VolunteerHours, Amount: 1}, ErrMissingName},
		{Record{Timestamp: now, Name: "A", Type: VolunteerHours, Amount: 0}, ErrInvalidAmount},
		{Record{Timestamp: now, Name: "A", Type: VolunteerHours, Amount: -3}, ErrInvalidAmount},
		{Record{Timestamp: now, Name: "A", Type: VolunteerHours, Amount: math.NaN()}, ErrInvalidAmount},
		{Record{Timestamp: now, Name: "A", Type: VolunteerHours, Amount: math.Inf(1)}, ErrInvalidAmount},
		{Record{Timestamp: now, Name: "A", Type: "Other", Amount: 1}, ErrUnknownType},
		{Record{Name: "A", Type: MonetaryDonation, Amount: 1}, ErrMissingTimestamp},
	}
	for i, tc := range cases {
		err := tc.r.Validate()
		if !errors.Is(err, tc.want) {
			t.Fatalf("case %d: got %v, want %v", i, err, tc.want)
		}
		if !IsValidation(err) {
			t.Fatalf("case %d: expected ValidationError, got %T", i, err)
		}
	}
}

func TestRecordValuesOrder(t *testing.T) {
	r := Record{
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Name:      "Bob",
		Type:      MonetaryDonation,
		Amount:    10,
		Notes:     "bake sale",
	}
	vals := r.Values()
	if len(vals) != len(Columns) {
		t.Fatalf("values: got %d cells, want %d", len(vals), len(Columns))
	}
	if vals[0] != "2026-01-02 03:04:05" || vals[1] != "Bob" || vals[2] != "Monetary Donation ($)" || vals[3] != 10.0 || vals[4] != "bake sale" {
		t.Fatalf("unexpected values: %v", vals)
	}
	row := r.Row()
	if row.Text(ColumnName) != "Bob" || row.Text(ColumnType) != string(MonetaryDonation) {
		t.Fatalf("unexpected row: %v", row)
	}
}

func TestStorageErrorWrapping(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := error(NewStorageError("append", cause))
	if !IsStorage(err) {
		t.Fatalf("expected storage error")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to unwrap")
	}
	var le *LoadError
	if !errors.As(err, &le) || le.Op != "append" {
		t.Fatalf("LoadError should alias StorageError, got %v", err)
	}
}

func TestContributionTypeIsValid(t *testing.T) {
	for _, ct := range ContributionTypes() {
		if !ct.IsValid() {
			t.Fatalf("%q should be valid", ct)
		}
	}
	if ContributionType("Volunteer hours").IsValid() {
		t.Fatalf("type matching must be exact")
	}
}
