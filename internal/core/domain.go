package core

import (
	"math"
	"strings"
	"time"
)

// ContributionType is the external (sheet) representation of a contribution kind.
type ContributionType string

const (
	VolunteerHours   ContributionType = "Volunteer Hours"
	MonetaryDonation ContributionType = "Monetary Donation ($)"
)

// Column headers of the contribution sheet, in write order.
const (
	ColumnDate   = "Date"
	ColumnName   = "Name"
	ColumnType   = "Type"
	ColumnAmount = "Amount"
	ColumnNotes  = "Notes"

	// ColumnTimestamp is accepted on read for sheets created with that header.
	ColumnTimestamp = "Timestamp"
)

// Columns lists the headers in the order Record.Values writes them.
var Columns = []string{ColumnDate, ColumnName, ColumnType, ColumnAmount, ColumnNotes}

// TimestampLayout is how a record's timestamp is written to the store.
const TimestampLayout = "2006-01-02 15:04:05"

type (
	// Record is one logged contribution.
	Record struct {
		Timestamp time.Time
		Name      string // private; only surfaced through count-distinct
		Type      ContributionType
		Amount    float64
		Notes     string
	}
)

// ContributionTypes returns the closed set of accepted types, in form order.
func ContributionTypes() []ContributionType {
	return []ContributionType{VolunteerHours, MonetaryDonation}
}

// IsValid reports whether t is one of the enumerated types.
func (t ContributionType) IsValid() bool {
	switch t {
	case VolunteerHours, MonetaryDonation:
		return true
	default:
		return false
	}
}

func (t ContributionType) String() string {
	return string(t)
}

// Validate checks the invariants every persisted record must satisfy.
func (r Record) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return NewValidationError(ColumnName, ErrMissingName)
	}
	if !(r.Amount > 0) || math.IsInf(r.Amount, 0) {
		return NewValidationError(ColumnAmount, ErrInvalidAmount)
	}
	if !r.Type.IsValid() {
		return NewValidationError(ColumnType, ErrUnknownType)
	}
	if r.Timestamp.IsZero() {
		return NewValidationError(ColumnDate, ErrMissingTimestamp)
	}
	return nil
}

// Values returns the record as a sheet row ordered like Columns.
func (r Record) Values() []any {
	return []any{
		r.Timestamp.Format(TimestampLayout),
		r.Name,
		string(r.Type),
		r.Amount,
		r.Notes,
	}
}

// Row returns the record keyed by column header, as a store would read it back.
func (r Record) Row() RawRow {
	vals := r.Values()
	row := make(RawRow, len(Columns))
	for i, col := range Columns {
		row[col] = vals[i]
	}
	return row
}
