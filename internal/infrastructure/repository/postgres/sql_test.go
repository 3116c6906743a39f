package postgres

import (
	"database/sql"
	"errors"
	"testing"
	"time"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatal("sql.ErrNoRows must map to not-found")
	}
	if isNotFound(errors.New("pq: connection refused")) {
		t.Fatal("unrelated errors must not map to not-found")
	}
	if isNotFound(nil) {
		t.Fatal("nil error must not map to not-found")
	}
}

func TestUnixTimeRoundTrip(t *testing.T) {
	at := time.Date(2026, time.June, 11, 20, 0, 0, 0, time.UTC)

	if got := unixToTime(timeToUnix(at)); !got.Equal(at) {
		t.Fatalf("round trip changed the instant: got %s want %s", got, at)
	}
	if got := unixToTime(0); !got.IsZero() {
		t.Fatalf("zero column value must decode to the zero time, got %s", got)
	}
	if got := timeToUnix(time.Time{}); got != 0 {
		t.Fatalf("zero time must encode to 0, got %d", got)
	}
}

func TestNullableUnix(t *testing.T) {
	at := time.Date(2026, time.July, 19, 19, 0, 0, 0, time.UTC)

	got := nullableUnix(&at)
	if !got.Valid || got.Int64 != at.Unix() {
		t.Fatalf("expected valid unix %d, got %+v", at.Unix(), got)
	}
	if nullableUnix(nil).Valid {
		t.Fatal("nil instant must encode as NULL")
	}
	zero := time.Time{}
	if nullableUnix(&zero).Valid {
		t.Fatal("zero instant must encode as NULL")
	}
}

func TestNullUnixToTimePtr(t *testing.T) {
	at := time.Date(2026, time.July, 19, 19, 0, 0, 0, time.UTC)

	got := nullUnixToTimePtr(sql.NullInt64{Int64: at.Unix(), Valid: true})
	if got == nil || !got.Equal(at) {
		t.Fatalf("expected %s, got %v", at, got)
	}
	if nullUnixToTimePtr(sql.NullInt64{}) != nil {
		t.Fatal("NULL column must decode to a nil instant")
	}
}

func TestNullableIntRoundTrip(t *testing.T) {
	three := 3

	encoded := nullableInt(&three)
	if !encoded.Valid || encoded.Int64 != 3 {
		t.Fatalf("expected valid 3, got %+v", encoded)
	}
	decoded := nullInt64ToIntPtr(encoded)
	if decoded == nil || *decoded != 3 {
		t.Fatalf("expected 3 back, got %v", decoded)
	}

	if nullableInt(nil).Valid {
		t.Fatal("nil count must encode as NULL")
	}
	if nullInt64ToIntPtr(sql.NullInt64{}) != nil {
		t.Fatal("NULL column must decode to a nil count")
	}
}
