package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const busyFeed = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//EN
BEGIN:VEVENT
UID:meeting-1
DTSTART:20250610T140000Z
DTEND:20250610T150000Z
SUMMARY:Standup
END:VEVENT
END:VCALENDAR
`

func TestCalendarBusyInsideEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(busyFeed))
	}))
	defer srv.Close()

	c := NewCalendarClient(2 * time.Second)
	at := time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)
	if !c.Busy(context.Background(), srv.URL, at) {
		t.Error("14:30 falls inside the event, want busy")
	}

	after := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)
	if c.Busy(context.Background(), srv.URL, after) {
		t.Error("15:00 is the exclusive end bound, want not busy")
	}
}

func TestCalendarFailsOpen(t *testing.T) {
	at := time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)
	c := NewCalendarClient(500 * time.Millisecond)

	// unreachable host
	if c.Busy(context.Background(), "http://127.0.0.1:1/cal.ics", at) {
		t.Error("fetch error must read as not busy")
	}

	// malformed feed
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not a calendar"))
	}))
	defer srv.Close()
	if c.Busy(context.Background(), srv.URL, at) {
		t.Error("parse error must read as not busy")
	}

	// server error
	srv500 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv500.Close()
	if c.Busy(context.Background(), srv500.URL, at) {
		t.Error("HTTP 500 must read as not busy")
	}
}
