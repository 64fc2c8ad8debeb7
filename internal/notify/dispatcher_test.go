package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDispatcherSend(t *testing.T) {
	var got Notification
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/notifications" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer secret" {
			t.Errorf("auth header: %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(Receipt{ID: "rcpt-1", Delivered: 1})
	}))
	defer ts.Close()

	d := New(Options{BaseURL: ts.URL, Token: "secret", Timeout: 2 * time.Second})

	rec, err := d.Send(context.Background(), Notification{
		Message:    "Alice is calling you in Dance Crew",
		Recipients: []string{"u2"},
		Data:       map[string]any{"roomId": "r2"},
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if rec.ID != "rcpt-1" || rec.Delivered != 1 {
		t.Fatalf("receipt mismatch: %+v", rec)
	}
	if got.Message == "" || len(got.Recipients) != 1 || got.Recipients[0] != "u2" {
		t.Fatalf("request body mismatch: %+v", got)
	}
}

func TestDispatcherSendErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer ts.Close()

	d := New(Options{BaseURL: ts.URL, Token: "wrong"})

	if _, err := d.Send(context.Background(), Notification{Message: "x"}); err == nil {
		t.Fatal("expected error on 403")
	}
}
