package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
)

func TestHTTPEmitterPostsSignedJSON(t *testing.T) {
	var gotBody []byte
	var gotSig, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotSig = r.Header.Get(SignatureHeader)
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	e := NewHTTPEmitter(srv.URL, WithSigningSecret("s3cret"), WithHeader("Authorization", "Bearer x"))
	err := e.Emit(context.Background(), ports.WebhookEvent{Event: "contact.created", Data: map[string]string{"email": "a@example.com"}})
	if err != nil {
		t.Fatal(err)
	}
	var ev ports.WebhookEvent
	if err := json.Unmarshal(gotBody, &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Event != "contact.created" || ev.Data["email"] != "a@example.com" {
		t.Errorf("unexpected event %+v", ev)
	}
	if ev.OccurredAt.IsZero() {
		t.Error("OccurredAt should default to now")
	}
	if gotSig != Sign([]byte("s3cret"), gotBody) {
		t.Errorf("signature mismatch: %q", gotSig)
	}
	if gotAuth != "Bearer x" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}

func TestHTTPEmitterNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewHTTPEmitter(srv.URL).Emit(context.Background(), ports.WebhookEvent{Event: "user.registered"})
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestLogEmitterDropsEvents(t *testing.T) {
	if err := NewLogEmitter(zerolog.Nop()).Emit(context.Background(), ports.WebhookEvent{Event: "contact.created"}); err != nil {
		t.Fatal(err)
	}
}
