package mail

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/config"
)

func TestNewWithoutHostLogs(t *testing.T) {
	var buf bytes.Buffer
	m := New(config.MailConfig{}, zerolog.New(&buf))
	if _, ok := m.(*LogMailer); !ok {
		t.Fatalf("expected LogMailer, got %T", m)
	}
	if err := m.Send(context.Background(), ports.OutboundEmail{To: "a@example.com", Subject: "Confirm", Body: "http://x/confirm/t"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "http://x/confirm/t") {
		t.Errorf("log should carry the body, got %s", buf.String())
	}
}

func TestNewWithHost(t *testing.T) {
	m := New(config.MailConfig{Host: "localhost", Port: 1025, From: "noreply@example.com"}, zerolog.Nop())
	if _, ok := m.(*SMTPMailer); !ok {
		t.Fatalf("expected SMTPMailer, got %T", m)
	}
}

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("noreply@example.com", ports.OutboundEmail{To: "a@example.com", Subject: "Reset", Body: "open the link"})
	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"From: noreply@example.com", "To: a@example.com", "Subject: Reset", "open the link"} {
		if !strings.Contains(out, want) {
			t.Errorf("message missing %q:\n%s", want, out)
		}
	}
}
