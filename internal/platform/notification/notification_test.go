package notification

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestTemplateEngine_RenderBuiltIn(t *testing.T) {
	engine := NewTemplateEngine()

	subject, body, err := engine.Render(TemplateAppointmentCreated, map[string]string{
		"student_name":   "Ayşe Yılmaz",
		"therapist_name": "Dr. Demir",
		"date":           "2026-03-02",
		"time":           "10:00",
	})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if subject != "Your counseling appointment on 2026-03-02" {
		t.Errorf("unexpected subject: %q", subject)
	}
	if !strings.Contains(body, "Ayşe Yılmaz") || !strings.Contains(body, "Dr. Demir") {
		t.Errorf("expected names in body, got %q", body)
	}
	if !strings.Contains(body, "10:00") {
		t.Errorf("expected time in body, got %q", body)
	}
}

func TestTemplateEngine_UnknownTemplate(t *testing.T) {
	engine := NewTemplateEngine()
	if _, _, err := engine.Render("no-such-template", nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestTemplateEngine_MissingKeysLeftAsIs(t *testing.T) {
	engine := NewTemplateEngine()

	_, body, err := engine.Render(TemplateAppointmentCancelled, map[string]string{
		"student_name": "Mehmet",
	})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(body, "{{therapist_name}}") {
		t.Errorf("expected unresolved placeholder to remain, got %q", body)
	}
}

func TestTemplateEngine_RegisterTemplate(t *testing.T) {
	engine := NewTemplateEngine()
	engine.RegisterTemplate(Template{
		ID:      "custom",
		Subject: "Hello {{name}}",
		Body:    "Hi {{name}}",
	})

	subject, body, err := engine.Render("custom", map[string]string{"name": "Zeynep"})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if subject != "Hello Zeynep" || body != "Hi Zeynep" {
		t.Errorf("unexpected render: %q / %q", subject, body)
	}
}

func TestDispatcher_DeliversMessage(t *testing.T) {
	sender := &MockEmailSender{}
	d := NewDispatcher(sender, NewTemplateEngine(), zerolog.Nop(), 8)

	d.Enqueue(Message{
		To:         "student@example.edu",
		TemplateID: TemplateAppointmentCreated,
		Data: map[string]string{
			"student_name":   "Ali",
			"therapist_name": "Dr. Demir",
			"date":           "2026-03-02",
			"time":           "10:00",
		},
	})
	d.Close()

	calls := sender.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 email, got %d", len(calls))
	}
	if calls[0].To != "student@example.edu" {
		t.Errorf("unexpected recipient: %s", calls[0].To)
	}
	if !strings.Contains(calls[0].Body, "Dr. Demir") {
		t.Errorf("expected therapist name in body, got %q", calls[0].Body)
	}
}

func TestDispatcher_SendFailureDoesNotPropagate(t *testing.T) {
	sender := &MockEmailSender{ShouldFail: true, FailError: "smtp connection refused"}
	d := NewDispatcher(sender, NewTemplateEngine(), zerolog.Nop(), 8)

	// Enqueue must not return an error or panic when delivery fails.
	d.Enqueue(Message{
		To:         "student@example.edu",
		TemplateID: TemplateAppointmentCreated,
		Data:       map[string]string{},
	})
	d.Close()

	if len(sender.Calls()) != 1 {
		t.Fatalf("expected the send to be attempted once, got %d", len(sender.Calls()))
	}
}

func TestDispatcher_DropsWhenQueueFull(t *testing.T) {
	sender := &blockingSender{release: make(chan struct{})}
	d := NewDispatcher(sender, NewTemplateEngine(), zerolog.Nop(), 1)

	// First message occupies the worker, second fills the queue, third is
	// dropped without blocking.
	for i := 0; i < 3; i++ {
		done := make(chan struct{})
		go func() {
			d.Enqueue(Message{To: "x@example.edu", TemplateID: TemplateAppointmentCreated})
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Enqueue blocked")
		}
		// Give the worker a moment to pick up the first message.
		time.Sleep(10 * time.Millisecond)
	}

	close(sender.release)
	d.Close()
}

type blockingSender struct {
	release chan struct{}
}

func (b *blockingSender) SendEmail(_ context.Context, to, subject, body string) error {
	<-b.release
	return nil
}
