// Package notification delivers appointment emails. Sending is
// asynchronous: scheduling operations enqueue messages and never block or
// fail on delivery problems.
package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// EmailSender is the interface for sending email messages.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// Template defines a reusable notification template.
type Template struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Built-in template IDs.
const (
	TemplateAppointmentCreated   = "appointment-created"
	TemplateAppointmentAssigned  = "appointment-assigned"
	TemplateAppointmentCancelled = "appointment-cancelled"
)

// TemplateEngine manages notification templates and renders them with data.
type TemplateEngine struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewTemplateEngine creates a TemplateEngine with the built-in templates
// pre-registered.
func NewTemplateEngine() *TemplateEngine {
	e := &TemplateEngine{
		templates: make(map[string]*Template),
	}
	e.registerBuiltIn()
	return e
}

func (e *TemplateEngine) registerBuiltIn() {
	builtIn := []Template{
		{
			ID:      TemplateAppointmentCreated,
			Name:    "Appointment Created",
			Subject: "Your counseling appointment on {{date}}",
			Body:    "Dear {{student_name}}, your {{type}} appointment with {{therapist_name}} is scheduled for {{date}} at {{time}} ({{location}}). Please arrive a few minutes early.",
		},
		{
			ID:      TemplateAppointmentAssigned,
			Name:    "Appointment Assigned",
			Subject: "New appointment on {{date}} at {{time}}",
			Body:    "Dear {{therapist_name}}, an appointment with {{student_name}} has been scheduled for {{date}} at {{time}}.",
		},
		{
			ID:      TemplateAppointmentCancelled,
			Name:    "Appointment Cancelled",
			Subject: "Appointment on {{date}} cancelled",
			Body:    "Dear {{student_name}}, your appointment with {{therapist_name}} on {{date}} at {{time}} has been cancelled. Reason: {{reason}}.",
		},
	}
	for i := range builtIn {
		t := builtIn[i]
		e.templates[t.ID] = &t
	}
}

// RegisterTemplate adds or replaces a template in the engine.
func (e *TemplateEngine) RegisterTemplate(t Template) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.templates[t.ID] = &t
}

// Render looks up a template by ID and performs {{key}} replacement using
// the supplied data map. Keys present in the template but absent from data
// are left as-is.
func (e *TemplateEngine) Render(templateID string, data map[string]string) (subject, body string, err error) {
	e.mu.RLock()
	t, ok := e.templates[templateID]
	e.mu.RUnlock()
	if !ok {
		return "", "", fmt.Errorf("template %q not found", templateID)
	}

	subject = t.Subject
	body = t.Body
	for k, v := range data {
		placeholder := "{{" + k + "}}"
		subject = strings.ReplaceAll(subject, placeholder, v)
		body = strings.ReplaceAll(body, placeholder, v)
	}
	return subject, body, nil
}

// EmailCall records a single call to SendEmail.
type EmailCall struct {
	To      string
	Subject string
	Body    string
}

// MockEmailSender is a test double for EmailSender.
type MockEmailSender struct {
	mu         sync.Mutex
	calls      []EmailCall
	ShouldFail bool
	FailError  string
}

// SendEmail records the call and optionally returns an error.
func (m *MockEmailSender) SendEmail(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, EmailCall{To: to, Subject: subject, Body: body})
	if m.ShouldFail {
		return errors.New(m.FailError)
	}
	return nil
}

// Calls returns a copy of recorded email calls.
func (m *MockEmailSender) Calls() []EmailCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]EmailCall, len(m.calls))
	copy(out, m.calls)
	return out
}
