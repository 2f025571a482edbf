package scheduling

import (
	"github.com/counsel/counsel/internal/platform/notification"
)

// Notifier dispatches appointment emails. Calls return immediately;
// delivery is best-effort and failures never reach the caller.
type Notifier interface {
	SendAppointmentEmail(to, studentName, therapistName, date, hour, meetingType, locationOrLink string)
	SendCancellationEmail(to, studentName, therapistName, date, hour, reason string)
}

// DispatcherNotifier sends through the async notification dispatcher.
type DispatcherNotifier struct {
	dispatcher *notification.Dispatcher
}

func NewDispatcherNotifier(d *notification.Dispatcher) *DispatcherNotifier {
	return &DispatcherNotifier{dispatcher: d}
}

func (n *DispatcherNotifier) SendAppointmentEmail(to, studentName, therapistName, date, hour, meetingType, locationOrLink string) {
	n.dispatcher.Enqueue(notification.Message{
		To:         to,
		TemplateID: notification.TemplateAppointmentCreated,
		Data: map[string]string{
			"student_name":   studentName,
			"therapist_name": therapistName,
			"date":           date,
			"time":           hour,
			"type":           meetingType,
			"location":       locationOrLink,
		},
	})
}

func (n *DispatcherNotifier) SendCancellationEmail(to, studentName, therapistName, date, hour, reason string) {
	n.dispatcher.Enqueue(notification.Message{
		To:         to,
		TemplateID: notification.TemplateAppointmentCancelled,
		Data: map[string]string{
			"student_name":   studentName,
			"therapist_name": therapistName,
			"date":           date,
			"time":           hour,
			"reason":         reason,
		},
	})
}
