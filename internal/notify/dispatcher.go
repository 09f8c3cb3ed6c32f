package notify

import (
	"fmt"
	"log"

	"github.com/shampooches/salon-scheduler/internal/models"
)

// Event is one status-change notification to a customer.
type Event struct {
	To        string
	Subject   string
	Body      string
	Reference string
}

// Dispatcher delivers notification emails off the request path. Delivery is
// best effort: a failed send is logged and dropped, never bubbled back to the
// already-committed status change.
type Dispatcher struct {
	mailer Mailer
	queue  chan Event
}

func NewDispatcher(mailer Mailer) *Dispatcher {
	d := &Dispatcher{
		mailer: mailer,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.mailer.Send(ev.To, ev.Subject, ev.Body); err != nil {
			log.Printf("notification error for booking %s: %v", ev.Reference, err)
		}
	}
}

// Dispatch queues an event. A nil dispatcher means notifications are
// disabled.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		log.Println("notification queue full, dropping event")
	}
}

// StatusChanged builds and queues the email for an appointment status
// transition. oldStatus is passed in explicitly by the caller that performed
// the transition.
func (d *Dispatcher) StatusChanged(ap *models.Appointment, oldStatus string) {
	if ap.Customer.Email == "" || oldStatus == ap.Status {
		return
	}

	var subject, body string
	switch ap.Status {
	case "confirmed":
		subject = "Your grooming appointment is confirmed"
		body = fmt.Sprintf(
			"Hi %s,\n\nYour appointment for %s on %s at %s is confirmed.\nBooking reference: %s\n\nSee you soon!",
			ap.Customer.Name, ap.DogName, ap.Date.Format("Monday, January 2"), ap.StartTime, ap.Reference,
		)
	case "cancelled":
		subject = "Your grooming appointment was cancelled"
		body = fmt.Sprintf(
			"Hi %s,\n\nYour appointment for %s on %s at %s has been cancelled.\nBooking reference: %s\n\nPlease book a new slot any time.",
			ap.Customer.Name, ap.DogName, ap.Date.Format("Monday, January 2"), ap.StartTime, ap.Reference,
		)
	case "completed":
		subject = "Thanks for visiting Shampooches"
		body = fmt.Sprintf(
			"Hi %s,\n\n%s is all done and looking great. Thanks for coming in!\nBooking reference: %s",
			ap.Customer.Name, ap.DogName, ap.Reference,
		)
	default:
		return
	}

	d.Dispatch(Event{
		To:        ap.Customer.Email,
		Subject:   subject,
		Body:      body,
		Reference: ap.Reference,
	})
}

// BookingCreated queues the initial "request received" email.
func (d *Dispatcher) BookingCreated(ap *models.Appointment) {
	if ap.Customer.Email == "" {
		return
	}

	d.Dispatch(Event{
		To:      ap.Customer.Email,
		Subject: "We received your booking request",
		Body: fmt.Sprintf(
			"Hi %s,\n\nWe received your booking for %s on %s at %s.\nTotal price: $%s\nBooking reference: %s\n\nWe'll confirm shortly.",
			ap.Customer.Name, ap.DogName, ap.Date.Format("Monday, January 2"),
			ap.StartTime, ap.PriceAtBooking.StringFixed(2), ap.Reference,
		),
		Reference: ap.Reference,
	})
}
