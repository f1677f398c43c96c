package reminder

import (
	"fmt"
	"log"
	"time"

	"github.com/mintevents/event-portal-backend/config"
	"github.com/mintevents/event-portal-backend/internal/event"
	"github.com/mintevents/event-portal-backend/internal/registration"
)

// EventStore is the slice of the event repository the job needs.
type EventStore interface {
	ListDueReminders(from, to time.Time) ([]event.Event, error)
	MarkReminderSent(id uint) (bool, error)
}

// RegistrantLister returns the registrations for one event.
type RegistrantLister interface {
	ListByEvent(eventID uint) ([]registration.Registration, error)
}

// Mailer delivers the reminder email.
type Mailer interface {
	Send(recipients []string, subject, body string) error
}

// Job periodically emails registrants of approved events starting within the
// lookahead window. Each event is flagged after a fully successful dispatch
// round so the next run skips it.
type Job struct {
	Events      EventStore
	Registrants RegistrantLister
	Mailer      Mailer
	Interval    time.Duration
	Lookahead   time.Duration

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewJob(events EventStore, registrants RegistrantLister, mailer Mailer, cfg *config.Config) *Job {
	return &Job{
		Events:      events,
		Registrants: registrants,
		Mailer:      mailer,
		Interval:    time.Duration(cfg.ReminderIntervalMinutes) * time.Minute,
		Lookahead:   time.Duration(cfg.ReminderLookaheadHours) * time.Hour,
		Now:         time.Now,
	}
}

// Start blocks until stop is closed, running one pass per tick. The first
// pass runs immediately.
func (j *Job) Start(stop <-chan struct{}) {
	log.Printf("✅ Reminder job started (every %s, %s lookahead)", j.Interval, j.Lookahead)
	j.RunOnce()

	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.RunOnce()
		case <-stop:
			log.Println("📝 Reminder job stopped")
			return
		}
	}
}

// RunOnce processes every due event. A failure on one event never blocks the
// rest of the batch.
func (j *Job) RunOnce() {
	now := j.Now()
	events, err := j.Events.ListDueReminders(now, now.Add(j.Lookahead))
	if err != nil {
		log.Printf("❌ Reminder scan failed: %v", err)
		return
	}
	if len(events) == 0 {
		return
	}

	for _, ev := range events {
		if err := j.remind(ev); err != nil {
			log.Printf("⚠️ Reminders for event %d (%s) incomplete: %v", ev.ID, ev.Title, err)
		}
	}
}

func (j *Job) remind(ev event.Event) error {
	regs, err := j.Registrants.ListByEvent(ev.ID)
	if err != nil {
		return fmt.Errorf("list registrants: %w", err)
	}

	subject := fmt.Sprintf("Reminder: %s is coming up", ev.Title)
	sent, failed := 0, 0
	for _, reg := range regs {
		if reg.Email == "" {
			continue
		}
		if err := j.Mailer.Send([]string{reg.Email}, subject, reminderBody(ev, reg)); err != nil {
			// One bad address must not starve the rest of the list.
			log.Printf("⚠️ Reminder to %s for event %d failed: %v", reg.Email, ev.ID, err)
			failed++
			continue
		}
		sent++
	}

	if failed > 0 {
		// Leave the flag unset so the next pass retries the whole event.
		// Duplicate reminders beat silently dropped ones.
		return fmt.Errorf("%d of %d dispatches failed", failed, sent+failed)
	}

	flagged, err := j.Events.MarkReminderSent(ev.ID)
	if err != nil {
		return fmt.Errorf("mark sent: %w", err)
	}
	if flagged {
		log.Printf("✅ Sent %d reminder(s) for event %d (%s)", sent, ev.ID, ev.Title)
	}
	return nil
}

func reminderBody(ev event.Event, reg registration.Registration) string {
	name := reg.FullName
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf(`
		<html>
		<body style="font-family: Arial, sans-serif;">
			<h2>Event Reminder</h2>
			<p>Hi %s,</p>
			<p>This is a reminder that <b>%s</b> starts soon.</p>
			<ul>
				<li><b>Date:</b> %s</li>
				<li><b>Time:</b> %s</li>
				<li><b>Location:</b> %s</li>
			</ul>
			<p>We look forward to seeing you there!</p>
		</body>
		</html>`, name, ev.Title, ev.EventDate, ev.EventTime, ev.Location)
}
