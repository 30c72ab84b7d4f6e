package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/example/conceptbot/internal/database"
	"github.com/example/conceptbot/pkg/models"
	"github.com/go-co-op/gocron"
)

// ConceptSource is the slice of the API needed to count due concepts.
type ConceptSource interface {
	ListNotes(ctx context.Context) ([]models.Note, error)
	ListConcepts(ctx context.Context, noteID string) ([]models.Concept, error)
}

// Notifier interface for sending reminder messages
type Notifier interface {
	SendDueReminder(chatID int64, count int) error
}

// Scheduler runs the hourly due-concept check for chats that opted into
// reminders.
type Scheduler struct {
	scheduler *gocron.Scheduler
	source    ConceptSource
	notifier  Notifier
}

// New creates a new scheduler instance
func New(source ConceptSource, notifier Notifier) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		source:    source,
		notifier:  notifier,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	// Hourly check so each chat is notified at its configured hour
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminders looks up chats whose reminder hour matches the
// current hour and nudges the ones that have concepts due.
func (s *Scheduler) checkAndSendReminders() {
	ctx := context.Background()
	currentHour := time.Now().UTC().Hour()

	chats, err := database.GetReminderChats(ctx, currentHour)
	if err != nil {
		log.Printf("Error getting reminder chats: %v", err)
		return
	}
	if len(chats) == 0 {
		return
	}

	count, err := s.countDueConcepts(ctx)
	if err != nil {
		log.Printf("Error counting due concepts: %v", err)
		return
	}
	if count == 0 {
		return
	}

	for _, chat := range chats {
		if err := s.notifier.SendDueReminder(chat.ChatID, count); err != nil {
			log.Printf("Error sending reminder to chat %d: %v", chat.ChatID, err)
		}
	}
}

// countDueConcepts walks every processed note and counts concepts whose due
// date is in the past.
func (s *Scheduler) countDueConcepts(ctx context.Context) (int, error) {
	notes, err := s.source.ListNotes(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	count := 0
	for _, note := range notes {
		if note.Status != models.NoteStatusProcessed {
			continue
		}
		concepts, err := s.source.ListConcepts(ctx, note.ID)
		if err != nil {
			// One broken note shouldn't silence the whole reminder
			log.Printf("Error listing concepts for note %s: %v", note.ID, err)
			continue
		}
		for _, c := range concepts {
			if c.SRSInfo == nil || c.SRSInfo.Due == "" {
				continue
			}
			due, err := time.Parse(time.RFC3339, c.SRSInfo.Due)
			if err != nil {
				continue
			}
			if !due.After(now) {
				count++
			}
		}
	}

	return count, nil
}

// RunManualCheck forces a due-concept check for a single chat, ignoring its
// configured hour. It returns the number of due concepts found.
func (s *Scheduler) RunManualCheck(chatID int64) (int, error) {
	count, err := s.countDueConcepts(context.Background())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		if err := s.notifier.SendDueReminder(chatID, count); err != nil {
			return count, err
		}
	}
	return count, nil
}
