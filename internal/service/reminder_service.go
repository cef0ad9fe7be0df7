package service

import (
	"fmt"
	"log"
	"time"

	"physiohub/internal/repository"

	"github.com/go-co-op/gocron/v2"
)

// reminderWindow is how far ahead the job looks for unreminded appointments.
const reminderWindow = 24 * time.Hour

// ReminderService runs the recurring job that notifies patients about
// upcoming appointments.
type ReminderService struct {
	scheduler       gocron.Scheduler
	appointmentRepo *repository.AppointmentRepository
	notifSvc        *NotificationService
}

func NewReminderService(appointmentRepo *repository.AppointmentRepository, notifSvc *NotificationService) (*ReminderService, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &ReminderService{
		scheduler:       sched,
		appointmentRepo: appointmentRepo,
		notifSvc:        notifSvc,
	}, nil
}

// Start registers the reminder job (every 15 minutes) and starts the scheduler.
func (s *ReminderService) Start() error {
	_, err := s.scheduler.NewJob(
		gocron.CronJob("*/15 * * * *", false),
		gocron.NewTask(s.runOnce),
		gocron.WithName("appointment_reminders"),
		gocron.WithSingletonMode(gocron.LimitModeWait),
	)
	if err != nil {
		return fmt.Errorf("register reminder job: %w", err)
	}
	s.scheduler.Start()
	log.Printf("[reminders] job registered")
	return nil
}

func (s *ReminderService) Stop() error {
	return s.scheduler.Shutdown()
}

func (s *ReminderService) runOnce() {
	appts, err := s.appointmentRepo.ListUpcomingUnreminded(reminderWindow)
	if err != nil {
		log.Printf("[reminders] load appointments: %v", err)
		return
	}
	for _, a := range appts {
		therapistName := a.Therapist.User.DisplayName()
		when := a.StartsAt.Format("Mon Jan 2 15:04")
		if err := s.notifSvc.NotifyAppointmentReminder(a.Patient.UserID, a.ID, therapistName, when); err != nil {
			log.Printf("[reminders] notify appointment %d: %v", a.ID, err)
			continue
		}
		if err := s.appointmentRepo.MarkReminderSent(a.ID); err != nil {
			log.Printf("[reminders] mark sent %d: %v", a.ID, err)
		}
	}
}
