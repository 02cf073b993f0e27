package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/yungbote/elderbridge-backend/internal/logger"
	"github.com/yungbote/elderbridge-backend/internal/repos"
	"github.com/yungbote/elderbridge-backend/internal/types"
)

const FrequencyDaily = "daily"

type ScheduleReminderInput struct {
	PatientName    string `json:"patient_name"`
	MedicationName string `json:"medication_name"`
	Dosage         string `json:"dosage"`
	Time           string `json:"time"`
	PhoneNumber    string `json:"phone_number"`
	Frequency      string `json:"frequency"`
	ElderID        string `json:"elder_id"`
}

// ReminderService persists medication reminders and schedules their SMS
// delivery. One-shot reminders unschedule themselves after firing; daily
// reminders keep their cron entry.
type ReminderService interface {
	Schedule(ctx context.Context, userID uuid.UUID, input ScheduleReminderInput) (*types.Reminder, error)
	List(ctx context.Context, userID uuid.UUID, elderID *uuid.UUID) ([]*types.Reminder, error)
	Delete(ctx context.Context, userID, reminderID uuid.UUID) error
	Start()
	Stop()
}

type reminderService struct {
	log          *logger.Logger
	reminderRepo repos.ReminderRepo
	elderRepo    repos.ElderRepo
	sms          SMSSender
	cron         *cron.Cron

	mu      sync.Mutex
	entries map[uuid.UUID]cron.EntryID
}

func NewReminderService(
	log *logger.Logger,
	reminderRepo repos.ReminderRepo,
	elderRepo repos.ElderRepo,
	sms SMSSender,
) ReminderService {
	return &reminderService{
		log:          log.With("service", "ReminderService"),
		reminderRepo: reminderRepo,
		elderRepo:    elderRepo,
		sms:          sms,
		cron:         cron.New(),
		entries:      map[uuid.UUID]cron.EntryID{},
	}
}

func (rs *reminderService) Start() { rs.cron.Start() }
func (rs *reminderService) Stop()  { rs.cron.Stop() }

// ParseReminderTime accepts "HH:MM" on a 24-hour clock and returns the next
// occurrence of that wall time. A time already past today rolls to tomorrow.
func ParseReminderTime(raw string, now time.Time) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("time must be in HH:MM format")
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("time must be in HH:MM format")
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("time must be in HH:MM format")
	}
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next, nil
}

func (rs *reminderService) Schedule(ctx context.Context, userID uuid.UUID, input ScheduleReminderInput) (*types.Reminder, error) {
	if input.PatientName == "" || input.MedicationName == "" || input.PhoneNumber == "" {
		return nil, fmt.Errorf("patient_name, medication_name and phone_number are required")
	}
	sendAt, err := ParseReminderTime(input.Time, time.Now())
	if err != nil {
		return nil, err
	}

	var elderID *uuid.UUID
	if input.ElderID != "" {
		parsed, pErr := uuid.Parse(input.ElderID)
		if pErr != nil {
			return nil, fmt.Errorf("invalid elder_id")
		}
		owned, oErr := rs.elderRepo.GetOwned(ctx, nil, userID, parsed)
		if oErr != nil {
			return nil, fmt.Errorf("Failed to verify elder: %w", oErr)
		}
		if owned == nil {
			return nil, fmt.Errorf("elder not found for this user: %w", ErrNotFound)
		}
		elderID = &parsed
	}

	reminder := &types.Reminder{
		ID:             uuid.New(),
		UserID:         userID,
		ElderID:        elderID,
		PatientName:    input.PatientName,
		MedicationName: input.MedicationName,
		Dosage:         input.Dosage,
		SendTime:       sendAt,
		PhoneNumber:    input.PhoneNumber,
		Frequency:      input.Frequency,
		CreatedAt:      time.Now(),
	}
	if _, err := rs.reminderRepo.Create(ctx, nil, reminder); err != nil {
		return nil, fmt.Errorf("Failed to save reminder: %w", err)
	}

	rs.schedule(reminder)
	rs.log.Info("Reminder scheduled",
		"reminder_id", reminder.ID,
		"send_at", sendAt,
		"frequency", reminder.Frequency)
	return reminder, nil
}

func (rs *reminderService) schedule(reminder *types.Reminder) {
	spec := fmt.Sprintf("%d %d * * *", reminder.SendTime.Minute(), reminder.SendTime.Hour())
	reminderID := reminder.ID
	oneShot := reminder.Frequency != FrequencyDaily
	body := fmt.Sprintf("Hi %s! Time to take your %s (%s).",
		reminder.PatientName, reminder.MedicationName, reminder.Dosage)
	toNumber := reminder.PhoneNumber

	entryID, err := rs.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := rs.sms.Send(ctx, toNumber, body); err != nil {
			rs.log.Error("Failed to deliver reminder SMS", "reminder_id", reminderID, "error", err)
		}
		if oneShot {
			rs.unschedule(reminderID)
		}
	})
	if err != nil {
		rs.log.Error("Failed to schedule reminder", "reminder_id", reminderID, "error", err)
		return
	}

	rs.mu.Lock()
	rs.entries[reminderID] = entryID
	rs.mu.Unlock()
}

func (rs *reminderService) unschedule(reminderID uuid.UUID) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if entryID, ok := rs.entries[reminderID]; ok {
		rs.cron.Remove(entryID)
		delete(rs.entries, reminderID)
	}
}

func (rs *reminderService) List(ctx context.Context, userID uuid.UUID, elderID *uuid.UUID) ([]*types.Reminder, error) {
	reminders, err := rs.reminderRepo.GetByUserID(ctx, nil, userID, elderID)
	if err != nil {
		return nil, fmt.Errorf("Failed to list reminders: %w", err)
	}
	return reminders, nil
}

func (rs *reminderService) Delete(ctx context.Context, userID, reminderID uuid.UUID) error {
	affected, err := rs.reminderRepo.Delete(ctx, nil, userID, reminderID)
	if err != nil {
		return fmt.Errorf("Failed to delete reminder: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	rs.unschedule(reminderID)
	return nil
}
