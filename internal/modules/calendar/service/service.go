package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"acadly.app/portal/internal/entity"
	calDto "acadly.app/portal/internal/modules/calendar/dto"
	calRepo "acadly.app/portal/internal/modules/calendar/repository"
	profileRepo "acadly.app/portal/internal/modules/profile/repository"
	searchService "acadly.app/portal/internal/modules/search/service"
	"acadly.app/portal/pkg/apperror"
	"acadly.app/portal/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"

	notifService "acadly.app/portal/internal/modules/notification/service"
)

const dateLayout = "2006-01-02"

type CalendarService interface {
	UploadCalendar(ctx context.Context, facultyID uuid.UUID, req calDto.UploadCalendarRequest) (*entity.FacultyCalendar, error)
	ListCalendars(ctx context.Context, facultyID uuid.UUID) ([]entity.FacultyCalendar, error)
	DeleteCalendar(ctx context.Context, facultyID, id uuid.UUID) error

	CreateEvent(ctx context.Context, facultyID uuid.UUID, req calDto.CreateFacultyEventRequest) (*entity.FacultyEvent, error)
	ListEvents(ctx context.Context, facultyID uuid.UUID) ([]entity.FacultyEvent, error)
	DeleteEvent(ctx context.Context, facultyID, id uuid.UUID) error

	CreateAcademicEvent(ctx context.Context, creator *entity.Profile, req calDto.CreateAcademicEventRequest) (*entity.AcademicEvent, error)
	ListAcademicEvents(ctx context.Context, query calDto.ListAcademicEventsQuery) ([]entity.AcademicEvent, error)
	DeleteAcademicEvent(ctx context.Context, id uuid.UUID) error
}

type calendarService struct {
	repo                calRepo.CalendarRepository
	profiles            profileRepo.ProfileRepository
	notificationService notifService.NotificationService
	eventSearch         searchService.EventSearchService
	imageStorage        storage.ImageStorage
}

func NewCalendarService(
	repo calRepo.CalendarRepository,
	profiles profileRepo.ProfileRepository,
	notificationService notifService.NotificationService,
	eventSearch searchService.EventSearchService,
	imageStorage storage.ImageStorage,
) CalendarService {
	return &calendarService{
		repo:                repo,
		profiles:            profiles,
		notificationService: notificationService,
		eventSearch:         eventSearch,
		imageStorage:        imageStorage,
	}
}

func (s *calendarService) UploadCalendar(ctx context.Context, facultyID uuid.UUID, req calDto.UploadCalendarRequest) (*entity.FacultyCalendar, error) {
	image := req.Image

	// Data URIs are pushed to the image store when one is configured;
	// otherwise the payload is kept inline.
	if s.imageStorage != nil {
		if data, ok := decodeDataURI(req.Image); ok {
			url, err := s.imageStorage.UploadImage(ctx, bytes.NewReader(data), "calendar")
			if err != nil {
				return nil, fmt.Errorf("failed to store calendar image: %w", err)
			}
			image = url
		}
	}

	calendar := &entity.FacultyCalendar{
		FacultyID: facultyID,
		Image:     image,
	}
	if err := s.repo.CreateCalendar(ctx, calendar); err != nil {
		return nil, err
	}
	return calendar, nil
}

func (s *calendarService) ListCalendars(ctx context.Context, facultyID uuid.UUID) ([]entity.FacultyCalendar, error) {
	return s.repo.CalendarsByFaculty(ctx, facultyID)
}

func (s *calendarService) DeleteCalendar(ctx context.Context, facultyID, id uuid.UUID) error {
	calendar, err := s.repo.DeleteCalendar(ctx, facultyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("calendar %w", apperror.ErrNotFound)
		}
		return err
	}

	if s.imageStorage != nil && strings.HasPrefix(calendar.Image, "http") {
		go func(url string) {
			if err := s.imageStorage.DeleteImage(context.Background(), url); err != nil {
				log.Printf("failed to delete calendar image: %v", err)
			}
		}(calendar.Image)
	}
	return nil
}

func (s *calendarService) CreateEvent(ctx context.Context, facultyID uuid.UUID, req calDto.CreateFacultyEventRequest) (*entity.FacultyEvent, error) {
	eventDate, err := time.Parse(dateLayout, req.EventDate)
	if err != nil {
		return nil, apperror.New(http.StatusBadRequest, "Event date must be a valid date", apperror.ErrBadRequest)
	}

	event := &entity.FacultyEvent{
		FacultyID:   facultyID,
		Title:       req.Title,
		Description: req.Description,
		EventDate:   eventDate,
	}
	if req.ReminderDate != nil {
		reminder, err := time.Parse(dateLayout, *req.ReminderDate)
		if err != nil {
			return nil, apperror.New(http.StatusBadRequest, "Reminder date must be a valid date", apperror.ErrBadRequest)
		}
		event.ReminderDate = &reminder
	}

	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *calendarService) ListEvents(ctx context.Context, facultyID uuid.UUID) ([]entity.FacultyEvent, error) {
	return s.repo.EventsByFaculty(ctx, facultyID)
}

func (s *calendarService) DeleteEvent(ctx context.Context, facultyID, id uuid.UUID) error {
	if err := s.repo.DeleteEvent(ctx, facultyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("event %w", apperror.ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *calendarService) CreateAcademicEvent(ctx context.Context, creator *entity.Profile, req calDto.CreateAcademicEventRequest) (*entity.AcademicEvent, error) {
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, apperror.New(http.StatusBadRequest, "Start date must be a valid date", apperror.ErrBadRequest)
	}

	event := &entity.AcademicEvent{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   startDate,
		Category:    req.Category,
		CreatedBy:   creator.ID,
	}
	if req.EndDate != nil {
		endDate, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return nil, apperror.New(http.StatusBadRequest, "End date must be a valid date", apperror.ErrBadRequest)
		}
		event.EndDate = &endDate
	}

	if err := s.repo.CreateAcademicEvent(ctx, event); err != nil {
		return nil, err
	}

	s.eventSearch.IndexEvent(event)

	// Everyone except the creator hears about the new event.
	go func(event entity.AcademicEvent, creatorID uuid.UUID) {
		ctx := context.Background()
		ids, err := s.profiles.IDsExcept(ctx, creatorID)
		if err != nil {
			log.Printf("failed to load academic event recipients: %v", err)
			return
		}
		s.notificationService.NotifyMany(ctx, ids,
			"New Academic Event",
			fmt.Sprintf("A new academic event %q has been added to the calendar", event.Title))
	}(*event, creator.ID)

	return event, nil
}

func (s *calendarService) ListAcademicEvents(ctx context.Context, query calDto.ListAcademicEventsQuery) ([]entity.AcademicEvent, error) {
	var month *time.Time
	if query.Month != "" {
		parsed, err := time.Parse("2006-01", query.Month)
		if err != nil {
			return nil, apperror.New(http.StatusBadRequest, "Month must be formatted as YYYY-MM", apperror.ErrBadRequest)
		}
		month = &parsed
	}

	if query.Search != "" {
		if ids, ok := s.eventSearch.SearchEventIDs(query.Search); ok {
			events, err := s.repo.AcademicEventsByIDs(ctx, ids)
			if err != nil {
				return nil, err
			}
			return filterByMonth(events, month), nil
		}
	}

	return s.repo.AcademicEvents(ctx, month, query.Search)
}

func (s *calendarService) DeleteAcademicEvent(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteAcademicEvent(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("academic event %w", apperror.ErrNotFound)
		}
		return err
	}

	s.eventSearch.RemoveEvent(id)
	return nil
}

func filterByMonth(events []entity.AcademicEvent, month *time.Time) []entity.AcademicEvent {
	if month == nil {
		return events
	}

	filtered := make([]entity.AcademicEvent, 0, len(events))
	for _, event := range events {
		if event.StartDate.Year() == month.Year() && event.StartDate.Month() == month.Month() {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// decodeDataURI extracts the payload from a base64 data URI. Plain URLs
// and malformed payloads report false so the value is stored as-is.
func decodeDataURI(image string) ([]byte, bool) {
	if !strings.HasPrefix(image, "data:") {
		return nil, false
	}

	comma := strings.Index(image, ",")
	if comma < 0 || !strings.Contains(image[:comma], ";base64") {
		return nil, false
	}

	data, err := base64.StdEncoding.DecodeString(image[comma+1:])
	if err != nil {
		return nil, false
	}
	return data, true
}
