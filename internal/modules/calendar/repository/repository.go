package repository

import (
	"context"
	"time"

	"acadly.app/portal/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CalendarRepository interface {
	CreateCalendar(ctx context.Context, calendar *entity.FacultyCalendar) error
	CalendarsByFaculty(ctx context.Context, facultyID uuid.UUID) ([]entity.FacultyCalendar, error)
	// DeleteCalendar removes the row only when it belongs to facultyID
	// and returns the deleted row for storage cleanup.
	DeleteCalendar(ctx context.Context, facultyID, id uuid.UUID) (*entity.FacultyCalendar, error)

	CreateEvent(ctx context.Context, event *entity.FacultyEvent) error
	EventsByFaculty(ctx context.Context, facultyID uuid.UUID) ([]entity.FacultyEvent, error)
	UpcomingEventsByFaculty(ctx context.Context, facultyID uuid.UUID, from time.Time, limit int) ([]entity.FacultyEvent, error)
	DeleteEvent(ctx context.Context, facultyID, id uuid.UUID) error

	CreateAcademicEvent(ctx context.Context, event *entity.AcademicEvent) error
	AcademicEvents(ctx context.Context, month *time.Time, search string) ([]entity.AcademicEvent, error)
	AcademicEventsByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.AcademicEvent, error)
	DeleteAcademicEvent(ctx context.Context, id uuid.UUID) error
}

type calendarRepository struct {
	db *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) CalendarRepository {
	return &calendarRepository{db: db}
}

func (r *calendarRepository) CreateCalendar(ctx context.Context, calendar *entity.FacultyCalendar) error {
	return r.db.WithContext(ctx).Create(calendar).Error
}

func (r *calendarRepository) CalendarsByFaculty(ctx context.Context, facultyID uuid.UUID) ([]entity.FacultyCalendar, error) {
	var calendars []entity.FacultyCalendar
	err := r.db.WithContext(ctx).
		Where("faculty_id = ?", facultyID).
		Order("uploaded_at desc").
		Find(&calendars).Error
	return calendars, err
}

func (r *calendarRepository) DeleteCalendar(ctx context.Context, facultyID, id uuid.UUID) (*entity.FacultyCalendar, error) {
	var calendar entity.FacultyCalendar
	err := r.db.WithContext(ctx).
		First(&calendar, "id = ? AND faculty_id = ?", id, facultyID).Error
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Delete(&calendar).Error; err != nil {
		return nil, err
	}
	return &calendar, nil
}

func (r *calendarRepository) CreateEvent(ctx context.Context, event *entity.FacultyEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *calendarRepository) EventsByFaculty(ctx context.Context, facultyID uuid.UUID) ([]entity.FacultyEvent, error) {
	var events []entity.FacultyEvent
	err := r.db.WithContext(ctx).
		Where("faculty_id = ?", facultyID).
		Order("event_date asc").
		Find(&events).Error
	return events, err
}

func (r *calendarRepository) UpcomingEventsByFaculty(ctx context.Context, facultyID uuid.UUID, from time.Time, limit int) ([]entity.FacultyEvent, error) {
	var events []entity.FacultyEvent
	err := r.db.WithContext(ctx).
		Where("faculty_id = ? AND event_date >= ?", facultyID, from).
		Order("event_date asc").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *calendarRepository) DeleteEvent(ctx context.Context, facultyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND faculty_id = ?", id, facultyID).
		Delete(&entity.FacultyEvent{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *calendarRepository) CreateAcademicEvent(ctx context.Context, event *entity.AcademicEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *calendarRepository) AcademicEvents(ctx context.Context, month *time.Time, search string) ([]entity.AcademicEvent, error) {
	query := r.db.WithContext(ctx).Model(&entity.AcademicEvent{})

	if month != nil {
		start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
		query = query.Where("start_date >= ? AND start_date < ?", start, start.AddDate(0, 1, 0))
	}
	if search != "" {
		query = query.Where("title ILIKE ?", "%"+search+"%")
	}

	var events []entity.AcademicEvent
	err := query.Order("start_date asc").Find(&events).Error
	return events, err
}

func (r *calendarRepository) AcademicEventsByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.AcademicEvent, error) {
	if len(ids) == 0 {
		return []entity.AcademicEvent{}, nil
	}

	var events []entity.AcademicEvent
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("start_date asc").
		Find(&events).Error
	return events, err
}

func (r *calendarRepository) DeleteAcademicEvent(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.AcademicEvent{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
