package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"acadly.app/portal/internal/entity"
	calDto "acadly.app/portal/internal/modules/calendar/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCalendarRepo struct {
	calendars      map[uuid.UUID]*entity.FacultyCalendar
	academicEvents map[uuid.UUID]*entity.AcademicEvent
	lastListMonth  *time.Time
	lastListSearch string
}

func newFakeCalendarRepo() *fakeCalendarRepo {
	return &fakeCalendarRepo{
		calendars:      make(map[uuid.UUID]*entity.FacultyCalendar),
		academicEvents: make(map[uuid.UUID]*entity.AcademicEvent),
	}
}

func (f *fakeCalendarRepo) CreateCalendar(_ context.Context, calendar *entity.FacultyCalendar) error {
	calendar.ID = uuid.New()
	f.calendars[calendar.ID] = calendar
	return nil
}

func (f *fakeCalendarRepo) CalendarsByFaculty(_ context.Context, _ uuid.UUID) ([]entity.FacultyCalendar, error) {
	return nil, nil
}

func (f *fakeCalendarRepo) DeleteCalendar(_ context.Context, facultyID, id uuid.UUID) (*entity.FacultyCalendar, error) {
	calendar, ok := f.calendars[id]
	if !ok || calendar.FacultyID != facultyID {
		return nil, gorm.ErrRecordNotFound
	}
	delete(f.calendars, id)
	return calendar, nil
}

func (f *fakeCalendarRepo) CreateEvent(_ context.Context, event *entity.FacultyEvent) error {
	event.ID = uuid.New()
	return nil
}

func (f *fakeCalendarRepo) EventsByFaculty(_ context.Context, _ uuid.UUID) ([]entity.FacultyEvent, error) {
	return nil, nil
}

func (f *fakeCalendarRepo) UpcomingEventsByFaculty(_ context.Context, _ uuid.UUID, _ time.Time, _ int) ([]entity.FacultyEvent, error) {
	return nil, nil
}

func (f *fakeCalendarRepo) DeleteEvent(_ context.Context, _, _ uuid.UUID) error {
	return gorm.ErrRecordNotFound
}

func (f *fakeCalendarRepo) CreateAcademicEvent(_ context.Context, event *entity.AcademicEvent) error {
	event.ID = uuid.New()
	f.academicEvents[event.ID] = event
	return nil
}

func (f *fakeCalendarRepo) AcademicEvents(_ context.Context, month *time.Time, search string) ([]entity.AcademicEvent, error) {
	f.lastListMonth = month
	f.lastListSearch = search
	var out []entity.AcademicEvent
	for _, event := range f.academicEvents {
		out = append(out, *event)
	}
	return out, nil
}

func (f *fakeCalendarRepo) AcademicEventsByIDs(_ context.Context, ids []uuid.UUID) ([]entity.AcademicEvent, error) {
	var out []entity.AcademicEvent
	for _, id := range ids {
		if event, ok := f.academicEvents[id]; ok {
			out = append(out, *event)
		}
	}
	return out, nil
}

func (f *fakeCalendarRepo) DeleteAcademicEvent(_ context.Context, id uuid.UUID) error {
	if _, ok := f.academicEvents[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.academicEvents, id)
	return nil
}

type fakeProfiles struct {
	ids         []uuid.UUID
	lastExclude uuid.UUID
}

func (f *fakeProfiles) Create(_ context.Context, _ *entity.Profile) error { return nil }

func (f *fakeProfiles) FindByID(_ context.Context, _ uuid.UUID) (*entity.Profile, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProfiles) FindByEmail(_ context.Context, _ string) (*entity.Profile, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProfiles) TopByPoints(_ context.Context, _ int) ([]entity.Profile, error) {
	return nil, nil
}

func (f *fakeProfiles) IDsExcept(_ context.Context, exclude uuid.UUID) ([]uuid.UUID, error) {
	f.lastExclude = exclude
	var out []uuid.UUID
	for _, id := range f.ids {
		if id != exclude {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeProfiles) Count(_ context.Context) (int64, error) { return 0, nil }

type fakeNotifier struct {
	mu         sync.Mutex
	recipients []uuid.UUID
	title      string
	manyCalls  int
}

func (f *fakeNotifier) Notify(_ context.Context, _ uuid.UUID, _, _ string) {}

func (f *fakeNotifier) NotifyMany(_ context.Context, userIDs []uuid.UUID, title, _ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.manyCalls++
	f.recipients = userIDs
	f.title = title
}

func (f *fakeNotifier) List(_ context.Context, _ uuid.UUID, _ int) ([]entity.Notification, error) {
	return nil, nil
}

func (f *fakeNotifier) UnreadCount(_ context.Context, _ uuid.UUID) (int64, error) { return 0, nil }

func (f *fakeNotifier) MarkAsRead(_ context.Context, _, _ uuid.UUID) error { return nil }

func (f *fakeNotifier) MarkAllAsRead(_ context.Context, _ uuid.UUID) error { return nil }

func (f *fakeNotifier) manyCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.manyCalls
}

type fakeEventSearch struct {
	indexed []uuid.UUID
	removed []uuid.UUID
	ids     []uuid.UUID
	ok      bool
}

func (f *fakeEventSearch) IndexEvent(event *entity.AcademicEvent) {
	f.indexed = append(f.indexed, event.ID)
}

func (f *fakeEventSearch) RemoveEvent(id uuid.UUID) {
	f.removed = append(f.removed, id)
}

func (f *fakeEventSearch) SearchEventIDs(_ string) ([]uuid.UUID, bool) {
	return f.ids, f.ok
}

func newService(repo *fakeCalendarRepo, profiles *fakeProfiles, notifier *fakeNotifier, search *fakeEventSearch) CalendarService {
	return NewCalendarService(repo, profiles, notifier, search, nil)
}

func TestUploadCalendar_StoresDataURIInlineWithoutStorage(t *testing.T) {
	repo := newFakeCalendarRepo()
	svc := newService(repo, &fakeProfiles{}, &fakeNotifier{}, &fakeEventSearch{})

	image := "data:image/png;base64,aGVsbG8="
	calendar, err := svc.UploadCalendar(context.Background(), uuid.New(), calDto.UploadCalendarRequest{Image: image})
	require.NoError(t, err)
	assert.Equal(t, image, calendar.Image)
}

func TestDeleteCalendar_OtherOwner(t *testing.T) {
	repo := newFakeCalendarRepo()
	svc := newService(repo, &fakeProfiles{}, &fakeNotifier{}, &fakeEventSearch{})

	owner := uuid.New()
	calendar := &entity.FacultyCalendar{ID: uuid.New(), FacultyID: owner, Image: "x"}
	repo.calendars[calendar.ID] = calendar

	err := svc.DeleteCalendar(context.Background(), uuid.New(), calendar.ID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Contains(t, repo.calendars, calendar.ID, "row must survive a failed delete")
}

func TestCreateAcademicEvent_FanOutExcludesCreator(t *testing.T) {
	repo := newFakeCalendarRepo()
	notifier := &fakeNotifier{}
	search := &fakeEventSearch{}

	creator := &entity.Profile{ID: uuid.New(), FullName: "Admin", Role: entity.RoleSuperadmin}
	others := []uuid.UUID{uuid.New(), uuid.New()}
	profiles := &fakeProfiles{ids: append([]uuid.UUID{creator.ID}, others...)}

	svc := newService(repo, profiles, notifier, search)

	event, err := svc.CreateAcademicEvent(context.Background(), creator, calDto.CreateAcademicEventRequest{
		Title:     "Semester exams",
		StartDate: "2026-12-01",
		Category:  "exam",
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return notifier.manyCallCount() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "New Academic Event", notifier.title)
	assert.ElementsMatch(t, others, notifier.recipients)
	assert.NotContains(t, notifier.recipients, creator.ID)

	assert.Equal(t, []uuid.UUID{event.ID}, search.indexed)
}

func TestCreateAcademicEvent_BadDate(t *testing.T) {
	svc := newService(newFakeCalendarRepo(), &fakeProfiles{}, &fakeNotifier{}, &fakeEventSearch{})

	_, err := svc.CreateAcademicEvent(context.Background(), &entity.Profile{ID: uuid.New()}, calDto.CreateAcademicEventRequest{
		Title:     "Semester exams",
		StartDate: "12/01/2026",
		Category:  "exam",
	})
	assert.Error(t, err)
}

func TestListAcademicEvents_SearchFallsBackToDatabase(t *testing.T) {
	repo := newFakeCalendarRepo()
	svc := newService(repo, &fakeProfiles{}, &fakeNotifier{}, &fakeEventSearch{ok: false})

	_, err := svc.ListAcademicEvents(context.Background(), calDto.ListAcademicEventsQuery{Search: "exams"})
	require.NoError(t, err)
	assert.Equal(t, "exams", repo.lastListSearch)
}

func TestListAcademicEvents_SearchHitsFilteredByMonth(t *testing.T) {
	repo := newFakeCalendarRepo()

	december := entity.AcademicEvent{
		ID:        uuid.New(),
		Title:     "Semester exams",
		StartDate: time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
	}
	january := entity.AcademicEvent{
		ID:        uuid.New(),
		Title:     "Exam review",
		StartDate: time.Date(2027, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	repo.academicEvents[december.ID] = &december
	repo.academicEvents[january.ID] = &january

	search := &fakeEventSearch{ids: []uuid.UUID{december.ID, january.ID}, ok: true}
	svc := newService(repo, &fakeProfiles{}, &fakeNotifier{}, search)

	events, err := svc.ListAcademicEvents(context.Background(), calDto.ListAcademicEventsQuery{
		Search: "exam",
		Month:  "2026-12",
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, december.ID, events[0].ID)
}

func TestDeleteAcademicEvent_RemovesFromIndex(t *testing.T) {
	repo := newFakeCalendarRepo()
	search := &fakeEventSearch{}
	svc := newService(repo, &fakeProfiles{}, &fakeNotifier{}, search)

	event := &entity.AcademicEvent{ID: uuid.New(), Title: "Orientation"}
	repo.academicEvents[event.ID] = event

	require.NoError(t, svc.DeleteAcademicEvent(context.Background(), event.ID))
	assert.Equal(t, []uuid.UUID{event.ID}, search.removed)
}
