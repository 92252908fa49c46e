package dto

type UploadCalendarRequest struct {
	// Image is a data URI (data:image/...;base64,...) or a plain URL.
	Image string `json:"image" binding:"required"`
}

type CreateFacultyEventRequest struct {
	Title        string  `json:"title" binding:"required,max=255"`
	Description  *string `json:"description" binding:"omitempty"`
	EventDate    string  `json:"event_date" binding:"required,datetime=2006-01-02"`
	ReminderDate *string `json:"reminder_date" binding:"omitempty,datetime=2006-01-02"`
}

type CreateAcademicEventRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description" binding:"omitempty"`
	StartDate   string  `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate     *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Category    string  `json:"category" binding:"required,max=100"`
}

type ListAcademicEventsQuery struct {
	// Month filters to events starting within the given month.
	Month  string `form:"month" binding:"omitempty,datetime=2006-01"`
	Search string `form:"search" binding:"omitempty,max=255"`
}
