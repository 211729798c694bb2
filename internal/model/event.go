package model

import (
	"time"

	"github.com/google/uuid"
)

// Category 活動分類
type Category string

const (
	CategoryGarageSale     Category = "Garage Sale"
	CategorySportsMatch    Category = "Sports Match"
	CategoryCommunityClass Category = "Community Class"
	CategoryVolunteer      Category = "Volunteer"
	CategoryExhibition     Category = "Exhibition"
	CategoryFestival       Category = "Festival"
)

// IsValid 驗證分類是否有效
func (c Category) IsValid() bool {
	switch c {
	case CategoryGarageSale, CategorySportsMatch, CategoryCommunityClass,
		CategoryVolunteer, CategoryExhibition, CategoryFestival:
		return true
	}
	return false
}

// Event 活動模型
type Event struct {
	ID                int       `json:"id" db:"id"`
	EventID           uuid.UUID `json:"event_id" db:"event_id"`
	Title             string    `json:"title" db:"title"`
	Description       string    `json:"description" db:"description"`
	Location          string    `json:"location" db:"location"`
	Category          Category  `json:"category" db:"category"`
	StartDate         time.Time `json:"start_date" db:"start_date"`
	EndDate           time.Time `json:"end_date" db:"end_date"`
	RegistrationStart time.Time `json:"registration_start" db:"registration_start"`
	RegistrationEnd   time.Time `json:"registration_end" db:"registration_end"`
	ImagePath         *string   `json:"image_path,omitempty" db:"image_path"`
	OrganizerID       int       `json:"organizer_id" db:"organizer_id"`
	IsApproved        bool      `json:"is_approved" db:"is_approved"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// RegistrationWindowOpen 檢查報名時段是否開放
func (e *Event) RegistrationWindowOpen(now time.Time) bool {
	return !now.Before(e.RegistrationStart) && !now.After(e.RegistrationEnd)
}

type UpdateEventParams struct {
	Title             *string
	Description       *string
	Location          *string
	Category          *Category
	StartDate         *time.Time
	EndDate           *time.Time
	RegistrationStart *time.Time
	RegistrationEnd   *time.Time
	ImagePath         *string
	IsApproved        *bool
}

// HasChanges 是否至少更新一個欄位
func (p UpdateEventParams) HasChanges() bool {
	return p.Title != nil || p.Description != nil || p.Location != nil ||
		p.Category != nil || p.StartDate != nil || p.EndDate != nil ||
		p.RegistrationStart != nil || p.RegistrationEnd != nil || p.ImagePath != nil
}

// EventDetails 活動詳情響應(含報名人數)
type EventDetails struct {
	Event
	AttendeesCount int `json:"attendees_count"`
}

// ListEventsFilter 活動列表查詢條件
type ListEventsFilter struct {
	Category     *Category
	Upcoming     bool
	ApprovedOnly bool
}
