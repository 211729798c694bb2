package model

import "time"

// RegistrationStatus 報名狀態類型
type RegistrationStatus string

const (
	RegistrationStatusNone       RegistrationStatus = "none"
	RegistrationStatusInterested RegistrationStatus = "interested"
	RegistrationStatusRegistered RegistrationStatus = "registered"
)

// IsValid 驗證狀態是否有效
func (s RegistrationStatus) IsValid() bool {
	switch s {
	case RegistrationStatusNone, RegistrationStatusInterested, RegistrationStatusRegistered:
		return true
	}
	return false
}

// CanTransitionTo 檢查是否可以轉換到目標狀態
func (s RegistrationStatus) CanTransitionTo(target RegistrationStatus) bool {
	transitions := map[RegistrationStatus][]RegistrationStatus{
		RegistrationStatusNone:       {RegistrationStatusInterested},
		RegistrationStatusInterested: {RegistrationStatusRegistered},
		RegistrationStatusRegistered: {RegistrationStatusNone},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == target {
			return true
		}
	}
	return false
}

// Registration 報名紀錄，每個 (user, event) 最多一筆
type Registration struct {
	ID           int                `json:"id" db:"id"`
	EventID      int                `json:"event_id" db:"event_id"`
	UserID       int                `json:"user_id" db:"user_id"`
	Status       RegistrationStatus `json:"status" db:"status"`
	Attendees    []string           `json:"attendees" db:"attendees"`
	RegisteredAt time.Time          `json:"registered_at" db:"registered_at"`
}

// NumberOfAttendees 以名單長度為唯一來源，不另外儲存計數
func (r *Registration) NumberOfAttendees() int {
	return len(r.Attendees)
}

// RegistrationResponse 報名紀錄響應
type RegistrationResponse struct {
	ID                int       `json:"id"`
	EventID           int       `json:"event_id"`
	UserID            int       `json:"user_id"`
	Attendees         []string  `json:"attendees"`
	NumberOfAttendees int       `json:"number_of_attendees"`
	RegisteredAt      time.Time `json:"registered_at"`
}

func (r *Registration) ToResponse() *RegistrationResponse {
	attendees := r.Attendees
	if attendees == nil {
		attendees = []string{}
	}
	return &RegistrationResponse{
		ID:                r.ID,
		EventID:           r.EventID,
		UserID:            r.UserID,
		Attendees:         attendees,
		NumberOfAttendees: len(attendees),
		RegisteredAt:      r.RegisteredAt,
	}
}

// RegistrationStatusResponse 查詢報名狀態的響應
type RegistrationStatusResponse struct {
	Status       RegistrationStatus    `json:"status"`
	Registration *RegistrationResponse `json:"registration"`
}

// ConfirmRegistrationRequest 確認報名請求
type ConfirmRegistrationRequest struct {
	Attendees         []string `json:"attendees" binding:"required"`
	NumberOfAttendees int      `json:"number_of_attendees"`
}
