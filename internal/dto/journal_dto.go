package dto

import (
	"time"

	"github.com/google/uuid"
)

type JournalSummaryRequest struct {
	StartDate string `json:"start_date" query:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" query:"end_date" validate:"required,datetime=2006-01-02"`
}

// JournalSummaryResponse echoes the window bounds as plain dates.
type JournalSummaryResponse struct {
	Id          uuid.UUID `json:"id"`
	UserId      uuid.UUID `json:"user_id"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	SummaryText string    `json:"summary_text"`
	InsertedAt  time.Time `json:"inserted_at"`
}

type GoalsRequest struct {
	Yearly  string `json:"yearly" validate:"required"`
	Monthly string `json:"monthly" validate:"required"`
	Weekly  string `json:"weekly" validate:"required"`
}

type GoalsJournalsRequest struct {
	Goals   GoalsRequest `json:"goals" validate:"required"`
	Journal string       `json:"journal" validate:"required"`
}

type JournalDatesResponse struct {
	Dates []time.Time `json:"dates"`
}
