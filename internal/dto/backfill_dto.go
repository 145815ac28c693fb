package dto

import (
	"time"

	"github.com/google/uuid"
)

const (
	BackfillSourceHTTP = "http"
	BackfillSourceNATS = "nats"
	BackfillSourceCron = "cron"
	BackfillSourceCLI  = "cli"
)

// BackfillJobMessage is the payload queued for the backfill consumer.
type BackfillJobMessage struct {
	JobId       uuid.UUID `json:"job_id"`
	UserId      uuid.UUID `json:"user_id"`
	Source      string    `json:"source"`
	RequestedAt time.Time `json:"requested_at"`
}

type BackfillAcceptedResponse struct {
	Message string    `json:"message"`
	JobId   uuid.UUID `json:"job_id"`
}

type BackfillReport struct {
	UserId           uuid.UUID `json:"user_id"`
	ChatSummaries    int       `json:"chat_summaries"`
	JournalSummaries int       `json:"journal_summaries"`
	ProfileUpdated   bool      `json:"profile_updated"`
	Errors           []string  `json:"errors,omitempty"`
}
