package contract

import (
	"context"

	"ai-journaling-be/internal/entity"
	"ai-journaling-be/internal/repository/specification"
)

// JournalSummaryRepository upserts on (user_id, start_date, end_date).
type JournalSummaryRepository interface {
	Upsert(ctx context.Context, summary *entity.JournalSummary) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.JournalSummary, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.JournalSummary, error)
}

// ChatSummaryRepository upserts on (user_id, session_id).
type ChatSummaryRepository interface {
	Upsert(ctx context.Context, summary *entity.ChatSummary) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSummary, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSummary, error)
}
