package implementation

import (
	"context"

	"ai-journaling-be/internal/entity"
	"ai-journaling-be/internal/mapper"
	"ai-journaling-be/internal/model"
	"ai-journaling-be/internal/pkg/apperror"
	"ai-journaling-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	journalSummaryConflict = clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "start_date"}, {Name: "end_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"summary_text", "inserted_at"}),
	}
	chatSummaryConflict = clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"summary_text", "inserted_at"}),
	}
)

type JournalSummaryRepositoryImpl struct {
	*baseRepository[model.JournalSummary, entity.JournalSummary]
}

func NewJournalSummaryRepository(db *gorm.DB) contract.JournalSummaryRepository {
	m := mapper.NewSummaryMapper()
	return &JournalSummaryRepositoryImpl{
		baseRepository: &baseRepository[model.JournalSummary, entity.JournalSummary]{
			db:       db,
			name:     "journal_summaries",
			toEntity: m.JournalSummaryToEntity,
			toModel:  m.JournalSummaryToModel,
		},
	}
}

// Upsert writes the summary for its window; an existing row keeps its id and
// gets the new text and timestamp.
func (r *JournalSummaryRepositoryImpl) Upsert(ctx context.Context, summary *entity.JournalSummary) error {
	m := r.toModel(summary)
	m.Id = uuid.Nil
	if err := r.db.WithContext(ctx).Clauses(journalSummaryConflict).Create(m).Error; err != nil {
		return apperror.Store(r.name+".upsert", err)
	}
	*summary = *r.toEntity(m)
	return nil
}

type ChatSummaryRepositoryImpl struct {
	*baseRepository[model.ChatSummary, entity.ChatSummary]
}

func NewChatSummaryRepository(db *gorm.DB) contract.ChatSummaryRepository {
	m := mapper.NewSummaryMapper()
	return &ChatSummaryRepositoryImpl{
		baseRepository: &baseRepository[model.ChatSummary, entity.ChatSummary]{
			db:       db,
			name:     "chat_summaries",
			toEntity: m.ChatSummaryToEntity,
			toModel:  m.ChatSummaryToModel,
		},
	}
}

func (r *ChatSummaryRepositoryImpl) Upsert(ctx context.Context, summary *entity.ChatSummary) error {
	m := r.toModel(summary)
	m.Id = uuid.Nil
	if err := r.db.WithContext(ctx).Clauses(chatSummaryConflict).Create(m).Error; err != nil {
		return apperror.Store(r.name+".upsert", err)
	}
	*summary = *r.toEntity(m)
	return nil
}
