package contract

import (
	"context"

	"ai-journaling-be/internal/entity"
	"ai-journaling-be/internal/repository/specification"
)

type TherapistInsightRepository interface {
	Create(ctx context.Context, insight *entity.TherapistInsight) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TherapistInsight, error)
}
