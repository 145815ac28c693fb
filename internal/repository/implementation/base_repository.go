package implementation

import (
	"context"
	"errors"

	"ai-journaling-be/internal/pkg/apperror"
	"ai-journaling-be/internal/repository/specification"

	"gorm.io/gorm"
)

// baseRepository carries the read/insert operations every collection shares.
// M is the GORM model, E the domain entity.
type baseRepository[M any, E any] struct {
	db       *gorm.DB
	name     string
	toEntity func(*M) *E
	toModel  func(*E) *M
}

func (r *baseRepository[M, E]) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *baseRepository[M, E]) Create(ctx context.Context, e *E) error {
	m := r.toModel(e)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.Store(r.name+".create", err)
	}
	*e = *r.toEntity(m)
	return nil
}

func (r *baseRepository[M, E]) CreateMany(ctx context.Context, es []*E) error {
	if len(es) == 0 {
		return nil
	}
	models := make([]*M, len(es))
	for i, e := range es {
		models[i] = r.toModel(e)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return apperror.Store(r.name+".create_many", err)
	}
	for i, m := range models {
		*es[i] = *r.toEntity(m)
	}
	return nil
}

func (r *baseRepository[M, E]) FindOne(ctx context.Context, specs ...specification.Specification) (*E, error) {
	var m M
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.Store(r.name+".find_one", err)
	}
	return r.toEntity(&m), nil
}

func (r *baseRepository[M, E]) FindAll(ctx context.Context, specs ...specification.Specification) ([]*E, error) {
	var models []*M
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, apperror.Store(r.name+".find_all", err)
	}
	entities := make([]*E, len(models))
	for i, m := range models {
		entities[i] = r.toEntity(m)
	}
	return entities, nil
}
