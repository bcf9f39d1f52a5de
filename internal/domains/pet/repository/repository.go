package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"patitas/infras/otel"
	"patitas/infras/postgres"
	"patitas/internal/domains/pet/model"
	gDto "patitas/shared/dto"
	gRepo "patitas/shared/repository"
)

type Pet interface {
	Insert(ctx context.Context, model model.Pet) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Pet, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Pet, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	BelongsTo(ctx context.Context, petID, ownerID string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Pet]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Pet {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Pet](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// BelongsTo reports whether the pet exists and is owned by the given user.
func (repo *repositoryImpl) BelongsTo(ctx context.Context, petID, ownerID string) (bool, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    petID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldOwnerID,
				Operator: gDto.FilterOperatorEq,
				Value:    ownerID,
				Table:    model.TableName,
			},
		},
	}

	exist, err := repo.Repository.Exist(ctx, filter)
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	return exist, nil
}
