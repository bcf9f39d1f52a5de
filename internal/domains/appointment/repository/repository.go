package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"patitas/infras/otel"
	"patitas/infras/postgres"
	"patitas/internal/domains/appointment/model"
	"patitas/shared/constant"
	gDto "patitas/shared/dto"
	"patitas/shared/logger"
	gRepo "patitas/shared/repository"
)

// ErrDuplicateSlot surfaces the storage-level unique constraint over
// (date, hour) for non-cancelled rows. The application-level conflict check
// runs first, but two requests can race past it; this error is the
// authoritative verdict.
var ErrDuplicateSlot = errors.New("appointment.repository: slot already taken")

type Appointment interface {
	Insert(ctx context.Context, model model.Appointment) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Appointment, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Appointment, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	FindByDateHour(ctx context.Context, date time.Time, hour string) (model.Appointment, error)
	OccupiedHours(ctx context.Context, date time.Time) ([]string, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Appointment]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Appointment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Appointment](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Insert persists the slot and translates a unique-constraint violation into
// ErrDuplicateSlot so the service can present it as an ordinary conflict
// instead of a server fault.
func (repo *repositoryImpl) Insert(ctx context.Context, mod model.Appointment) error {
	err := repo.Repository.Insert(ctx, mod)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return ErrDuplicateSlot
		}

		return err //nolint:wrapcheck
	}

	return nil
}

// FindByDateHour returns the active (non-cancelled) appointment occupying the
// slot, or the zero model when the slot is free.
func (repo *repositoryImpl) FindByDateHour(ctx context.Context, date time.Time, hour string) (model.Appointment, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldDate,
				Operator: gDto.FilterOperatorEq,
				Value:    date,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldHour,
				Operator: gDto.FilterOperatorEq,
				Value:    hour,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorNotEq,
				Value:    model.StatusCancelled,
				Table:    model.TableName,
			},
		},
	}

	return repo.Repository.Get(ctx, filter)
}

// OccupiedHours lists the hour labels of all active appointments on the date.
func (repo *repositoryImpl) OccupiedHours(ctx context.Context, date time.Time) ([]string, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".appointment.OccupiedHours")
	defer scope.End()

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = :date AND %s != :cancelled ORDER BY %s ASC",
		model.FieldHour, model.TableName, model.FieldDate, model.FieldStatus, model.FieldHour,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"date":      date,
		"cancelled": model.StatusCancelled,
	}

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	hours := []string{}

	err = prepare.SelectContext(ctx, &hours, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get occupied hours (%s): %w", model.EntityName, err)
	}

	return hours, nil
}
