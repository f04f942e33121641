package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"drivingschool/infras/otel"
	"drivingschool/infras/postgres"
	"drivingschool/internal/domains/instructor/model"
	gDto "drivingschool/shared/dto"
	gRepo "drivingschool/shared/repository"
)

type Instructor interface {
	Insert(ctx context.Context, instructor model.Instructor) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Instructor, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Instructor, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Instructor]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Instructor {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Instructor](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Active selects instructors currently taking lessons.
func Active() gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}
