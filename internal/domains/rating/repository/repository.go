package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"drivingschool/infras/otel"
	"drivingschool/infras/postgres"
	"drivingschool/internal/domains/rating/model"
	"drivingschool/shared/constant"
	gDto "drivingschool/shared/dto"
	"drivingschool/shared/logger"
	gRepo "drivingschool/shared/repository"
	"fmt"
)

const summaryQuery = "SELECT COUNT(id) AS total, COALESCE(AVG(rating), 0) AS average FROM lesson_ratings WHERE instructor_id = $1"

type Rating interface {
	Insert(ctx context.Context, rating model.Rating) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Rating, error)
	Summary(ctx context.Context, instructorID string) (model.Summary, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Rating]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Rating {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Rating](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) Summary(ctx context.Context, instructorID string) (summary model.Summary, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".lesson_rating.Summary")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, summaryQuery)

	if err = r.db.Read.GetContext(ctx, &summary, summaryQuery, instructorID); err != nil {
		logger.ErrorWithStack(err)

		return summary, fmt.Errorf("failed to summarise ratings: %w", err)
	}

	return summary, nil
}

// ByInstructor selects the ratings given to one instructor.
func ByInstructor(instructorID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldInstructorID, Value: instructorID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}
