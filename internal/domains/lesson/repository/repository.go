package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"drivingschool/infras/otel"
	"drivingschool/infras/postgres"
	"drivingschool/internal/domains/lesson/model"
	"drivingschool/shared"
	"drivingschool/shared/constant"
	gDto "drivingschool/shared/dto"
	gRepo "drivingschool/shared/repository"
	"drivingschool/shared/timezone"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type Lesson interface {
	Insert(ctx context.Context, lesson model.Lesson) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Lesson, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Lesson, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	// SyncStatus moves a lesson to status and reports whether a row changed.
	SyncStatus(ctx context.Context, id string, status model.Status, user string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Lesson]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Lesson {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Lesson](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) SyncStatus(ctx context.Context, id string, status model.Status, user string) (changed bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".lesson.SyncStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: status, Operator: gDto.FilterOperatorNotEq, Table: model.TableName, ArgName: "current_status"},
		},
	}

	update := map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	var affected int64

	err = r.WithTx(ctx, func(tx *sqlx.Tx) error {
		affected, err = r.UpdateTx(ctx, tx, update, filter)

		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to sync lesson status: %w", err)
	}

	return affected > 0, nil
}

// AvailableFrom selects bookable lessons dated today or later.
func AvailableFrom(today string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusAvailable, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldLessonDate, Value: today, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName},
		},
	}
}

// ByID is shorthand for the lesson primary key filter.
func ByID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}
