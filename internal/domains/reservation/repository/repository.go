package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"drivingschool/infras/otel"
	"drivingschool/infras/postgres"
	lessonModel "drivingschool/internal/domains/lesson/model"
	"drivingschool/internal/domains/reservation/model"
	"drivingschool/shared/constant"
	gDto "drivingschool/shared/dto"
	gRepo "drivingschool/shared/repository"
	"drivingschool/shared/timezone"
	"errors"
	"fmt"
	"slices"

	"github.com/jmoiron/sqlx"
)

var (
	// ErrLessonUnavailable means the guarded claim matched no bookable lesson.
	ErrLessonUnavailable = errors.New("lesson is no longer available")
	// ErrStaleStatus means the reservation left the expected status before the update ran.
	ErrStaleStatus = errors.New("reservation status changed concurrently")
)

type Reservation interface {
	Insert(ctx context.Context, reservation model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	// ClaimAndInsert marks the lesson booked and inserts the reservation in one
	// transaction. It fails with ErrLessonUnavailable when the lesson is not
	// available on or after today.
	ClaimAndInsert(ctx context.Context, reservation model.Reservation, today string) error
	// Transition moves the reservation from its current status to next. With
	// releaseLesson the lesson is made available in the same transaction.
	Transition(ctx context.Context, reservation model.Reservation, next model.Status, releaseLesson bool, user string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	lessons gRepo.Repository[lessonModel.Lesson]
	db      *postgres.Connection
	otel    otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		lessons:    gRepo.NewRepository[lessonModel.Lesson](lessonModel.EntityName, lessonModel.TableName, lessonModel.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) ClaimAndInsert(ctx context.Context, reservation model.Reservation, today string) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.ClaimAndInsert")
	defer scope.End()
	defer scope.TraceIfError(err)

	claim := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: lessonModel.FieldID, Value: reservation.LessonID, Operator: gDto.FilterOperatorEq},
			gDto.Filter{Field: lessonModel.FieldStatus, Value: lessonModel.StatusAvailable, Operator: gDto.FilterOperatorEq, ArgName: "current_status"},
			gDto.Filter{Field: lessonModel.FieldLessonDate, Value: today, Operator: gDto.FilterOperatorGreaterEq},
		},
	}

	update := map[string]any{
		lessonModel.FieldStatus:  lessonModel.StatusBooked,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: reservation.UserID,
	}

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		affected, err := r.lessons.UpdateTx(ctx, tx, update, claim)
		if err != nil {
			return fmt.Errorf("failed to claim lesson: %w", err)
		}

		if affected == 0 {
			return ErrLessonUnavailable
		}

		return r.InsertTx(ctx, tx, reservation) //nolint:wrapcheck
	})
}

func (r *repositoryImpl) Transition(ctx context.Context, reservation model.Reservation, next model.Status, releaseLesson bool, user string) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.Transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	now := timezone.Now()

	current := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: reservation.ID, Operator: gDto.FilterOperatorEq},
			gDto.Filter{Field: model.FieldStatus, Value: reservation.Status, Operator: gDto.FilterOperatorEq, ArgName: "current_status"},
		},
	}

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		affected, err := r.UpdateTx(ctx, tx, map[string]any{
			model.FieldStatus:        next,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}, current)
		if err != nil {
			return fmt.Errorf("failed to update reservation status: %w", err)
		}

		if affected == 0 {
			return ErrStaleStatus
		}

		if !releaseLesson {
			return nil
		}

		_, err = r.lessons.UpdateTx(ctx, tx, map[string]any{
			lessonModel.FieldStatus:  lessonModel.StatusAvailable,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}, gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{Field: lessonModel.FieldID, Value: reservation.LessonID, Operator: gDto.FilterOperatorEq},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to release lesson: %w", err)
		}

		return nil
	})
}

// OwnedBy selects one reservation of userID.
func OwnedBy(id, userID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldUserID, Value: userID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}

// ByUser selects every reservation of userID.
func ByUser(userID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldUserID, Value: userID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}

// ByStatus narrows filter to reservations in status. An empty status leaves it unchanged.
func ByStatus(filter gDto.FilterGroup, status model.Status) gDto.FilterGroup {
	if status == "" {
		return filter
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: append(slices.Clone(filter.Filters),
			gDto.Filter{Field: model.FieldStatus, Value: status, Operator: gDto.FilterOperatorEq, Table: model.TableName, ArgName: "status_filter"},
		),
	}
}
