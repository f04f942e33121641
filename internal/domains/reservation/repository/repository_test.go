package repository_test

import (
	"context"
	"drivingschool/infras/otel/mocks"
	"drivingschool/infras/postgres"
	"drivingschool/internal/domains/reservation/model"
	"drivingschool/internal/domains/reservation/repository"
	gModel "drivingschool/shared/model"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	claimQuery      = `UPDATE lessons SET modified_at = \$1, modified_by = \$2, status = \$3\s+WHERE \(id = \$4 AND status = \$5 AND lesson_date >= \$6\)`
	transitionQuery = `UPDATE reservations SET modified_at = \$1, modified_by = \$2, status = \$3\s+WHERE \(id = \$4 AND status = \$5\)`
	releaseQuery    = `UPDATE lessons SET modified_at = \$1, modified_by = \$2, status = \$3\s+WHERE \(id = \$4\)`
	insertQuery     = "INSERT INTO reservations (id, user_id, lesson_id, status, notes, created_by, modified_by) VALUES ($1, $2, $3, $4, $5, $6, $7)"
	today           = "2026-05-13"
	learnerID       = "u-1"
	lessonID        = "l-1"
	reservationID   = "r-1"
)

func newRepo(t *testing.T) (repository.Reservation, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	conn := sqlx.NewDb(db, "postgres")

	return repository.New(&postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel()), mock
}

func pending() model.Reservation {
	return model.Reservation{
		ID:       reservationID,
		UserID:   learnerID,
		LessonID: lessonID,
		Status:   model.StatusPending,
		Metadata: gModel.Metadata{CreatedBy: learnerID, ModifiedBy: learnerID},
	}
}

func TestClaimAndInsert(t *testing.T) {
	t.Run("claims the lesson then inserts the reservation", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(claimQuery).
			WithArgs(sqlmock.AnyArg(), learnerID, "booked", lessonID, "available", today).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(insertQuery)).
			WithArgs(reservationID, learnerID, lessonID, "pending", nil, learnerID, learnerID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.ClaimAndInsert(context.Background(), pending(), today))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the lesson was already taken", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(claimQuery).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.ClaimAndInsert(context.Background(), pending(), today)
		assert.ErrorIs(t, err, repository.ErrLessonUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back the claim when the insert fails", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(claimQuery).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(insertQuery)).WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := repo.ClaimAndInsert(context.Background(), pending(), today)
		require.Error(t, err)
		assert.NotErrorIs(t, err, repository.ErrLessonUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransition(t *testing.T) {
	t.Run("cancel releases the lesson in the same transaction", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(transitionQuery).
			WithArgs(sqlmock.AnyArg(), learnerID, "cancelled", reservationID, "pending").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(releaseQuery).
			WithArgs(sqlmock.AnyArg(), learnerID, "available", lessonID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Transition(context.Background(), pending(), model.StatusCancelled, true, learnerID)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("admin confirm leaves the lesson untouched", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(transitionQuery).
			WithArgs(sqlmock.AnyArg(), "admin-1", "confirmed", reservationID, "pending").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Transition(context.Background(), pending(), model.StatusConfirmed, false, "admin-1")
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale status rolls back", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(transitionQuery).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Transition(context.Background(), pending(), model.StatusCancelled, true, learnerID)
		assert.ErrorIs(t, err, repository.ErrStaleStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
