package repository_test

import (
	"context"
	"drivingschool/infras/otel/mocks"
	"drivingschool/infras/postgres"
	"drivingschool/internal/domains/rating/repository"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const summaryQuery = "SELECT COUNT(id) AS total, COALESCE(AVG(rating), 0) AS average FROM lesson_ratings WHERE instructor_id = $1"

func newRepo(t *testing.T) (repository.Rating, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	conn := sqlx.NewDb(db, "postgres")

	return repository.New(&postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel()), mock
}

func TestSummary(t *testing.T) {
	t.Run("averages the instructor's ratings", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(summaryQuery)).
			WithArgs("inst-1").
			WillReturnRows(sqlmock.NewRows([]string{"total", "average"}).AddRow(4, 4.25))

		summary, err := repo.Summary(context.Background(), "inst-1")
		require.NoError(t, err)
		assert.Equal(t, 4, summary.Total)
		assert.InDelta(t, 4.25, summary.Average, 0.001)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("store failure", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta(summaryQuery)).
			WithArgs("inst-1").
			WillReturnError(errors.New("connection reset"))

		_, err := repo.Summary(context.Background(), "inst-1")
		assert.ErrorContains(t, err, "failed to summarise ratings")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestByInstructor(t *testing.T) {
	filter := repository.ByInstructor("inst-1")
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(lesson_ratings.instructor_id = :instructor_id)", where)
	assert.Equal(t, map[string]any{"instructor_id": "inst-1"}, args)
}
