package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"drivingschool/infras/otel"
	"drivingschool/infras/postgres"
	"drivingschool/internal/domains/quiz/model"
	"drivingschool/shared/constant"
	gDto "drivingschool/shared/dto"
	"drivingschool/shared/logger"
	gRepo "drivingschool/shared/repository"
	"fmt"
)

const leaderboardQuery = `SELECT quiz_results.user_id, COALESCE(NULLIF(users.full_name, ''), users.email) AS full_name,
COUNT(quiz_results.id) AS total_quizzes, SUM(quiz_results.score) AS total_score,
ROUND(AVG(quiz_results.percentage))::int AS average_percentage
FROM quiz_results JOIN users ON users.id = quiz_results.user_id
GROUP BY quiz_results.user_id, users.full_name, users.email
ORDER BY average_percentage DESC, total_score DESC, full_name ASC
LIMIT $1`

type Result interface {
	Insert(ctx context.Context, result model.Result) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Result, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Result]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Result {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Result](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Leaderboard ranks users by their average percentage.
func (r *repositoryImpl) Leaderboard(ctx context.Context, limit int) (entries []model.LeaderboardEntry, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".quiz_result.Leaderboard")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, leaderboardQuery)

	entries = []model.LeaderboardEntry{}

	if err = r.db.Read.SelectContext(ctx, &entries, leaderboardQuery, limit); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to build leaderboard: %w", err)
	}

	return entries, nil
}

func ByUser(userID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldUserID, Value: userID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}
