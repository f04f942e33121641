package service_test

import (
	"context"
	"drivingschool/infras/otel/mocks"
	ratingMocks "drivingschool/internal/domains/rating/mocks"
	"drivingschool/internal/domains/rating/model"
	"drivingschool/internal/domains/rating/model/dto"
	"drivingschool/internal/domains/rating/service"
	reservationMocks "drivingschool/internal/domains/reservation/mocks"
	reservationModel "drivingschool/internal/domains/reservation/model"
	"drivingschool/internal/domains/reservation/repository"
	"drivingschool/shared/constant"
	gDto "drivingschool/shared/dto"
	"drivingschool/shared/failure"
	"drivingschool/shared/session"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRatingService_Rate(t *testing.T) {
	ctx := session.WithUser(context.Background(), session.User{ID: "u-1", Role: constant.RoleUser})
	completed := reservationModel.Reservation{ID: "r-1", UserID: "u-1", InstructorID: "i-1", Status: reservationModel.StatusCompleted}

	tests := []struct {
		name      string
		setupMock func(ratings *ratingMocks.MockRating, reservations *reservationMocks.MockReservation)
		wantCode  int
	}{
		{
			name: "rates a completed lesson once",
			setupMock: func(ratings *ratingMocks.MockRating, reservations *reservationMocks.MockReservation) {
				reservations.EXPECT().Get(gomock.Any(), repository.OwnedBy("r-1", "u-1")).Return(completed, nil)
				ratings.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, rating model.Rating) error {
						assert.Equal(t, "i-1", rating.InstructorID)
						assert.Equal(t, 4, rating.Rating)

						return nil
					})
			},
		},
		{
			name: "second rating conflicts",
			setupMock: func(ratings *ratingMocks.MockRating, reservations *reservationMocks.MockReservation) {
				reservations.EXPECT().Get(gomock.Any(), gomock.Any()).Return(completed, nil)
				ratings.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "lesson not completed yet",
			setupMock: func(_ *ratingMocks.MockRating, reservations *reservationMocks.MockReservation) {
				pending := completed
				pending.Status = reservationModel.StatusConfirmed
				reservations.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "not the owner",
			setupMock: func(_ *ratingMocks.MockRating, reservations *reservationMocks.MockReservation) {
				reservations.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservationModel.Reservation{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ratings := ratingMocks.NewMockRating(ctrl)
			reservations := reservationMocks.NewMockReservation(ctrl)
			tt.setupMock(ratings, reservations)

			svc := service.New(ratings, reservations, mocks.NewOtel())

			res, err := svc.Rate(ctx, "r-1", dto.RateLessonRequest{Rating: 4})
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "r-1", res.ReservationID)
		})
	}
}

func TestRatingService_ListByInstructor(t *testing.T) {
	ctrl := gomock.NewController(t)
	ratings := ratingMocks.NewMockRating(ctrl)
	svc := service.New(ratings, reservationMocks.NewMockReservation(ctrl), mocks.NewOtel())

	ratings.EXPECT().Summary(gomock.Any(), "i-1").Return(model.Summary{Total: 3, Average: 4.3333}, nil)
	ratings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Rating{
		{ID: "a", Rating: 5}, {ID: "b", Rating: 4}, {ID: "c", Rating: 4},
	}, nil)

	res, err := svc.ListByInstructor(context.Background(), "i-1", gDto.QueryParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.InDelta(t, 4.3, res.Average, 1e-9)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 1, res.TotalPage)
	assert.Len(t, res.Ratings, 3)
}
