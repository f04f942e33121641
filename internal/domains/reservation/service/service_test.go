package service_test

import (
	"context"
	"drivingschool/config"
	"drivingschool/infras/kafka"
	kafkaMocks "drivingschool/infras/kafka/mocks"
	"drivingschool/infras/metrics"
	metricsMocks "drivingschool/infras/metrics/mocks"
	"drivingschool/infras/otel/mocks"
	lessonService "drivingschool/internal/domains/lesson/service"
	reservationMocks "drivingschool/internal/domains/reservation/mocks"
	"drivingschool/internal/domains/reservation/model"
	"drivingschool/internal/domains/reservation/model/dto"
	"drivingschool/internal/domains/reservation/repository"
	"drivingschool/internal/domains/reservation/service"
	cacheMocks "drivingschool/shared/cache/mocks"
	"drivingschool/shared/constant"
	gDto "drivingschool/shared/dto"
	"drivingschool/shared/failure"
	"drivingschool/shared/session"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	learnerID = "0b7c6a4e-3a59-4f43-9a55-1d0f3c4f2a01"
	lessonID  = "5d1e2f3a-4b5c-4d6e-8f70-8192a3b4c5d6"
	topic     = "reservation-events"
)

type fixture struct {
	repo    *reservationMocks.MockReservation
	kafka   *kafkaMocks.MockClient
	metrics *metricsMocks.MockMetrics
	cfg     *config.Config
	events  chan model.Event
}

func newService(t *testing.T, guarded bool) (service.Reservation, *fixture) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Clear(gomock.Any(), lessonService.CachePrefix+constant.Asterix).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Booking.GuardedClaim = guarded
	cfg.Kafka.Topics.ReservationEvents = topic

	f := &fixture{
		repo:    reservationMocks.NewMockReservation(ctrl),
		kafka:   kafkaMocks.NewMockClient(ctrl),
		metrics: metricsMocks.NewMockMetrics(ctrl),
		cfg:     cfg,
		events:  make(chan model.Event, 4),
	}

	f.kafka.EXPECT().SendMessages(gomock.Any(), topic, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			for _, message := range messages {
				f.events <- message.Value.(model.Event)
			}

			return nil
		}).AnyTimes()

	return service.New(f.repo, f.kafka, mockCache, f.metrics, cfg, mocks.NewOtel()), f
}

func (f *fixture) nextEvent(t *testing.T) model.Event {
	t.Helper()

	select {
	case event := <-f.events:
		return event
	case <-time.After(time.Second):
		t.Fatal("no reservation event published")

		return model.Event{}
	}
}

func signedIn(userID string) context.Context {
	return session.WithUser(context.Background(), session.User{ID: userID, Role: constant.RoleUser})
}

func TestReservationService_Book(t *testing.T) {
	req := dto.BookLessonRequest{LessonID: lessonID}

	t.Run("default mode inserts one pending reservation and no lesson update", func(t *testing.T) {
		svc, f := newService(t, false)

		var inserted model.Reservation

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, reservation model.Reservation) error {
				inserted = reservation

				return nil
			})
		f.metrics.EXPECT().BookingAttempt(metrics.BookingBooked)

		res, err := svc.Book(signedIn(learnerID), req)
		require.NoError(t, err)

		assert.Equal(t, learnerID, inserted.UserID)
		assert.Equal(t, lessonID, inserted.LessonID)
		assert.Equal(t, model.StatusPending, inserted.Status)
		assert.Equal(t, inserted.ID, res.ID)
		assert.NotEmpty(t, res.CreatedAt)

		event := f.nextEvent(t)
		assert.Equal(t, model.EventCreated, event.Type)
		assert.Equal(t, lessonID, event.LessonID)
		assert.Equal(t, model.StatusPending, event.To)
	})

	t.Run("guarded mode claims the lesson", func(t *testing.T) {
		svc, f := newService(t, true)

		f.repo.EXPECT().ClaimAndInsert(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.metrics.EXPECT().BookingAttempt(metrics.BookingBooked)

		_, err := svc.Book(signedIn(learnerID), req)
		require.NoError(t, err)
		f.nextEvent(t)
	})

	t.Run("guarded mode conflict", func(t *testing.T) {
		svc, f := newService(t, true)

		f.repo.EXPECT().ClaimAndInsert(gomock.Any(), gomock.Any(), gomock.Any()).Return(repository.ErrLessonUnavailable)
		f.metrics.EXPECT().BookingAttempt(metrics.BookingUnavailable)

		_, err := svc.Book(signedIn(learnerID), req)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("store rejection is a generic failure", func(t *testing.T) {
		svc, f := newService(t, false)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("insert or update on table violates foreign key constraint"))
		f.metrics.EXPECT().BookingAttempt(metrics.BookingFailed)

		_, err := svc.Book(signedIn(learnerID), req)
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
		assert.Equal(t, "failed to book lesson", err.Error())
	})

	t.Run("anonymous caller", func(t *testing.T) {
		svc, _ := newService(t, false)

		_, err := svc.Book(context.Background(), req)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestReservationService_ConcurrentBooking(t *testing.T) {
	tests := []struct {
		name        string
		guarded     bool
		wantBooked  int32
		wantRejects int32
	}{
		{name: "default mode lets both through", guarded: false, wantBooked: 2, wantRejects: 0},
		{name: "guarded mode admits exactly one", guarded: true, wantBooked: 1, wantRejects: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, f := newService(t, tt.guarded)

			var (
				mu      sync.Mutex
				claimed bool
			)

			f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			f.repo.EXPECT().ClaimAndInsert(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(context.Context, model.Reservation, string) error {
					mu.Lock()
					defer mu.Unlock()

					if claimed {
						return repository.ErrLessonUnavailable
					}

					claimed = true

					return nil
				}).AnyTimes()
			f.metrics.EXPECT().BookingAttempt(gomock.Any()).AnyTimes()

			var booked, rejected atomic.Int32

			var wg sync.WaitGroup

			for _, user := range []string{"user-a", "user-b"} {
				wg.Add(1)

				go func() {
					defer wg.Done()

					_, err := svc.Book(signedIn(user), dto.BookLessonRequest{LessonID: lessonID})

					switch {
					case err == nil:
						booked.Add(1)
					case failure.GetCode(err) == http.StatusConflict:
						rejected.Add(1)
					}
				}()
			}

			wg.Wait()

			assert.Equal(t, tt.wantBooked, booked.Load())
			assert.Equal(t, tt.wantRejects, rejected.Load())

			for range tt.wantBooked {
				f.nextEvent(t)
			}
		})
	}
}

func TestReservationService_Cancel(t *testing.T) {
	owned := func(status model.Status) model.Reservation {
		return model.Reservation{ID: "r-1", UserID: learnerID, LessonID: lessonID, Status: status}
	}

	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantCode  int
		wantEvent bool
	}{
		{
			name: "owner cancels a confirmed reservation and frees the lesson",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), repository.OwnedBy("r-1", learnerID)).Return(owned(model.StatusConfirmed), nil)
				f.repo.EXPECT().Transition(gomock.Any(), owned(model.StatusConfirmed), model.StatusCancelled, true, learnerID).Return(nil)
			},
			wantEvent: true,
		},
		{
			name: "someone else's reservation is not found",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Reservation{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "completed reservations stay completed",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(owned(model.StatusCompleted), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "concurrent change",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(owned(model.StatusPending), nil)
				f.repo.EXPECT().Transition(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(repository.ErrStaleStatus)
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, f := newService(t, false)
			tt.setupMock(f)

			err := svc.Cancel(signedIn(learnerID), "r-1")
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)

			if tt.wantEvent {
				event := f.nextEvent(t)
				assert.Equal(t, model.EventStatusChanged, event.Type)
				assert.Equal(t, model.StatusConfirmed, event.From)
				assert.Equal(t, model.StatusCancelled, event.To)
			}
		})
	}
}

func TestReservationService_UpdateStatus(t *testing.T) {
	adminCtx := session.WithUser(context.Background(), session.User{ID: "admin-1", Role: constant.RoleAdmin})
	pending := model.Reservation{ID: "r-1", UserID: learnerID, LessonID: lessonID, Status: model.StatusPending}

	t.Run("pending to confirmed keeps the lesson claimed", func(t *testing.T) {
		svc, f := newService(t, false)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending, nil)
		f.repo.EXPECT().Transition(gomock.Any(), pending, model.StatusConfirmed, false, "admin-1").Return(nil)

		res, err := svc.UpdateStatus(adminCtx, "r-1", dto.UpdateStatusRequest{Status: model.StatusConfirmed})
		require.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, res.Status)

		event := f.nextEvent(t)
		assert.Equal(t, model.StatusPending, event.From)
		assert.Equal(t, model.StatusConfirmed, event.To)
		assert.Equal(t, learnerID, event.UserID)
	})

	t.Run("pending cannot jump to completed", func(t *testing.T) {
		svc, f := newService(t, false)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending, nil)

		_, err := svc.UpdateStatus(adminCtx, "r-1", dto.UpdateStatusRequest{Status: model.StatusCompleted})
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown reservation", func(t *testing.T) {
		svc, f := newService(t, false)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Reservation{}, nil)

		_, err := svc.UpdateStatus(adminCtx, "missing", dto.UpdateStatusRequest{Status: model.StatusConfirmed})
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestReservationService_List(t *testing.T) {
	t.Run("mine is scoped to the session user with a qualified default sort", func(t *testing.T) {
		svc, f := newService(t, false)

		f.repo.EXPECT().Count(gomock.Any(), repository.ByUser(learnerID)).Return(1, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), repository.ByUser(learnerID)).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Reservation, error) {
				assert.Equal(t, "reservations.created_at", params.SortBy)
				assert.Equal(t, gDto.SortDirDesc, params.SortDir)

				return []model.Reservation{{ID: "r-1", UserID: learnerID, Status: model.StatusPending}}, nil
			})

		res, err := svc.ListMine(signedIn(learnerID), gDto.QueryParams{Page: 1, Limit: 10, SortBy: "id; DROP TABLE users"}, "")
		require.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		assert.Len(t, res.Reservations, 1)
	})

	t.Run("unknown status filter", func(t *testing.T) {
		svc, _ := newService(t, false)

		_, err := svc.ListAll(context.Background(), gDto.QueryParams{}, model.Status("archived"))
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
