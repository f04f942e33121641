package service_test

import (
	"context"
	"drivingschool/config"
	"drivingschool/infras/otel/mocks"
	"drivingschool/infras/s3"
	s3Mocks "drivingschool/infras/s3/mocks"
	instructorMocks "drivingschool/internal/domains/instructor/mocks"
	"drivingschool/internal/domains/instructor/model"
	"drivingschool/internal/domains/instructor/model/dto"
	"drivingschool/internal/domains/instructor/service"
	cacheMocks "drivingschool/shared/cache/mocks"
	"drivingschool/shared/constant"
	"drivingschool/shared/failure"
	"drivingschool/shared/session"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const pixelPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="

func newService(t *testing.T) (service.Instructor, *instructorMocks.MockInstructor, *cacheMocks.MockRedisCache, *s3Mocks.MockS3) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := instructorMocks.NewMockInstructor(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), service.CachePrefix+constant.Asterix).Return(nil).AnyTimes()

	return service.New(mockRepo, mockCache, mockS3, cfg, mocks.NewOtel()), mockRepo, mockCache, mockS3
}

func adminContext() context.Context {
	return session.WithUser(context.Background(), session.User{ID: "admin-1", Role: constant.RoleAdmin})
}

func TestInstructorService_ListActive(t *testing.T) {
	svc, repo, cache, _ := newService(t)

	cache.EXPECT().Get(gomock.Any(), "instructors:active", gomock.Any()).Return(errors.New("redis: nil"))
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Instructor{
		{ID: "i1", FullName: "Amina Benali", Active: true},
		{ID: "i2", FullName: "Marc Leroy", Active: true},
	}, nil)

	res, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Instructors, 2)
	assert.Equal(t, "Amina Benali", res.Instructors[0].FullName)
}

func TestInstructorService_Create(t *testing.T) {
	req := dto.CreateInstructorRequest{FullName: "Amina Benali", Email: "amina@example.com"}

	t.Run("created active", func(t *testing.T) {
		svc, repo, _, _ := newService(t)

		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.Create(adminContext(), req)
		require.NoError(t, err)
		assert.True(t, res.Active)
		assert.Equal(t, "admin-1", res.CreatedBy)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, repo, _, _ := newService(t)

		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})

		_, err := svc.Create(adminContext(), req)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestInstructorService_UploadPhoto(t *testing.T) {
	oldURL := "https://cdn.example.com/instructors/old.png"

	t.Run("replaces the previous photo", func(t *testing.T) {
		svc, repo, _, storage := newService(t)
		deleted := make(chan string, 1)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Instructor{ID: "i1", PhotoURL: &oldURL}, nil)
		storage.EXPECT().UploadFileBytes(gomock.Any(), "", "instructors", gomock.Any(), "image/png", gomock.Any()).
			Return("https://cdn.example.com/instructors/i1-new.png", nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, "https://cdn.example.com/instructors/i1-new.png", fields[model.FieldPhotoURL])
				assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])

				return nil
			})
		storage.EXPECT().GetObjectNameFromURL("", oldURL).Return("instructors/old.png")
		storage.EXPECT().DeleteFile(gomock.Any(), "", "", "instructors/old.png").
			DoAndReturn(func(_ context.Context, _, _, objectName string) error {
				deleted <- objectName

				return nil
			})

		res, err := svc.UploadPhoto(adminContext(), "i1", dto.UploadPhotoRequest{Photo: pixelPNG})
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/instructors/i1-new.png", res.URL)

		select {
		case name := <-deleted:
			assert.Equal(t, "instructors/old.png", name)
		case <-time.After(time.Second):
			t.Fatal("previous photo was not deleted")
		}
	})

	t.Run("unknown instructor", func(t *testing.T) {
		svc, repo, _, _ := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Instructor{}, nil)

		_, err := svc.UploadPhoto(adminContext(), "missing", dto.UploadPhotoRequest{Photo: pixelPNG})
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("storage not configured", func(t *testing.T) {
		svc, repo, _, storage := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Instructor{ID: "i1"}, nil)
		storage.EXPECT().UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", s3.ErrStorageDisabled)

		_, err := svc.UploadPhoto(adminContext(), "i1", dto.UploadPhotoRequest{Photo: pixelPNG})
		assert.Equal(t, http.StatusNotImplemented, failure.GetCode(err))
	})
}
