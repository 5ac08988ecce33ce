package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"gather/config"
	"gather/infras/otel/mocks"
	s3Mocks "gather/infras/s3/mocks"
	bookingMocks "gather/internal/domains/booking/mocks"
	bookingModel "gather/internal/domains/booking/model"
	eventMocks "gather/internal/domains/event/mocks"
	"gather/internal/domains/event/model"
	"gather/internal/domains/event/model/dto"
	"gather/internal/domains/event/service"
	"gather/shared/cache"
	cacheMocks "gather/shared/cache/mocks"
	gDto "gather/shared/dto"
	"gather/shared/failure"
	gModel "gather/shared/model"
	"gather/shared/timezone"
)

func newEventService(t *testing.T) (service.Event, *eventMocks.MockEvent, *bookingMocks.MockBooking, *cacheMocks.MockRedisCache, *s3Mocks.MockS3) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := eventMocks.NewMockEvent(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockBookingRepo, cfg, mockCache, mockOtel, mockS3)

	return svc, mockRepo, mockBookingRepo, mockCache, mockS3
}

func strPtr(s string) *string { return &s }

func TestEventService_GetAll(t *testing.T) {
	t.Run("lists published events with author and attendee count", func(t *testing.T) {
		svc, repo, _, c, _ := newEventService(t)

		c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).Times(2)
		repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(12, nil)
		repo.EXPECT().GetAllJoined(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.EventWithAuthor{
			{
				Event:         model.Event{ID: 3, Title: "Go Meetup", AuthorID: 1, Published: true},
				AuthorName:    strPtr("Ana"),
				AuthorEmail:   "ana@example.com",
				AttendeeCount: 5,
			},
		}, nil)
		c.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10, Search: "meetup"})

		assert.NoError(t, err)
		assert.Len(t, res.Events, 1)
		assert.Equal(t, 12, res.TotalData)
		assert.Equal(t, 2, res.TotalPage)
		assert.Equal(t, "ana@example.com", res.Events[0].Author.Email)
		assert.Equal(t, 5, res.Events[0].AttendeeCount)
	})
}

func TestEventService_Get(t *testing.T) {
	t.Run("returns the joined detail with attendees", func(t *testing.T) {
		svc, repo, bookingRepo, c, _ := newEventService(t)

		c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		repo.EXPECT().GetJoined(gomock.Any(), int64(3)).Return(model.EventWithAuthor{
			Event:       model.Event{ID: 3, Title: "Go Meetup", AuthorID: 1},
			AuthorEmail: "ana@example.com",
		}, nil)
		bookingRepo.EXPECT().GetAttendees(gomock.Any(), int64(3)).Return([]bookingModel.Attendee{
			{BookingID: 42, Status: "going", UserID: 7, UserEmail: "bob@example.com", CreatedAt: timezone.Now()},
		}, nil)
		c.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.Get(context.Background(), 3)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), res.ID)
		assert.Len(t, res.Attendees, 1)
		assert.Equal(t, "bob@example.com", res.Attendees[0].User.Email)
	})

	t.Run("missing event yields not found", func(t *testing.T) {
		svc, repo, _, c, _ := newEventService(t)

		c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		repo.EXPECT().GetJoined(gomock.Any(), int64(99)).Return(model.EventWithAuthor{}, nil)

		_, err := svc.Get(context.Background(), 99)

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestEventService_Create(t *testing.T) {
	author := gModel.Principal{UserID: 1, Role: "USER"}

	t.Run("creates with the caller as author, published by default", func(t *testing.T) {
		svc, repo, _, c, _ := newEventService(t)

		repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event model.Event) (int64, error) {
				assert.Equal(t, int64(1), event.AuthorID)
				assert.True(t, event.Published)

				return 3, nil
			})
		c.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.Create(context.Background(), author, dto.CreateEventRequest{
			Title:       "Go Meetup",
			Description: "Monthly meetup",
			StartAt:     timezone.Now(),
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(3), res.ID)
	})
}

func TestEventService_Update_AuthorOrAdmin(t *testing.T) {
	stored := model.Event{ID: 3, Title: "Go Meetup", AuthorID: 1, Published: true}

	tests := []struct {
		name      string
		principal gModel.Principal
		setupMock func(repo *eventMocks.MockEvent, c *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name:      "author may update",
			principal: gModel.Principal{UserID: 1, Role: "USER"},
			setupMock: func(repo *eventMocks.MockEvent, c *cacheMocks.MockRedisCache) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				c.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				c.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name:      "an admin who is not the author may update",
			principal: gModel.Principal{UserID: 9, Role: "ADMIN"},
			setupMock: func(repo *eventMocks.MockEvent, c *cacheMocks.MockRedisCache) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				c.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				c.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name:      "an unrelated user is rejected",
			principal: gModel.Principal{UserID: 8, Role: "USER"},
			setupMock: func(repo *eventMocks.MockEvent, c *cacheMocks.MockRedisCache) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name:      "missing event yields not found",
			principal: gModel.Principal{UserID: 1, Role: "USER"},
			setupMock: func(repo *eventMocks.MockEvent, c *cacheMocks.MockRedisCache) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Event{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, c, _ := newEventService(t)
			tt.setupMock(repo, c)

			_, err := svc.Update(context.Background(), tt.principal, 3, dto.UpdateEventRequest{Title: strPtr("Renamed")})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("empty update request is rejected", func(t *testing.T) {
		svc, _, _, _, _ := newEventService(t)

		_, err := svc.Update(context.Background(), gModel.Principal{UserID: 1}, 3, dto.UpdateEventRequest{})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestEventService_Delete(t *testing.T) {
	stored := model.Event{ID: 3, AuthorID: 1}

	t.Run("author may delete", func(t *testing.T) {
		svc, repo, _, c, _ := newEventService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		c.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		c.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Delete(context.Background(), gModel.Principal{UserID: 1, Role: "USER"}, 3)

		assert.NoError(t, err)
	})

	t.Run("an unrelated user is rejected", func(t *testing.T) {
		svc, repo, _, _, _ := newEventService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)

		err := svc.Delete(context.Background(), gModel.Principal{UserID: 8, Role: "USER"}, 3)

		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
	})
}
