package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"gather/config"
	"gather/infras/otel/mocks"
	bookingMocks "gather/internal/domains/booking/mocks"
	"gather/internal/domains/booking/model"
	"gather/internal/domains/booking/model/dto"
	"gather/internal/domains/booking/service"
	eventMocks "gather/internal/domains/event/mocks"
	cacheMocks "gather/shared/cache/mocks"
	"gather/shared/cache"
	"gather/shared/failure"
	gModel "gather/shared/model"
	"gather/shared/timezone"
)

func newBookingService(t *testing.T) (service.Booking, *bookingMocks.MockBooking, *eventMocks.MockEvent, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockEventRepo := eventMocks.NewMockEvent(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockEventRepo, cfg, mockCache, mockOtel)

	return svc, mockRepo, mockEventRepo, mockCache
}

func TestBookingService_Upsert(t *testing.T) {
	owner := gModel.Principal{UserID: 7, Email: "owner@example.com", Role: "USER"}

	joined := model.BookingWithEvent{
		Booking: model.Booking{
			ID:        42,
			UserID:    7,
			EventID:   3,
			Status:    "going",
			CreatedAt: timezone.Now(),
		},
		EventTitle:    "Go Meetup",
		AuthorID:      1,
		AuthorEmail:   "author@example.com",
		AttendeeCount: 5,
	}

	tests := []struct {
		name       string
		req        dto.CreateBookingRequest
		setupMock  func(repo *bookingMocks.MockBooking, eventRepo *eventMocks.MockEvent, c *cacheMocks.MockRedisCache)
		wantErr    bool
		wantCode   int
		wantResult string
	}{
		{
			name: "creates a booking when none exists for the pair",
			req:  dto.CreateBookingRequest{EventID: 3},
			setupMock: func(repo *bookingMocks.MockBooking, eventRepo *eventMocks.MockEvent, c *cacheMocks.MockRedisCache) {
				eventRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(42), nil)
				repo.EXPECT().GetJoined(gomock.Any(), int64(42)).Return(joined, nil)
				c.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantResult: dto.ResultCreated,
		},
		{
			name: "updates status when a booking for the pair already exists",
			req:  dto.CreateBookingRequest{EventID: 3, Status: "maybe"},
			setupMock: func(repo *bookingMocks.MockBooking, eventRepo *eventMocks.MockEvent, c *cacheMocks.MockRedisCache) {
				eventRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(joined.Booking, nil)
				repo.EXPECT().
					Update(gomock.Any(), map[string]any{model.FieldStatus: "maybe"}, gomock.Any()).
					Return(nil)
				repo.EXPECT().GetJoined(gomock.Any(), int64(42)).Return(joined, nil)
				c.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantResult: dto.ResultUpdated,
		},
		{
			name: "rejects a booking for a missing event",
			req:  dto.CreateBookingRequest{EventID: 99},
			setupMock: func(repo *bookingMocks.MockBooking, eventRepo *eventMocks.MockEvent, c *cacheMocks.MockRedisCache) {
				eventRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "converts a lost insert race into the update path",
			req:  dto.CreateBookingRequest{EventID: 3},
			setupMock: func(repo *bookingMocks.MockBooking, eventRepo *eventMocks.MockEvent, c *cacheMocks.MockRedisCache) {
				eventRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(int64(0), &pq.Error{Code: "23505"})
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(joined.Booking, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().GetJoined(gomock.Any(), int64(42)).Return(joined, nil)
				c.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantResult: dto.ResultUpdated,
		},
		{
			name: "propagates repository errors",
			req:  dto.CreateBookingRequest{EventID: 3},
			setupMock: func(repo *bookingMocks.MockBooking, eventRepo *eventMocks.MockEvent, c *cacheMocks.MockRedisCache) {
				eventRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, eventRepo, c := newBookingService(t)
			tt.setupMock(repo, eventRepo, c)

			res, err := svc.Upsert(context.Background(), owner, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantResult, res.Result)
			assert.Equal(t, int64(42), res.Booking.ID)
			assert.Equal(t, joined.EventTitle, res.Booking.Event.Title)
		})
	}
}

func TestBookingService_Update_OwnershipIsRoleBlind(t *testing.T) {
	stored := model.Booking{ID: 42, UserID: 7, EventID: 3, Status: "going"}

	tests := []struct {
		name      string
		principal gModel.Principal
		setupMock func(repo *bookingMocks.MockBooking, c *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name:      "owner may update",
			principal: gModel.Principal{UserID: 7, Role: "USER"},
			setupMock: func(repo *bookingMocks.MockBooking, c *cacheMocks.MockRedisCache) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				repo.EXPECT().
					Update(gomock.Any(), map[string]any{model.FieldStatus: "not going"}, gomock.Any()).
					Return(nil)
				repo.EXPECT().GetJoined(gomock.Any(), int64(42)).Return(model.BookingWithEvent{Booking: stored}, nil)
				c.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name:      "another user is rejected",
			principal: gModel.Principal{UserID: 8, Role: "USER"},
			setupMock: func(repo *bookingMocks.MockBooking, c *cacheMocks.MockRedisCache) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name:      "an admin who is not the owner is rejected too",
			principal: gModel.Principal{UserID: 9, Role: "ADMIN"},
			setupMock: func(repo *bookingMocks.MockBooking, c *cacheMocks.MockRedisCache) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name:      "missing booking yields not found",
			principal: gModel.Principal{UserID: 7, Role: "USER"},
			setupMock: func(repo *bookingMocks.MockBooking, c *cacheMocks.MockRedisCache) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, c := newBookingService(t)
			tt.setupMock(repo, c)

			_, err := svc.Update(context.Background(), tt.principal, 42, dto.UpdateBookingRequest{Status: "not going"})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Delete(t *testing.T) {
	stored := model.Booking{ID: 42, UserID: 7, EventID: 3, Status: "going"}

	tests := []struct {
		name      string
		principal gModel.Principal
		setupMock func(repo *bookingMocks.MockBooking, c *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name:      "owner may cancel",
			principal: gModel.Principal{UserID: 7, Role: "USER"},
			setupMock: func(repo *bookingMocks.MockBooking, c *cacheMocks.MockRedisCache) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				c.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name:      "an admin who is not the owner is rejected",
			principal: gModel.Principal{UserID: 9, Role: "ADMIN"},
			setupMock: func(repo *bookingMocks.MockBooking, c *cacheMocks.MockRedisCache) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name:      "missing booking yields not found",
			principal: gModel.Principal{UserID: 7, Role: "USER"},
			setupMock: func(repo *bookingMocks.MockBooking, c *cacheMocks.MockRedisCache) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, c := newBookingService(t)
			tt.setupMock(repo, c)

			err := svc.Delete(context.Background(), tt.principal, 42)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_GetAll(t *testing.T) {
	owner := gModel.Principal{UserID: 7, Role: "USER"}

	t.Run("returns the caller's joined bookings", func(t *testing.T) {
		svc, repo, _, c := newBookingService(t)

		c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		repo.EXPECT().GetAllJoined(gomock.Any(), int64(7)).Return([]model.BookingWithEvent{
			{Booking: model.Booking{ID: 2, UserID: 7, EventID: 3, Status: "going"}, EventTitle: "Go Meetup"},
			{Booking: model.Booking{ID: 1, UserID: 7, EventID: 4, Status: "maybe"}, EventTitle: "Gophercon"},
		}, nil)
		c.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.GetAll(context.Background(), owner)

		assert.NoError(t, err)
		assert.Len(t, res.Bookings, 2)
		assert.Equal(t, "Go Meetup", res.Bookings[0].Event.Title)
	})

	t.Run("an empty list is not an error", func(t *testing.T) {
		svc, repo, _, c := newBookingService(t)

		c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		repo.EXPECT().GetAllJoined(gomock.Any(), int64(7)).Return(nil, nil)
		c.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.GetAll(context.Background(), owner)

		assert.NoError(t, err)
		assert.Empty(t, res.Bookings)
	})
}
