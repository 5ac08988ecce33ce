//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"gather/config"
	"gather/infras/jwt"
	"gather/infras/otel"
	"gather/infras/postgres"
	"gather/infras/redis"
	"gather/infras/s3"
	"gather/permissions"
	"gather/shared/cache"
	"gather/transport/http"
	"gather/transport/http/middleware"
	"gather/transport/http/router"

	authService "gather/internal/domains/auth/service"
	bookingRepository "gather/internal/domains/booking/repository"
	bookingService "gather/internal/domains/booking/service"
	eventRepository "gather/internal/domains/event/repository"
	eventService "gather/internal/domains/event/service"
	userRepository "gather/internal/domains/user/repository"
	userService "gather/internal/domains/user/service"

	authHandler "gather/internal/handlers/auth"
	bookingHandler "gather/internal/handlers/booking"
	eventHandler "gather/internal/handlers/event"
	healthHandler "gather/internal/handlers/health"
	userHandler "gather/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var eventDomain = wire.NewSet(
	eventRepository.New,
	eventService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	eventDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	eventHandler.New,
	bookingHandler.New,
	healthHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
