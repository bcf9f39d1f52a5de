//go:build wireinject
// +build wireinject

package di

import (
	"patitas/config"
	"patitas/infras/jwt"
	"patitas/infras/kafka"
	"patitas/infras/otel"
	"patitas/infras/postgres"
	"patitas/infras/redis"
	"patitas/infras/s3"
	"patitas/permissions"
	"patitas/shared/cache"
	"patitas/transport/http"
	"patitas/transport/http/middleware"
	"patitas/transport/http/router"

	"github.com/google/wire"

	appointmentRepository "patitas/internal/domains/appointment/repository"
	appointmentService "patitas/internal/domains/appointment/service"
	authService "patitas/internal/domains/auth/service"
	galleryRepository "patitas/internal/domains/gallery/repository"
	galleryService "patitas/internal/domains/gallery/service"
	petRepository "patitas/internal/domains/pet/repository"
	petService "patitas/internal/domains/pet/service"
	userRepository "patitas/internal/domains/user/repository"
	userService "patitas/internal/domains/user/service"

	appointmentHandler "patitas/internal/handlers/appointment"
	authHandler "patitas/internal/handlers/auth"
	galleryHandler "patitas/internal/handlers/gallery"
	petHandler "patitas/internal/handlers/pet"
	userHandler "patitas/internal/handlers/user"
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
	kafka.New,
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

var petDomain = wire.NewSet(
	petRepository.New,
	petService.New,
)

var appointmentDomain = wire.NewSet(
	appointmentRepository.New,
	appointmentService.New,
)

var galleryDomain = wire.NewSet(
	galleryRepository.New,
	galleryService.New,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	petDomain,
	appointmentDomain,
	galleryDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	petHandler.New,
	appointmentHandler.New,
	galleryHandler.New,
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
