//go:build wireinject
// +build wireinject

package di

import (
	"kingdom/config"
	"kingdom/infras/jwt"
	"kingdom/infras/kafka"
	"kingdom/infras/otel"
	"kingdom/infras/postgres"
	"kingdom/infras/redis"
	"kingdom/infras/s3"
	"kingdom/permissions"
	"kingdom/shared/cache"
	"kingdom/shared/clock"
	"kingdom/transport/http"
	"kingdom/transport/http/middleware"
	"kingdom/transport/http/router"

	authService "kingdom/internal/domains/auth/service"
	"kingdom/internal/domains/booking/availability"
	bookingRepository "kingdom/internal/domains/booking/repository"
	bookingService "kingdom/internal/domains/booking/service"
	donationRepository "kingdom/internal/domains/donation/repository"
	donationService "kingdom/internal/domains/donation/service"
	memberRepository "kingdom/internal/domains/member/repository"
	memberService "kingdom/internal/domains/member/service"
	pastorRepository "kingdom/internal/domains/pastor/repository"
	pastorService "kingdom/internal/domains/pastor/service"
	paymentRepository "kingdom/internal/domains/payment/repository"
	paymentService "kingdom/internal/domains/payment/service"
	reportService "kingdom/internal/domains/report/service"
	roomRepository "kingdom/internal/domains/room/repository"
	roomService "kingdom/internal/domains/room/service"
	userRepository "kingdom/internal/domains/user/repository"
	userService "kingdom/internal/domains/user/service"

	authHandler "kingdom/internal/handlers/auth"
	bookingHandler "kingdom/internal/handlers/booking"
	donationHandler "kingdom/internal/handlers/donation"
	memberHandler "kingdom/internal/handlers/member"
	pastorHandler "kingdom/internal/handlers/pastor"
	paymentHandler "kingdom/internal/handlers/payment"
	reportHandler "kingdom/internal/handlers/report"
	roomHandler "kingdom/internal/handlers/room"
	userHandler "kingdom/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.Transactor), new(*postgres.Connection)),
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
	clock.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	availability.New,
	bookingService.New,
)

var congregationDomain = wire.NewSet(
	pastorRepository.New,
	pastorService.New,
	memberRepository.New,
	memberService.New,
	donationRepository.New,
	donationService.New,
)

var financeDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
	reportService.New,
)

var domains = wire.NewSet(
	userDomain,
	roomDomain,
	bookingDomain,
	congregationDomain,
	financeDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	roomHandler.New,
	bookingHandler.New,
	memberHandler.New,
	pastorHandler.New,
	donationHandler.New,
	paymentHandler.New,
	reportHandler.New,
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
