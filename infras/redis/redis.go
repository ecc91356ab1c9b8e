package redis

import (
	"context"
	"net"
	"time"

	"kingdom/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	dialTimeout  = 5 * time.Second
	ioTimeout    = 3 * time.Second
	pingAttempts = 3
	pingWait     = time.Second
)

// Options maps the primary redis settings onto client options.
func Options(config *config.Config) *goRedis.Options {
	primary := config.Cache.Redis.Primary

	return &goRedis.Options{
		Addr:         net.JoinHostPort(primary.Host, primary.Port),
		Password:     primary.Password,
		DB:           primary.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
	}
}

// New connects to the primary redis, retrying the ping a few times before giving up.
// The cache backs the rate limiter and read-through lookups, so boot stops without it.
func New(config *config.Config) *goRedis.Client {
	opts := Options(config)
	client := goRedis.NewClient(opts)

	var err error

	for attempt := range pingAttempts {
		ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
		err = client.Ping(ctx).Err()

		cancel()

		if err == nil {
			log.Info().Int("db", opts.DB).Str("addr", opts.Addr).Msg("Connected to Redis")

			return client
		}

		log.Warn().Err(err).Str("addr", opts.Addr).Int("attempt", attempt+1).Msg("Failed to ping Redis, retrying")
		time.Sleep(pingWait)
	}

	log.Fatal().Err(err).Str("addr", opts.Addr).Msg("Failed to connect to Redis")

	return nil
}
