package service

import (
	"context"
	"fmt"

	"kingdom/config"
	"kingdom/infras/otel"
	"kingdom/internal/domains/pastor/model"
	"kingdom/internal/domains/pastor/model/dto"
	"kingdom/internal/domains/pastor/repository"
	"kingdom/shared"
	"kingdom/shared/cache"
	"kingdom/shared/clock"
	"kingdom/shared/constant"
	gDto "kingdom/shared/dto"
	"kingdom/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetPastor    = "pastor:get"
	cacheGetAllPastor = "pastor:gets"
	cacheCountPastor  = "pastor:count"

	// members cache their assigned pastor id
	cacheMember = "member:"
)

type Pastor interface {
	Create(ctx context.Context, req dto.CreatePastorRequest) (dto.PastorResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPastorsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PastorResponse, error)
	Update(ctx context.Context, req dto.UpdatePastorRequest, id string) (dto.PastorResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Pastor
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	clock clock.Clock
}

func New(repo repository.Pastor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, clk clock.Clock) Pastor {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		clock: clk,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePastorRequest) (res dto.PastorResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	pastor := req.ToModel(user, s.clock.Now())

	if err = s.repo.Insert(ctx, pastor); err != nil {
		log.Error().Err(err).Msg("failed to create pastor")

		return res, failure.FromPostgres(err, constant.Empty) //nolint:wrapcheck
	}

	res.FromModel(pastor)

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidateLists(c)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPastorsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPastor, req, filter)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count pastors: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get pastors")

		return res, fmt.Errorf("failed to get pastors: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save pastors to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPastor, gDto.QueryParams{}, filter)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count pastors")

		return res, fmt.Errorf("failed to count pastors: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save pastor count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PastorResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPastor, id)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		return res, nil
	}

	pastor, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get pastor")

		return res, fmt.Errorf("failed to get pastor: %w", err)
	}

	if pastor.ID == constant.Empty {
		return res, failure.NotFound("pastor not found") // nolint:wrapcheck
	}

	res.FromModel(pastor)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save pastor to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePastorRequest, id string) (res dto.PastorResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check pastor existence")

		return res, fmt.Errorf("failed to check pastor existence: %w", err)
	}

	if !exist {
		return res, failure.NotFound("pastor not found") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Update(ctx, shared.TransformFields(req.Normalize(), user, s.clock.Now()), filter); err != nil {
		log.Error().Err(err).Msg("failed to update pastor")

		return res, failure.FromPostgres(err, constant.Empty) //nolint:wrapcheck
	}

	pastor, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload pastor")

		return res, fmt.Errorf("failed to reload pastor: %w", err)
	}

	res.FromModel(pastor)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPastor, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete pastor cache")
		}

		s.invalidateLists(c)
	}()

	return res, nil
}

// Delete removes the pastor. Assigned members are unassigned by the foreign key.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if pastor exists")

		return fmt.Errorf("failed to check if pastor exists: %w", err)
	}

	if !exist {
		return failure.NotFound("pastor not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete pastor")

		return fmt.Errorf("failed to delete pastor: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPastor, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete pastor from cache")
		}

		s.invalidateLists(c)
		shared.InvalidateCaches(c, s.cache, cacheMember)
	}()

	return nil
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllPastor)
	shared.InvalidateCaches(ctx, s.cache, cacheCountPastor)
}
