package service

import (
	"context"
	"fmt"
	"strings"

	"kingdom/config"
	"kingdom/infras/otel"
	"kingdom/internal/domains/member/model"
	"kingdom/internal/domains/member/model/dto"
	"kingdom/internal/domains/member/repository"
	pastorModel "kingdom/internal/domains/pastor/model"
	pastorRepository "kingdom/internal/domains/pastor/repository"
	"kingdom/shared"
	"kingdom/shared/cache"
	"kingdom/shared/clock"
	"kingdom/shared/constant"
	gDto "kingdom/shared/dto"
	"kingdom/shared/failure"
	"kingdom/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetMember    = "member:get"
	cacheGetAllMember = "member:gets"
	cacheCountMember  = "member:count"
)

type Member interface {
	Create(ctx context.Context, req dto.CreateMemberRequest) (dto.MemberResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetMembersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.MemberResponse, error)
	GetByEmail(ctx context.Context, email string) (dto.MemberResponse, error)
	Update(ctx context.Context, req dto.UpdateMemberRequest, id string) (dto.MemberResponse, error)
	UpdateVetting(ctx context.Context, id, status string) (dto.MemberResponse, error)
	AssignPastor(ctx context.Context, id, pastorID string) (dto.MemberResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo    repository.Member
	pastors pastorRepository.Pastor
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
	clock   clock.Clock
}

func New(
	repo repository.Member,
	pastors pastorRepository.Pastor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	clk clock.Clock,
) Member {
	return &serviceImpl{
		repo:    repo,
		pastors: pastors,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
		clock:   clk,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateMemberRequest) (res dto.MemberResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.PastorID != nil {
		if err = s.ensurePastor(ctx, *req.PastorID); err != nil {
			return res, err
		}
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	member := req.ToModel(user, s.clock.Now())

	if err = s.repo.Insert(ctx, member); err != nil {
		log.Error().Err(err).Msg("failed to create member")

		return res, failure.FromPostgres(err, constant.Empty) //nolint:wrapcheck
	}

	res.FromModel(member)

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidateLists(c)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetMembersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllMember, req, filter)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count members: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get members")

		return res, fmt.Errorf("failed to get members: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save members to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountMember, gDto.QueryParams{}, filter)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count members")

		return res, fmt.Errorf("failed to count members: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save member count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.MemberResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.getBy(ctx, shared.BuildCacheKey(cacheGetMember, id), shared.FilterByID(id, model.FieldID, model.TableName))
}

func (s *serviceImpl) GetByEmail(ctx context.Context, email string) (res dto.MemberResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByEmail")
	defer scope.End()
	defer scope.TraceIfError(err)

	email = strings.ToLower(email)

	return s.getBy(ctx, shared.BuildCacheKey(cacheGetMember, "email", email), shared.FilterByField(model.FieldEmail, email, model.TableName))
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateMemberRequest, id string) (res dto.MemberResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return s.update(ctx, id, shared.TransformFields(req.Normalize(), user, s.clock.Now()))
}

// UpdateVetting sets the vetting status. Approval stamps approved_at.
func (s *serviceImpl) UpdateVetting(ctx context.Context, id, status string) (res dto.MemberResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateVetting")
	defer scope.End()
	defer scope.TraceIfError(err)

	status = strings.ToUpper(status)

	if err = validator.ValidateVar(status, "required,"+model.TagVettingStatus); err != nil {
		return res, err //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := s.clock.Now()

	fields := map[string]any{
		model.FieldVettingStatus: status,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	if status == model.VettingApproved {
		fields[model.FieldApprovedAt] = now
	}

	return s.update(ctx, id, fields)
}

func (s *serviceImpl) AssignPastor(ctx context.Context, id, pastorID string) (res dto.MemberResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AssignPastor")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.ensurePastor(ctx, pastorID); err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return s.update(ctx, id, map[string]any{
		model.FieldPastorID:      pastorID,
		constant.FieldModifiedAt: s.clock.Now(),
		constant.FieldModifiedBy: user,
	})
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureExists(ctx, filter); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		if failure.IsForeignKeyViolation(err) {
			return failure.BadRequestFromString("member still has donations") //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete member")

		return fmt.Errorf("failed to delete member: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c)
	}()

	return nil
}

func (s *serviceImpl) getBy(ctx context.Context, cacheKey string, filter gDto.FilterGroup) (res dto.MemberResponse, err error) {
	if s.cache.Get(ctx, cacheKey, &res) == nil {
		return res, nil
	}

	member, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get member")

		return res, fmt.Errorf("failed to get member: %w", err)
	}

	if member.ID == constant.Empty {
		return res, failure.NotFound("member not found") // nolint:wrapcheck
	}

	res.FromModel(member)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save member to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) update(ctx context.Context, id string, fields map[string]any) (res dto.MemberResponse, err error) {
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureExists(ctx, filter); err != nil {
		return res, err
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update member")

		return res, failure.FromPostgres(err, constant.Empty) //nolint:wrapcheck
	}

	member, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload member")

		return res, fmt.Errorf("failed to reload member: %w", err)
	}

	res.FromModel(member)

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c)
	}()

	return res, nil
}

func (s *serviceImpl) ensureExists(ctx context.Context, filter gDto.FilterGroup) error {
	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check member existence")

		return fmt.Errorf("failed to check member existence: %w", err)
	}

	if !exist {
		return failure.NotFound("member not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) ensurePastor(ctx context.Context, pastorID string) error {
	exist, err := s.pastors.Exist(ctx, shared.FilterByID(pastorID, pastorModel.FieldID, pastorModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check pastor existence")

		return fmt.Errorf("failed to check pastor existence: %w", err)
	}

	if !exist {
		return failure.NotFound("pastor not found") // nolint:wrapcheck
	}

	return nil
}

// invalidate drops every member entry. Lookups by email share the get prefix.
func (s *serviceImpl) invalidate(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetMember)
	s.invalidateLists(ctx)
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllMember)
	shared.InvalidateCaches(ctx, s.cache, cacheCountMember)
}
