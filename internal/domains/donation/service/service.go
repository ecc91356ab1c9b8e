package service

import (
	"context"
	"fmt"

	"kingdom/config"
	"kingdom/infras/otel"
	"kingdom/internal/domains/donation/model"
	"kingdom/internal/domains/donation/model/dto"
	"kingdom/internal/domains/donation/repository"
	memberModel "kingdom/internal/domains/member/model"
	memberRepository "kingdom/internal/domains/member/repository"
	"kingdom/shared"
	"kingdom/shared/clock"
	"kingdom/shared/constant"
	gDto "kingdom/shared/dto"
	"kingdom/shared/failure"

	"github.com/rs/zerolog/log"
)

var errMemberMissing = failure.BadRequestFromString("member does not exist")

// Donation reads go straight to the database; donation totals must never be stale.
type Donation interface {
	Create(ctx context.Context, req dto.CreateDonationRequest) (dto.DonationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetDonationsResponse, error)
	GetByDateRange(ctx context.Context, req gDto.QueryParams, startDate, endDate string) (dto.GetDonationsResponse, error)
	Get(ctx context.Context, id string) (dto.DonationResponse, error)
	Update(ctx context.Context, req dto.UpdateDonationRequest, id string) (dto.DonationResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo    repository.Donation
	members memberRepository.Member
	cfg     *config.Config
	otel    otel.Otel
	clock   clock.Clock
}

func New(repo repository.Donation, members memberRepository.Member, cfg *config.Config, otel otel.Otel, clk clock.Clock) Donation {
	return &serviceImpl{
		repo:    repo,
		members: members,
		cfg:     cfg,
		otel:    otel,
		clock:   clk,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateDonationRequest) (res dto.DonationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.members.Exist(ctx, shared.FilterByID(req.MemberID, memberModel.FieldID, memberModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check member existence")

		return res, fmt.Errorf("failed to check member existence: %w", err)
	}

	if !exist {
		return res, errMemberMissing
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	donation := req.ToModel(user, s.cfg.App.Donation.Currency, s.clock.Now())

	if err = s.repo.Insert(ctx, donation); err != nil {
		log.Error().Err(err).Msg("failed to create donation")

		if failure.IsForeignKeyViolation(err) {
			return res, errMemberMissing
		}

		return res, failure.FromPostgres(err, constant.Empty) //nolint:wrapcheck
	}

	res.FromModel(donation)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetDonationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count donations")

		return res, fmt.Errorf("failed to count donations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get donations")

		return res, fmt.Errorf("failed to get donations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

// GetByDateRange lists donations made from the start of startDate through the end of endDate.
func (s *serviceImpl) GetByDateRange(ctx context.Context, req gDto.QueryParams, startDate, endDate string) (res dto.GetDonationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByDateRange")
	defer scope.End()
	defer scope.TraceIfError(err)

	from, until, err := shared.ParseDateRange(startDate, endDate)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	return s.GetAll(ctx, req, dto.Filter{From: &from, Until: &until}.ToFilterGroup())
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.DonationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	donation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get donation")

		return res, fmt.Errorf("failed to get donation: %w", err)
	}

	if donation.ID == constant.Empty {
		return res, failure.NotFound("donation not found") // nolint:wrapcheck
	}

	res.FromModel(donation)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateDonationRequest, id string) (res dto.DonationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureExists(ctx, filter); err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Update(ctx, shared.TransformFields(req.Normalize(), user, s.clock.Now()), filter); err != nil {
		log.Error().Err(err).Msg("failed to update donation")

		return res, failure.FromPostgres(err, constant.Empty) //nolint:wrapcheck
	}

	return s.Get(ctx, id)
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
		log.Error().Err(err).Msg("failed to delete donation")

		return fmt.Errorf("failed to delete donation: %w", err)
	}

	return nil
}

func (s *serviceImpl) ensureExists(ctx context.Context, filter gDto.FilterGroup) error {
	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check donation existence")

		return fmt.Errorf("failed to check donation existence: %w", err)
	}

	if !exist {
		return failure.NotFound("donation not found") // nolint:wrapcheck
	}

	return nil
}
