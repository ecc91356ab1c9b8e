package service

import (
	"context"
	"fmt"
	"strings"

	"kingdom/config"
	"kingdom/infras/otel"
	bookingModel "kingdom/internal/domains/booking/model"
	bookingRepository "kingdom/internal/domains/booking/repository"
	"kingdom/internal/domains/payment/model"
	"kingdom/internal/domains/payment/model/dto"
	"kingdom/internal/domains/payment/repository"
	"kingdom/shared"
	"kingdom/shared/clock"
	"kingdom/shared/constant"
	gDto "kingdom/shared/dto"
	"kingdom/shared/failure"
	"kingdom/shared/validator"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var errBookingMissing = failure.BadRequestFromString("booking does not exist")

// Payment is not cached; status updates must be visible immediately.
type Payment interface {
	Create(ctx context.Context, req dto.CreatePaymentRequest) (dto.PaymentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPaymentsResponse, error)
	GetByDateRange(ctx context.Context, req gDto.QueryParams, startDate, endDate string) (dto.GetPaymentsResponse, error)
	Get(ctx context.Context, id string) (dto.PaymentResponse, error)
	GetByTransactionReference(ctx context.Context, reference string) (dto.PaymentResponse, error)
	Update(ctx context.Context, req dto.UpdatePaymentRequest, id string) (dto.PaymentResponse, error)
	UpdateStatus(ctx context.Context, id, status, failureReason string) (dto.PaymentResponse, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, startDate, endDate string) (dto.SummaryResponse, error)
}

type serviceImpl struct {
	repo     repository.Payment
	bookings bookingRepository.Booking
	cfg      *config.Config
	otel     otel.Otel
	clock    clock.Clock
}

func New(repo repository.Payment, bookings bookingRepository.Booking, cfg *config.Config, otel otel.Otel, clk clock.Clock) Payment {
	return &serviceImpl{
		repo:     repo,
		bookings: bookings,
		cfg:      cfg,
		otel:     otel,
		clock:    clk,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePaymentRequest) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.bookings.Exist(ctx, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking existence")

		return res, fmt.Errorf("failed to check booking existence: %w", err)
	}

	if !exist {
		return res, errBookingMissing
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	payment := req.ToModel(user, s.cfg.App.Payment.ReferencePrefix, s.clock.Now())

	if err = s.repo.Insert(ctx, payment); err != nil {
		log.Error().Err(err).Msg("failed to create payment")

		if failure.IsForeignKeyViolation(err) {
			return res, errBookingMissing
		}

		return res, failure.FromPostgres(err, constant.Empty) //nolint:wrapcheck
	}

	res.FromModel(payment)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPaymentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count payments")

		return res, fmt.Errorf("failed to count payments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payments")

		return res, fmt.Errorf("failed to get payments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) GetByDateRange(ctx context.Context, req gDto.QueryParams, startDate, endDate string) (res dto.GetPaymentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByDateRange")
	defer scope.End()
	defer scope.TraceIfError(err)

	from, until, err := shared.ParseDateRange(startDate, endDate)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	return s.GetAll(ctx, req, dto.Filter{PaidFrom: &from, PaidUntil: &until}.ToFilterGroup())
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.getBy(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
}

func (s *serviceImpl) GetByTransactionReference(ctx context.Context, reference string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByTransactionReference")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.getBy(ctx, shared.FilterByField(model.FieldTransactionReference, reference, model.TableName))
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePaymentRequest, id string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return s.update(ctx, id, shared.TransformFields(req, user, s.clock.Now()))
}

// UpdateStatus moves a payment to status. COMPLETED stamps payment_date, FAILED records the reason.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id, status, failureReason string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	status = strings.ToUpper(status)

	if err = validator.ValidateVar(status, "required,"+model.TagStatus); err != nil {
		return res, err //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := s.clock.Now()

	fields := map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	switch status {
	case model.StatusCompleted:
		fields[model.FieldPaymentDate] = now
	case model.StatusFailed:
		if reason := strings.TrimSpace(failureReason); reason != "" {
			fields[model.FieldFailureReason] = reason
		}
	}

	return s.update(ctx, id, fields)
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
		log.Error().Err(err).Msg("failed to delete payment")

		return fmt.Errorf("failed to delete payment: %w", err)
	}

	return nil
}

// Summary totals the completed payments dated within [startDate, endDate], overall and per method.
func (s *serviceImpl) Summary(ctx context.Context, startDate, endDate string) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summary")
	defer scope.End()
	defer scope.TraceIfError(err)

	from, until, err := shared.ParseDateRange(startDate, endDate)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	filter := dto.Filter{Status: model.StatusCompleted, PaidFrom: &from, PaidUntil: &until}.ToFilterGroup()

	groups, err := s.repo.SumGroupBy(ctx, model.FieldPaymentMethod, model.FieldAmount, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to summarize payments by method")

		return res, fmt.Errorf("failed to summarize payments by method: %w", err)
	}

	res.StartDate = startDate
	res.EndDate = endDate
	res.TotalAmount = decimal.Zero
	res.ByMethod = make([]dto.MethodSummary, len(groups))

	for i, group := range groups {
		res.ByMethod[i] = dto.MethodSummary{Method: group.Key, Count: group.Count, Total: group.Total}
		res.Count += group.Count
		res.TotalAmount = res.TotalAmount.Add(group.Total)
	}

	return res, nil
}

func (s *serviceImpl) getBy(ctx context.Context, filter gDto.FilterGroup) (res dto.PaymentResponse, err error) {
	payment, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return res, fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.ID == constant.Empty {
		return res, failure.NotFound("payment not found") // nolint:wrapcheck
	}

	res.FromModel(payment)

	return res, nil
}

func (s *serviceImpl) update(ctx context.Context, id string, fields map[string]any) (res dto.PaymentResponse, err error) {
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureExists(ctx, filter); err != nil {
		return res, err
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update payment")

		return res, failure.FromPostgres(err, constant.Empty) //nolint:wrapcheck
	}

	return s.getBy(ctx, filter)
}

func (s *serviceImpl) ensureExists(ctx context.Context, filter gDto.FilterGroup) error {
	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check payment existence")

		return fmt.Errorf("failed to check payment existence: %w", err)
	}

	if !exist {
		return failure.NotFound("payment not found") // nolint:wrapcheck
	}

	return nil
}
