package service

import (
	"context"
	"fmt"
	"maps"

	"kingdom/config"
	"kingdom/infras/kafka"
	"kingdom/infras/otel"
	"kingdom/infras/postgres"
	"kingdom/infras/s3"
	"kingdom/internal/domains/booking/availability"
	"kingdom/internal/domains/booking/invoice"
	"kingdom/internal/domains/booking/model"
	"kingdom/internal/domains/booking/model/dto"
	"kingdom/internal/domains/booking/repository"
	roomModel "kingdom/internal/domains/room/model"
	roomRepo "kingdom/internal/domains/room/repository"
	"kingdom/shared"
	"kingdom/shared/cache"
	"kingdom/shared/clock"
	"kingdom/shared/constant"
	gDto "kingdom/shared/dto"
	"kingdom/shared/failure"
	"kingdom/shared/metrics"
	"kingdom/shared/validator"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	invoiceDirectory = "invoices"
)

const (
	msgRoomUnavailable = "room is not available for booking"
	msgRoomBooked      = "room is already booked for the selected dates"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetByReference(ctx context.Context, reference string) (dto.BookingResponse, error)
	ActiveOn(ctx context.Context, date string) ([]dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, id, status string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (dto.BookingStatsResponse, error)
	Revenue(ctx context.Context, startDate, endDate string) (dto.RevenueResponse, error)
	CheckAvailability(ctx context.Context, roomID, checkIn, checkOut string) (dto.AvailabilityResponse, error)
	Invoice(ctx context.Context, id string) (data []byte, fileName string, err error)
	PublishInvoice(ctx context.Context, id string) (dto.InvoiceUploadResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	roomRepo roomRepo.Room
	checker  availability.Checker
	tx       postgres.Transactor
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	clock    clock.Clock
	kafka    kafka.Client
	s3       s3.S3
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	checker availability.Checker,
	tx postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	clk clock.Clock,
	kafka kafka.Client,
	s3 s3.S3,
) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		checker:  checker,
		tx:       tx,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		clock:    clk,
		kafka:    kafka,
		s3:       s3,
	}
}

// Create reserves the room under a row lock: room status, overlap check and insert
// commit together or not at all.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	stay, err := req.Stay()
	if err != nil {
		metrics.IncBookingRejected(metrics.ReasonInvalidStay)

		return res, err //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := s.clock.Now()

	var booking model.Booking

	err = s.tx.WithTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		room, err := s.lockRoom(ctx, sqltx, req.RoomID)
		if err != nil {
			return err
		}

		if room.ID == constant.Empty {
			metrics.IncBookingRejected(metrics.ReasonRoomMissing)

			return failure.BadRequestFromString(msgRoomUnavailable) //nolint:wrapcheck
		}

		if !room.Bookable() {
			metrics.IncBookingRejected(metrics.ReasonRoomUnavailable)

			return failure.BadRequestFromString(msgRoomUnavailable) //nolint:wrapcheck
		}

		if err = s.ensureFree(ctx, sqltx, room.ID, stay, constant.Empty); err != nil {
			return err
		}

		total := room.PricePerNight.Mul(decimal.NewFromInt(int64(stay.Nights())))
		if req.TotalAmount != nil {
			total = *req.TotalAmount
		}

		booking = req.ToModel(user, model.Reference(s.cfg.App.Booking.ReferencePrefix, now), now, stay, total)

		if err = s.repo.InsertTx(ctx, sqltx, booking); err != nil {
			log.Error().Err(err).Msg("failed to create booking")

			return failure.FromPostgres(err, msgRoomBooked) //nolint:wrapcheck
		}

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	metrics.IncBookingCreated(booking.Status)
	res.FromModel(booking)

	s.publish(ctx, dto.NewEvent(dto.EventBookingCreated, booking, constant.Empty, now))

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidateLists(c)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, gDto.QueryParams{}, filter)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.find(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByReference(ctx context.Context, reference string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByReference")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.find(ctx, shared.FilterByField(model.FieldBookingReference, reference, model.TableName))
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) ActiveOn(ctx context.Context, date string) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ActiveOn")
	defer scope.End()
	defer scope.TraceIfError(err)

	day, err := shared.ParseDate("date", date)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	bookings, err := s.checker.ActiveOn(ctx, day)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("failed to get active bookings")

		return nil, fmt.Errorf("failed to get active bookings: %w", err)
	}

	res = make([]dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		res[i].FromModel(booking)
	}

	return res, nil
}

// Update applies a partial change. Moving dates or rooms re-runs the overlap check under
// the room lock, skipping the booking itself, and recomputes nights.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	var previous model.Booking

	err = s.tx.WithTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		current, err := s.lockBooking(ctx, sqltx, filter)
		if err != nil {
			return err
		}

		previous = current
		fields := shared.TransformFields(req, user, s.clock.Now())

		if req.Status != constant.Empty && req.Status != current.Status {
			if !model.CanTransition(s.cfg.App.Booking.TransitionMode, current.Status, req.Status) {
				return transitionError(current.Status, req.Status)
			}

			fields[model.FieldStatus] = req.Status
		}

		if req.RoomID != constant.Empty || req.CheckInDate != constant.Empty || req.CheckOutDate != constant.Empty {
			moved, err := s.reschedule(ctx, sqltx, current, req)
			if err != nil {
				return err
			}

			maps.Copy(fields, moved)
		}

		if err = s.repo.UpdateTx(ctx, sqltx, fields, filter); err != nil {
			log.Error().Err(err).Str("id", id).Msg("failed to update booking")

			return failure.FromPostgres(err, msgRoomBooked) //nolint:wrapcheck
		}

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	booking, err := s.find(ctx, filter)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	if booking.Status != previous.Status {
		metrics.IncBookingTransition(previous.Status, booking.Status)
		s.publish(ctx, dto.NewEvent(dto.EventBookingStatusChanged, booking, previous.Status, s.clock.Now()))
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c, id)
	}()

	return res, nil
}

func (s *serviceImpl) reschedule(ctx context.Context, sqltx *sqlx.Tx, current model.Booking, req dto.UpdateBookingRequest) (map[string]any, error) {
	stay, err := req.Stay(current.Stay())
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	roomID := current.RoomID
	if req.RoomID != constant.Empty {
		roomID = req.RoomID
	}

	room, err := s.lockRoom(ctx, sqltx, roomID)
	if err != nil {
		return nil, err
	}

	if room.ID == constant.Empty || (roomID != current.RoomID && !room.Bookable()) {
		return nil, failure.BadRequestFromString(msgRoomUnavailable) //nolint:wrapcheck
	}

	if err = s.ensureFree(ctx, sqltx, roomID, stay, current.ID); err != nil {
		return nil, err
	}

	fields := map[string]any{
		model.FieldRoomID:         roomID,
		model.FieldCheckInDate:    stay.CheckIn.Format(constant.DateOnly),
		model.FieldCheckOutDate:   stay.CheckOut.Format(constant.DateOnly),
		model.FieldNumberOfNights: stay.Nights(),
	}

	if req.TotalAmount == nil {
		fields[model.FieldTotalAmount] = room.PricePerNight.Mul(decimal.NewFromInt(int64(stay.Nights())))
	}

	return fields, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id, status string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validator.ValidateVar(status, "required,"+model.TagStatus); err != nil {
		return res, err //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	var booking model.Booking

	previous := constant.Empty

	err = s.tx.WithTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		current, err := s.lockBooking(ctx, sqltx, filter)
		if err != nil {
			return err
		}

		booking, previous = current, current.Status

		if !model.CanTransition(s.cfg.App.Booking.TransitionMode, current.Status, status) {
			return transitionError(current.Status, status)
		}

		if current.Status == status {
			return nil
		}

		now := s.clock.Now()
		fields := map[string]any{
			model.FieldStatus:        status,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}

		if err = s.repo.UpdateTx(ctx, sqltx, fields, filter); err != nil {
			log.Error().Err(err).Str("id", id).Msg("failed to update booking status")

			return failure.FromPostgres(err, msgRoomBooked) //nolint:wrapcheck
		}

		booking.Status = status
		booking.ModifiedAt = now
		booking.ModifiedBy = user

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromModel(booking)

	if previous == status {
		return res, nil
	}

	metrics.IncBookingTransition(previous, status)
	s.publish(ctx, dto.NewEvent(dto.EventBookingStatusChanged, booking, previous, s.clock.Now()))

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c, id)
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		if failure.IsForeignKeyViolation(err) {
			return failure.BadRequestFromString("booking still has payments") //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c, id)
	}()

	return nil
}

func (s *serviceImpl) Stats(ctx context.Context) (res dto.BookingStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stats")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{}

	if res.TotalBookings, err = s.Count(ctx, params, gDto.And()); err != nil {
		return res, err
	}

	if res.ConfirmedBookings, err = s.Count(ctx, params, byStatus(model.StatusConfirmed)); err != nil {
		return res, err
	}

	if res.PendingBookings, err = s.Count(ctx, params, byStatus(model.StatusPending)); err != nil {
		return res, err
	}

	if res.CheckedInBookings, err = s.Count(ctx, params, byStatus(model.StatusCheckedIn)); err != nil {
		return res, err
	}

	return res, nil
}

// Revenue sums CONFIRMED bookings checking in between both dates, inclusive.
func (s *serviceImpl) Revenue(ctx context.Context, startDate, endDate string) (res dto.RevenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Revenue")
	defer scope.End()
	defer scope.TraceIfError(err)

	start, err := shared.ParseDate("start_date", startDate)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	end, err := shared.ParseDate("end_date", endDate)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if end.Before(start) {
		return res, failure.BadRequestFromString("end_date must not be before start_date") //nolint:wrapcheck
	}

	filter := dto.Filter{
		Statuses:    []string{model.StatusConfirmed},
		CheckInFrom: &start,
		CheckInTo:   &end,
	}

	revenue, err := s.repo.Sum(ctx, model.FieldTotalAmount, filter.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to sum booking revenue")

		return res, fmt.Errorf("failed to sum booking revenue: %w", err)
	}

	res.Revenue = revenue
	res.StartDate = start.Format(constant.DateOnly)
	res.EndDate = end.Format(constant.DateOnly)

	return res, nil
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, roomID, checkIn, checkOut string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validator.ValidateVar(roomID, "required,uuid"); err != nil {
		return res, err //nolint:wrapcheck
	}

	stay, err := dto.ParseStay(checkIn, checkOut)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	free, err := s.checker.IsAvailable(ctx, roomID, stay)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room availability")

		return res, fmt.Errorf("failed to check room availability: %w", err)
	}

	res.RoomID = roomID
	res.CheckInDate = stay.CheckIn.Format(constant.DateOnly)
	res.CheckOutDate = stay.CheckOut.Format(constant.DateOnly)
	res.Available = free && room.Bookable()

	return res, nil
}

func (s *serviceImpl) Invoice(ctx context.Context, id string) (data []byte, fileName string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Invoice")
	defer scope.End()
	defer scope.TraceIfError(err)

	data, booking, err := s.renderInvoice(ctx, id)
	if err != nil {
		return nil, constant.Empty, err
	}

	return data, invoice.FileName(booking.BookingReference), nil
}

func (s *serviceImpl) PublishInvoice(ctx context.Context, id string) (res dto.InvoiceUploadResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PublishInvoice")
	defer scope.End()
	defer scope.TraceIfError(err)

	data, booking, err := s.renderInvoice(ctx, id)
	if err != nil {
		return res, err
	}

	fileName := invoice.FileName(booking.BookingReference)

	url, err := s.s3.UploadFileBytes(ctx, constant.Empty, invoiceDirectory, fileName, constant.ContentTypePDF, data)
	if err != nil {
		log.Error().Err(err).Str("file", fileName).Msg("failed to upload invoice")

		return res, fmt.Errorf("failed to upload invoice: %w", err)
	}

	res.BookingReference = booking.BookingReference
	res.URL = url

	return res, nil
}

func (s *serviceImpl) renderInvoice(ctx context.Context, id string) ([]byte, model.Booking, error) {
	booking, err := s.find(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return nil, booking, err
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booked room")

		return nil, booking, fmt.Errorf("failed to get booked room: %w", err)
	}

	data, err := invoice.Render(invoice.Data{
		Booking:  booking,
		Room:     room,
		Currency: s.cfg.App.Booking.Currency,
		IssuedAt: s.clock.Now(),
		Issuer:   s.cfg.App.Name,
	})
	if err != nil {
		log.Error().Err(err).Str("reference", booking.BookingReference).Msg("failed to render invoice")

		return nil, booking, fmt.Errorf("failed to render invoice: %w", err)
	}

	return data, booking, nil
}

func (s *serviceImpl) find(ctx context.Context, filter gDto.FilterGroup) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) lockBooking(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (model.Booking, error) {
	booking, err := s.repo.GetForUpdateTx(ctx, sqltx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to lock booking")

		return booking, fmt.Errorf("failed to lock booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

// lockRoom returns a zero Room when roomID does not exist.
func (s *serviceImpl) lockRoom(ctx context.Context, sqltx *sqlx.Tx, roomID string) (roomModel.Room, error) {
	room, err := s.roomRepo.GetForUpdateTx(ctx, sqltx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to lock room")

		return room, fmt.Errorf("failed to lock room: %w", err)
	}

	return room, nil
}

func (s *serviceImpl) ensureFree(ctx context.Context, sqltx *sqlx.Tx, roomID string, stay model.Stay, excludeID string) error {
	overlapping, err := s.checker.OverlappingTx(ctx, sqltx, roomID, stay, excludeID)
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to check overlapping bookings")

		return fmt.Errorf("failed to check overlapping bookings: %w", err)
	}

	if len(availability.Conflicts(overlapping, stay, excludeID)) > 0 {
		metrics.IncBookingRejected(metrics.ReasonOverlap)

		return failure.BadRequestFromString(msgRoomBooked) //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) publish(ctx context.Context, event dto.Event) {
	go func() {
		c := context.WithoutCancel(ctx)

		msg := kafka.Message{Key: event.BookingID, Value: event}
		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.Booking, msg); err != nil {
			log.Error().Err(err).Str("type", event.Type).Str("booking_id", event.BookingID).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking from cache")
	}

	s.invalidateLists(ctx)
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllBooking)
	shared.InvalidateCaches(ctx, s.cache, cacheCountBooking)
}

func transitionError(from, to string) error {
	return failure.BadRequestFromString(fmt.Sprintf("cannot change booking status from %s to %s", from, to)) //nolint:wrapcheck
}

func byStatus(status string) gDto.FilterGroup {
	return dto.Filter{Statuses: []string{status}}.ToFilterGroup()
}
