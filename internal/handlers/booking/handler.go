package booking

import (
	"net/http"

	"kingdom/infras/otel"
	"kingdom/internal/domains/booking/model"
	"kingdom/internal/domains/booking/model/dto"
	"kingdom/internal/domains/booking/service"
	"kingdom/shared"
	"kingdom/shared/constant"
	gDto "kingdom/shared/dto"
	"kingdom/shared/validator"
	"kingdom/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	paramReference = "reference"
	paramRoomID    = "roomId"
	paramEmail     = "email"

	queryRoomID   = "room_id"
	queryCheckIn  = "check_in"
	queryCheckOut = "check_out"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/stats", handler.GetBookingStats)
		routerGroup.Get("/revenue", handler.GetRevenue)
		routerGroup.Get("/availability", handler.CheckAvailability)
		routerGroup.Get("/active", handler.GetActiveBookings)
		routerGroup.Get("/check-ins", handler.GetCheckIns)
		routerGroup.Get("/check-outs", handler.GetCheckOuts)
		routerGroup.Get("/reference/{reference}", handler.GetBookingByReference)
		routerGroup.Get("/status/{status}", handler.GetBookingsByStatus)
		routerGroup.Get("/room/{roomId}", handler.GetBookingsByRoom)
		routerGroup.Get("/guest/{email}", handler.GetBookingsByGuest)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Put("/{id}", handler.UpdateBooking)
		routerGroup.Patch("/{id}/status", handler.UpdateBookingStatus)
		routerGroup.Get("/{id}/invoice", handler.DownloadInvoice)
		routerGroup.Post("/{id}/invoice", handler.PublishInvoice)
		routerGroup.Delete("/{id}", handler.DeleteBooking)
	})
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Reserve a room. The room must be AVAILABLE and free for every night of the stay.
// @Description Nights are derived from the dates and the total defaults to nightly price times nights.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Booking details"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking created"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	var req dto.CreateBookingRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid create booking request")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking " + booking.BookingReference + " created by user " + user)

	response.WithJSON(w, http.StatusCreated, booking)
}

// GetBookings retrieves bookings based on query parameters.
// @Summary Get all bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param room_id query string false "Filter by room"
// @Param guest_email query string false "Filter by guest email"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := dto.Filter{
		RoomID:     query.Get(model.FieldRoomID),
		GuestEmail: query.Get(model.FieldGuestEmail),
	}

	if status := query.Get(constant.RequestParamStatus); status != constant.Empty {
		filter.Statuses = []string{status}
	}

	handler.list(w, r, "GetBookings", true, filter)
}

// GetBookingsByStatus lists bookings in one status.
// @Summary Get bookings by status
// @Tags Booking
// @Produce json
// @Param status path string true "Booking status" Enums(PENDING, CONFIRMED, CHECKED_IN, CHECKED_OUT, CANCELLED, NO_SHOW)
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Router /bookings/status/{status} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingsByStatus(w http.ResponseWriter, r *http.Request) {
	status := chi.URLParam(r, constant.RequestParamStatus)

	if err := validator.ValidateVar(status, model.TagStatus); err != nil {
		response.WithError(w, err)

		return
	}

	handler.list(w, r, "GetBookingsByStatus", false, dto.Filter{Statuses: []string{status}})
}

// GetBookingsByRoom lists the bookings of one room.
// @Summary Get bookings by room
// @Tags Booking
// @Produce json
// @Param roomId path string true "Room ID"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 500 {object} response.Error
// @Router /bookings/room/{roomId} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingsByRoom(w http.ResponseWriter, r *http.Request) {
	handler.list(w, r, "GetBookingsByRoom", false, dto.Filter{RoomID: chi.URLParam(r, paramRoomID)})
}

// GetBookingsByGuest lists the bookings made under one guest email.
// @Summary Get bookings by guest email
// @Tags Booking
// @Produce json
// @Param email path string true "Guest email"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 500 {object} response.Error
// @Router /bookings/guest/{email} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingsByGuest(w http.ResponseWriter, r *http.Request) {
	handler.list(w, r, "GetBookingsByGuest", false, dto.Filter{GuestEmail: chi.URLParam(r, paramEmail)})
}

// GetCheckIns lists confirmed or checked-in guests arriving on date.
// @Summary Get arrivals for a date
// @Tags Booking
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Router /bookings/check-ins [get]
// @Security BearerAuth
func (handler *Handler) GetCheckIns(w http.ResponseWriter, r *http.Request) {
	day, err := shared.ParseDate(constant.RequestParamDate, r.URL.Query().Get(constant.RequestParamDate))
	if err != nil {
		response.WithError(w, err)

		return
	}

	handler.list(w, r, "GetCheckIns", false, dto.Filter{
		Statuses:  []string{model.StatusConfirmed, model.StatusCheckedIn},
		CheckInOn: &day,
	})
}

// GetCheckOuts lists checked-in or confirmed guests leaving on date.
// @Summary Get departures for a date
// @Tags Booking
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Router /bookings/check-outs [get]
// @Security BearerAuth
func (handler *Handler) GetCheckOuts(w http.ResponseWriter, r *http.Request) {
	day, err := shared.ParseDate(constant.RequestParamDate, r.URL.Query().Get(constant.RequestParamDate))
	if err != nil {
		response.WithError(w, err)

		return
	}

	handler.list(w, r, "GetCheckOuts", false, dto.Filter{
		Statuses:   []string{model.StatusCheckedIn, model.StatusConfirmed},
		CheckOutOn: &day,
	})
}

// GetActiveBookings lists every booking whose stay covers date.
// @Summary Get bookings active on a date
// @Tags Booking
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[[]dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Router /bookings/active [get]
// @Security BearerAuth
func (handler *Handler) GetActiveBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActiveBookings")
	defer scope.End()

	bookings, err := handler.service.ActiveOn(ctx, r.URL.Query().Get(constant.RequestParamDate))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get active bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingStats returns booking counts per status.
// @Summary Get booking statistics
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[dto.BookingStatsResponse]
// @Failure 500 {object} response.Error
// @Router /bookings/stats [get]
// @Security BearerAuth
func (handler *Handler) GetBookingStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingStats")
	defer scope.End()

	stats, err := handler.service.Stats(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking stats")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, stats)
}

// GetRevenue sums confirmed bookings checking in within the period.
// @Summary Get booking revenue
// @Tags Booking
// @Produce json
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD), inclusive"
// @Success 200 {object} response.Data[dto.RevenueResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /bookings/revenue [get]
// @Security BearerAuth
func (handler *Handler) GetRevenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRevenue")
	defer scope.End()

	query := r.URL.Query()

	revenue, err := handler.service.Revenue(ctx, query.Get(constant.RequestParamStartDate), query.Get(constant.RequestParamEndDate))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking revenue")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, revenue)
}

// CheckAvailability reports whether a room can be booked for the stay.
// @Summary Check room availability
// @Tags Booking
// @Produce json
// @Param room_id query string true "Room ID"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.AvailabilityResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /bookings/availability [get]
// @Security BearerAuth
func (handler *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	query := r.URL.Query()

	res, err := handler.service.CheckAvailability(ctx, query.Get(queryRoomID), query.Get(queryCheckIn), query.Get(queryCheckOut))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	booking, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// GetBookingByReference retrieves a booking by its reference.
// @Summary Get a booking by reference
// @Tags Booking
// @Produce json
// @Param reference path string true "Booking reference"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Error
// @Router /bookings/reference/{reference} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByReference(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByReference")
	defer scope.End()

	booking, err := handler.service.GetByReference(ctx, chi.URLParam(r, paramReference))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by reference")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// UpdateBooking updates an existing booking by its ID.
// @Summary Update a booking by ID
// @Description Only the provided fields change. New dates or rooms are re-checked for availability.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "Fields to update"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /bookings/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	var req dto.UpdateBookingRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid update booking request")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking updated successfully by user " + user)

	response.WithJSON(w, http.StatusOK, booking)
}

// UpdateBookingStatus moves a booking to a new status.
// @Summary Update booking status
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Param status query string true "New status" Enums(PENDING, CONFIRMED, CHECKED_IN, CHECKED_OUT, CANCELLED, NO_SHOW)
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /bookings/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBookingStatus")
	defer scope.End()

	booking, err := handler.service.UpdateStatus(ctx, chi.URLParam(r, constant.RequestParamID), r.URL.Query().Get(constant.RequestParamStatus))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// DownloadInvoice streams the booking invoice as PDF.
// @Summary Download booking invoice
// @Tags Booking
// @Produce application/pdf
// @Param id path string true "Booking ID"
// @Success 200 {file} file
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /bookings/{id}/invoice [get]
// @Security BearerAuth
func (handler *Handler) DownloadInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DownloadInvoice")
	defer scope.End()

	data, fileName, err := handler.service.Invoice(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to render invoice")

		response.WithError(w, err)

		return
	}

	response.WithFile(w, constant.ContentTypePDF, fileName, data)
}

// PublishInvoice uploads the booking invoice to object storage.
// @Summary Publish booking invoice
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 201 {object} response.Data[dto.InvoiceUploadResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /bookings/{id}/invoice [post]
// @Security BearerAuth
func (handler *Handler) PublishInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PublishInvoice")
	defer scope.End()

	res, err := handler.service.PublishInvoice(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to publish invoice")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// DeleteBooking deletes a booking by its ID. The room status is left unchanged.
// @Summary Delete a booking by ID
// @Tags Booking
// @Param id path string true "Booking ID"
// @Success 204 "Booking deleted"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking deleted successfully by user " + user)

	response.WithNoContent(w)
}

func (handler *Handler) list(w http.ResponseWriter, r *http.Request, name string, paged bool, filter dto.Filter) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+name)
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, paged)

	bookings, err := handler.service.GetAll(ctx, queryParams, filter.ToFilterGroup())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("handler", name).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}
