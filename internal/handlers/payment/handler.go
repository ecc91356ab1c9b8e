package payment

import (
	"net/http"

	"kingdom/infras/otel"
	"kingdom/internal/domains/payment/model"
	"kingdom/internal/domains/payment/model/dto"
	"kingdom/internal/domains/payment/service"
	"kingdom/shared/constant"
	gDto "kingdom/shared/dto"
	"kingdom/shared/validator"
	"kingdom/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	paramReference     = "reference"
	paramMethod        = "method"
	paramBookingID     = "bookingId"
	paramFailureReason = "failure_reason"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePayment)
		routerGroup.Get("/", handler.GetPayments)
		routerGroup.Get("/summary", handler.GetPaymentSummary)
		routerGroup.Get("/date-range", handler.GetPaymentsByDateRange)
		routerGroup.Get("/transaction/{reference}", handler.GetPaymentByTransaction)
		routerGroup.Get("/status/{status}", handler.GetPaymentsByStatus)
		routerGroup.Get("/method/{method}", handler.GetPaymentsByMethod)
		routerGroup.Get("/booking/{bookingId}", handler.GetPaymentsByBooking)
		routerGroup.Get("/{id}", handler.GetPaymentByID)
		routerGroup.Put("/{id}", handler.UpdatePayment)
		routerGroup.Patch("/{id}/status", handler.UpdatePaymentStatus)
		routerGroup.Delete("/{id}", handler.DeletePayment)
	})
}

// CreatePayment records a pending payment against a booking.
// @Summary Create a new payment
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} response.Data[dto.PaymentResponse]
// @Failure 400 {object} response.Error
// @Router /payments [post]
// @Security BearerAuth
func (handler *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePayment")
	defer scope.End()

	var req dto.CreatePaymentRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid create payment request")

		response.WithError(w, err)

		return
	}

	payment, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create payment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, payment)
}

// GetPayments lists payments.
// @Summary Get all payments
// @Tags Payment
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param booking_id query string false "Filter by booking"
// @Param status query string false "Filter by status"
// @Param payment_method query string false "Filter by method"
// @Success 200 {object} response.Data[dto.GetPaymentsResponse]
// @Router /payments [get]
// @Security BearerAuth
func (handler *Handler) GetPayments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	handler.list(w, r, "GetPayments", true, dto.Filter{
		BookingID:     query.Get(model.FieldBookingID),
		Status:        query.Get(model.FieldStatus),
		PaymentMethod: query.Get(model.FieldPaymentMethod),
	})
}

// GetPaymentSummary totals completed payments over a period.
// @Summary Get payment summary
// @Tags Payment
// @Produce json
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.SummaryResponse]
// @Failure 400 {object} response.Error
// @Router /payments/summary [get]
// @Security BearerAuth
func (handler *Handler) GetPaymentSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPaymentSummary")
	defer scope.End()

	query := r.URL.Query()

	summary, err := handler.service.Summary(ctx, query.Get(constant.RequestParamStartDate), query.Get(constant.RequestParamEndDate))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payment summary")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, summary)
}

// GetPaymentsByDateRange lists payments dated between two days, both inclusive.
// @Summary Get payments by date range
// @Tags Payment
// @Produce json
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetPaymentsResponse]
// @Failure 400 {object} response.Error
// @Router /payments/date-range [get]
// @Security BearerAuth
func (handler *Handler) GetPaymentsByDateRange(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPaymentsByDateRange")
	defer scope.End()

	query := r.URL.Query()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	payments, err := handler.service.GetByDateRange(ctx, queryParams, query.Get(constant.RequestParamStartDate), query.Get(constant.RequestParamEndDate))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payments by date range")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payments)
}

// GetPaymentByTransaction retrieves a payment by its transaction reference.
// @Summary Get a payment by transaction reference
// @Tags Payment
// @Produce json
// @Param reference path string true "Transaction reference"
// @Success 200 {object} response.Data[dto.PaymentResponse]
// @Failure 404 {object} response.Error
// @Router /payments/transaction/{reference} [get]
// @Security BearerAuth
func (handler *Handler) GetPaymentByTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPaymentByTransaction")
	defer scope.End()

	payment, err := handler.service.GetByTransactionReference(ctx, chi.URLParam(r, paramReference))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payment by transaction reference")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payment)
}

// GetPaymentsByStatus lists payments in one status.
// @Summary Get payments by status
// @Tags Payment
// @Produce json
// @Param status path string true "Payment status" Enums(PENDING, PROCESSING, COMPLETED, FAILED, CANCELLED, REFUNDED)
// @Success 200 {object} response.Data[dto.GetPaymentsResponse]
// @Failure 400 {object} response.Error
// @Router /payments/status/{status} [get]
// @Security BearerAuth
func (handler *Handler) GetPaymentsByStatus(w http.ResponseWriter, r *http.Request) {
	status := chi.URLParam(r, constant.RequestParamStatus)

	if err := validator.ValidateVar(status, model.TagStatus); err != nil {
		response.WithError(w, err)

		return
	}

	handler.list(w, r, "GetPaymentsByStatus", false, dto.Filter{Status: status})
}

// GetPaymentsByMethod lists payments made with one method.
// @Summary Get payments by method
// @Tags Payment
// @Produce json
// @Param method path string true "Payment method" Enums(M_PESA, BANK_TRANSFER, CASH, CREDIT_CARD)
// @Success 200 {object} response.Data[dto.GetPaymentsResponse]
// @Failure 400 {object} response.Error
// @Router /payments/method/{method} [get]
// @Security BearerAuth
func (handler *Handler) GetPaymentsByMethod(w http.ResponseWriter, r *http.Request) {
	method := chi.URLParam(r, paramMethod)

	if err := validator.ValidateVar(method, model.TagPaymentMethod); err != nil {
		response.WithError(w, err)

		return
	}

	handler.list(w, r, "GetPaymentsByMethod", false, dto.Filter{PaymentMethod: method})
}

// GetPaymentsByBooking lists the payments of one booking.
// @Summary Get payments by booking
// @Tags Payment
// @Produce json
// @Param bookingId path string true "Booking ID"
// @Success 200 {object} response.Data[dto.GetPaymentsResponse]
// @Router /payments/booking/{bookingId} [get]
// @Security BearerAuth
func (handler *Handler) GetPaymentsByBooking(w http.ResponseWriter, r *http.Request) {
	handler.list(w, r, "GetPaymentsByBooking", false, dto.Filter{BookingID: chi.URLParam(r, paramBookingID)})
}

// GetPaymentByID retrieves a payment by its ID.
// @Summary Get a payment by ID
// @Tags Payment
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} response.Data[dto.PaymentResponse]
// @Failure 404 {object} response.Error
// @Router /payments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPaymentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPaymentByID")
	defer scope.End()

	payment, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payment by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payment)
}

// UpdatePayment updates a payment's details.
// @Summary Update a payment by ID
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param request body dto.UpdatePaymentRequest true "Fields to update"
// @Success 200 {object} response.Data[dto.PaymentResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /payments/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePayment")
	defer scope.End()

	var req dto.UpdatePaymentRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid update payment request")

		response.WithError(w, err)

		return
	}

	payment, err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update payment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payment)
}

// UpdatePaymentStatus moves a payment to a new status.
// @Summary Update a payment's status
// @Tags Payment
// @Produce json
// @Param id path string true "Payment ID"
// @Param status query string true "Payment status" Enums(PENDING, PROCESSING, COMPLETED, FAILED, CANCELLED, REFUNDED)
// @Param failure_reason query string false "Failure reason, recorded for FAILED"
// @Success 200 {object} response.Data[dto.PaymentResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /payments/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePaymentStatus")
	defer scope.End()

	query := r.URL.Query()

	payment, err := handler.service.UpdateStatus(ctx, chi.URLParam(r, constant.RequestParamID), query.Get(constant.RequestParamStatus), query.Get(paramFailureReason))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update payment status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payment)
}

// DeletePayment deletes a payment.
// @Summary Delete a payment by ID
// @Tags Payment
// @Param id path string true "Payment ID"
// @Success 204 "Payment deleted"
// @Failure 404 {object} response.Error
// @Router /payments/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePayment")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete payment")

		response.WithError(w, err)

		return
	}

	response.WithNoContent(w)
}

func (handler *Handler) list(w http.ResponseWriter, r *http.Request, name string, paged bool, filter dto.Filter) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+name)
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, paged)

	payments, err := handler.service.GetAll(ctx, queryParams, filter.ToFilterGroup())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("handler", name).Msg("failed to get payments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payments)
}
