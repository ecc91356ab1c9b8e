package donation

import (
	"net/http"

	"kingdom/infras/otel"
	"kingdom/internal/domains/donation/model"
	"kingdom/internal/domains/donation/model/dto"
	"kingdom/internal/domains/donation/service"
	"kingdom/shared/constant"
	gDto "kingdom/shared/dto"
	"kingdom/shared/validator"
	"kingdom/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	paramMemberID = "memberId"
	paramType     = "type"
	paramCode     = "code"
)

type Handler struct {
	service service.Donation
	otel    otel.Otel
}

func New(service service.Donation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/donations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateDonation)
		routerGroup.Get("/", handler.GetDonations)
		routerGroup.Get("/date-range", handler.GetDonationsByDateRange)
		routerGroup.Get("/member/{memberId}", handler.GetDonationsByMember)
		routerGroup.Get("/type/{type}", handler.GetDonationsByType)
		routerGroup.Get("/campaign/{code}", handler.GetDonationsByCampaign)
		routerGroup.Get("/{id}", handler.GetDonationByID)
		routerGroup.Put("/{id}", handler.UpdateDonation)
		routerGroup.Delete("/{id}", handler.DeleteDonation)
	})
}

// CreateDonation records a donation for an existing member.
// @Summary Create a new donation
// @Tags Donation
// @Accept json
// @Produce json
// @Param request body dto.CreateDonationRequest true "Donation details"
// @Success 201 {object} response.Data[dto.DonationResponse]
// @Failure 400 {object} response.Error
// @Router /donations [post]
// @Security BearerAuth
func (handler *Handler) CreateDonation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDonation")
	defer scope.End()

	var req dto.CreateDonationRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid create donation request")

		response.WithError(w, err)

		return
	}

	donation, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create donation")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, donation)
}

// GetDonations lists donations.
// @Summary Get all donations
// @Tags Donation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param member_id query string false "Filter by member"
// @Param donation_type query string false "Filter by donation type"
// @Param campaign_code query string false "Filter by campaign code"
// @Success 200 {object} response.Data[dto.GetDonationsResponse]
// @Router /donations [get]
// @Security BearerAuth
func (handler *Handler) GetDonations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	handler.list(w, r, "GetDonations", true, dto.Filter{
		MemberID:     query.Get(model.FieldMemberID),
		DonationType: query.Get(model.FieldDonationType),
		CampaignCode: query.Get(model.FieldCampaignCode),
	})
}

// GetDonationsByDateRange lists donations made between two days, both inclusive.
// @Summary Get donations by date range
// @Tags Donation
// @Produce json
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetDonationsResponse]
// @Failure 400 {object} response.Error
// @Router /donations/date-range [get]
// @Security BearerAuth
func (handler *Handler) GetDonationsByDateRange(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDonationsByDateRange")
	defer scope.End()

	query := r.URL.Query()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	donations, err := handler.service.GetByDateRange(ctx, queryParams, query.Get(constant.RequestParamStartDate), query.Get(constant.RequestParamEndDate))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get donations by date range")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, donations)
}

// GetDonationsByMember lists one member's donations.
// @Summary Get donations by member
// @Tags Donation
// @Produce json
// @Param memberId path string true "Member ID"
// @Success 200 {object} response.Data[dto.GetDonationsResponse]
// @Router /donations/member/{memberId} [get]
// @Security BearerAuth
func (handler *Handler) GetDonationsByMember(w http.ResponseWriter, r *http.Request) {
	handler.list(w, r, "GetDonationsByMember", false, dto.Filter{MemberID: chi.URLParam(r, paramMemberID)})
}

// GetDonationsByType lists donations of one type.
// @Summary Get donations by type
// @Tags Donation
// @Produce json
// @Param type path string true "Donation type" Enums(TITHE, OFFERING, SPECIAL_PROJECT, MISSIONARY, OTHER)
// @Success 200 {object} response.Data[dto.GetDonationsResponse]
// @Failure 400 {object} response.Error
// @Router /donations/type/{type} [get]
// @Security BearerAuth
func (handler *Handler) GetDonationsByType(w http.ResponseWriter, r *http.Request) {
	donationType := chi.URLParam(r, paramType)

	if err := validator.ValidateVar(donationType, model.TagDonationType); err != nil {
		response.WithError(w, err)

		return
	}

	handler.list(w, r, "GetDonationsByType", false, dto.Filter{DonationType: donationType})
}

// GetDonationsByCampaign lists donations for one campaign code.
// @Summary Get donations by campaign
// @Tags Donation
// @Produce json
// @Param code path string true "Campaign code"
// @Success 200 {object} response.Data[dto.GetDonationsResponse]
// @Router /donations/campaign/{code} [get]
// @Security BearerAuth
func (handler *Handler) GetDonationsByCampaign(w http.ResponseWriter, r *http.Request) {
	handler.list(w, r, "GetDonationsByCampaign", false, dto.Filter{CampaignCode: chi.URLParam(r, paramCode)})
}

// GetDonationByID retrieves a donation by its ID.
// @Summary Get a donation by ID
// @Tags Donation
// @Produce json
// @Param id path string true "Donation ID"
// @Success 200 {object} response.Data[dto.DonationResponse]
// @Failure 404 {object} response.Error
// @Router /donations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetDonationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDonationByID")
	defer scope.End()

	donation, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get donation by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, donation)
}

// UpdateDonation updates a donation.
// @Summary Update a donation by ID
// @Tags Donation
// @Accept json
// @Produce json
// @Param id path string true "Donation ID"
// @Param request body dto.UpdateDonationRequest true "Fields to update"
// @Success 200 {object} response.Data[dto.DonationResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /donations/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateDonation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDonation")
	defer scope.End()

	var req dto.UpdateDonationRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid update donation request")

		response.WithError(w, err)

		return
	}

	donation, err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update donation")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, donation)
}

// DeleteDonation deletes a donation.
// @Summary Delete a donation by ID
// @Tags Donation
// @Param id path string true "Donation ID"
// @Success 204 "Donation deleted"
// @Failure 404 {object} response.Error
// @Router /donations/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteDonation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteDonation")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete donation")

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

	donations, err := handler.service.GetAll(ctx, queryParams, filter.ToFilterGroup())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("handler", name).Msg("failed to get donations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, donations)
}
