package pastor

import (
	"net/http"

	"kingdom/infras/otel"
	"kingdom/internal/domains/pastor/model"
	"kingdom/internal/domains/pastor/model/dto"
	"kingdom/internal/domains/pastor/service"
	"kingdom/shared/constant"
	gDto "kingdom/shared/dto"
	"kingdom/shared/validator"
	"kingdom/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	paramBranch  = "branch"
	paramCountry = "country"
)

type Handler struct {
	service service.Pastor
	otel    otel.Otel
}

func New(service service.Pastor, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/pastors", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePastor)
		routerGroup.Get("/", handler.GetPastors)
		routerGroup.Get("/branch/{branch}", handler.GetPastorsByBranch)
		routerGroup.Get("/country/{country}", handler.GetPastorsByCountry)
		routerGroup.Get("/{id}", handler.GetPastorByID)
		routerGroup.Put("/{id}", handler.UpdatePastor)
		routerGroup.Delete("/{id}", handler.DeletePastor)
	})
}

// CreatePastor handles the creation of a new pastor.
// @Summary Create a new pastor
// @Tags Pastor
// @Accept json
// @Produce json
// @Param request body dto.CreatePastorRequest true "Pastor details"
// @Success 201 {object} response.Data[dto.PastorResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /pastors [post]
// @Security BearerAuth
func (handler *Handler) CreatePastor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePastor")
	defer scope.End()

	var req dto.CreatePastorRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid create pastor request")

		response.WithError(w, err)

		return
	}

	pastor, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create pastor")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, pastor)
}

// GetPastors lists pastors.
// @Summary Get all pastors
// @Tags Pastor
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param church_branch query string false "Filter by church branch"
// @Param country_code query string false "Filter by country code"
// @Success 200 {object} response.Data[dto.GetPastorsResponse]
// @Failure 500 {object} response.Error
// @Router /pastors [get]
// @Security BearerAuth
func (handler *Handler) GetPastors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	handler.list(w, r, "GetPastors", true, dto.Filter{
		ChurchBranch: query.Get(model.FieldChurchBranch),
		CountryCode:  query.Get(model.FieldCountryCode),
	})
}

// GetPastorsByBranch lists the pastors of one church branch.
// @Summary Get pastors by church branch
// @Tags Pastor
// @Produce json
// @Param branch path string true "Church branch"
// @Success 200 {object} response.Data[dto.GetPastorsResponse]
// @Router /pastors/branch/{branch} [get]
// @Security BearerAuth
func (handler *Handler) GetPastorsByBranch(w http.ResponseWriter, r *http.Request) {
	handler.list(w, r, "GetPastorsByBranch", false, dto.Filter{ChurchBranch: chi.URLParam(r, paramBranch)})
}

// GetPastorsByCountry lists the pastors of one country.
// @Summary Get pastors by country code
// @Tags Pastor
// @Produce json
// @Param country path string true "Country code"
// @Success 200 {object} response.Data[dto.GetPastorsResponse]
// @Router /pastors/country/{country} [get]
// @Security BearerAuth
func (handler *Handler) GetPastorsByCountry(w http.ResponseWriter, r *http.Request) {
	handler.list(w, r, "GetPastorsByCountry", false, dto.Filter{CountryCode: chi.URLParam(r, paramCountry)})
}

// GetPastorByID retrieves a pastor by its ID.
// @Summary Get a pastor by ID
// @Tags Pastor
// @Produce json
// @Param id path string true "Pastor ID"
// @Success 200 {object} response.Data[dto.PastorResponse]
// @Failure 404 {object} response.Error
// @Router /pastors/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPastorByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPastorByID")
	defer scope.End()

	pastor, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pastor by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, pastor)
}

// UpdatePastor updates an existing pastor.
// @Summary Update a pastor by ID
// @Tags Pastor
// @Accept json
// @Produce json
// @Param id path string true "Pastor ID"
// @Param request body dto.UpdatePastorRequest true "Fields to update"
// @Success 200 {object} response.Data[dto.PastorResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /pastors/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdatePastor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePastor")
	defer scope.End()

	var req dto.UpdatePastorRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid update pastor request")

		response.WithError(w, err)

		return
	}

	pastor, err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update pastor")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, pastor)
}

// DeletePastor deletes a pastor. Members assigned to them become unassigned.
// @Summary Delete a pastor by ID
// @Tags Pastor
// @Param id path string true "Pastor ID"
// @Success 204 "Pastor deleted"
// @Failure 404 {object} response.Error
// @Router /pastors/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePastor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePastor")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete pastor")

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

	pastors, err := handler.service.GetAll(ctx, queryParams, filter.ToFilterGroup())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("handler", name).Msg("failed to get pastors")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, pastors)
}
