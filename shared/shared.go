package shared

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"kingdom/shared/cache"
	"kingdom/shared/constant"
	"kingdom/shared/dto"
	"kingdom/shared/failure"
	"kingdom/shared/timezone"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

func ConvertStringToInt(value string) (int, error) {
	intValue, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, failure.BadRequestFromString(fmt.Sprintf("invalid number %q", value)) //nolint:wrapcheck
	}

	return intValue, nil
}

func ConvertStringToDecimal(value string) (decimal.Decimal, error) {
	dec, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, failure.BadRequestFromString(fmt.Sprintf("invalid amount %q", value)) //nolint:wrapcheck
	}

	return dec, nil
}

// ParseDate parses a YYYY-MM-DD value in the application timezone.
func ParseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, failure.BadRequestFromString(field + " is required") //nolint:wrapcheck
	}

	date, err := timezone.Parse(constant.DateOnly, value)
	if err != nil {
		return time.Time{}, failure.BadRequestFromString(fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)) //nolint:wrapcheck
	}

	return date, nil
}

// ParseDateRange parses an inclusive day range into the half-open instant range [start, end+1d).
func ParseDateRange(start, end string) (from, until time.Time, err error) {
	from, err = ParseDate(constant.RequestParamStartDate, start)
	if err != nil {
		return from, until, err
	}

	until, err = ParseDate(constant.RequestParamEndDate, end)
	if err != nil {
		return from, until, err
	}

	if until.Before(from) {
		return from, until, failure.BadRequestFromString("end_date must not be before start_date") //nolint:wrapcheck
	}

	return from, until.AddDate(0, 0, 1), nil
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the non-zero db-tagged fields of a struct into a map of updated fields.
func TransformFields(data any, username string, now time.Time) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = now
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return FilterByField(fieldID, id, table)
}

func FilterByField(field string, value any, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    field,
				Value:    value,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), ":")
}

// BuildCacheKeyWithQuery derives a stable key from the pagination params and the rendered filter.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	payload, err := json.Marshal(struct {
		Params dto.QueryParams `json:"params"`
		Where  string          `json:"where"`
		Args   map[string]any  `json:"args"`
	}{
		Params: params,
		Where:  where,
		Args:   args,
	})
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to marshal cache key payload")

		payload = []byte(fmt.Sprintf("%v%s%v", params, where, args))
	}

	sum := sha256.Sum256(payload)

	return BuildCacheKey(prefix, hex.EncodeToString(sum[:]))
}

// InvalidateCaches removes every entry stored under the prefix.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
