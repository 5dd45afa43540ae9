package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

const maxRouteNumberLength = 64

// BMTC route numbers mix digits, letters, and separator punctuation,
// e.g. "335-E", "KIAS-9", "MF-12", "500-D/A".
var routeNumberPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 ._/-]*$`)

// ExtractRouteNumberFromParams returns the {routeNumber} path parameter.
func ExtractRouteNumberFromParams(r *http.Request) string {
	return r.PathValue("routeNumber")
}

// ValidateRouteNumber enforces the shape of a route number before it is used
// for lookups, rejecting empty, oversized, or suspicious values.
func ValidateRouteNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errors.New("route number must not be empty")
	}
	if len(number) > maxRouteNumberLength {
		return fmt.Errorf("route number must not exceed %d characters", maxRouteNumberLength)
	}
	if !routeNumberPattern.MatchString(number) {
		return errors.New("route number contains invalid characters")
	}
	return nil
}

type contextKey string

const routeNumberContextKey contextKey = "validated_route_number"

// WithRouteNumber stores a validated route number in the context.
func WithRouteNumber(ctx context.Context, number string) context.Context {
	return context.WithValue(ctx, routeNumberContextKey, number)
}

// RouteNumberFromContext retrieves the validated route number. The second
// return is false when no validation middleware ran for this request.
func RouteNumberFromContext(ctx context.Context) (string, bool) {
	number, ok := ctx.Value(routeNumberContextKey).(string)
	return number, ok
}
