package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ougirez/yhdash/internal/pkg/constants"
)

// RequestIDMiddleware keeps the caller's X-Request-ID or issues a new one, and
// puts it into the request context for the logger.
func (svc *APIService) RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		req := ctx.Request()

		id := req.Header.Get(constants.HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Response().Header().Set(constants.HeaderRequestID, id)
		ctx.SetRequest(req.WithContext(context.WithValue(req.Context(), constants.CtxKeyRequestID, id)))

		return next(ctx)
	}
}
