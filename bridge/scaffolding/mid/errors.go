package mid

import (
	"context"
	"errors"
	"net/http"
	"path"

	"github.com/jrazmi/taskapi/bridge/scaffolding/apiresponse"
	"github.com/jrazmi/taskapi/bridge/scaffolding/errs"
	"github.com/jrazmi/taskapi/infrastructure/web"
	"github.com/jrazmi/taskapi/sdk/logger"
)

// Errors handles errors coming out of the call chain. Every classified
// failure is translated into the uniform response envelope; there is no
// second error shape. With debug enabled the 500 fallback carries the
// failure's classification and message instead of being redacted.
func Errors(log *logger.Logger, debug bool) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			resp := next(ctx, r)
			err := isError(resp)
			if err == nil {
				return resp
			}

			var appErr *errs.Error
			if !errors.As(err, &appErr) {
				appErr = errs.New(errs.Internal, err)
			}

			log.ErrorContext(ctx, "handled error during request",
				"err", err,
				"source_err_file", path.Base(appErr.FileName),
				"source_err_func", path.Base(appErr.FuncName))

			if !expectsJSON(r) {
				status := appErr.HTTPStatus()
				return web.NewTextResponse(http.StatusText(status), status)
			}

			return translate(appErr, debug)
		}
	}
}

// translate maps a classified error onto the envelope, evaluating the
// classifications in fixed priority order and falling through to the 500
// default.
func translate(appErr *errs.Error, debug bool) web.Encoder {
	switch appErr.Code {
	case errs.Validation:
		return apiresponse.ValidationError(appErr.Fields, appErr.Request)

	case errs.NotFound:
		return apiresponse.Error("Entity not found", map[string]any{"model": appErr.Model}, http.StatusNotFound)

	case errs.Unauthenticated:
		return apiresponse.Error("Unauthenticated", apiresponse.EmptyData, http.StatusUnauthorized)

	case errs.Unauthorized:
		return apiresponse.Error("Forbidden", apiresponse.EmptyData, http.StatusForbidden)

	case errs.TooManyRequests:
		return apiresponse.Error("Too Many Requests", map[string]any{"retry_after": appErr.RetryAfter}, http.StatusTooManyRequests)

	case errs.HTTP:
		message := appErr.Message
		if message == "" {
			message = "HTTP Error"
		}
		return apiresponse.Error(message, apiresponse.EmptyData, appErr.HTTPStatus())

	default:
		var data any = apiresponse.EmptyData
		if debug {
			data = map[string]any{
				"exception": appErr.Code.String(),
				"message":   appErr.Message,
			}
		}
		return apiresponse.Error("Server error", data, http.StatusInternalServerError)
	}
}
