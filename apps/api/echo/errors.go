package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/professor/core"
	"github.com/trezcool/professor/core/classroom"
)

var (
	errTeacherNotFound    = echo.NewHTTPError(http.StatusNotFound, "Teacher not found")
	errInvalidJoinCode    = echo.NewHTTPError(http.StatusNotFound, "Invalid join code")
	errInvalidCredentials = echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")

	chatFailedMsg = "Failed to process message"
)

const actingTeacherKey = "teacher"

// logArgs returns the args for logging err, with the acting teacher if the request resolved one.
func logArgs(ctx echo.Context, err error) []interface{} {
	args := []interface{}{err}
	if teacher, ok := ctx.Get(actingTeacherKey).(classroom.Teacher); ok {
		args = append(args, teacher)
	}
	return args
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
			if code >= http.StatusInternalServerError {
				logger.Error(http.StatusText(code), logArgs(ctx, err)...)
			}
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default: // any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg

			logger.Error(msg, logArgs(ctx, errors.Wrap(err, msg))...)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

// classroomHTTPError maps the classroom sentinel errors to their HTTP counterpart.
func classroomHTTPError(err error, msg string) error {
	switch errors.Cause(err) {
	case classroom.ErrTeacherNotFound:
		return errTeacherNotFound
	case classroom.ErrClassNotFound:
		return errInvalidJoinCode
	case classroom.ErrInvalidCredentials:
		return errInvalidCredentials
	}
	return errors.Wrap(err, msg)
}
