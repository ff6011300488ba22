package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	resp "workbridge/internal/transport/http/response"
)

// Binding mode for the action input.
type Binder string

const (
	BindJSON  Binder = "json"  // request body
	BindQuery Binder = "query" // url query params
	BindNone  Binder = "none"  // handler reads c.Param / c.Query itself
)

// APIError carries the HTTP status a handler wants on the wire.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Status)
}

func (e *APIError) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &APIError{Status: http.StatusBadRequest, Message: msg} }
func Unauthorized(msg string) error { return &APIError{Status: http.StatusUnauthorized, Message: msg} }
func Forbidden(msg string) error    { return &APIError{Status: http.StatusForbidden, Message: msg} }
func NotFound(msg string) error     { return &APIError{Status: http.StatusNotFound, Message: msg} }
func Conflict(msg string) error     { return &APIError{Status: http.StatusConflict, Message: msg} }
func Internal(msg string, err error) error {
	return &APIError{Status: http.StatusInternalServerError, Message: msg, Err: err}
}

// Action registers one endpoint: bind I, run the handler, write O or the
// mapped error. Unknown errors become an opaque 500.
type Action[I any, O any] struct {
	Method  string // "GET" | "POST" | "PATCH" | "PUT" | "DELETE"
	Path    string
	Binder  Binder
	Status  int // success status, default 200
	Handler func(c *gin.Context, in *I) (O, error)
}

func Register[I any, O any](g *gin.RouterGroup, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone
		}
		if bindErr != nil {
			c.JSON(http.StatusBadRequest, resp.Error(bindErr.Error()))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			var ae *APIError
			if errors.As(err, &ae) {
				c.JSON(ae.Status, resp.Error(ae.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, resp.Error("Internal server error"))
			return
		}

		status := a.Status
		if status == 0 {
			status = http.StatusOK
		}
		c.JSON(status, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		g.GET(a.Path, h)
	case http.MethodPatch:
		g.PATCH(a.Path, h)
	case http.MethodPut:
		g.PUT(a.Path, h)
	case http.MethodDelete:
		g.DELETE(a.Path, h)
	default:
		g.POST(a.Path, h)
	}
}
