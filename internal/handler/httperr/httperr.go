package httperr

import (
	"net/http"

	"tourbook/internal/infra"
	"tourbook/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort maps a use-case error onto a status and a message safe to show.
func Abort(c *gin.Context, err error) {
	status, msg := Classify(err)
	AbortWithError(c, status, err, msg, nil)
}

func Classify(err error) (int, string) {
	switch {
	case errs.IsNotFound(err):
		return http.StatusNotFound, errs.UserMessage(err)
	case errs.IsCapacityRace(err):
		return http.StatusConflict, errs.UserMessage(err)
	case errs.IsValidation(err):
		return http.StatusUnprocessableEntity, errs.UserMessage(err)
	case infra.IsKind(err, infra.KindDuplicateKey):
		return http.StatusConflict, "Resource already exists"
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		return http.StatusUnprocessableEntity, "Referenced resource does not exist"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
