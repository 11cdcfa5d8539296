package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"workorder-service/internal/apperr"
	"workorder-service/internal/mw"
)

// Meta is the metadata half of every response envelope.
type Meta struct {
	Message     string              `json:"message"`
	PageCount   *int                `json:"pageCount,omitempty"`
	ResultCount *int64              `json:"resultCount,omitempty"`
	Errors      []apperr.FieldError `json:"errors,omitempty"`
}

// Envelope wraps every response body.
type Envelope struct {
	Meta Meta `json:"meta"`
	Data any  `json:"data,omitempty"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Meta: Meta{Message: message}, Data: data})
}

// statusFor maps an error kind to the HTTP status returned to the client.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindDuplicateID:
		return http.StatusConflict
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as an envelope. Storage and unknown errors are
// logged here and reported with a generic message; their cause stays in
// the logs.
func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	kind := apperr.KindOf(err)
	status := statusFor(kind)

	meta := Meta{Message: err.Error(), Errors: apperr.FieldsOf(err)}
	if status >= http.StatusInternalServerError {
		h.log.WithError(err).WithFields(logrus.Fields{
			"path":       c.FullPath(),
			"kind":       kind.String(),
			"request_id": mw.GetRequestID(c),
		}).Error(fallback)
		meta = Meta{Message: fallback}
	}
	c.AbortWithStatusJSON(status, Envelope{Meta: meta})
}
