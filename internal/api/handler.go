package api

import (
	"github.com/sirupsen/logrus"

	"workorder-service/internal/service"
	"workorder-service/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	servers         *service.ServerService
	store           store.Store
	log             logrus.FieldLogger
	defaultPageSize int
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, svc *service.ServerService, log logrus.FieldLogger, defaultPageSize int) *Handler {
	if defaultPageSize <= 0 {
		defaultPageSize = 10
	}
	return &Handler{
		servers:         svc,
		store:           s,
		log:             log,
		defaultPageSize: defaultPageSize,
	}
}
