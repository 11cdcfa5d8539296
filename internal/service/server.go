package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"workorder-service/internal/apperr"
	"workorder-service/internal/model"
	"workorder-service/internal/store"
)

// DefaultMaxPageSize bounds a list page when no explicit limit is configured.
const DefaultMaxPageSize = 100

// ListParams are the caller's list criteria. Page is 1-based.
type ListParams struct {
	Search    string
	SortField string
	SortOrder string
	Page      int
	PageSize  int
}

// ServerPage is one page of servers with the totals of the whole result.
type ServerPage struct {
	Servers       []model.ServerDTO
	TotalPages    int
	TotalElements int64
}

// ServerService implements the server use cases on top of a store.Store.
type ServerService struct {
	store       store.Store
	log         logrus.FieldLogger
	maxPageSize int
}

// NewServerService creates a service. maxPageSize <= 0 selects
// DefaultMaxPageSize.
func NewServerService(s store.Store, log logrus.FieldLogger, maxPageSize int) *ServerService {
	if maxPageSize <= 0 {
		maxPageSize = DefaultMaxPageSize
	}
	return &ServerService{store: s, log: log, maxPageSize: maxPageSize}
}

// List returns one page of servers matching the search term.
func (s *ServerService) List(ctx context.Context, p ListParams) (ServerPage, error) {
	if err := s.validatePage(p.Page, p.PageSize); err != nil {
		return ServerPage{}, err
	}

	var term *string
	if trimmed := strings.TrimSpace(p.Search); trimmed != "" {
		term = &trimmed
	}
	sort := store.ResolveSort(p.SortField, p.SortOrder)

	page, err := s.store.Search(ctx, term, store.PageRequest{
		Page: p.Page - 1,
		Size: p.PageSize,
		Sort: sort,
	})
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"operation": "list",
			"search":    p.Search,
			"sortField": p.SortField,
			"sortOrder": p.SortOrder,
			"page":      p.Page,
			"rpp":       p.PageSize,
		}).Error("failed to retrieve servers")
		return ServerPage{}, storageError(err, "failed to retrieve servers")
	}

	return ServerPage{
		Servers:       model.ToDTOs(page.Servers),
		TotalPages:    page.TotalPages,
		TotalElements: page.TotalElements,
	}, nil
}

// Get returns a single server.
func (s *ServerService) Get(ctx context.Context, id int64) (model.ServerDTO, error) {
	server, err := s.store.FindByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return model.ServerDTO{}, err
		}
		s.log.WithError(err).WithFields(logrus.Fields{"operation": "get", "id": id}).
			Error("failed to retrieve server")
		return model.ServerDTO{}, storageError(err, "failed to retrieve server")
	}
	return model.ToDTO(server), nil
}

// Create stores a new server. A client-supplied id is honoured unless it is
// already taken; without one the store assigns the id.
func (s *ServerService) Create(ctx context.Context, dto model.ServerDTO) (model.ServerDTO, error) {
	fields := logrus.Fields{"operation": "create"}
	if dto.ID != nil {
		fields["id"] = *dto.ID
		exists, err := s.store.ExistsByID(ctx, *dto.ID)
		if err != nil {
			s.log.WithError(err).WithFields(fields).Error("failed to create new server")
			return model.ServerDTO{}, storageError(err, "failed to create new server")
		}
		if exists {
			return model.ServerDTO{}, apperr.DuplicateID(*dto.ID)
		}
	}

	server := model.ToEntity(dto)
	if err := s.store.Create(ctx, &server); err != nil {
		if apperr.IsDuplicateID(err) {
			return model.ServerDTO{}, err
		}
		s.log.WithError(err).WithFields(fields).Error("failed to create new server")
		return model.ServerDTO{}, storageError(err, "failed to create new server")
	}

	s.log.WithFields(logrus.Fields{"operation": "create", "id": server.ID}).Debug("server created")
	return model.ToDTO(server), nil
}

// Update replaces every field of the server with the given id. Any id in dto
// is ignored.
func (s *ServerService) Update(ctx context.Context, id int64, dto model.ServerDTO) (model.ServerDTO, error) {
	fields := logrus.Fields{"operation": "update", "id": id}

	if err := s.ensureExists(ctx, id, fields, "failed to update server"); err != nil {
		return model.ServerDTO{}, err
	}

	server := model.ToEntity(dto)
	server.ID = id
	if err := s.store.Update(ctx, &server); err != nil {
		if apperr.IsNotFound(err) {
			return model.ServerDTO{}, err
		}
		s.log.WithError(err).WithFields(fields).Error("failed to update server")
		return model.ServerDTO{}, storageError(err, "failed to update server")
	}

	s.log.WithFields(fields).Debug("server updated")
	return model.ToDTO(server), nil
}

// Delete removes the server with the given id permanently.
func (s *ServerService) Delete(ctx context.Context, id int64) error {
	fields := logrus.Fields{"operation": "delete", "id": id}

	if err := s.ensureExists(ctx, id, fields, "failed to delete server"); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if apperr.IsNotFound(err) {
			return err
		}
		s.log.WithError(err).WithFields(fields).Error("failed to delete server")
		return storageError(err, "failed to delete server")
	}

	s.log.WithFields(fields).Debug("server deleted")
	return nil
}

func (s *ServerService) ensureExists(ctx context.Context, id int64, fields logrus.Fields, msg string) error {
	exists, err := s.store.ExistsByID(ctx, id)
	if err != nil {
		s.log.WithError(err).WithFields(fields).Error(msg)
		return storageError(err, msg)
	}
	if !exists {
		return apperr.NotFound(id)
	}
	return nil
}

func (s *ServerService) validatePage(page, size int) error {
	var fields []apperr.FieldError
	if page < 1 {
		fields = append(fields, apperr.FieldError{Field: "page", Message: "must be a positive integer"})
	}
	if size < 1 || size > s.maxPageSize {
		fields = append(fields, apperr.FieldError{
			Field:   "rpp",
			Message: fmt.Sprintf("must be between 1 and %d", s.maxPageSize),
		})
	}
	if len(fields) > 0 {
		return apperr.Validation("invalid pagination", fields...)
	}
	return nil
}

// storageError keeps the storage kind of err while adding the operation's
// message; anything else is wrapped as a new storage error.
func storageError(err error, msg string) error {
	if apperr.IsStorage(err) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return apperr.Storage(err, msg)
}
