package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"workorder-service/internal/apperr"
	"workorder-service/internal/model"
)

// Store defines the persistence operations for servers.
type Store interface {
	Search(ctx context.Context, term *string, req PageRequest) (Page, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	FindByID(ctx context.Context, id int64) (model.Server, error)
	Create(ctx context.Context, server *model.Server) error
	Update(ctx context.Context, server *model.Server) error
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// nameCondition matches the term against the first and last name. Both sides
// are lower-cased so matching is case-insensitive on postgres and sqlite alike
// (sqlite only folds ASCII letters).
const nameCondition = `(LOWER(first_name) LIKE ? ESCAPE '\'` +
	` OR LOWER(last_name) LIKE ? ESCAPE '\')`

// idOrNameCondition additionally matches a numeric term against the id
// exactly.
const idOrNameCondition = `(server_id = ?` +
	` OR LOWER(first_name) LIKE ? ESCAPE '\'` +
	` OR LOWER(last_name) LIKE ? ESCAPE '\')`

// resetSequence moves the postgres id sequence past the highest stored id.
const resetSequence = `SELECT setval(pg_get_serial_sequence('server', 'server_id'), (SELECT MAX(server_id) FROM server))`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search returns one page of servers matching term. A nil term matches every
// row. A numeric term matches that exact id as well as names containing it.
// Rows are ordered by the requested column and then by id so that paging is
// stable when the sort column has ties.
func (s *gormStore) Search(ctx context.Context, term *string, req PageRequest) (Page, error) {
	scoped := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&model.Server{})
		if term != nil {
			pattern := "%" + likeEscaper.Replace(strings.ToLower(*term)) + "%"
			if id, err := strconv.ParseInt(strings.TrimSpace(*term), 10, 64); err == nil {
				q = q.Where(idOrNameCondition, id, pattern, pattern)
			} else {
				q = q.Where(nameCondition, pattern, pattern)
			}
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return Page{}, apperr.Storage(err, "failed to count servers")
	}

	servers := []model.Server{}
	if total > 0 && req.Offset() < int(total) {
		q := scoped().
			Select("server_id", "first_name", "last_name", "availability").
			Order(clause.OrderByColumn{Column: clause.Column{Name: req.Sort.Column}, Desc: req.Sort.Desc})
		if req.Sort.Column != "server_id" {
			q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: "server_id"}})
		}
		if err := q.Limit(req.Size).Offset(req.Offset()).Find(&servers).Error; err != nil {
			return Page{}, apperr.Storage(err, "failed to query servers")
		}
	}

	return Page{
		Servers:       servers,
		TotalPages:    totalPages(total, req.Size),
		TotalElements: total,
	}, nil
}

// ExistsByID reports whether a server with the given id is stored.
func (s *gormStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Server{}).Where("server_id = ?", id).Count(&count).Error; err != nil {
		return false, apperr.Storage(err, fmt.Sprintf("failed to check server %d", id))
	}
	return count > 0, nil
}

// FindByID loads a single server.
func (s *gormStore) FindByID(ctx context.Context, id int64) (model.Server, error) {
	var server model.Server
	err := s.db.WithContext(ctx).Where("server_id = ?", id).First(&server).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Server{}, apperr.NotFound(id)
	}
	if err != nil {
		return model.Server{}, apperr.Storage(err, fmt.Sprintf("failed to load server %d", id))
	}
	return server, nil
}

// Create inserts a server. A zero ID is assigned by the database and written
// back into server. An explicit ID that is already taken yields DuplicateID;
// a key violation on a database-assigned ID is a storage error. On postgres an
// explicit ID also advances the id sequence so later assigned ids skip it.
func (s *gormStore) Create(ctx context.Context, server *model.Server) error {
	explicitID := server.ID != 0

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(server).Error; err != nil {
			return err
		}
		if explicitID && tx.Dialector.Name() == "postgres" {
			return tx.Exec(resetSequence).Error
		}
		return nil
	})
	if err == nil {
		return nil
	}
	if explicitID && isDuplicateKey(err) {
		return apperr.DuplicateID(server.ID)
	}
	return apperr.Storage(err, "failed to create server")
}

// Update replaces every mutable column of the row identified by server.ID.
func (s *gormStore) Update(ctx context.Context, server *model.Server) error {
	res := s.db.WithContext(ctx).Model(&model.Server{}).
		Where("server_id = ?", server.ID).
		Updates(map[string]any{
			"first_name":   server.FirstName,
			"last_name":    server.LastName,
			"availability": server.Availability,
		})
	if res.Error != nil {
		return apperr.Storage(res.Error, fmt.Sprintf("failed to update server %d", server.ID))
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(server.ID)
	}
	return nil
}

// Delete removes the row permanently.
func (s *gormStore) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Server{}, id)
	if res.Error != nil {
		return apperr.Storage(res.Error, fmt.Sprintf("failed to delete server %d", id))
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(id)
	}
	return nil
}

// Ping checks that the database is reachable.
func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return apperr.Storage(err, "failed to get sql.DB")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return apperr.Storage(err, "database unreachable")
	}
	return nil
}
