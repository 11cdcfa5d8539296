package model

// Server is a field technician row in the server table.
type Server struct {
	ID           int64  `gorm:"column:server_id;primaryKey;autoIncrement"`
	FirstName    string `gorm:"column:first_name;size:35;not null"`
	LastName     string `gorm:"column:last_name;size:35;not null"`
	Availability string `gorm:"column:availability;size:10;not null"`
}

// TableName keeps the singular table name used by existing deployments.
func (Server) TableName() string {
	return "server"
}

// ServerDTO is the transport form of a Server. ID is optional on create.
type ServerDTO struct {
	ID           *int64 `json:"id,omitempty"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Availability string `json:"availability"`
}

// Field limits enforced on every write.
const (
	MaxFirstNameLen    = 35
	MaxLastNameLen     = 35
	MaxAvailabilityLen = 10
)
