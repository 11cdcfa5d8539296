package model

// ToDTO converts a persisted row to its transport form.
func ToDTO(s Server) ServerDTO {
	id := s.ID
	return ServerDTO{
		ID:           &id,
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		Availability: s.Availability,
	}
}

// ToDTOs converts a page of rows. The result is never nil.
func ToDTOs(servers []Server) []ServerDTO {
	out := make([]ServerDTO, 0, len(servers))
	for _, s := range servers {
		out = append(out, ToDTO(s))
	}
	return out
}

// ToEntity converts a transport record to a row. A nil ID leaves the row's ID
// zero so the store assigns one.
func ToEntity(d ServerDTO) Server {
	s := Server{
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Availability: d.Availability,
	}
	if d.ID != nil {
		s.ID = *d.ID
	}
	return s
}
