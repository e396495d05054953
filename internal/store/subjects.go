package store

import "github.com/sadopc/focusflow/internal/catalog"

// DefaultSubjects returns a fresh copy of the seed subjects.
func DefaultSubjects() []Subject {
	subjects := make([]Subject, len(catalog.DefaultSubjects))
	for i, s := range catalog.DefaultSubjects {
		subjects[i] = Subject{ID: s.ID, Name: s.Name, Color: s.Color}
	}
	return subjects
}

// Subjects returns the persisted subjects, or the defaults when none are
// stored (a stored empty list counts as none).
func (s *Store) Subjects() []Subject {
	subjects := get[[]Subject](s, KeySubjects, nil)
	if len(subjects) == 0 {
		return DefaultSubjects()
	}
	return subjects
}

func (s *Store) SaveSubjects(subjects []Subject) error {
	return set(s, KeySubjects, subjects)
}
