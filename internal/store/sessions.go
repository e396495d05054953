package store

// Sessions returns every persisted session, oldest first.
func (s *Store) Sessions() []StudySession {
	return get(s, KeySessions, []StudySession{})
}

// SaveSession appends one session: it reads the current list, appends and
// writes the whole list back. It is not safe against concurrent writers.
func (s *Store) SaveSession(session StudySession) error {
	sessions := s.Sessions()
	sessions = append(sessions, session)
	if err := set(s, KeySessions, sessions); err != nil {
		return err
	}
	s.log.Debug("session saved", "id", session.ID, "subject", session.SubjectID, "duration", session.Duration)
	return nil
}

// SaveSessions replaces the whole session list.
func (s *Store) SaveSessions(sessions []StudySession) error {
	return set(s, KeySessions, sessions)
}
