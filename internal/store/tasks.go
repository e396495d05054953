package store

func (s *Store) Tasks() []Task {
	return get(s, KeyTasks, []Task{})
}

func (s *Store) SaveTasks(tasks []Task) error {
	return set(s, KeyTasks, tasks)
}
