package store

// EnsureSchema idempotently creates the detection table. Calling it
// against a database that already has the table is a no-op.
func (s *Store) EnsureSchema() error {
	migrations := []string{
		// Detection results - one row per detected object per image
		`CREATE TABLE IF NOT EXISTS object_detections (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			image_name TEXT,
			label TEXT,
			confidence REAL,
			x_center REAL,
			y_center REAL,
			width REAL,
			height REAL
		)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return &SchemaError{Err: err}
		}
	}

	return nil
}
