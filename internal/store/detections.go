package store

import (
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Detection represents one detected object in one image, as persisted.
type Detection struct {
	ID         int64
	ImageName  string
	Label      string
	Confidence float64
	XCenter    float64
	YCenter    float64
	Width      float64
	Height     float64
}

// DetectionRepository provides operations on persisted detections.
type DetectionRepository struct {
	db *sql.DB
}

// Detections returns the detection repository for this store.
func (s *Store) Detections() *DetectionRepository {
	return &DetectionRepository{db: s.db}
}

// AppendBatch inserts every record within a single transaction: either all
// records commit, or on any insert failure the transaction rolls back and a
// *PersistenceError propagates. An empty batch commits nothing and returns
// nil. Not safe for concurrent use against the same connection.
func (r *DetectionRepository) AppendBatch(records []Detection) error {
	tx, err := r.db.Begin()
	if err != nil {
		return &PersistenceError{Err: err}
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO object_detections (image_name, label, confidence, x_center, y_center, width, height)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return &PersistenceError{Err: err}
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err := stmt.Exec(
			rec.ImageName, rec.Label, rec.Confidence,
			rec.XCenter, rec.YCenter, rec.Width, rec.Height,
		)
		if err != nil {
			return &PersistenceError{Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &PersistenceError{Err: err}
	}

	return nil
}

// GetByID retrieves a detection by its primary key.
func (r *DetectionRepository) GetByID(id int64) (*Detection, error) {
	d := &Detection{}

	err := r.db.QueryRow(
		`SELECT id, image_name, label, confidence, x_center, y_center, width, height
		 FROM object_detections WHERE id = ?`,
		id,
	).Scan(&d.ID, &d.ImageName, &d.Label, &d.Confidence, &d.XCenter, &d.YCenter, &d.Width, &d.Height)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return d, nil
}

// ListByImage retrieves all detections recorded for an image, in insertion order.
func (r *DetectionRepository) ListByImage(imageName string) ([]Detection, error) {
	rows, err := r.db.Query(
		`SELECT id, image_name, label, confidence, x_center, y_center, width, height
		 FROM object_detections WHERE image_name = ? ORDER BY id`,
		imageName,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var detections []Detection
	for rows.Next() {
		var d Detection
		if err := rows.Scan(&d.ID, &d.ImageName, &d.Label, &d.Confidence, &d.XCenter, &d.YCenter, &d.Width, &d.Height); err != nil {
			return nil, err
		}
		detections = append(detections, d)
	}

	return detections, rows.Err()
}

// Count returns the total number of persisted detections.
func (r *DetectionRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM object_detections`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
