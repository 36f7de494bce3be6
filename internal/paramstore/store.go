package paramstore

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"lfpsync/internal/errors"
)

// Interface abstracts the underlying parameter database.
type Interface interface {
	Open() error
	Close() error
	Get(sessionID string) (*SessionParameters, error)
	Upsert(params *SessionParameters) error
	SaveArtifactTime(sessionID, stream string, seconds float64, method string) error
	SaveTimeshift(sessionID string, driftMs, refDurationSeconds float64) error
}

// SQLiteStore implements Interface on a SQLite database file.
type SQLiteStore struct {
	Path string
	db   *gorm.DB
}

// NewSQLite returns an unopened store for the given database path.
func NewSQLite(path string) *SQLiteStore {
	return &SQLiteStore{Path: path}
}

// Open connects to the database and performs migrations.
func (s *SQLiteStore) Open() error {
	db, err := gorm.Open(sqlite.Open(s.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return errors.New(err).
			Component("paramstore").
			Category(errors.CategoryDatabase).
			Context("path", s.Path).
			Build()
	}
	if err := db.AutoMigrate(&SessionParameters{}); err != nil {
		return errors.New(err).
			Component("paramstore").
			Category(errors.CategoryDatabase).
			Context("operation", "migrate").
			Build()
	}
	s.db = db
	return nil
}

// Close releases the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Get returns the parameters of one session.
func (s *SQLiteStore) Get(sessionID string) (*SessionParameters, error) {
	var params SessionParameters
	err := s.db.Where("session_id = ?", sessionID).First(&params).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Newf("no parameters for session %q", sessionID).
				Component("paramstore").
				Category(errors.CategoryNotFound).
				Build()
		}
		return nil, errors.New(err).
			Component("paramstore").
			Category(errors.CategoryDatabase).
			Context("session_id", sessionID).
			Build()
	}
	return &params, nil
}

// Upsert inserts or updates the record keyed by session ID. A record that
// already carries a primary key is written with a plain update; the
// conflict clause only covers inserts racing on the session ID.
func (s *SQLiteStore) Upsert(params *SessionParameters) error {
	var err error
	if params.ID != 0 {
		err = s.db.Save(params).Error
	} else {
		err = s.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"lfp_channel", "external_channel", "detection_method",
				"artifact_time_lfp", "artifact_time_external",
				"timeshift_ms", "ref_duration_seconds", "updated_at",
			}),
		}).Create(params).Error
	}
	if err != nil {
		return errors.New(err).
			Component("paramstore").
			Category(errors.CategoryDatabase).
			Context("session_id", params.SessionID).
			Build()
	}
	return nil
}

// SaveArtifactTime records a detected first-artifact onset for one stream.
func (s *SQLiteStore) SaveArtifactTime(sessionID, stream string, seconds float64, method string) error {
	params, err := s.getOrNew(sessionID)
	if err != nil {
		return err
	}
	switch stream {
	case "lfp":
		params.ArtifactTimeLFP = seconds
	case "external":
		params.ArtifactTimeExternal = seconds
	default:
		return errors.Newf("unknown stream %q", stream).
			Component("paramstore").
			Category(errors.CategoryValidation).
			Build()
	}
	if method != "" {
		params.DetectionMethod = method
	}
	return s.Upsert(params)
}

// SaveTimeshift records the drift-check outcome.
func (s *SQLiteStore) SaveTimeshift(sessionID string, driftMs, refDurationSeconds float64) error {
	params, err := s.getOrNew(sessionID)
	if err != nil {
		return err
	}
	params.TimeshiftMs = driftMs
	params.RefDurationSeconds = refDurationSeconds
	return s.Upsert(params)
}

func (s *SQLiteStore) getOrNew(sessionID string) (*SessionParameters, error) {
	params, err := s.Get(sessionID)
	if err != nil {
		if errors.IsNotFound(err) {
			return &SessionParameters{SessionID: sessionID}, nil
		}
		return nil, err
	}
	return params, nil
}
