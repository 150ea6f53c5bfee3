package store

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lessonforge/lessonforge/internal/lesson"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore persists lessons in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database in dataDir and runs pending
// migrations. Pass ":memory:" as dataDir for an in-memory database (tests).
func OpenSQLite(dataDir string) (*SQLiteStore, error) {
	var dsn string
	if dataDir == ":memory:" {
		dsn = ":memory:"
	} else {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, "lessonforge.db")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Limit to single connection to avoid "database is locked" errors.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// migrate applies embedded SQL migrations that haven't run yet.
func (s *SQLiteStore) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		var version int
		if _, err := fmt.Sscanf(entry.Name(), "%d_", &version); err != nil {
			return fmt.Errorf("parsing migration version from %q: %w", entry.Name(), err)
		}

		var exists int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM schema_version WHERE version = ?", version).Scan(&exists); err != nil {
			return fmt.Errorf("checking migration %d: %w", version, err)
		}
		if exists > 0 {
			continue
		}

		content, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning transaction for migration %d: %w", version, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", version, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", version, err)
		}
	}

	return nil
}

func (s *SQLiteStore) PutLesson(l lesson.Lesson) error {
	quizJSON := ""
	if l.Quiz != nil {
		b, err := json.Marshal(l.Quiz)
		if err != nil {
			return fmt.Errorf("marshalling quiz: %w", err)
		}
		quizJSON = string(b)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning insert transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO lessons (id, name, subject, grade_level, lesson_length, story_style, narrator, quiz_json, status, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.ClassSettings.Name, l.ClassSettings.Subject, l.ClassSettings.GradeLevel,
		l.LessonLength, l.StoryStyle, l.Narrator, quizJSON, string(l.Status), l.Error,
		l.CreatedAt.UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("inserting lesson: %w", err)
	}

	for i, f := range l.Frames {
		if _, err := tx.Exec(`
			INSERT INTO frames (lesson_id, idx, title, timestamp, prompt, status, image_url, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			l.ID, i, f.Title, f.Timestamp, f.Prompt, string(f.Status), f.ImageURL, f.Error,
		); err != nil {
			return fmt.Errorf("inserting frame %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetLesson(id string) (lesson.Lesson, error) {
	var l lesson.Lesson
	var quizJSON, status, createdAt string
	err := s.db.QueryRow(`
		SELECT id, name, subject, grade_level, lesson_length, story_style, narrator, quiz_json, status, error, created_at
		FROM lessons WHERE id = ?`, id,
	).Scan(&l.ID, &l.ClassSettings.Name, &l.ClassSettings.Subject, &l.ClassSettings.GradeLevel,
		&l.LessonLength, &l.StoryStyle, &l.Narrator, &quizJSON, &status, &l.Error, &createdAt)
	if err == sql.ErrNoRows {
		return lesson.Lesson{}, ErrNotFound
	}
	if err != nil {
		return lesson.Lesson{}, err
	}

	l.Status = lesson.Status(status)
	if l.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return lesson.Lesson{}, fmt.Errorf("parsing created_at: %w", err)
	}
	if quizJSON != "" {
		var q lesson.Quiz
		if err := json.Unmarshal([]byte(quizJSON), &q); err != nil {
			return lesson.Lesson{}, fmt.Errorf("unmarshalling quiz: %w", err)
		}
		l.Quiz = &q
	}

	rows, err := s.db.Query(`
		SELECT title, timestamp, prompt, status, image_url, error
		FROM frames WHERE lesson_id = ? ORDER BY idx ASC`, id,
	)
	if err != nil {
		return lesson.Lesson{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var f lesson.Frame
		var fstatus string
		if err := rows.Scan(&f.Title, &f.Timestamp, &f.Prompt, &fstatus, &f.ImageURL, &f.Error); err != nil {
			return lesson.Lesson{}, err
		}
		f.Status = lesson.FrameStatus(fstatus)
		l.Frames = append(l.Frames, f)
	}
	return l, rows.Err()
}

func (s *SQLiteStore) SetLessonStatus(id string, status lesson.Status, errDetail string) error {
	res, err := s.db.Exec(`UPDATE lessons SET status = ?, error = ? WHERE id = ?`,
		string(status), errDetail, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) SetFrame(id string, index int, f lesson.Frame) error {
	res, err := s.db.Exec(`
		UPDATE frames SET status = ?, image_url = ?, error = ? WHERE lesson_id = ? AND idx = ?`,
		string(f.Status), f.ImageURL, f.Error, id, index)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) CountLessons() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM lessons`).Scan(&n)
	return n, err
}
