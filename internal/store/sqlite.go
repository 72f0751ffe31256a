package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/amishk599/skillradar/internal/model"
	"github.com/amishk599/skillradar/internal/tagger"
)

var _ model.JobStore = (*SQLiteStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	job_key     TEXT PRIMARY KEY,
	title       TEXT NOT NULL DEFAULT '',
	company     TEXT NOT NULL DEFAULT '',
	job_type    TEXT NOT NULL DEFAULT '',
	post_date   TEXT NOT NULL DEFAULT '',
	link        TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	status      INTEGER NOT NULL DEFAULT 0,
	first_seen  DATETIME DEFAULT CURRENT_TIMESTAMP,
	last_seen   DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS skill_runs (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	run_at    INTEGER NOT NULL,
	source    TEXT NOT NULL DEFAULT '',
	valid     INTEGER NOT NULL,
	discarded INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS skill_counts (
	run_id   INTEGER NOT NULL REFERENCES skill_runs(id),
	position INTEGER NOT NULL,
	skill    TEXT NOT NULL,
	count    INTEGER NOT NULL,
	PRIMARY KEY (run_id, skill)
);`

// Run is one recorded analysis pass.
type Run struct {
	ID     int64
	At     time.Time
	Source string // input the jobs were read from
	Result tagger.Result
}

// SQLiteStore keeps collected jobs and analysis runs in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures the
// schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// jobKey identifies a job across collections: its link, or title and company
// for entries that had none.
func jobKey(j model.Job) string {
	if j.Link != "" {
		return j.Link
	}
	return "nolink:" + strings.ToLower(j.Title) + "|" + strings.ToLower(j.Company)
}

// SaveJobs upserts jobs. A job seen before keeps its first_seen time and has
// its fields and last_seen refreshed.
func (s *SQLiteStore) SaveJobs(jobs []model.Job) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save jobs: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO jobs (job_key, title, company, job_type, post_date, link, description, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(job_key) DO UPDATE SET
			title = excluded.title,
			company = excluded.company,
			job_type = excluded.job_type,
			post_date = excluded.post_date,
			link = excluded.link,
			description = excluded.description,
			status = excluded.status,
			last_seen = CURRENT_TIMESTAMP`)
	if err != nil {
		return fmt.Errorf("prepare save jobs: %w", err)
	}
	defer stmt.Close()

	for _, j := range jobs {
		if _, err := stmt.Exec(jobKey(j), j.Title, j.Company, j.JobType, j.PostDate, j.Link, j.Description, int(j.Status)); err != nil {
			return fmt.Errorf("saving job %s: %w", jobKey(j), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save jobs: %w", err)
	}
	return nil
}

// LoadJobs returns every stored job in the order it was first seen.
func (s *SQLiteStore) LoadJobs() ([]model.Job, error) {
	rows, err := s.db.Query(`SELECT title, company, job_type, post_date, link, description, status
		FROM jobs ORDER BY first_seen, rowid`)
	if err != nil {
		return nil, fmt.Errorf("loading jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		var j model.Job
		var status int
		if err := rows.Scan(&j.Title, &j.Company, &j.JobType, &j.PostDate, &j.Link, &j.Description, &status); err != nil {
			return nil, fmt.Errorf("scanning job: %w", err)
		}
		j.Status = model.DescriptionStatus(status)
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading jobs: %w", err)
	}
	return jobs, nil
}

// SaveRun records an analysis result and returns its run ID.
func (s *SQLiteStore) SaveRun(source string, res tagger.Result) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin save run: %w", err)
	}
	defer tx.Rollback()

	r, err := tx.Exec("INSERT INTO skill_runs (run_at, source, valid, discarded) VALUES (?, ?, ?, ?)",
		time.Now().Unix(), source, res.Valid, res.Discarded)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	id, err := r.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for i, c := range res.Counts {
		if _, err := tx.Exec("INSERT INTO skill_counts (run_id, position, skill, count) VALUES (?, ?, ?, ?)",
			id, i, c.Skill, c.Count); err != nil {
			return 0, fmt.Errorf("inserting count for %s: %w", c.Skill, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit save run: %w", err)
	}
	return id, nil
}

// LatestRun returns the most recent analysis run, or nil if none was recorded.
func (s *SQLiteStore) LatestRun() (*Run, error) {
	var run Run
	var at int64
	err := s.db.QueryRow("SELECT id, run_at, source, valid, discarded FROM skill_runs ORDER BY id DESC LIMIT 1").
		Scan(&run.ID, &at, &run.Source, &run.Result.Valid, &run.Result.Discarded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading latest run: %w", err)
	}
	run.At = time.Unix(at, 0)

	rows, err := s.db.Query("SELECT skill, count FROM skill_counts WHERE run_id = ? ORDER BY position", run.ID)
	if err != nil {
		return nil, fmt.Errorf("loading counts for run %d: %w", run.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c tagger.SkillCount
		if err := rows.Scan(&c.Skill, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		run.Result.Counts = append(run.Result.Counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading counts for run %d: %w", run.ID, err)
	}
	return &run, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
