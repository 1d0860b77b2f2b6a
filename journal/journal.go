// Package journal keeps a per-tick record of a match in SQLite so games can
// be reviewed after the fact. Writes are asynchronous and never stall a tick.
package journal

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	_ "modernc.org/sqlite"
)

const (
	queueSize = 4096
	maxBatch  = 256
)

// Entry summarizes one agent tick.
type Entry struct {
	Session string
	Team    string
	Tick    int
	Time    float64

	Bases  int
	Ground int
	Air    int
	Naval  int

	Built    int
	Adopted  int
	Retired  int
	Assigned int

	Headings int
	Gotos    int
	Converts int
}

// Journal appends entries to a SQLite database from a single writer
// goroutine. A nil *Journal accepts and discards entries.
type Journal struct {
	db *sql.DB
	ch chan Entry
	wg sync.WaitGroup

	mu      sync.RWMutex // guards closed and sends on ch
	closed  bool
	dropped atomic.Int64
}

// Open creates or opens the journal database at path.
func Open(path string) (*Journal, error) {
	if path == "" {
		return nil, fmt.Errorf("empty journal path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	j := &Journal{db: db, ch: make(chan Entry, queueSize)}
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		j.loop()
	}()
	return j, nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		`CREATE TABLE IF NOT EXISTS ticks (
			session   TEXT NOT NULL,
			team      TEXT NOT NULL,
			tick      INTEGER NOT NULL,
			time      REAL NOT NULL,
			bases     INTEGER NOT NULL,
			ground    INTEGER NOT NULL,
			air       INTEGER NOT NULL,
			naval     INTEGER NOT NULL,
			built     INTEGER NOT NULL,
			adopted   INTEGER NOT NULL,
			retired   INTEGER NOT NULL,
			assigned  INTEGER NOT NULL,
			headings  INTEGER NOT NULL,
			gotos     INTEGER NOT NULL,
			converts  INTEGER NOT NULL,
			PRIMARY KEY (session, tick)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("init journal schema: %w", err)
		}
	}
	return nil
}

// Record queues an entry. It drops the entry if the writer has fallen
// behind or the journal is closed.
func (j *Journal) Record(e Entry) {
	if j == nil {
		return
	}
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return
	}
	select {
	case j.ch <- e:
	default:
		if n := j.dropped.Add(1); n == 1 || n%1000 == 0 {
			slog.Warn("journal falling behind, dropping entries", "dropped", n)
		}
	}
}

// Dropped returns how many entries were discarded so far.
func (j *Journal) Dropped() int64 {
	if j == nil {
		return 0
	}
	return j.dropped.Load()
}

// Close flushes queued entries and closes the database.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return nil
	}
	j.closed = true
	close(j.ch)
	j.mu.Unlock()

	j.wg.Wait()
	return j.db.Close()
}

func (j *Journal) loop() {
	batch := make([]Entry, 0, maxBatch)
	for e := range j.ch {
		batch = append(batch[:0], e)
	drain:
		for len(batch) < maxBatch {
			select {
			case next, ok := <-j.ch:
				if !ok {
					break drain
				}
				batch = append(batch, next)
			default:
				break drain
			}
		}
		if err := j.write(batch); err != nil {
			slog.Error("journal write failed", "entries", len(batch), "error", err)
		}
	}
}

func (j *Journal) write(batch []Entry) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO ticks
		(session, team, tick, time, bases, ground, air, naval, built, adopted, retired, assigned, headings, gotos, converts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, e := range batch {
		if _, err := stmt.Exec(
			e.Session, e.Team, e.Tick, e.Time,
			e.Bases, e.Ground, e.Air, e.Naval,
			e.Built, e.Adopted, e.Retired, e.Assigned,
			e.Headings, e.Gotos, e.Converts,
		); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
