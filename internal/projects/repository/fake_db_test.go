package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeRow mirrors one projects row. nil slices stand for SQL NULL.
type fakeRow struct {
	title        string
	scenarioID   string
	diagram      []byte
	chat         []byte
	evaluation   []byte
	lastModified time.Time
}

// fakeDB understands the handful of statements the repository issues.
type fakeDB struct {
	mu      sync.Mutex
	rows    map[string]*fakeRow
	execErr error
	execs   int
}

func newFakeDB() *fakeDB {
	return &fakeDB{rows: map[string]*fakeRow{}}
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.execs++
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}

	switch {
	case strings.Contains(sql, "CREATE TABLE"):
		return pgconn.NewCommandTag("CREATE TABLE"), nil
	case strings.Contains(sql, "INSERT INTO projects"):
		id := args[0].(string)
		row, ok := f.rows[id]
		if !ok {
			row = &fakeRow{}
			f.rows[id] = row
		}
		row.title = args[1].(string)
		row.scenarioID = args[2].(string)
		row.diagram = []byte(args[3].(string))
		row.chat = []byte(args[4].(string))
		row.lastModified = args[5].(time.Time)
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	case strings.Contains(sql, "SET evaluation"):
		row, ok := f.rows[args[0].(string)]
		if !ok {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		}
		row.evaluation = []byte(args[1].(string))
		return pgconn.NewCommandTag("UPDATE 1"), nil
	}
	return pgconn.CommandTag{}, fmt.Errorf("fakeDB: unexpected exec %q", sql)
}

func (f *fakeDB) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[args[0].(string)]
	if !ok {
		return errRow{err: pgx.ErrNoRows}
	}
	cp := *row
	return &cp
}

// put inserts a raw row, bypassing Save, to simulate NULL or corrupt columns.
func (f *fakeDB) put(id string, row fakeRow) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[id] = &row
}

func (r *fakeRow) Scan(dest ...any) error {
	if len(dest) != 6 {
		return fmt.Errorf("fakeRow: expected 6 destinations, got %d", len(dest))
	}
	*dest[0].(*string) = r.title
	*dest[1].(*string) = r.scenarioID
	*dest[2].(*[]byte) = r.diagram
	*dest[3].(*[]byte) = r.chat
	*dest[4].(*[]byte) = r.evaluation
	*dest[5].(*time.Time) = r.lastModified
	return nil
}

type errRow struct{ err error }

func (e errRow) Scan(...any) error { return e.err }
