package repositories_test

import (
	"github.com/lifeline-dispatch/lifeline/internal/db"
	"testing"
)

// newTestDB creates a new in-memory database for testing purposes.
func newTestDB(t *testing.T) *db.DBs {
	t.Helper()
	var (
		dbs *db.DBs
		err error
	)

	if dbs, err = db.NewDB(":memory:"); err != nil {
		t.Fatal(err)
	}

	// Set database to read-only mode.
	// The mode=ro flag doesn't seem to work with :memory: and cache=shared.
	if _, err = dbs.ReadDB.Exec("PRAGMA query_only = TRUE;"); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		if err = dbs.ReadWriteDB.Close(); err != nil {
			t.Fatal(err)
		}
		if err = dbs.ReadDB.Close(); err != nil {
			t.Fatal(err)
		}
	})

	return dbs
}
