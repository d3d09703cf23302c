package service

import (
	"testing"

	"github.com/aussiebroadwan/cove/internal/cove/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

// newTestStore spins up a migrated in-memory database. The store caps its
// pool at one connection, so every query in a test sees the same database.
func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}
