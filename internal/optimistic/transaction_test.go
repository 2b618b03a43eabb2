package optimistic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/agenda-sync/internal/httperr"
)

type row struct {
	ID   uint
	Name string
}

func TestApplyShowsGuessImmediately(t *testing.T) {
	tx := Begin([]row{{1, "a"}, {2, "b"}})

	working := tx.Apply(func(rows []row) []row {
		rows[0].Name = "guessed"
		return rows
	})

	assert.Equal(t, "guessed", working[0].Name)
	assert.Equal(t, working, tx.Working())
}

func TestRollbackRestoresExactSnapshot(t *testing.T) {
	original := []row{{1, "a"}, {2, "b"}, {3, "c"}}
	tx := Begin(original)

	tx.Apply(func(rows []row) []row {
		rows[0].Name = "x"
		rows[2].Name = "y"
		return append(rows, row{4, "extra"})
	})

	restored := tx.Rollback()
	assert.Equal(t, original, restored)
}

func TestBeginDoesNotRetainInput(t *testing.T) {
	original := []row{{1, "a"}}
	tx := Begin(original)

	// mutating the caller's slice after Begin must not leak into the
	// snapshot
	original[0].Name = "mutated"

	restored := tx.Rollback()
	assert.Equal(t, "a", restored[0].Name)
}

func TestCommitReconcilesServerAnswer(t *testing.T) {
	tx := Begin([]row{{1, "a"}})

	tx.Apply(func(rows []row) []row {
		rows[0].Name = "guess"
		return rows
	})

	committed, err := tx.Commit(func(rows []row) []row {
		rows[0].Name = "server"
		return rows
	})
	require.NoError(t, err)
	assert.Equal(t, "server", committed[0].Name)
}

func TestFinishedTransactionCannotCommitAgain(t *testing.T) {
	tx := Begin([]row{{1, "a"}})

	_, err := tx.Commit(nil)
	require.NoError(t, err)

	_, err = tx.Commit(nil)
	assert.True(t, httperr.IsBusiness(err, "transaction_finished"))
}

func TestRollbackAfterApplyIsWholesale(t *testing.T) {
	tx := Begin([]row{{1, "a"}, {2, "b"}})

	// two independent guesses; rollback reverts both, never one
	tx.Apply(func(rows []row) []row {
		rows[0].Name = "first"
		return rows
	})
	tx.Apply(func(rows []row) []row {
		rows[1].Name = "second"
		return rows
	})

	restored := tx.Rollback()
	assert.Equal(t, []row{{1, "a"}, {2, "b"}}, restored)
}
