package optimistic

import "github.com/BruksfildServices01/agenda-sync/internal/httperr"

// Tx is an optimistic mutation over a collection snapshot: apply a local
// guess immediately, then either commit the server's authoritative answer
// or roll the whole collection back to the snapshot. Rollback is wholesale,
// never field-level, so racing mutations can't leave a half-reverted view.
type Tx[T any] struct {
	snapshot []T
	working  []T
	done     bool
}

// Begin snapshots the collection and hands back a transaction holding an
// independent working copy. The input slice is not retained.
func Begin[T any](collection []T) *Tx[T] {
	snap := make([]T, len(collection))
	copy(snap, collection)

	work := make([]T, len(collection))
	copy(work, collection)

	return &Tx[T]{snapshot: snap, working: work}
}

// Apply runs the speculative change against the working copy and returns
// the result for immediate display. mutate receives its own copy and must
// return the replacement slice.
func (tx *Tx[T]) Apply(mutate func([]T) []T) []T {
	tx.working = mutate(tx.working)
	return tx.working
}

// Working returns the current speculative view.
func (tx *Tx[T]) Working() []T {
	return tx.working
}

// Commit resolves the transaction with the server's authoritative entity:
// reconcile replaces the locally-guessed items (the server may have
// normalized fields the guess didn't cover). A finished transaction cannot
// be reused.
func (tx *Tx[T]) Commit(reconcile func([]T) []T) ([]T, error) {
	if tx.done {
		return nil, httperr.ErrBusiness("transaction_finished")
	}
	tx.done = true
	if reconcile != nil {
		tx.working = reconcile(tx.working)
	}
	return tx.working, nil
}

// Rollback restores the exact pre-Apply snapshot.
func (tx *Tx[T]) Rollback() []T {
	tx.done = true
	restored := make([]T, len(tx.snapshot))
	copy(restored, tx.snapshot)
	return restored
}
