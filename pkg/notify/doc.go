// Package notify keeps the list of transient toast notifications shown to
// the user after resolution actions.
//
//	store := notify.NewStore()
//	store.Success("Game matched")
//	store.Error("Failed to match game") // sticky
//
// A store holds at most five toasts; adding another evicts the oldest.
package notify
