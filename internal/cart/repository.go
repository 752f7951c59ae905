package cart

// Repository is the sole access path to the persisted cart document. All
// components depend on this interface rather than on the storage primitive.
//
// Writes are last-write-wins: a Save fully overwrites whatever another
// writer persisted in the meantime, with no merge. Subscribers receive the
// reloaded state when an external writer changes the document; a
// repository's own Save does not notify its subscribers, so the writing
// component updates its local view directly.
type Repository interface {
	// Load returns the persisted state. An absent or unparsable document
	// degrades to the empty cart; it never fails the caller.
	Load() State

	// Save serializes and persists the whole document.
	Save(State) error

	// Subscribe registers a callback for external changes to the document.
	// The returned func cancels the subscription.
	Subscribe(func(State)) (cancel func())
}
