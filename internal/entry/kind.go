// Package entry models Hyprland config entries (binds, rules, exec lines,
// env vars, gestures) as structured records addressed by their raw line.
//
// Every kind goes through the same Repository: validate locally, send one
// mutation, then refetch the whole collection. Nothing is patched locally.
package entry

// Action is the mutation verb sent to the backend.
type Action string

const (
	ActionAdd    Action = "add"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Kind is the per-collection capability set used by Repository.
type Kind[T any] interface {
	// Name is the collection name in URLs and list responses, e.g. "binds".
	Name() string

	// Fields lists the editable field names in display order.
	Fields() []string

	// Parse builds a record from field values keyed by Fields names.
	Parse(fields map[string]string) (T, error)

	// Values returns the Fields values of item, in order.
	Values(item T) []string

	Validate(item T) error

	// Serialize builds the request body. prev is the addressed record for
	// update and delete and the zero value for add.
	Serialize(action Action, next, prev T) any

	Identify(item T) EntryRef
}
