// Package changeevent models MongoDB change stream events delivered to the
// search sync Lambda through EventBridge.
package changeevent

// OperationType is the change stream operation that produced an event.
type OperationType string

const (
	// OperationInsert indicates a new document was created.
	OperationInsert OperationType = "insert"
	// OperationUpdate indicates an existing document was modified.
	OperationUpdate OperationType = "update"
	// OperationReplace indicates an existing document was replaced wholesale.
	OperationReplace OperationType = "replace"
	// OperationDelete indicates a document was removed.
	OperationDelete OperationType = "delete"
)

// IDField is the identifier field MongoDB stores inside every document.
const IDField = "_id"

// DocumentKey identifies the document affected by a change.
type DocumentKey struct {
	ID string
}

// Namespace is the database and collection the change happened in.
type Namespace struct {
	DB         string `json:"db"`
	Collection string `json:"coll"`
}

// Event is a single change stream notification.
type Event struct {
	OperationType OperationType
	DocumentKey   DocumentKey
	FullDocument  map[string]any
	Namespace     Namespace
}

// IsDelete reports whether the event removes its document.
func (e Event) IsDelete() bool {
	return e.OperationType == OperationDelete
}

// SanitizedDocument returns a copy of doc without its identifier field.
// The search index assigns identity from the document key, and rejects
// documents carrying _id in their body. doc is not modified.
func SanitizedDocument(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		if k == IDField {
			continue
		}
		out[k] = v
	}
	return out
}
