package changeevent

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error types for event decoding.
var (
	ErrMissingDocumentKey     = errors.New("change event has no documentKey._id")
	ErrUnsupportedDocumentKey = errors.New("unsupported documentKey._id type")
	ErrMissingFullDocument    = errors.New("change event has no fullDocument")
	ErrTrailingData           = errors.New("unexpected data after change event")
)

// wireEvent is the JSON shape of an EventBridge change event detail.
type wireEvent struct {
	OperationType OperationType   `json:"operationType"`
	DocumentKey   json.RawMessage `json:"documentKey"`
	FullDocument  map[string]any  `json:"fullDocument"`
	Namespace     Namespace       `json:"ns"`
}

// Parse decodes an EventBridge detail payload into an Event.
// Numbers in fullDocument are kept as json.Number so no precision is lost
// on the way to the index.
func Parse(detail []byte) (Event, error) {
	dec := json.NewDecoder(bytes.NewReader(detail))
	dec.UseNumber()

	var w wireEvent
	if err := dec.Decode(&w); err != nil {
		return Event{}, fmt.Errorf("decode change event: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return Event{}, ErrTrailingData
	}

	id, err := parseDocumentKey(w.DocumentKey)
	if err != nil {
		return Event{}, err
	}

	return Event{
		OperationType: w.OperationType,
		DocumentKey:   DocumentKey{ID: id},
		FullDocument:  w.FullDocument,
		Namespace:     w.Namespace,
	}, nil
}

// parseDocumentKey extracts documentKey._id as a string. Atlas triggers emit
// the key as relaxed extended JSON, so ObjectIds arrive as {"$oid": "..."}.
func parseDocumentKey(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", ErrMissingDocumentKey
	}

	var key struct {
		ID any `bson:"_id"`
	}
	if err := bson.UnmarshalExtJSON(raw, false, &key); err != nil {
		return "", fmt.Errorf("decode documentKey: %w", err)
	}

	switch v := key.ID.(type) {
	case nil:
		return "", ErrMissingDocumentKey
	case string:
		if v == "" {
			return "", ErrMissingDocumentKey
		}
		return v, nil
	case primitive.ObjectID:
		return v.Hex(), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedDocumentKey, v)
	}
}
