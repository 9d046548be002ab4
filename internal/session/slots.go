package session

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"prosty-screening/internal/search"
)

// SlotStore is a string key/value store for persisted session fields.
type SlotStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Field identifies one persisted part of State.
type Field string

// Slot names, one per tracked field.
const (
	FieldQuery        Field = "vectorSearchQuery"
	FieldResults      Field = "vectorSearchResults"
	FieldSelected     Field = "vectorSearchSelected"
	FieldPage         Field = "vectorSearchPage"
	FieldPageSize     Field = "vectorSearchPageSize"
	FieldLastViewed   Field = "vectorSearchLastViewed"
	FieldScrollOffset Field = "vectorSearchScrollPosition"
)

// AllFields lists every tracked field in a fixed order.
var AllFields = []Field{
	FieldQuery, FieldResults, FieldSelected, FieldPage, FieldPageSize, FieldLastViewed, FieldScrollOffset,
}

// Load hydrates a State from store. Each field is read on its own: a missing,
// unreadable or invalid slot falls back to that field's default and never
// affects the others.
func Load(ctx context.Context, store SlotStore, log *zap.Logger) *State {
	st := DefaultState()

	for _, f := range AllFields {
		raw, ok, err := store.Get(ctx, string(f))
		if err != nil {
			log.Debug("session slot read failed, using default", zap.String("slot", string(f)), zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		if err := decodeField(st, f, raw); err != nil {
			log.Debug("session slot malformed, using default", zap.String("slot", string(f)), zap.Error(err))
		}
	}
	return st
}

// decodeField only assigns into st once the value is known to be valid.
func decodeField(st *State, f Field, raw string) error {
	switch f {
	case FieldQuery:
		var q string
		if err := json.Unmarshal([]byte(raw), &q); err != nil {
			return err
		}
		st.Query = q
	case FieldResults:
		var results []search.CandidateResult
		if err := json.Unmarshal([]byte(raw), &results); err != nil {
			return err
		}
		if results == nil {
			return fmt.Errorf("results is null")
		}
		st.Results = results
	case FieldSelected:
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			return err
		}
		sel := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			sel[id] = struct{}{}
		}
		st.Selected = sel
	case FieldPage:
		n, err := decodePositive(raw)
		if err != nil {
			return err
		}
		st.Page = n
	case FieldPageSize:
		n, err := decodePositive(raw)
		if err != nil {
			return err
		}
		st.PageSize = n
	case FieldLastViewed:
		var id *string
		if err := json.Unmarshal([]byte(raw), &id); err != nil {
			return err
		}
		st.LastViewed = id
	case FieldScrollOffset:
		var n int
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("negative scroll offset %d", n)
		}
		st.ScrollOffset = n
	default:
		return fmt.Errorf("unknown slot %q", f)
	}
	return nil
}

func decodePositive(raw string) (int, error) {
	var n int
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("value %d out of range", n)
	}
	return n, nil
}

// Persist writes the given fields of st to store, one slot each.
func Persist(ctx context.Context, store SlotStore, st *State, fields ...Field) error {
	for _, f := range fields {
		raw, err := encodeField(st, f)
		if err != nil {
			return fmt.Errorf("encode %s: %w", f, err)
		}
		if err := store.Set(ctx, string(f), raw); err != nil {
			return fmt.Errorf("write %s: %w", f, err)
		}
	}
	return nil
}

func encodeField(st *State, f Field) (string, error) {
	var v interface{}
	switch f {
	case FieldQuery:
		v = st.Query
	case FieldResults:
		v = st.Results
	case FieldSelected:
		v = st.SelectedIDs()
	case FieldPage:
		v = st.Page
	case FieldPageSize:
		v = st.PageSize
	case FieldLastViewed:
		v = st.LastViewed
	case FieldScrollOffset:
		v = st.ScrollOffset
	default:
		return "", fmt.Errorf("unknown slot %q", f)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
