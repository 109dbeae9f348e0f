package models

import (
	"encoding/json"
	"maps"

	"flims/pkg/platform/validation"
)

// Known field names on a Flim. Anything else lives in Extra.
const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
)

// Flim is the only record type served by the API.
//
// Invariants:
//   - ID is positive and unique within a store
//   - Title has at least 3 characters when written through the API
//   - Extra never shadows id, title or description
type Flim struct {
	ID          int
	Title       string
	Description string
	Extra       map[string]any
}

// flimJSON fixes the output order of the known fields.
type flimJSON struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// MarshalJSON flattens Extra into the record object after the known fields.
func (f Flim) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(flimJSON{ID: f.ID, Title: f.Title, Description: f.Description})
	if err != nil {
		return nil, err
	}
	extra := f.extraWithoutKnown()
	if len(extra) == 0 {
		return base, nil
	}
	tail, err := json.Marshal(extra)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(base)+len(tail))
	out = append(out, base[:len(base)-1]...)
	out = append(out, ',')
	out = append(out, tail[1:]...)
	return out, nil
}

// UnmarshalJSON splits known fields from extension fields.
func (f *Flim) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var known flimJSON
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	f.ID, f.Title, f.Description = known.ID, known.Title, known.Description
	f.Extra = nil
	for k, v := range raw {
		if isKnownField(k) {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return err
		}
		if f.Extra == nil {
			f.Extra = make(map[string]any)
		}
		f.Extra[k] = val
	}
	return nil
}

// Clone returns a copy whose Extra map is not shared with f.
func (f Flim) Clone() Flim {
	f.Extra = maps.Clone(f.Extra)
	return f
}

// SetField overwrites a named field. Unknown names go to Extra; id is
// immutable and ignored.
func (f *Flim) SetField(name string, value any) {
	switch name {
	case FieldID:
		return
	case FieldTitle:
		f.Title = validation.StringValue(value)
	case FieldDescription:
		f.Description = validation.StringValue(value)
	default:
		if f.Extra == nil {
			f.Extra = make(map[string]any)
		}
		f.Extra[name] = value
	}
}

func (f Flim) extraWithoutKnown() map[string]any {
	if len(f.Extra) == 0 {
		return nil
	}
	out := make(map[string]any, len(f.Extra))
	for k, v := range f.Extra {
		if !isKnownField(k) {
			out[k] = v
		}
	}
	return out
}

func isKnownField(name string) bool {
	return name == FieldID || name == FieldTitle || name == FieldDescription
}
