package shared

import (
	"encoding/json"
	"time"
)

// ResourceKind categorizes how a class feature's resource behaves
type ResourceKind string

const (
	KindSlots              ResourceKind = "slots"
	KindPointsPool         ResourceKind = "points_pool"
	KindOptionsList        ResourceKind = "options_list"
	KindSpecialUX          ResourceKind = "special_ux"
	KindSkillModifier      ResourceKind = "skill_modifier"
	KindAvailabilityToggle ResourceKind = "availability_toggle"
)

// SelectedOption is one entry in an options_list selection. Older
// characters stored bare option keys, so it unmarshals from either a
// plain string or a full object.
type SelectedOption struct {
	Key         string `json:"key"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Attunement  bool   `json:"attunement,omitempty"`
}

// UnmarshalJSON accepts both the legacy bare-string form and the
// current object form.
func (o *SelectedOption) UnmarshalJSON(data []byte) error {
	var key string
	if err := json.Unmarshal(data, &key); err == nil {
		*o = SelectedOption{Key: key}
		return nil
	}

	type alias SelectedOption
	var full alias
	if err := json.Unmarshal(data, &full); err != nil {
		return err
	}
	*o = SelectedOption(full)
	return nil
}

// UsageRecord tracks the live state of one feature's resource.
// Only the fields relevant to the record's kind are populated.
type UsageRecord struct {
	Name  string       `json:"name"`
	Kind  ResourceKind `json:"kind"`
	Level int          `json:"level"` // level the feature activates at

	// slots
	CurrentUses int `json:"current_uses,omitempty"`
	MaxUses     int `json:"max_uses,omitempty"`

	// points_pool
	CurrentPoints int `json:"current_points,omitempty"`
	MaxPoints     int `json:"max_points,omitempty"`

	// options_list
	Selected []SelectedOption `json:"selected,omitempty"`

	// special_ux: owned by the bespoke module, opaque to the engine
	CustomState map[string]any `json:"custom_state,omitempty"`

	// availability_toggle
	Available bool `json:"available,omitempty"`

	Notes       string    `json:"notes,omitempty"`
	LastUpdated time.Time `json:"last_updated"`
	LastReset   time.Time `json:"last_reset,omitempty"`
}

// Clone returns a deep copy of the record
func (r *UsageRecord) Clone() *UsageRecord {
	if r == nil {
		return nil
	}

	clone := *r

	if r.Selected != nil {
		clone.Selected = make([]SelectedOption, len(r.Selected))
		copy(clone.Selected, r.Selected)
	}

	if r.CustomState != nil {
		clone.CustomState = make(map[string]any, len(r.CustomState))
		for k, v := range r.CustomState {
			clone.CustomState[k] = v
		}
	}

	return &clone
}

// HasOption reports whether an option with the given key is selected
func (r *UsageRecord) HasOption(key string) bool {
	for _, opt := range r.Selected {
		if opt.Key == key {
			return true
		}
	}
	return false
}

// UsageMap is the per-character feature-key -> usage record mapping
type UsageMap map[string]*UsageRecord

// Clone returns a copy of the map with every record deep-copied
func (m UsageMap) Clone() UsageMap {
	if m == nil {
		return UsageMap{}
	}

	clone := make(UsageMap, len(m))
	for key, record := range m {
		clone[key] = record.Clone()
	}
	return clone
}
