package character

// LegacyUsage carries the flat per-ability fields from the old storage
// design, one field per tracked ability. Consumed counts are "uses
// spent so far"; pool fields are "points spent so far". Pointer types
// distinguish "never stored" from a stored zero. The migration engine
// reads these exactly once per feature and never writes them back,
// except to clear a field whose value has been absorbed into the
// unified usage map.
type LegacyUsage struct {
	BardicInspirationUsed *int `json:"bardic_inspiration_used,omitempty"`
	SecondWindUsed        *int `json:"second_wind_used,omitempty"`
	ActionSurgeUsed       *int `json:"action_surge_used,omitempty"`
	RageUsed              *int `json:"rage_used,omitempty"`
	ChannelDivinityUsed   *int `json:"channel_divinity_used,omitempty"`
	FlashOfGeniusUsed     *int `json:"flash_of_genius_used,omitempty"`

	LayOnHandsSpent *int `json:"lay_on_hands_spent,omitempty"`
	KiSpent         *int `json:"ki_spent,omitempty"`
	SorceryTokens   *int `json:"sorcery_tokens_spent,omitempty"`

	Invocations []string `json:"invocations,omitempty"`
	Infusions   []string `json:"infusions,omitempty"`

	WildShapeUsed *int `json:"wild_shape_used,omitempty"`
}

// Clone returns a deep copy
func (l LegacyUsage) Clone() LegacyUsage {
	clone := l

	copyInt := func(p *int) *int {
		if p == nil {
			return nil
		}
		v := *p
		return &v
	}

	clone.BardicInspirationUsed = copyInt(l.BardicInspirationUsed)
	clone.SecondWindUsed = copyInt(l.SecondWindUsed)
	clone.ActionSurgeUsed = copyInt(l.ActionSurgeUsed)
	clone.RageUsed = copyInt(l.RageUsed)
	clone.ChannelDivinityUsed = copyInt(l.ChannelDivinityUsed)
	clone.FlashOfGeniusUsed = copyInt(l.FlashOfGeniusUsed)
	clone.LayOnHandsSpent = copyInt(l.LayOnHandsSpent)
	clone.KiSpent = copyInt(l.KiSpent)
	clone.SorceryTokens = copyInt(l.SorceryTokens)
	clone.WildShapeUsed = copyInt(l.WildShapeUsed)

	if l.Invocations != nil {
		clone.Invocations = make([]string, len(l.Invocations))
		copy(clone.Invocations, l.Invocations)
	}
	if l.Infusions != nil {
		clone.Infusions = make([]string, len(l.Infusions))
		copy(clone.Infusions, l.Infusions)
	}

	return clone
}

// IsEmpty reports whether no legacy fields are populated
func (l LegacyUsage) IsEmpty() bool {
	return l.BardicInspirationUsed == nil &&
		l.SecondWindUsed == nil &&
		l.ActionSurgeUsed == nil &&
		l.RageUsed == nil &&
		l.ChannelDivinityUsed == nil &&
		l.FlashOfGeniusUsed == nil &&
		l.LayOnHandsSpent == nil &&
		l.KiSpent == nil &&
		l.SorceryTokens == nil &&
		l.WildShapeUsed == nil &&
		len(l.Invocations) == 0 &&
		len(l.Infusions) == 0
}
