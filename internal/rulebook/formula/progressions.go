package formula

// Progression is a level-indexed value table for class features whose
// counts don't follow simple arithmetic. Index 0 is level 1.
type Progression []int

// At returns the value for the given level, clamping out-of-range
// levels to the nearest table edge.
func (p Progression) At(level int) int {
	if len(p) == 0 {
		return 0
	}
	if level < 1 {
		level = 1
	}
	if level > len(p) {
		level = len(p)
	}
	return p[level-1]
}

// Progressions maps a named formula to its progression table
type Progressions map[string]Progression

// DefaultProgressions returns the SRD progression tables for the
// class features the built-in catalog references by name.
func DefaultProgressions() Progressions {
	return Progressions{
		"rage_uses": {
			2, 2, 3, 3, 3, 4, 4, 4, 4, 4,
			4, 5, 5, 5, 5, 5, 6, 6, 6, 6,
		},
		"channel_divinity_uses": {
			0, 1, 1, 1, 1, 2, 2, 2, 2, 2,
			2, 2, 2, 2, 2, 2, 2, 3, 3, 3,
		},
		"invocations_known": {
			0, 2, 2, 2, 3, 3, 4, 4, 5, 5,
			5, 6, 6, 6, 7, 7, 7, 8, 8, 8,
		},
		"infusions_known": {
			0, 4, 4, 4, 4, 6, 6, 6, 6, 8,
			8, 8, 8, 10, 10, 10, 10, 12, 12, 12,
		},
		"metamagic_known": {
			0, 0, 2, 2, 2, 2, 2, 2, 2, 3,
			3, 3, 3, 3, 3, 3, 4, 4, 4, 4,
		},
	}
}
