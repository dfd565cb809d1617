package shared

// RestType represents when a resource's uses are restored
type RestType string

const (
	RestTypeShort RestType = "short_rest"
	RestTypeLong  RestType = "long_rest"
	RestTypeDawn  RestType = "dawn"
	RestTypeNone  RestType = "none" // Never restored (consumables)
)

// Replenishes reports whether a resource with the given timing is
// restored by a rest of type rest. Long rests and dawn both restore
// resources tagged with either timing; short rests only restore
// short-rest resources.
func (timing RestType) Replenishes(rest RestType) bool {
	switch rest {
	case RestTypeShort:
		return timing == RestTypeShort
	case RestTypeLong, RestTypeDawn:
		return timing == RestTypeLong || timing == RestTypeDawn
	default:
		return false
	}
}
