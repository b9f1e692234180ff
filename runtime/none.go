package runtime

// NoneValue is the sentinel a failed resolution yields. It is a defined
// type so renders can distinguish "absent" from a legitimate nil in the
// context data, and it survives further subscripting: indexing the
// sentinel yields the sentinel again.
type NoneValue struct{}

// None is the shared sentinel instance.
var None = NoneValue{}

// Marker is the display form of the sentinel. An unresolved variable with
// no default renders as this marker so the miss is visible in the output.
const Marker = "SuitNone()"

// String returns the display marker.
func (NoneValue) String() string { return Marker }

// IsNone reports whether v is the sentinel. An untyped nil counts too: a
// nil stored in the context behaves exactly like a missing key.
func IsNone(v interface{}) bool {
	if v == nil {
		return true
	}
	_, ok := v.(NoneValue)
	return ok
}
