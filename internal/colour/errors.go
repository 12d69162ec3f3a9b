package colour

import "fmt"

// InvalidConfigError reports a cluster count or resample size that cannot produce a palette.
type InvalidConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s=%v: %s", e.Field, e.Value, e.Reason)
}

// InvalidColorError reports a centroid channel outside [0,255] after truncation.
// Upstream invariants make this unreachable; seeing it means an internal fault.
type InvalidColorError struct {
	Channel string
	Value   float64
}

func (e *InvalidColorError) Error() string {
	return fmt.Sprintf("invalid colour: channel %s value %v outside [0,255]", e.Channel, e.Value)
}
