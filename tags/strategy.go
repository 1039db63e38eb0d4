package tags

import "fmt"

//go:generate go tool stringer -type=Strategy -trimprefix=Strategy -linecomment

// Strategy names how a field type is encoded into a tag value.
type Strategy int

const (
	StrategyUnknown Strategy = iota // unknown
	StrategyString                  // string
	StrategyBool                    // bool
	StrategyManual                  // manual
	StrategyJSON                    // json
	StrategyCBOR                    // cbor
)

// ParseStrategy parses the lower-case strategy names used in struct tags
// and generator configuration.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "string":
		return StrategyString, nil
	case "bool":
		return StrategyBool, nil
	case "manual":
		return StrategyManual, nil
	case "json":
		return StrategyJSON, nil
	case "cbor":
		return StrategyCBOR, nil
	default:
		return StrategyUnknown, fmt.Errorf("unknown strategy %q", s)
	}
}

// IsSerialization reports whether the strategy embeds a serialized payload.
func (s Strategy) IsSerialization() bool {
	return s == StrategyJSON || s == StrategyCBOR
}
