package plan

import (
	"errors"
	"go/types"

	"tagmapper/internal/analyze"
	"tagmapper/tags"
)

// inferStrategy picks the strategy of a field type without explicit
// declaration. Manual wins over the built-ins so a string type with its
// own encoding keeps it. Composite types need an explicit json or cbor.
func inferStrategy(t *analyze.TypeInfo) tags.Strategy {
	switch {
	case t.Manual:
		return tags.StrategyManual
	case t.IsStringKind():
		return tags.StrategyString
	case t.IsBoolKind():
		return tags.StrategyBool
	default:
		return tags.StrategyUnknown
	}
}

// checkStrategy reports whether an explicitly declared strategy can encode t.
func checkStrategy(s tags.Strategy, t *analyze.TypeInfo) error {
	switch s {
	case tags.StrategyString:
		if !t.IsStringKind() {
			return errors.New("underlying type is not string")
		}
	case tags.StrategyBool:
		if !t.IsBoolKind() {
			return errors.New("underlying type is not bool")
		}
	case tags.StrategyManual:
		if !t.Manual {
			return errors.New("type does not implement MarshalTagValue and *T UnmarshalTagValue")
		}
	case tags.StrategyJSON, tags.StrategyCBOR:
		if !serializable(t.GoType) {
			return errors.New("channels and functions cannot be serialized")
		}
	default:
		return errors.New("unknown strategy")
	}

	return nil
}

func serializable(t types.Type) bool {
	if t == nil {
		return false
	}

	switch t.Underlying().(type) {
	case *types.Chan, *types.Signature:
		return false
	default:
		return true
	}
}
