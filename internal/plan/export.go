package plan

import (
	"slices"

	"tagmapper/internal/mapping"
)

// Export renders the resolved plan as a configuration file that pins every
// key and strategy, so later struct tag or inference changes do not move
// the wire format silently.
func Export(p *Plan) *mapping.File {
	f := &mapping.File{Version: mapping.CurrentVersion}

	for _, tp := range p.Types {
		tm := mapping.TypeMapping{
			Name:       tp.Name,
			Keys:       make(map[string]string, len(tp.Fields)),
			Strategies: make(map[string]string, len(tp.Fields)),
		}

		for _, fp := range tp.Fields {
			tm.Keys[fp.Name] = fp.Key
			tm.Strategies[fp.Name] = fp.Strategy.String()
		}

		if len(tp.Ignored) > 0 {
			tm.Ignore = mapping.StringOrArray(slices.Clone(tp.Ignored))
		}

		f.Types = append(f.Types, tm)
	}

	return f
}
