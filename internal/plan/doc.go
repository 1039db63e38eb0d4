// Package plan provides the resolution pipeline that produces the Plan
// consumed by code generation.
//
// Resolution pipeline:
//  1. Analyze packages → type graph
//  2. Load YAML (optional) → validate
//  3. Select structs: --type flags, else configured and marked types
//  4. For each exported field pick the tag key and the encoding strategy
//     (configuration, then `tag` struct tag, then inference)
//  5. Emit diagnostics (unknown references, missing strategies, key clashes)
package plan
