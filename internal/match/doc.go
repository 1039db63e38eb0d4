// Package match finds near misses for names the user typed, such as a
// misspelled struct field in the tag configuration.
//
// Key functions:
//   - NormalizeIdent: folds case and drops separators
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks the closest candidates for a name
package match
