// Package config defines the format-agnostic pipeline document and the
// Loader interface implemented by each front-end.
//
// A loaded Document holds a raw tree made only of map[string]any, []any,
// string, bool, int, float64 and nil. That tree is the single input of the
// `extends` and `ci` packages; concrete loaders for YAML and HCL live in
// separate packages.
package config
