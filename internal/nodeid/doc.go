// internal/nodeid/doc.go

/*
Package nodeid provides a structured representation of positions inside a
pipeline configuration tree, rendered in the canonical `a:b[0]:c` form.

Segments are separated by colons; an optional `[n]` suffix addresses an
element of an array. The same addresses label validation messages
(`jobs:rspec:services[0] config should be a hash or a string`) and select
sub-trees of a composed document from the command line.
*/
package nodeid
