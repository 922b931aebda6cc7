// Package ci is the catalog of pipeline configuration entries: the document
// root, the job collection and every keyword a job or the `default` section
// may carry.
//
// A document is processed in one pass:
//
//	root := ci.NewRoot(raw, settings)
//	root.Compose(nil)
//	value, err := root.Result()
//
// Root composes `stages`, `default`, `variables` and `workflow` first and
// hands their resolved values to every job through entry.Deps. Jobs are
// classified by shape (hidden template, trigger bridge or regular job) and
// composed in name order, so repeated runs over the same input produce the
// same messages in the same order.
package ci
