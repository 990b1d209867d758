// Package backend writes the final PDF. Two implementations exist: a
// browser backend that prints the rendered HTML through headless
// Chrome, and a native backend that paginates the block model with a
// pure-Go PDF writer. Both write atomically so a failed run never
// leaves a partial file at the destination.
package backend
