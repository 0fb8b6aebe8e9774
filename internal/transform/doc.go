// Package transform rotates and scales pixel buffers by inverse coordinate
// mapping with nearest-neighbor sampling.
//
// Neither transform interpolates. Each destination cell copies exactly one
// source pixel, or stays transparent black when its source coordinate falls
// outside the image. Coordinates are rounded with halves going toward +Inf,
// which keeps output bit-identical to the browser implementation this engine
// replaced.
package transform
