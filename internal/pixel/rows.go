package pixel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Rows calls fn once for every row index in [0, height), spreading the rows
// over at most workers goroutines in contiguous bands. A workers value below 1
// means runtime.GOMAXPROCS(0).
//
// fn must only write to its own destination row; Rows returns once every call
// has finished.
func Rows(height, workers int, fn func(y int)) {
	if height <= 0 {
		return
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > height {
		workers = height
	}
	if workers == 1 {
		for y := 0; y < height; y++ {
			fn(y)
		}
		return
	}

	band := (height + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < height; start += band {
		start, end := start, min(start+band, height)
		g.Go(func() error {
			for y := start; y < end; y++ {
				fn(y)
			}
			return nil
		})
	}
	_ = g.Wait()
}
