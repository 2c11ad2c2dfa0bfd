// Package parallel provides a persistent, fixed-size worker pool with a
// parallel-for-and-barrier primitive.
//
// NewPool starts its goroutines once; every For call splits [0,n) into one
// contiguous Range per worker (worker w always receives Partition(n, W)[w]),
// runs them concurrently and returns only after all of them finished. Writes
// made by the workers are therefore visible to the caller once For returns.
//
// A panic inside the loop body is recovered and reported as ErrWorkerPanic;
// the pool stays usable. For calls are serialized; Close joins the workers.
package parallel
