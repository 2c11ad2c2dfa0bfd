// Package layout implements an iterative, force-directed multidimensional
// scaling engine that embeds the elements of a distance.Source into a
// low-dimensional space (usually the plane) for display.
//
// Every Step moves each free element along the lines to the elements that
// influence it, in proportion to the gap between the target ("high")
// distance and the current embedded ("low") distance. Four modes are
// available:
//
//	Exhaustive                   all N-1 other elements, plain displacement
//	ExhaustiveVelocity           all N-1 other elements, with momentum
//	StochasticVelocity           3·K sampled elements, with momentum
//	StochasticVelocityAnnealing  as above, displacement scaled by a random factor in [1, 1.8)
//
// The stochastic modes keep three K-wide index caches per element: near
// (best candidates found so far), rand (fresh uniform draws each step) and
// sample (fresh draws from the anchor set, or from every element when no
// anchor exists). After every step near is rebuilt from the K closest
// distinct members of the union of the three, so it drifts toward the true
// nearest neighbours.
//
// Anchors (FixElement, FixElementAt) are never moved. A target distance of
// +Inf means "incomparable": the pair only repels, and only while closer than
// the repulsion distance.
//
// Concurrency:
//   - Steps run on a persistent parallel.Pool; each worker owns a contiguous
//     index range and writes only its own rows of the next-position buffer,
//     velocity and caches, while every read goes through the frozen current
//     buffer. The buffers are swapped after the barrier.
//   - The engine itself is not safe for concurrent use: configuration calls
//     and Step must not overlap.
//
// Determinism:
//   - WithSeed (or WithRand) makes a run reproducible for a fixed worker
//     count. Each worker draws from its own stream derived from the engine
//     generator.
//
// Run drives Step with a decaying weight (1.0, ×0.999 per step, floor 0.01 by
// default) until a tolerance, a plateau, a step cap, or context cancellation.
package layout
