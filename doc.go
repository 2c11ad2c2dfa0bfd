// Package lvmds embeds abstract elements in a low-dimensional space from
// their pairwise distances, for use as a visual layout.
//
// Two engines share one distance capability (distance.Source):
//
//   - classical/: closed-form classical MDS: double-centre the squared
//     distances, take the top two eigenpairs by power iteration and Hotelling
//     deflation, scale the eigenvectors by √λ.
//   - layout/   : iterative force-directed MDS with four modes (exhaustive or
//     sampled influence sets, with or without momentum and annealing),
//     anchors, a repulsion distance for incomparable pairs, and a decaying
//     weight schedule. Steps run on a persistent worker pool over a
//     double-buffered state.
//
// Supporting packages:
//
//	matrix/  : dense row-major storage, validators, MatVecInto, rank-1 update, double-centring, bounds
//	distance/: Source, matrix/point/func adapters, Validate, Materialize
//	eigen/   : power iteration, deflation, TopK
//	parallel/: fixed worker pool with a partition + barrier primitive
//	rng/     : seeded generators and derived per-worker streams
//
// Quick example, four points on a unit square:
//
//	A───B
//	│   │
//	D───C
//
//	src, _ := distance.NewPoints([][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
//	res, _ := classical.ScaleSource(src, classical.WithSeed(1))
//	e, _ := layout.New(src, 2, layout.WithSeed(1))
//	defer e.Close()
//	_, _ = layout.Run(ctx, e, layout.DefaultSchedule())
//
// Results are reproducible only when a seed (or generator) is injected.
//
//	go get github.com/katalvlaran/lvmds
package lvmds
