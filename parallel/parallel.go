// Package parallel spreads independent commitment operations over a bounded
// pool of goroutines. The pointproofs engine itself never spawns goroutines.
package parallel

import (
	"context"
	"runtime"

	"github.com/Electron-Labs/pointproofs-gnark/pointproofs"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var ErrVerificationFailed = errors.New("proof verification failed")

func limit(workers int) int {
	if workers <= 0 {
		return runtime.NumCPU()
	}
	return workers
}

// forEach runs fn for every i in [0, n) on at most workers goroutines and
// stops scheduling new items once ctx is done or fn fails.
func forEach(ctx context.Context, n, workers int, fn func(ctx context.Context, i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit(workers))
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// Wait cancels gctx, so report the caller's ctx
	return ctx.Err()
}

// ProveAll opens values at each of indices. The result is ordered like indices.
func ProveAll(ctx context.Context, pp *pointproofs.ProverParams, values [][]byte, indices []int, workers int) ([]*pointproofs.Proof, error) {
	proofs := make([]*pointproofs.Proof, len(indices))
	err := forEach(ctx, len(indices), workers, func(_ context.Context, i int) error {
		p, err := pointproofs.Prove(pp, values, indices[i])
		if err != nil {
			return errors.Wrapf(err, "prove index %d", indices[i])
		}
		proofs[i] = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debug().Int("proofs", len(proofs)).Int("workers", limit(workers)).Msg("proved in parallel")
	return proofs, nil
}

// VerifyAll checks proofs[i] for values[i] at indices[i]. It returns
// ErrVerificationFailed naming the first failing index it observed.
func VerifyAll(ctx context.Context, vp *pointproofs.VerifierParams, com *pointproofs.Commitment, proofs []*pointproofs.Proof, values [][]byte, indices []int, workers int) error {
	if len(proofs) != len(values) || len(proofs) != len(indices) {
		return errors.Wrapf(pointproofs.ErrLengthMismatch, "%d proofs, %d values, %d indices", len(proofs), len(values), len(indices))
	}
	return forEach(ctx, len(proofs), workers, func(_ context.Context, i int) error {
		if !pointproofs.Verify(vp, com, proofs[i], values[i], indices[i]) {
			return errors.Wrapf(ErrVerificationFailed, "index %d", indices[i])
		}
		return nil
	})
}

// CommitAll commits each vector independently.
func CommitAll(ctx context.Context, pp *pointproofs.ProverParams, vectors [][][]byte, workers int) ([]*pointproofs.Commitment, error) {
	coms := make([]*pointproofs.Commitment, len(vectors))
	err := forEach(ctx, len(vectors), workers, func(_ context.Context, i int) error {
		c, err := pointproofs.Commit(pp, vectors[i])
		if err != nil {
			return errors.Wrapf(err, "commit vector %d", i)
		}
		coms[i] = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return coms, nil
}
