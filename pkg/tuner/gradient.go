// Copyright © 2024 The Stash Tuner Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tuner

import (
	"sort"
	"sync"

	"laptudirm.com/x/mess/pkg/eval/terms"
)

// computeGradient accumulates the gradient of the batch starting at
// batchIdx*batchSize over threads goroutines, each folding its own
// local partial gradient into the shared total under a single mutex
// acquisition, mirroring the reference tuner's OpenMP parallel-for
// followed by one guarded reduction rather than a channel pipeline.
func computeGradient(d Dataset, delta Vector, k float64, batchIdx, batchSize, threads int) Vector {
	var gradient Vector
	var mu sync.Mutex
	var wg sync.WaitGroup

	start := batchIdx * batchSize
	chunk := (batchSize-1)/threads + 1

	for t := 0; t < threads; t++ {
		lo := start + t*chunk
		hi := lo + chunk
		if lo > start+batchSize {
			lo = start + batchSize
		}
		if hi > start+batchSize {
			hi = start + batchSize
		}
		if lo >= hi {
			continue
		}

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			var local Vector
			for i := lo; i < hi; i++ {
				updateGradient(&d[i], &local, delta, k)
			}

			mu.Lock()
			defer mu.Unlock()
			for i := 0; i < terms.TermsN; i++ {
				gradient[i][MG] += local[i][MG]
				gradient[i][EG] += local[i][EG]
			}
		}(lo, hi)
	}

	wg.Wait()
	return gradient
}

// updateGradient folds one training entry's contribution into
// gradient, under the current delta vector and K. The entry's tuples
// are already sorted index-ascending (see classical.tracer.coeffs), so
// the linear-prefix/safety-suffix split is a binary search rather than
// a scan, matching the reference tuner's firstTermKS search.
func updateGradient(e *Entry, gradient *Vector, delta Vector, k float64) {
	E, safety := adjustedEval(e, delta)
	s := Sigmoid(k, E)
	x := (e.Result - s) * s * (1 - s)
	mgBase := x * e.PhaseFactors[MG]
	egBase := x * e.PhaseFactors[EG]

	firstSafety := sort.Search(len(e.Coeffs), func(i int) bool {
		return terms.IsSafetyTerm(e.Coeffs[i].Index)
	})

	for _, c := range e.Coeffs[:firstSafety] {
		d := float64(c.White - c.Black)
		gradient[c.Index][MG] += mgBase * d
		gradient[c.Index][EG] += egBase * d * e.ScaleFactor
	}

	wPositiveMG := 0.0
	if safety[white].mg > 0 {
		wPositiveMG = safety[white].mg
	}
	bPositiveMG := 0.0
	if safety[black].mg > 0 {
		bPositiveMG = safety[black].mg
	}

	// NOTE: the endgame half below deliberately reproduces an
	// asymmetric bug present in the reference engine's gradient: the
	// White indicator tests safety[white].mg > 0 where it should test
	// safety[white].eg > 0, while the Black indicator correctly tests
	// safety[black].eg > 0. This makes White's endgame king-safety
	// gradient track the midgame danger sign instead of its own, and
	// was never fixed upstream; it is kept here verbatim rather than
	// silently corrected.
	for _, c := range e.Coeffs[firstSafety:] {
		wc, bc := float64(c.White), float64(c.Black)

		gradient[c.Index][MG] += mgBase / 128.0 * (wPositiveMG*wc - bPositiveMG*bc)

		wIndicator := 0.0
		if safety[white].mg > 0 {
			wIndicator = 1
		}
		bIndicator := 0.0
		if safety[black].eg > 0 {
			bIndicator = 1
		}
		gradient[c.Index][EG] += egBase / 16.0 * e.ScaleFactor * (wIndicator*wc - bIndicator*bc)
	}
}
