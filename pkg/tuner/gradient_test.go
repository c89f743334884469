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
	"testing"

	"github.com/stretchr/testify/require"

	"laptudirm.com/x/mess/pkg/eval"
	"laptudirm.com/x/mess/pkg/eval/classical"
	"laptudirm.com/x/mess/pkg/eval/terms"
)

// White's king has positive midgame danger but negative (i.e. none,
// clamped) endgame danger; Black's king has the opposite. A correctly
// symmetric endgame safety-gradient indicator would test each side's
// own endgame danger sign. This entry is built so that the documented
// asymmetric bug (White's indicator testing the midgame sign instead)
// changes the resulting gradient versus what a symmetric indicator
// would produce.
func buggyAsymmetryEntry() *Entry {
	return &Entry{
		Coeffs: []classical.Coeff{
			{Index: terms.KingSafetyBoundary, White: 1, Black: 0},
		},
		PhaseFactors: [PhaseN]float64{MG: 0.5, EG: 0.5},
		Safety: [2]eval.Score{
			eval.S(10, -10), // white: mg danger positive, eg danger clamped away
			eval.S(-10, 10), // black: mg danger clamped away, eg danger positive
		},
		Eval:        eval.S(0, 0),
		StaticEval:  0,
		ScaleFactor: 1,
		Result:      0.5,
		GameScore:   0,
	}
}

func TestUpdateGradientPreservesAsymmetricSafetyBug(t *testing.T) {
	e := buggyAsymmetryEntry()
	var delta Vector
	var gradient Vector

	updateGradient(e, &gradient, delta, 1)
	gotEG := gradient[terms.KingSafetyBoundary][EG]

	// A symmetric implementation would test safety[white].eg > 0
	// (false here) instead of safety[white].mg > 0 (true here),
	// zeroing White's contribution to this gradient term.
	E, safety := adjustedEval(e, delta)
	s := Sigmoid(1, E)
	x := (e.Result - s) * s * (1 - s)
	egBase := x * e.PhaseFactors[EG]

	wIndicatorCorrect := 0.0
	if safety[white].eg > 0 {
		wIndicatorCorrect = 1
	}
	bIndicatorCorrect := 0.0
	if safety[black].eg > 0 {
		bIndicatorCorrect = 1
	}
	wantSymmetric := egBase / 16.0 * e.ScaleFactor * (wIndicatorCorrect*1 - bIndicatorCorrect*0)

	require.NotEqual(t, wantSymmetric, gotEG,
		"updateGradient must reproduce the asymmetric reference bug, not a corrected symmetric version")

	// The bug manifests specifically as White's indicator following
	// safety[white].mg instead of safety[white].eg.
	wantBuggy := egBase / 16.0 * e.ScaleFactor * (1*1 - bIndicatorCorrect*0)
	require.InDelta(t, wantBuggy, gotEG, 1e-9)
}

// computeGradient splits a batch across an uneven number of worker
// goroutines; the chunk bounds must stay inside the batch (no
// out-of-range entry access) when threads does not divide it evenly.
func TestComputeGradientCoversUnevenChunking(t *testing.T) {
	d := make(Dataset, 6)
	for i := range d {
		d[i] = Entry{PhaseFactors: [PhaseN]float64{MG: 1, EG: 0}, ScaleFactor: 1, Result: 0.5}
	}
	var delta Vector
	require.NotPanics(t, func() {
		computeGradient(d, delta, 1, 0, 6, 4)
	})
}
