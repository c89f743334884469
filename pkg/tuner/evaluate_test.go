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

	"laptudirm.com/x/mess/pkg/chess"
	"laptudirm.com/x/mess/pkg/eval"
	"laptudirm.com/x/mess/pkg/eval/classical"
	"laptudirm.com/x/mess/pkg/eval/terms"
)

// adjustedEval must net a coefficient's White and Black occurrence
// counts against each other (White - Black), the same convention the
// reference tuner's wcoeff/bcoeff split uses. A White count of 3 and a
// Black count of 1 against a +10 midgame delta should move the
// evaluation by (3-1)*10 = 20, not by (3+1)*10, which is what a
// sign-encoded Black count would produce.
func TestAdjustedEvalNetsWhiteMinusBlackCoefficients(t *testing.T) {
	e := Entry{
		Coeffs:       []classical.Coeff{{Index: terms.IndexPiece, White: 3, Black: 1}},
		PhaseFactors: [PhaseN]float64{MG: 1, EG: 0},
		ScaleFactor:  1,
	}
	var delta Vector
	delta[terms.IndexPiece][MG] = 10

	mixed, _ := adjustedEval(&e, delta)
	require.InDelta(t, 20.0, mixed, 1e-9)
}

// At delta zero, adjustedEval must fold the king-safety contribution
// into the mixed evaluation rather than cancel it away: changing only
// an entry's Safety pair must change the returned evaluation, and the
// change must match a fresh application of the midgame safety fold.
func TestAdjustedEvalIncludesKingSafetyAtZeroDelta(t *testing.T) {
	base := Entry{
		Eval:         eval.S(100, 50),
		PhaseFactors: [PhaseN]float64{MG: 0.5, EG: 0.5},
		ScaleFactor:  1,
	}

	noDanger := base
	noDanger.Safety = [2]eval.Score{eval.S(0, 0), eval.S(0, 0)}
	mixedNoDanger, _ := adjustedEval(&noDanger, Vector{})

	whiteDanger := base
	whiteDanger.Safety = [2]eval.Score{eval.S(64, 0), eval.S(0, 0)}
	mixedWhiteDanger, _ := adjustedEval(&whiteDanger, Vector{})

	require.NotEqual(t, mixedNoDanger, mixedWhiteDanger,
		"adjustedEval must fold king safety into the mixed evaluation, not cancel it out")

	wantDelta := -(foldMGf(64) - foldMGf(0)) * base.PhaseFactors[MG]
	require.InDelta(t, wantDelta, mixedWhiteDanger-mixedNoDanger, 1e-9)
}

// adjustedEval at delta zero must reproduce exactly the live
// evaluator's own fold of a frozen trace: the linear total (already
// netted into Eval) plus a single, freshly-recomputed safety fold,
// phase-interpolated and endgame-scaled. This guards against
// reintroducing a double subtraction of a safety fold that was never
// baked into Eval in the first place.
func TestAdjustedEvalMatchesHandComputedFold(t *testing.T) {
	e := Entry{
		Eval:         eval.S(120, 80),
		Safety:       [2]eval.Score{eval.S(40, 10), eval.S(20, -5)},
		PhaseFactors: [PhaseN]float64{MG: 0.6, EG: 0.4},
		ScaleFactor:  1,
	}
	mixed, safety := adjustedEval(&e, Vector{})

	wantSafetyMG := foldMGf(40) - foldMGf(20)
	wantSafetyEG := foldEGf(10) - foldEGf(-5)
	wantMG := float64(e.Eval.MG()) + wantSafetyMG
	wantEG := float64(e.Eval.EG()) + wantSafetyEG
	want := wantMG*e.PhaseFactors[MG] + wantEG*e.PhaseFactors[EG]*e.ScaleFactor

	require.InDelta(t, want, mixed, 1e-9)
	require.Equal(t, 40.0, safety[white].mg)
	require.Equal(t, 20.0, safety[black].mg)
}

// A position and its exact colour reflection (every piece swaps
// colour, ranks flip top-to-bottom, side to move swaps) must trace
// coefficients that stay non-negative for both White and Black: the
// tracer keeps an occurrence count per side, never a signed value that
// happens to go negative for Black.
func TestEvaluateCoeffsStayNonNegativeAcrossColourMirror(t *testing.T) {
	b := chess.New("r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3")
	mirrored := chess.New("rnbqkb1r/pppp1ppp/5n2/4p3/4P3/2N5/PPPP1PPP/R1BQKBNR b KQkq - 2 3")

	for _, board := range []*chess.Board{b, mirrored} {
		_, trace := classical.Evaluate(board, terms.Default())
		for _, c := range trace.Coeffs {
			require.GreaterOrEqual(t, c.White, int8(0))
			require.GreaterOrEqual(t, c.Black, int8(0))
		}
	}
}
