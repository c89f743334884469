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

package classical_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"laptudirm.com/x/mess/pkg/chess"
	"laptudirm.com/x/mess/pkg/chess/piece"
	"laptudirm.com/x/mess/pkg/eval/classical"
	"laptudirm.com/x/mess/pkg/eval/terms"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// The starting position is symmetric: with default (zero-seeded
// positional, conventional material) parameters it must evaluate to
// exactly zero, and the same must hold from Black's side to move.
func TestEvaluateStartingPositionIsBalanced(t *testing.T) {
	base := terms.Default()

	b := chess.New(startFEN)
	score, _ := classical.Evaluate(b, base)
	require.Zero(t, score)

	b.SideToMove = piece.Black
	scoreBlack, _ := classical.Evaluate(b, base)
	require.Equal(t, score, scoreBlack)
}

// The coefficient trace must stay sorted so that every safety-suffix
// tuple comes after every linear-prefix tuple, letting the gradient
// engine binary-search the boundary.
func TestEvaluateTraceCoeffsSortedWithSafetySuffix(t *testing.T) {
	b := chess.New("r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3")
	_, trace := classical.Evaluate(b, terms.Default())

	require.NotEmpty(t, trace.Coeffs)
	seenSafety := false
	for _, c := range trace.Coeffs {
		isSafety := terms.IsSafetyTerm(c.Index)
		if isSafety {
			seenSafety = true
		} else {
			require.False(t, seenSafety, "linear coefficient at index %d found after a safety coefficient", c.Index)
		}
	}

	for i := 1; i < len(trace.Coeffs); i++ {
		require.Less(t, trace.Coeffs[i-1].Index, trace.Coeffs[i].Index)
	}
}

// A material-only imbalance (White missing a knight) must evaluate
// strictly negative for White.
func TestEvaluateMaterialImbalance(t *testing.T) {
	b := chess.New("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/R1BQKBNR w KQkq - 0 1")
	score, _ := classical.Evaluate(b, terms.Default())
	require.Negative(t, score)
}
