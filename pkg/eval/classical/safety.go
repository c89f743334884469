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

package classical

import (
	"laptudirm.com/x/mess/internal/util"
	"laptudirm.com/x/mess/pkg/chess/piece"
	"laptudirm.com/x/mess/pkg/chess/square"
	"laptudirm.com/x/mess/pkg/eval"
	"laptudirm.com/x/mess/pkg/eval/terms"
)

// evaluateKingZones adds the per-side king-safety terms that don't
// belong to any one attacking piece: how many of the king's own zone
// squares have no pawn cover, and a bonus/malus for attacking with the
// queen already traded off the board. No safe-check term is computed;
// the KSCheck indices are never traced.
func evaluateKingZones(ctx *context) {
	queens := [piece.ColorN]bool{}
	for s := square.Square(0); s < square.N; s++ {
		if p := ctx.board.Position[s]; p.Type() == piece.Queen {
			queens[p.Color()] = true
		}
	}

	for c := piece.Color(0); c < piece.ColorN; c++ {
		weak := weakZoneCount(ctx, c)
		sign := util.Ternary(c == piece.White, int8(1), int8(-1))
		if weak > 0 {
			ctx.tr.add(terms.IndexKSWeakZone, c.Other(), int8(weak))
			ctx.tr.addSafety(c, *ctx.v.FetchTerm(terms.IndexKSWeakZone)*eval.Score(weak))
		}

		if !queens[c.Other()] {
			// the attacking side has no queen left: its remaining
			// attackers are much less dangerous than the per-piece
			// weights alone would suggest.
			ctx.add(terms.IndexKSQueenless, c, sign)
		}
	}
}

// weakZoneCount counts how many squares in color c's king zone are
// not covered by any of c's own pawns, a rough proxy for how exposed
// the king is to safe checks regardless of which piece delivers them.
func weakZoneCount(ctx *context, c piece.Color) int {
	king := ctx.king[c]
	covered := map[square.Square]bool{}
	for s := range ctx.pawns.bySquare[c] {
		for _, dst := range pawnCaptureSquares(c, s) {
			covered[dst] = true
		}
	}

	count := 0
	for _, s := range append(kingAttacks(king), king) {
		if !covered[s] {
			count++
		}
	}
	return count
}
