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
	"laptudirm.com/x/mess/pkg/eval/terms"
)

// rankIndex turns a pawn's rank into a 0-based index counting forward
// from its own second rank, used to index the rank-keyed pawn bonus
// tables (passed, phalanx, defended).
func rankIndex(c piece.Color, s square.Square) int {
	if c == piece.Black {
		s = s.Mirror()
	}
	return int(s.Rank()) - 1
}

// distance returns the Chebyshev distance between two squares.
func distance(a, b square.Square) int {
	df := util.Abs(int(a.File()) - int(b.File()))
	dr := util.Abs(int(a.Rank()) - int(b.Rank()))
	return util.Max(df, dr)
}

func evaluatePawn(ctx *context, c piece.Color, s square.Square, sign int8) {
	ps := ctx.pawns

	if ps.isDoubled(c, s) {
		ctx.add(terms.IndexDoubled, c, sign)
	}

	isolated := ps.isIsolated(c, s)
	backward := ps.isBackward(c, s)
	if isolated {
		ctx.add(terms.IndexIsolated, c, sign)
	}
	if backward {
		ctx.add(terms.IndexBackward, c, sign)
	}
	if isolated && backward {
		ctx.add(terms.IndexStraggler, c, sign)
	}

	rank := rankIndex(c, s)

	if ps.isPhalanx(c, s) && rank < terms.PhalanxN {
		ctx.add(terms.IndexPhalanx+rank, c, sign)
	}
	if ps.isDefended(c, s) && rank < terms.DefenderN {
		ctx.add(terms.IndexDefender+rank, c, sign)
	}

	if ps.isPassed(c, s) {
		if rank < terms.PasserN {
			ctx.add(terms.IndexPasser+rank, c, sign)
		}

		ourDist := distance(s, ctx.king[c]) - 1
		theirDist := distance(s, ctx.king[c.Other()]) - 1
		if ourDist >= 0 && ourDist < terms.PPKingProxN {
			ctx.add(terms.IndexPPOurKingProx+ourDist, c, sign)
		}
		if theirDist >= 0 && theirDist < terms.PPKingProxN {
			ctx.add(terms.IndexPPTheirKingProx+theirDist, c, sign)
		}
	}
}

// totalPawnCount reports how many pawns, of either color, remain.
func (ctx *context) totalPawnCount() int {
	return len(ctx.pawns.bySquare[piece.White]) + len(ctx.pawns.bySquare[piece.Black])
}

func evaluateKnight(ctx *context, c piece.Color, s square.Square, sign int8) {
	closed := ctx.totalPawnCount() / 4
	if closed >= terms.KnightClosedPosN {
		closed = terms.KnightClosedPosN - 1
	}
	ctx.add(terms.IndexKnightClosedPos+closed, c, sign)

	shieldRank := forward(c, s.Rank())
	if int(shieldRank) >= 0 && int(shieldRank) <= 7 && ctx.pawns.bySquare[c][square.New(s.File(), shieldRank)] {
		ctx.add(terms.IndexKnightShielded, c, sign)
	}

	if outpost(ctx, c, s) {
		ctx.add(terms.IndexKnightOutpost, c, sign)
		if s.File() >= square.FileC && s.File() <= square.FileF {
			ctx.add(terms.IndexKnightCenterOutpost, c, sign)
		}
		if ctx.pawns.isDefended(c, s) {
			ctx.add(terms.IndexKnightSolidOutpost, c, sign)
		}
	}
}

func evaluateBishop(ctx *context, c piece.Color, s square.Square, sign int8) {
	sameColor := 0
	dark := (int(s.File())+int(s.Rank()))%2 == 0
	for ps := range ctx.pawns.bySquare[c] {
		if ((int(ps.File())+int(ps.Rank()))%2 == 0) == dark {
			sameColor++
		}
	}
	if sameColor >= terms.BishopPawnsColorN {
		sameColor = terms.BishopPawnsColorN - 1
	}
	ctx.add(terms.IndexBishopPawnsColor+sameColor, c, sign)

	shieldRank := forward(c, s.Rank())
	if int(shieldRank) >= 0 && int(shieldRank) <= 7 && ctx.pawns.bySquare[c][square.New(s.File(), shieldRank)] {
		ctx.add(terms.IndexBishopShielded, c, sign)
	}

	if isLongDiagonal(s) {
		ctx.add(terms.IndexBishopLongDiag, c, sign)
	}
}

// bishopPair adds the pair bonus once per side, meant to be called
// after the board walk once both bishop counts are known.
func bishopPair(ctx *context, counts [piece.ColorN]int) {
	for c := piece.Color(0); c < piece.ColorN; c++ {
		if counts[c] >= 2 {
			sign := util.Ternary(c == piece.White, int8(1), int8(-1))
			ctx.add(terms.IndexBishopPair, c, sign)
		}
	}
}

func isLongDiagonal(s square.Square) bool {
	f, r := int(s.File()), int(s.Rank())
	return f == r || f+r == 7
}

// outpost reports whether a knight or bishop on s is supported by a
// pawn and can never be challenged by an enemy pawn, i.e. no enemy
// pawn exists on an adjacent file that is still behind it.
func outpost(ctx *context, c piece.Color, s square.Square) bool {
	if !ctx.pawns.isDefended(c, s) {
		return false
	}

	enemy := c.Other()
	f := s.File()
	for _, df := range [2]int{-1, 1} {
		nf := int(f) + df
		if nf < 0 || nf > 7 {
			continue
		}
		for es := range ctx.pawns.bySquare[enemy] {
			if int(es.File()) != nf {
				continue
			}
			if c == piece.White && es.Rank() > s.Rank() {
				return false
			}
			if c == piece.Black && es.Rank() < s.Rank() {
				return false
			}
		}
	}
	return true
}

func evaluateRook(ctx *context, c piece.Color, s square.Square, sign int8) {
	ownPawns := ctx.pawns.byFile[c][s.File()]
	enemyPawns := ctx.pawns.byFile[c.Other()][s.File()]

	switch {
	case ownPawns == 0 && enemyPawns == 0:
		ctx.add(terms.IndexRookOpen, c, sign)
	case ownPawns == 0:
		ctx.add(terms.IndexRookSemiOpen, c, sign)
	}

	// a rook boxed in behind its own pawns is worth less than its
	// mobility count alone suggests.
	if ownPawns > 0 && len(rookAttacks(ctx.board, s)) <= 3 {
		ctx.add(terms.IndexRookBlocked, c, sign)
	}

	for _, dst := range rookAttacks(ctx.board, s) {
		if p := ctx.board.Position[dst]; p.Type() == piece.Queen && p.Color() != c {
			ctx.add(terms.IndexRookXrayQueen, c, sign)
			break
		}
	}
}
