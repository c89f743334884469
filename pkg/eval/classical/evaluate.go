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

// Package classical implements the static evaluation function the
// tuner learns the parameters of. It is a from-scratch, square-array
// rewrite of the kind of hand-rolled term-by-term PeSTO evaluator a
// classical chess engine carries: material and piece-square tables,
// mobility, king safety, pawn structure, and a handful of threat
// terms, every one of which is backed by a tunable scorepair in
// package terms.
package classical

import (
	"laptudirm.com/x/mess/internal/util"
	"laptudirm.com/x/mess/pkg/chess"
	"laptudirm.com/x/mess/pkg/chess/piece"
	"laptudirm.com/x/mess/pkg/chess/square"
	"laptudirm.com/x/mess/pkg/eval"
	"laptudirm.com/x/mess/pkg/eval/psq"
	"laptudirm.com/x/mess/pkg/eval/terms"
)

// context threads the handful of values every term evaluator needs
// through the board walk: the parameter vector, the tracer recording
// coefficients, the running linear total, and the pawn/king layout
// computed once up front.
type context struct {
	board *chess.Board
	v     *terms.Terms[eval.Score]
	tr    *tracer
	total eval.Score

	pawns       *pawnSet
	king        [piece.ColorN]square.Square
	bishopCount [piece.ColorN]int
}

// add records amount occurrences of the term at index for side c, and
// folds its linear contribution (value * amount) into the running
// total. amount is positive for White and negative for Black, so a
// single call correctly nets White's and Black's occurrences against
// each other. The tracer itself only ever keeps a non-negative
// occurrence count per side (consumers reconstruct the net as
// White - Black), so only its magnitude is recorded there.
func (ctx *context) add(index int, c piece.Color, amount int8) {
	mag := amount
	if mag < 0 {
		mag = -mag
	}
	ctx.tr.add(index, c, mag)
	ctx.total += *ctx.v.FetchTerm(index) * eval.Score(amount)
}

// Evaluate runs the full static evaluation of b under parameter
// vector v, returning both the interpolated, phase- and safety-folded
// evaluation (from White's perspective) and the sparse coefficient
// trace the tuner's gradient engine needs to re-derive that same
// score analytically after v changes.
func Evaluate(b *chess.Board, v *terms.Terms[eval.Score]) (eval.Eval, *Trace) {
	table := psq.Build(v)

	ctx := &context{board: b, v: v, tr: newTracer(), pawns: newPawnSet(b)}
	for s := square.Square(0); s < square.N; s++ {
		if p := b.Position[s]; p.Type() == piece.King {
			ctx.king[p.Color()] = s
		}
	}

	phase := 0

	for s := square.Square(0); s < square.N; s++ {
		p := b.Position[s]
		if p == piece.NoPiece {
			continue
		}

		c := p.Color()
		sign := util.Ternary(c == piece.White, int8(1), int8(-1))
		// table[p][s] already bakes the base piece value and the
		// piece-square entry together, so it folds straight into the
		// running total; the tuples below only need to record which
		// two indices produced it, not add their values again. Each
		// tuple records a single, non-negative occurrence for side c;
		// total is already netted above, so sign has no part to play
		// here.
		ctx.total += table[p][s]

		switch p.Type() {
		case piece.Pawn:
			ctx.tr.add(terms.IndexPiece, c, 1)
			ctx.tr.add(terms.PawnPSQTIndex(int(pawnOffset(c, s))), c, 1)
			evaluatePawn(ctx, c, s, sign)

		case piece.Knight:
			phase += eval.KnightPhase
			ctx.tr.add(terms.IndexPiece+1, c, 1)
			ctx.tr.add(terms.PSQTIndex(piece.Knight, terms.QuarterEntry(s)), c, 1)
			evaluateMobility(ctx, c, knightAttacks(s), terms.IndexMobility, 8, sign)
			evaluateKnight(ctx, c, s, sign)
			evaluateKingAttack(ctx, c, knightAttacks(s), terms.IndexKSKnight)

		case piece.Bishop:
			phase += eval.BishopPhase
			ctx.tr.add(terms.IndexPiece+2, c, 1)
			ctx.tr.add(terms.PSQTIndex(piece.Bishop, terms.QuarterEntry(s)), c, 1)
			evaluateMobility(ctx, c, bishopAttacks(b, s), terms.IndexMobility+9, 13, sign)
			evaluateBishop(ctx, c, s, sign)
			evaluateKingAttack(ctx, c, bishopAttacks(b, s), terms.IndexKSBishop)
			ctx.bishopCount[c]++

		case piece.Rook:
			phase += eval.RookPhase
			ctx.tr.add(terms.IndexPiece+3, c, 1)
			ctx.tr.add(terms.PSQTIndex(piece.Rook, terms.QuarterEntry(s)), c, 1)
			evaluateMobility(ctx, c, rookAttacks(b, s), terms.IndexMobility+9+14, 14, sign)
			evaluateRook(ctx, c, s, sign)
			evaluateKingAttack(ctx, c, rookAttacks(b, s), terms.IndexKSRook)

		case piece.Queen:
			phase += eval.QueenPhase
			ctx.tr.add(terms.IndexPiece+4, c, 1)
			ctx.tr.add(terms.PSQTIndex(piece.Queen, terms.QuarterEntry(s)), c, 1)
			evaluateMobility(ctx, c, queenAttacks(b, s), terms.IndexMobility+9+14+15, 27, sign)
			evaluateKingAttack(ctx, c, queenAttacks(b, s), terms.IndexKSQueen)

		case piece.King:
			ctx.tr.add(terms.PSQTIndex(piece.King, terms.QuarterEntry(s)), c, 1)
		}
	}

	bishopPair(ctx, ctx.bishopCount)
	evaluateThreats(ctx)
	evaluateKingZones(ctx)

	initiativeSign := util.Ternary(b.SideToMove == piece.White, int8(1), int8(-1))
	ctx.add(terms.IndexInitiative, b.SideToMove, initiativeSign)
	if b.CanCastle[piece.White] {
		ctx.add(terms.IndexCastling, piece.White, 1)
	}
	if b.CanCastle[piece.Black] {
		ctx.add(terms.IndexCastling, piece.Black, -1)
	}

	if phase > eval.MaxPhase {
		phase = eval.MaxPhase
	}

	safetyMG, safetyEG := foldSafety(ctx.tr.safety)
	finalMG := ctx.total.MG() + safetyMG
	finalEG := ctx.total.EG() + safetyEG

	final := util.Lerp(finalEG, finalMG, eval.Eval(phase), eval.MaxPhase)

	trace := &Trace{
		Eval:        ctx.total,
		Phase:       phase,
		ScaleFactor: 128,
		Safety:      ctx.tr.safety,
		Coeffs:      ctx.tr.coeffs(),
	}
	return final, trace
}

// foldSafety turns the raw per-side king-danger scorepairs into the
// midgame and endgame contributions added to the final score. The
// midgame half grows quadratically with danger, reflecting that a
// handful of attackers is a lot more dangerous than twice as many
// attackers is merely twice as dangerous; the endgame half is a mild,
// clamped linear term, since king safety matters far less once the
// board has emptied out.
func foldSafety(raw [piece.ColorN]eval.Score) (mg, eg eval.Eval) {
	whiteMG, whiteEG := foldMG(raw[piece.White].MG()), foldEG(raw[piece.White].EG())
	blackMG, blackEG := foldMG(raw[piece.Black].MG()), foldEG(raw[piece.Black].EG())

	// danger to Black's king helps White, and vice versa.
	return blackMG - whiteMG, blackEG - whiteEG
}

func foldMG(x eval.Eval) eval.Eval {
	if x < 0 {
		return 0
	}
	return x * x / 256
}

func foldEG(x eval.Eval) eval.Eval {
	if x < 0 {
		return 0
	}
	return x / 16
}

// pawnOffset returns a pawn's index into the rank-2..rank-7 PawnPSQT
// table, mirroring Black's squares onto White's half first.
func pawnOffset(c piece.Color, s square.Square) square.Square {
	if c == piece.Black {
		s = s.Mirror()
	}
	return s - square.New(square.FileA, square.Rank2)
}

// evaluateMobility adds one tuple for the mobility count (clamped to
// [0, max]) of a piece with the given attacked squares, excluding
// squares occupied by friendly pieces.
func evaluateMobility(ctx *context, c piece.Color, attacked []square.Square, base, max int, sign int8) {
	count := 0
	for _, s := range attacked {
		if occ := ctx.board.Position[s]; occ == piece.NoPiece || occ.Color() != c {
			count++
		}
	}
	if count > max {
		count = max
	}
	ctx.add(base+count, c, sign)
}

// evaluateKingAttack folds a piece's attacks on the enemy king zone
// into that king's raw safety accumulator, and records the coefficient
// for the attacker-type weight so the tuner can learn how dangerous
// each piece type's presence near the king really is.
func evaluateKingAttack(ctx *context, c piece.Color, attacked []square.Square, weightIndex int) {
	enemyKing := ctx.king[c.Other()]
	hits := int8(0)
	for _, s := range attacked {
		if kingZoneContains(enemyKing, s) {
			hits++
		}
	}
	if hits == 0 {
		return
	}
	ctx.tr.add(weightIndex, c, hits)
	ctx.tr.addSafety(c.Other(), *ctx.v.FetchTerm(weightIndex)*eval.Score(hits))
}

// kingZoneContains reports whether s is the king's own square or one
// of its eight neighbors.
func kingZoneContains(king, s square.Square) bool {
	df := int(king.File()) - int(s.File())
	dr := int(king.Rank()) - int(s.Rank())
	return df >= -1 && df <= 1 && dr >= -1 && dr <= 1
}
