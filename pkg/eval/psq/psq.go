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

// Package psq expands the tunable quarter-board piece-square tables
// and base piece values into full per-square, per-color tables, the
// way the playing engine's own startup code does it from its constant
// tables: one quarter of the board is defined explicitly, mirrored
// onto the kingside by file symmetry, and mirrored again onto Black by
// negating and flipping the rank.
package psq

import (
	"laptudirm.com/x/mess/pkg/chess/piece"
	"laptudirm.com/x/mess/pkg/chess/square"
	"laptudirm.com/x/mess/pkg/eval"
	"laptudirm.com/x/mess/pkg/eval/terms"
)

// Table holds the fully expanded scorepair for every piece-color
// combination on every square.
type Table [piece.N][square.N]eval.Score

// Build expands t's base piece values and piece-square terms into a
// full Table. Pawns are zeroed on the first and last rank, matching
// the fact that pawns never legally occupy them.
func Build(t *terms.Terms[eval.Score]) *Table {
	var table Table

	buildPawn(&table, t)
	buildPiece(&table, t, piece.Knight, t.KnightPSQT[:])
	buildPiece(&table, t, piece.Bishop, t.BishopPSQT[:])
	buildPiece(&table, t, piece.Rook, t.RookPSQT[:])
	buildPiece(&table, t, piece.Queen, t.QueenPSQT[:])
	buildPiece(&table, t, piece.King, t.KingPSQT[:])

	return &table
}

func buildPawn(table *Table, t *terms.Terms[eval.Score]) {
	base := t.PieceValue[piece.Pawn-1]
	white := piece.New(piece.Pawn, piece.White)
	black := piece.New(piece.Pawn, piece.Black)

	for s := square.Square(0); s < square.N; s++ {
		if s.Rank() == square.Rank1 || s.Rank() == square.Rank8 {
			continue // pawns never occupy the back ranks
		}

		entry := base + t.PawnPSQT[s-square.New(square.FileA, square.Rank2)]
		table[white][s] = entry
		table[black][s.Mirror()] = -entry
	}
}

func buildPiece(table *Table, t *terms.Terms[eval.Score], pt piece.Type, sqt []eval.Score) {
	base := pieceValue(t, pt)
	white := piece.New(pt, piece.White)
	black := piece.New(pt, piece.Black)

	for s := square.Square(0); s < square.N; s++ {
		entry := base + sqt[terms.QuarterEntry(s)]
		table[white][s] = entry
		table[black][s.Mirror()] = -entry
	}
}

// pieceValue returns the base scorepair for a non-pawn, non-king
// piece type; the king carries no material value of its own.
func pieceValue(t *terms.Terms[eval.Score], pt piece.Type) eval.Score {
	if pt == piece.King {
		return 0
	}
	return t.PieceValue[pt-1]
}
