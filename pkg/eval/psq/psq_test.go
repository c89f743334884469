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

package psq_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"laptudirm.com/x/mess/pkg/chess/piece"
	"laptudirm.com/x/mess/pkg/chess/square"
	"laptudirm.com/x/mess/pkg/eval"
	"laptudirm.com/x/mess/pkg/eval/psq"
	"laptudirm.com/x/mess/pkg/eval/terms"
)

func nonZeroTerms() *terms.Terms[eval.Score] {
	t := terms.Default()
	for i := 0; i < terms.TermsN; i++ {
		v := *t.FetchTerm(i)
		*t.FetchTerm(i) = v + eval.S(eval.Eval(i%97+1), eval.Eval(i%53+1))
	}
	return t
}

// Black's table must be the exact negation of White's table at the
// vertically mirrored square, for every piece type and every square a
// piece can legally occupy.
func TestTableMirrorsBlackFromWhite(t *testing.T) {
	table := psq.Build(nonZeroTerms())

	for _, pt := range []piece.Type{piece.Knight, piece.Bishop, piece.Rook, piece.Queen, piece.King} {
		white := piece.New(pt, piece.White)
		black := piece.New(pt, piece.Black)
		for s := square.Square(0); s < square.N; s++ {
			require.Equal(t, table[white][s], -table[black][s.Mirror()],
				"piece %v square %v: white/black mirror mismatch", pt, s)
		}
	}

	whitePawn := piece.New(piece.Pawn, piece.White)
	blackPawn := piece.New(piece.Pawn, piece.Black)
	for s := square.Square(0); s < square.N; s++ {
		if s.Rank() == square.Rank1 || s.Rank() == square.Rank8 {
			require.Zero(t, table[whitePawn][s])
			require.Zero(t, table[blackPawn][s])
			continue
		}
		require.Equal(t, table[whitePawn][s], -table[blackPawn][s.Mirror()])
	}
}

// Two squares on the same rank that are file-mirror images of each
// other must carry the same piece-square value, since the quarter
// board is only ever defined on the queenside half.
func TestTableFileSymmetric(t *testing.T) {
	table := psq.Build(nonZeroTerms())

	knight := piece.New(piece.Knight, piece.White)
	for r := square.Rank1; r <= square.Rank8; r++ {
		for f := square.FileA; f <= square.FileD; f++ {
			s := square.New(f, r)
			mirrored := square.New(f.QueensideFile()^7, r)
			require.Equal(t, table[knight][s], table[knight][mirrored])
		}
	}
}

func TestPawnBackRanksAreZero(t *testing.T) {
	table := psq.Build(nonZeroTerms())
	whitePawn := piece.New(piece.Pawn, piece.White)
	for f := square.FileA; f <= square.FileH; f++ {
		require.Zero(t, table[whitePawn][square.New(f, square.Rank1)])
		require.Zero(t, table[whitePawn][square.New(f, square.Rank8)])
	}
}
