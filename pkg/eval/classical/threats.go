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

// pawnCaptureSquares returns the squares a pawn of color c on s
// attacks diagonally.
func pawnCaptureSquares(c piece.Color, s square.Square) []square.Square {
	r := forward(c, s.Rank())
	if int(r) < 0 || int(r) > 7 {
		return nil
	}
	out := make([]square.Square, 0, 2)
	if s.File() > square.FileA {
		out = append(out, square.New(s.File()-1, r))
	}
	if s.File() < square.FileH {
		out = append(out, square.New(s.File()+1, r))
	}
	return out
}

// evaluateThreats walks every piece once more, adding a coefficient
// whenever a lower-value piece attacks a higher-value one: pawns
// attacking minors/rooks/queens, minors attacking rooks/queens, and
// rooks attacking queens. Each of these is individually a much
// stronger tactical signal than the raw mobility count already
// captures.
func evaluateThreats(ctx *context) {
	for s := square.Square(0); s < square.N; s++ {
		p := ctx.board.Position[s]
		if p == piece.NoPiece {
			continue
		}

		c := p.Color()
		sign := util.Ternary(c == piece.White, int8(1), int8(-1))

		switch p.Type() {
		case piece.Pawn:
			for _, dst := range pawnCaptureSquares(c, s) {
				target := ctx.board.Position[dst]
				if target == piece.NoPiece || target.Color() == c {
					continue
				}
				switch target.Type() {
				case piece.Knight, piece.Bishop:
					ctx.add(terms.IndexPawnAtkMinor, c, sign)
				case piece.Rook:
					ctx.add(terms.IndexPawnAtkRook, c, sign)
				case piece.Queen:
					ctx.add(terms.IndexPawnAtkQueen, c, sign)
				}
			}

		case piece.Knight:
			threatenMinor(ctx, c, s, knightAttacks(s), sign)
		case piece.Bishop:
			threatenMinor(ctx, c, s, bishopAttacks(ctx.board, s), sign)

		case piece.Rook:
			for _, dst := range rookAttacks(ctx.board, s) {
				target := ctx.board.Position[dst]
				if target.Type() == piece.Queen && target.Color() != c {
					ctx.add(terms.IndexRookAtkQueen, c, sign)
				}
			}
		}
	}
}

func threatenMinor(ctx *context, c piece.Color, _ square.Square, attacked []square.Square, sign int8) {
	for _, dst := range attacked {
		target := ctx.board.Position[dst]
		if target == piece.NoPiece || target.Color() == c {
			continue
		}
		switch target.Type() {
		case piece.Rook:
			ctx.add(terms.IndexMinorAtkRook, c, sign)
		case piece.Queen:
			ctx.add(terms.IndexMinorAtkQueen, c, sign)
		}
	}
}
