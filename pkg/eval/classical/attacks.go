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
	"laptudirm.com/x/mess/pkg/chess"
	"laptudirm.com/x/mess/pkg/chess/square"
)

// knightOffsets, kingOffsets, and the bishop/rook ray directions below
// are expressed as (file delta, rank delta) pairs: the tuner evaluates
// a handful of positions at a time, not millions of nodes a second, so
// a plain per-square attack generator is plenty fast and a lot easier
// to read than a bitboard one.
var knightOffsets = [8][2]int8{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

var kingOffsets = [8][2]int8{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

var bishopRays = [4][2]int8{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var rookRays = [4][2]int8{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// stepAttacks returns the destination squares reachable from s by one
// application of each offset in deltas, regardless of occupancy.
func stepAttacks(s square.Square, deltas [8][2]int8) []square.Square {
	out := make([]square.Square, 0, 8)
	f, r := int8(s.File()), int8(s.Rank())
	for _, d := range deltas {
		nf, nr := f+d[0], r+d[1]
		if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
			continue
		}
		out = append(out, square.New(square.File(nf), square.Rank(nr)))
	}
	return out
}

// rayAttacks returns the destination squares reachable from s by
// sliding along each of the given ray directions, stopping at (and
// including) the first occupied square in each direction.
func rayAttacks(b *chess.Board, s square.Square, rays [4][2]int8) []square.Square {
	out := make([]square.Square, 0, 14)
	f0, r0 := int8(s.File()), int8(s.Rank())
	for _, d := range rays {
		f, r := f0+d[0], r0+d[1]
		for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
			dst := square.New(square.File(f), square.Rank(r))
			out = append(out, dst)
			if b.Position[dst] != 0 {
				break
			}
			f, r = f+d[0], r+d[1]
		}
	}
	return out
}

func knightAttacks(s square.Square) []square.Square   { return stepAttacks(s, knightOffsets) }
func kingAttacks(s square.Square) []square.Square     { return stepAttacks(s, kingOffsets) }
func bishopAttacks(b *chess.Board, s square.Square) []square.Square {
	return rayAttacks(b, s, bishopRays)
}
func rookAttacks(b *chess.Board, s square.Square) []square.Square {
	return rayAttacks(b, s, rookRays)
}
func queenAttacks(b *chess.Board, s square.Square) []square.Square {
	return append(bishopAttacks(b, s), rookAttacks(b, s)...)
}
