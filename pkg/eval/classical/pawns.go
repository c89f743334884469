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
	"laptudirm.com/x/mess/pkg/chess/piece"
	"laptudirm.com/x/mess/pkg/chess/square"
)

// pawnSet is a lightweight index of where each side's pawns are,
// built once per evaluation and consulted by every pawn-structure
// term below instead of rescanning the board each time.
type pawnSet struct {
	bySquare [piece.ColorN]map[square.Square]bool
	byFile   [piece.ColorN][8]int
}

func newPawnSet(b *chess.Board) *pawnSet {
	ps := &pawnSet{}
	ps.bySquare[piece.White] = map[square.Square]bool{}
	ps.bySquare[piece.Black] = map[square.Square]bool{}

	for s := square.Square(0); s < square.N; s++ {
		p := b.Position[s]
		if p.Type() != piece.Pawn {
			continue
		}
		c := p.Color()
		ps.bySquare[c][s] = true
		ps.byFile[c][s.File()]++
	}
	return ps
}

func forward(c piece.Color, r square.Rank) square.Rank {
	if c == piece.White {
		return r + 1
	}
	return r - 1
}

func (ps *pawnSet) isDoubled(c piece.Color, s square.Square) bool {
	return ps.byFile[c][s.File()] > 1
}

func (ps *pawnSet) isIsolated(c piece.Color, s square.Square) bool {
	f := s.File()
	left, right := 0, 0
	if f > square.FileA {
		left = ps.byFile[c][f-1]
	}
	if f < square.FileH {
		right = ps.byFile[c][f+1]
	}
	return left == 0 && right == 0
}

// isPassed reports whether no enemy pawn can stop or capture this pawn
// on its way to promotion: no enemy pawn on the same or adjacent file
// ahead of its rank.
func (ps *pawnSet) isPassed(c piece.Color, s square.Square) bool {
	enemy := c.Other()
	f, r := s.File(), s.Rank()
	for es := range ps.bySquare[enemy] {
		df := es.File() - f
		if df < -1 || df > 1 {
			continue
		}
		if c == piece.White && es.Rank() > r {
			return false
		}
		if c == piece.Black && es.Rank() < r {
			return false
		}
	}
	return true
}

// isPhalanx reports whether an allied pawn sits directly beside this
// one on the same rank.
func (ps *pawnSet) isPhalanx(c piece.Color, s square.Square) bool {
	f, r := s.File(), s.Rank()
	if f > square.FileA && ps.bySquare[c][square.New(f-1, r)] {
		return true
	}
	if f < square.FileH && ps.bySquare[c][square.New(f+1, r)] {
		return true
	}
	return false
}

// isDefended reports whether an allied pawn guards this one from
// behind on an adjacent file.
func (ps *pawnSet) isDefended(c piece.Color, s square.Square) bool {
	f, r := s.File(), s.Rank()
	back := forward(c.Other(), r) // one rank behind, from this pawn's perspective
	if f > square.FileA && ps.bySquare[c][square.New(f-1, back)] {
		return true
	}
	if f < square.FileH && ps.bySquare[c][square.New(f+1, back)] {
		return true
	}
	return false
}

// isBackward reports whether this pawn has no allied pawn support on
// an adjacent file and cannot safely advance because the square ahead
// of it is controlled by an enemy pawn.
func (ps *pawnSet) isBackward(c piece.Color, s square.Square) bool {
	f, r := s.File(), s.Rank()
	for _, df := range [2]int{-1, 1} {
		nf := int(f) + df
		if nf < 0 || nf > 7 {
			continue
		}
		for rr := int(r); rr >= 0 && rr <= 7; {
			if ps.bySquare[c][square.New(square.File(nf), square.Rank(rr))] {
				return false // supported from behind somewhere on this file
			}
			if c == piece.White {
				rr--
			} else {
				rr++
			}
		}
	}

	ahead := square.New(f, forward(c, r))
	enemy := c.Other()
	ef := int(f)
	for _, df := range [2]int{-1, 1} {
		nf := ef + df
		if nf < 0 || nf > 7 {
			continue
		}
		if ps.bySquare[enemy][square.New(square.File(nf), forward(c, ahead.Rank()))] {
			return true
		}
	}
	return false
}
