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

// Package eval implements the scalar evaluation type and the packed
// midgame/endgame scorepair used throughout the static evaluator and
// the tuner.
package eval

// Eval is a signed centipawn-scale evaluation value, from the
// perspective of the side it is attributed to.
type Eval int32

// S creates a Score encapsulating the given midgame and endgame
// evaluations.
func S(mg, eg Eval) Score {
	return Score(int64(eg)<<32 + int64(mg))
}

// Score packs a (midgame, endgame) scorepair into a single value.
// Addition and negation of Scores combine both halves at once; MG and
// EG extract either half exactly, including correct rounding of the
// endgame half stored in the upper 32 bits.
type Score int64

// MG returns the scorepair's middle game evaluation.
func (s Score) MG() Eval {
	return Eval(int32(uint32(uint64(s))))
}

// EG returns the scorepair's end game evaluation.
func (s Score) EG() Eval {
	return Eval(int32(uint32(uint64(s+(1<<31)) >> 32)))
}

// game phase increment contributed by each piece type remaining on
// the board; pawns contribute nothing, as in the classical PeSTO
// phase formula this is adapted from.
const (
	KnightPhase = 1
	BishopPhase = 1
	RookPhase   = 2
	QueenPhase  = 4
)

// MaxPhase is the phase value of the starting position: 4 knights, 4
// bishops, 4 rooks, and 2 queens.
const MaxPhase = 4*KnightPhase + 4*BishopPhase + 4*RookPhase + 2*QueenPhase
