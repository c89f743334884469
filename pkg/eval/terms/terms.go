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

// Package terms enumerates the evaluation parameters the tuner
// learns, and gives a dense index to each one. The layout mirrors the
// Stash engine's tp_vector_t/IDX_* scheme, with one deliberate
// reordering: the king-safety block is moved to the end of the index
// space so that a single KingSafetyBoundary index cleanly splits the
// vector into a linear prefix and a safety suffix, with nothing
// following the suffix. In the original engine the king-safety block
// sits in the middle of the enumeration, ahead of mobility/threat/pawn
// terms, which only works because its is_safety_term predicate has no
// upper bound either — functionally the same split, expressed here
// without a trailing region that would have to be special-cased back
// to "linear" again. See DESIGN.md for the rationale.
package terms

import (
	"fmt"

	"laptudirm.com/x/mess/pkg/chess/piece"
	"laptudirm.com/x/mess/pkg/chess/square"
)

// PieceN is the number of non-king piece types carrying a base value.
const PieceN = 5 // pawn, knight, bishop, rook, queen

// index constants: a dense, contiguous enumeration of every tunable
// evaluation parameter. Each index carries a midgame and an endgame
// scalar (see Vector in package tuner).
const (
	IndexPiece = 0

	IndexPSQT  = IndexPiece + PieceN
	PawnPSQTN  = 48 // 6 ranks * 8 files, ranks 2-7 only
	PieceSQTN  = 32 // 8 ranks * 4 files, file-symmetric
	PSQTN      = PawnPSQTN + 5*PieceSQTN

	IndexMobility = IndexPSQT + PSQTN
	MobilityN     = 9 + 14 + 15 + 28 // knight, bishop, rook, queen

	IndexCastling = IndexMobility + MobilityN

	IndexInitiative = IndexCastling + 1

	IndexKnightClosedPos = IndexInitiative + 1
	KnightClosedPosN     = 5

	IndexKnightShielded      = IndexKnightClosedPos + KnightClosedPosN
	IndexKnightOutpost       = IndexKnightShielded + 1
	IndexKnightCenterOutpost = IndexKnightOutpost + 1
	IndexKnightSolidOutpost  = IndexKnightCenterOutpost + 1

	IndexBishopPawnsColor = IndexKnightSolidOutpost + 1
	BishopPawnsColorN     = 7

	IndexBishopPair       = IndexBishopPawnsColor + BishopPawnsColorN
	IndexBishopShielded   = IndexBishopPair + 1
	IndexBishopLongDiag   = IndexBishopShielded + 1

	IndexRookSemiOpen  = IndexBishopLongDiag + 1
	IndexRookOpen      = IndexRookSemiOpen + 1
	IndexRookBlocked   = IndexRookOpen + 1
	IndexRookXrayQueen = IndexRookBlocked + 1

	IndexBackward  = IndexRookXrayQueen + 1
	IndexStraggler = IndexBackward + 1
	IndexDoubled   = IndexStraggler + 1
	IndexIsolated  = IndexDoubled + 1

	IndexPasser = IndexIsolated + 1
	PasserN     = 6 // ranks 2-7

	IndexPhalanx = IndexPasser + PasserN
	PhalanxN     = 6 // ranks 2-7

	IndexDefender = IndexPhalanx + PhalanxN
	DefenderN     = 5 // ranks 2-6, no 7th rank defenders

	IndexPPOurKingProx = IndexDefender + DefenderN
	PPKingProxN        = 7 // distance 1-7

	IndexPPTheirKingProx = IndexPPOurKingProx + PPKingProxN

	IndexPawnAtkMinor  = IndexPPTheirKingProx + PPKingProxN
	IndexPawnAtkRook   = IndexPawnAtkMinor + 1
	IndexPawnAtkQueen  = IndexPawnAtkRook + 1
	IndexMinorAtkRook  = IndexPawnAtkQueen + 1
	IndexMinorAtkQueen = IndexMinorAtkRook + 1
	IndexRookAtkQueen  = IndexMinorAtkQueen + 1

	// KingSafetyBoundary is the first index of the safety suffix. Every
	// index at or after this boundary contributes quadratically (mg)
	// and clamped-linearly (eg) per side, rather than additively; see
	// IsSafetyTerm.
	KingSafetyBoundary = IndexRookAtkQueen + 1

	IndexKSKnight  = KingSafetyBoundary
	IndexKSBishop  = IndexKSKnight + 1
	IndexKSRook    = IndexKSBishop + 1
	IndexKSQueen   = IndexKSRook + 1
	IndexKSAttack  = IndexKSQueen + 1
	IndexKSWeakZone = IndexKSAttack + 1
	IndexKSCheckN  = IndexKSWeakZone + 1
	IndexKSCheckB  = IndexKSCheckN + 1
	IndexKSCheckR  = IndexKSCheckB + 1
	IndexKSCheckQ  = IndexKSCheckR + 1
	IndexKSQueenless = IndexKSCheckQ + 1

	IndexKSStorm = IndexKSQueenless + 1
	KSStormN     = 24

	IndexKSShelter = IndexKSStorm + KSStormN
	KSShelterN     = 24

	IndexKSOffset = IndexKSShelter + KSShelterN

	// TermsN is the total number of tunable parameter indices.
	TermsN = IndexKSOffset + 1
)

// IsSafetyTerm reports whether index i falls in the king-safety
// suffix (see KingSafetyBoundary).
func IsSafetyTerm(i int) bool {
	return i >= KingSafetyBoundary
}

// Terms holds one value of type T per tunable parameter, organized by
// its semantic grouping rather than as a flat array, with FetchTerm
// providing the mapping to and from the dense index space used by the
// tuner's Vector.
type Terms[T any] struct {
	PieceValue [PieceN]T

	PawnPSQT [PawnPSQTN]T
	KnightPSQT, BishopPSQT, RookPSQT, QueenPSQT, KingPSQT [PieceSQTN]T

	MobilityKnight [9]T
	MobilityBishop [14]T
	MobilityRook   [15]T
	MobilityQueen  [28]T

	Castling    T
	Initiative  T

	KnightClosedPos [KnightClosedPosN]T
	KnightShielded, KnightOutpost, KnightCenterOutpost, KnightSolidOutpost T

	BishopPawnsSameColor [BishopPawnsColorN]T
	BishopPair, BishopShielded, BishopLongDiagonal T

	RookSemiOpen, RookOpen, RookBlocked, RookXrayQueen T

	Backward, Straggler, Doubled, Isolated T

	Passer   [PasserN]T
	Phalanx  [PhalanxN]T
	Defender [DefenderN]T

	PPOurKingProx, PPTheirKingProx [PPKingProxN]T

	PawnAtkMinor, PawnAtkRook, PawnAtkQueen T
	MinorAtkRook, MinorAtkQueen             T
	RookAtkQueen                            T

	KSKnight, KSBishop, KSRook, KSQueen T
	KSAttack, KSWeakZone                T
	KSCheckN, KSCheckB, KSCheckR, KSCheckQ T
	KSQueenless                          T
	KSStorm                              [KSStormN]T
	KSShelter                            [KSShelterN]T
	KSOffset                             T
}

// FetchTerm returns a pointer to the term at the given dense index.
// It panics on an out-of-range index: the index space is fixed at
// build time and every caller constructs indices from the constants
// above.
func (t *Terms[T]) FetchTerm(i int) *T {
	switch {
	case i < IndexPSQT:
		return &t.PieceValue[i-IndexPiece]

	case i < IndexPSQT+PawnPSQTN:
		return &t.PawnPSQT[i-IndexPSQT]
	case i < IndexPSQT+PawnPSQTN+PieceSQTN:
		return &t.KnightPSQT[i-IndexPSQT-PawnPSQTN]
	case i < IndexPSQT+PawnPSQTN+2*PieceSQTN:
		return &t.BishopPSQT[i-IndexPSQT-PawnPSQTN-PieceSQTN]
	case i < IndexPSQT+PawnPSQTN+3*PieceSQTN:
		return &t.RookPSQT[i-IndexPSQT-PawnPSQTN-2*PieceSQTN]
	case i < IndexPSQT+PawnPSQTN+4*PieceSQTN:
		return &t.QueenPSQT[i-IndexPSQT-PawnPSQTN-3*PieceSQTN]
	case i < IndexMobility:
		return &t.KingPSQT[i-IndexPSQT-PawnPSQTN-4*PieceSQTN]

	case i < IndexMobility+9:
		return &t.MobilityKnight[i-IndexMobility]
	case i < IndexMobility+9+14:
		return &t.MobilityBishop[i-IndexMobility-9]
	case i < IndexMobility+9+14+15:
		return &t.MobilityRook[i-IndexMobility-9-14]
	case i < IndexCastling:
		return &t.MobilityQueen[i-IndexMobility-9-14-15]

	case i == IndexCastling:
		return &t.Castling
	case i == IndexInitiative:
		return &t.Initiative

	case i < IndexKnightShielded:
		return &t.KnightClosedPos[i-IndexKnightClosedPos]
	case i == IndexKnightShielded:
		return &t.KnightShielded
	case i == IndexKnightOutpost:
		return &t.KnightOutpost
	case i == IndexKnightCenterOutpost:
		return &t.KnightCenterOutpost
	case i == IndexKnightSolidOutpost:
		return &t.KnightSolidOutpost

	case i < IndexBishopPair:
		return &t.BishopPawnsSameColor[i-IndexBishopPawnsColor]
	case i == IndexBishopPair:
		return &t.BishopPair
	case i == IndexBishopShielded:
		return &t.BishopShielded
	case i == IndexBishopLongDiag:
		return &t.BishopLongDiagonal

	case i == IndexRookSemiOpen:
		return &t.RookSemiOpen
	case i == IndexRookOpen:
		return &t.RookOpen
	case i == IndexRookBlocked:
		return &t.RookBlocked
	case i == IndexRookXrayQueen:
		return &t.RookXrayQueen

	case i == IndexBackward:
		return &t.Backward
	case i == IndexStraggler:
		return &t.Straggler
	case i == IndexDoubled:
		return &t.Doubled
	case i == IndexIsolated:
		return &t.Isolated

	case i < IndexPhalanx:
		return &t.Passer[i-IndexPasser]
	case i < IndexDefender:
		return &t.Phalanx[i-IndexPhalanx]
	case i < IndexPPOurKingProx:
		return &t.Defender[i-IndexDefender]
	case i < IndexPPTheirKingProx:
		return &t.PPOurKingProx[i-IndexPPOurKingProx]
	case i < IndexPawnAtkMinor:
		return &t.PPTheirKingProx[i-IndexPPTheirKingProx]

	case i == IndexPawnAtkMinor:
		return &t.PawnAtkMinor
	case i == IndexPawnAtkRook:
		return &t.PawnAtkRook
	case i == IndexPawnAtkQueen:
		return &t.PawnAtkQueen
	case i == IndexMinorAtkRook:
		return &t.MinorAtkRook
	case i == IndexMinorAtkQueen:
		return &t.MinorAtkQueen
	case i == IndexRookAtkQueen:
		return &t.RookAtkQueen

	case i == IndexKSKnight:
		return &t.KSKnight
	case i == IndexKSBishop:
		return &t.KSBishop
	case i == IndexKSRook:
		return &t.KSRook
	case i == IndexKSQueen:
		return &t.KSQueen
	case i == IndexKSAttack:
		return &t.KSAttack
	case i == IndexKSWeakZone:
		return &t.KSWeakZone
	case i == IndexKSCheckN:
		return &t.KSCheckN
	case i == IndexKSCheckB:
		return &t.KSCheckB
	case i == IndexKSCheckR:
		return &t.KSCheckR
	case i == IndexKSCheckQ:
		return &t.KSCheckQ
	case i == IndexKSQueenless:
		return &t.KSQueenless
	case i < IndexKSShelter:
		return &t.KSStorm[i-IndexKSStorm]
	case i < IndexKSOffset:
		return &t.KSShelter[i-IndexKSShelter]
	case i == IndexKSOffset:
		return &t.KSOffset
	}

	panic(fmt.Errorf("terms: fetch term: invalid index %d", i))
}

// PSQTIndex returns the dense index of the piece-square term for the
// given non-pawn piece type, king included (pawns use PawnPSQTIndex),
// at the given quarter-board entry (rank*4+file, file mirrored to the
// queenside), used by the tracing evaluator and the parameter dump in
// package tuner.
func PSQTIndex(t piece.Type, entry int) int {
	switch t {
	case piece.Knight:
		return IndexPSQT + PawnPSQTN + entry
	case piece.Bishop:
		return IndexPSQT + PawnPSQTN + PieceSQTN + entry
	case piece.Rook:
		return IndexPSQT + PawnPSQTN + 2*PieceSQTN + entry
	case piece.Queen:
		return IndexPSQT + PawnPSQTN + 3*PieceSQTN + entry
	case piece.King:
		return IndexPSQT + PawnPSQTN + 4*PieceSQTN + entry
	default:
		panic(fmt.Errorf("terms: psqt index: invalid piece type %v", t))
	}
}

// PawnPSQTIndex returns the dense index of the pawn piece-square term
// for the given square offset (square - A2, so ranks 2-7 only).
func PawnPSQTIndex(offset int) int {
	return IndexPSQT + offset
}

// QuarterEntry folds a square into its quarter-board PSQT entry:
// rank*4 + file mirrored to the queenside half.
func QuarterEntry(s square.Square) int {
	return int(s.Rank())*4 + int(s.File().QueensideFile())
}
