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

package tuner

import (
	"fmt"
	"io"

	"laptudirm.com/x/mess/pkg/chess/piece"
	"laptudirm.com/x/mess/pkg/eval"
	"laptudirm.com/x/mess/pkg/eval/terms"
)

// DumpParameters writes the current parameter table (base+delta,
// rounded to integer centipawns) to w as a sequence of grouped
// scorepair listings, one section per evaluation concern, mirroring
// the reference tuner's practice of printing parameters grouped by the
// source file they belong in rather than as one undifferentiated dump.
func DumpParameters(w io.Writer, base, delta Vector) {
	t := delta.Terms(base)

	fmt.Fprintln(w, "\n-- material --")
	printSPA(w, t, "PieceValue", terms.IndexPiece, terms.PieceN)

	fmt.Fprintln(w, "\n-- piece-square tables --")
	printSPA(w, t, "PawnPSQT", terms.IndexPSQT, terms.PawnPSQTN)
	printSPA(w, t, "KnightPSQT", terms.PSQTIndex(piece.Knight, 0), terms.PieceSQTN)
	printSPA(w, t, "BishopPSQT", terms.PSQTIndex(piece.Bishop, 0), terms.PieceSQTN)
	printSPA(w, t, "RookPSQT", terms.PSQTIndex(piece.Rook, 0), terms.PieceSQTN)
	printSPA(w, t, "QueenPSQT", terms.PSQTIndex(piece.Queen, 0), terms.PieceSQTN)
	printSPA(w, t, "KingPSQT", terms.PSQTIndex(piece.King, 0), terms.PieceSQTN)

	fmt.Fprintln(w, "\n-- mobility --")
	printSPA(w, t, "KnightMobility", terms.IndexMobility, 9)
	printSPA(w, t, "BishopMobility", terms.IndexMobility+9, 14)
	printSPA(w, t, "RookMobility", terms.IndexMobility+9+14, 15)
	printSPA(w, t, "QueenMobility", terms.IndexMobility+9+14+15, 28)

	fmt.Fprintln(w, "\n-- special terms --")
	printSP(w, t, "CastlingBonus", terms.IndexCastling)
	printSP(w, t, "Initiative", terms.IndexInitiative)

	fmt.Fprintln(w, "\n-- minor piece terms --")
	printSPA(w, t, "KnightClosedPos", terms.IndexKnightClosedPos, terms.KnightClosedPosN)
	printSP(w, t, "KnightShielded", terms.IndexKnightShielded)
	printSP(w, t, "KnightOutpost", terms.IndexKnightOutpost)
	printSP(w, t, "KnightCenterOutpost", terms.IndexKnightCenterOutpost)
	printSP(w, t, "KnightSolidOutpost", terms.IndexKnightSolidOutpost)
	printSPA(w, t, "BishopPawnsSameColor", terms.IndexBishopPawnsColor, terms.BishopPawnsColorN)
	printSP(w, t, "BishopPair", terms.IndexBishopPair)
	printSP(w, t, "BishopShielded", terms.IndexBishopShielded)
	printSP(w, t, "BishopLongDiagonal", terms.IndexBishopLongDiag)

	fmt.Fprintln(w, "\n-- rook terms --")
	printSP(w, t, "RookSemiOpen", terms.IndexRookSemiOpen)
	printSP(w, t, "RookOpen", terms.IndexRookOpen)
	printSP(w, t, "RookBlocked", terms.IndexRookBlocked)
	printSP(w, t, "RookXrayQueen", terms.IndexRookXrayQueen)

	fmt.Fprintln(w, "\n-- threats --")
	printSP(w, t, "PawnAtkMinor", terms.IndexPawnAtkMinor)
	printSP(w, t, "PawnAtkRook", terms.IndexPawnAtkRook)
	printSP(w, t, "PawnAtkQueen", terms.IndexPawnAtkQueen)
	printSP(w, t, "MinorAtkRook", terms.IndexMinorAtkRook)
	printSP(w, t, "MinorAtkQueen", terms.IndexMinorAtkQueen)
	printSP(w, t, "RookAtkQueen", terms.IndexRookAtkQueen)

	fmt.Fprintln(w, "\n-- pawn structure --")
	printSP(w, t, "Backward", terms.IndexBackward)
	printSP(w, t, "Straggler", terms.IndexStraggler)
	printSP(w, t, "Doubled", terms.IndexDoubled)
	printSP(w, t, "Isolated", terms.IndexIsolated)
	printSPA(w, t, "PassedPawn", terms.IndexPasser, terms.PasserN)
	printSPA(w, t, "PawnPhalanx", terms.IndexPhalanx, terms.PhalanxN)
	printSPA(w, t, "PawnDefender", terms.IndexDefender, terms.DefenderN)
	printSPA(w, t, "PP_OurKingProximity", terms.IndexPPOurKingProx, terms.PPKingProxN)
	printSPA(w, t, "PP_TheirKingProximity", terms.IndexPPTheirKingProx, terms.PPKingProxN)

	fmt.Fprintln(w, "\n-- king safety --")
	printSP(w, t, "KnightWeight", terms.IndexKSKnight)
	printSP(w, t, "BishopWeight", terms.IndexKSBishop)
	printSP(w, t, "RookWeight", terms.IndexKSRook)
	printSP(w, t, "QueenWeight", terms.IndexKSQueen)
	printSP(w, t, "AttackWeight", terms.IndexKSAttack)
	printSP(w, t, "WeakKingZone", terms.IndexKSWeakZone)
	printSP(w, t, "CheckKnight", terms.IndexKSCheckN)
	printSP(w, t, "CheckBishop", terms.IndexKSCheckB)
	printSP(w, t, "CheckRook", terms.IndexKSCheckR)
	printSP(w, t, "CheckQueen", terms.IndexKSCheckQ)
	printSP(w, t, "Queenless", terms.IndexKSQueenless)
	printSPA(w, t, "KingStorm", terms.IndexKSStorm, terms.KSStormN)
	printSPA(w, t, "KingShelter", terms.IndexKSShelter, terms.KSShelterN)
	printSP(w, t, "SafetyOffset", terms.IndexKSOffset)
}

// printSP prints the single scorepair at the given dense index as one
// "name = S(mg, eg)" line.
func printSP(w io.Writer, t *terms.Terms[eval.Score], name string, index int) {
	s := *t.FetchTerm(index)
	fmt.Fprintf(w, "%s = S(%d, %d)\n", name, s.MG(), s.EG())
}

// printSPA prints count consecutive scorepairs starting at the given
// dense index as a single Go array literal.
func printSPA(w io.Writer, t *terms.Terms[eval.Score], name string, index, count int) {
	fmt.Fprintf(w, "%s = [%d]Score{\n", name, count)
	for i := 0; i < count; i++ {
		s := *t.FetchTerm(index + i)
		fmt.Fprintf(w, "\tS(%d, %d),\n", s.MG(), s.EG())
	}
	fmt.Fprintln(w, "}")
}
