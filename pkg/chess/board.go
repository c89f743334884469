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

// Package chess implements the minimal static board representation
// the tuner needs: piece placement and side to move, read from a FEN
// record. It deliberately has no move generator, no zobrist hashing,
// and no search-facing state — move generation, search, and the full
// board representation of the playing engine are external collaborators
// the tuner never reimplements, it only ever evaluates static positions
// loaded straight from a dataset.
package chess

import (
	"fmt"
	"strings"

	"laptudirm.com/x/mess/pkg/chess/piece"
	"laptudirm.com/x/mess/pkg/chess/square"
)

// Board is a static chess position: which piece occupies which
// square, whose turn it is to move, and which sides still retain
// castling rights (tracked only so that the castling-rights bonus
// term has something real to tune against; no move legality is ever
// checked against it).
type Board struct {
	Position   [square.N]piece.Piece
	SideToMove piece.Color
	CanCastle  [piece.ColorN]bool
}

// New creates a Board from a FEN record. It panics on a malformed
// record, matching the dataset loader's curated-input assumption (see
// pkg/tuner's error handling: the dataset is trusted, not sanitized).
func New(fen string) *Board {
	b := &Board{}
	if err := b.SetFEN(fen); err != nil {
		panic(err)
	}
	return b
}

// SetFEN resets the board to the position described by the given FEN
// record, returning an error if the placement or side-to-move fields
// are malformed.
func (b *Board) SetFEN(fen string) error {
	placement, stm, castling, err := splitFEN(fen)
	if err != nil {
		return err
	}

	for i := range b.Position {
		b.Position[i] = piece.NoPiece
	}

	file, rank := square.FileA, square.Rank8
	for i := 0; i < len(placement); i++ {
		c := placement[i]
		switch {
		case c == '/':
			file, rank = square.FileA, rank-1
		case c >= '1' && c <= '8':
			file += square.File(c - '0')
		default:
			if !strings.ContainsRune("PNBRQKpnbrqk", rune(c)) {
				return fmt.Errorf("chess: fen %q: invalid piece letter %q", fen, c)
			}
			p := piece.NewFromString(string(c))
			if file > square.FileH || rank < square.Rank1 {
				return fmt.Errorf("chess: fen %q: piece placement overflows board", fen)
			}
			b.Position[square.New(file, rank)] = p
			file++
		}
	}

	switch stm {
	case "w":
		b.SideToMove = piece.White
	case "b":
		b.SideToMove = piece.Black
	default:
		return fmt.Errorf("chess: fen %q: invalid side to move %q", fen, stm)
	}

	b.CanCastle[piece.White] = false
	b.CanCastle[piece.Black] = false
	for i := 0; i < len(castling); i++ {
		switch castling[i] {
		case 'K', 'Q':
			b.CanCastle[piece.White] = true
		case 'k', 'q':
			b.CanCastle[piece.Black] = true
		}
	}

	return nil
}

// splitFEN extracts the piece placement, side-to-move, and castling
// rights fields from a FEN record, ignoring the en passant target and
// move clocks: the tuner's evaluator never looks further than that.
func splitFEN(fen string) (placement, stm, castling string, err error) {
	fields := make([]string, 0, 6)
	start := 0
	for i := 0; i <= len(fen); i++ {
		if i == len(fen) || fen[i] == ' ' {
			if i > start {
				fields = append(fields, fen[start:i])
			}
			start = i + 1
		}
	}

	if len(fields) < 2 {
		return "", "", "", fmt.Errorf("chess: fen %q: expected at least 2 fields, got %d", fen, len(fields))
	}

	if len(fields) >= 3 && fields[2] != "-" {
		castling = fields[2]
	}

	return fields[0], fields[1], castling, nil
}
