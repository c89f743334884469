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

package terms_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"laptudirm.com/x/mess/pkg/chess/square"
	"laptudirm.com/x/mess/pkg/eval"
	"laptudirm.com/x/mess/pkg/eval/terms"
)

// Every dense index from 0 to TermsN must resolve to a distinct
// storage slot in Terms: FetchTerm must never panic in range, and
// writing through one index must not alias another.
func TestFetchTermCoversEveryIndex(t *testing.T) {
	var tbl terms.Terms[eval.Score]

	for i := 0; i < terms.TermsN; i++ {
		require.NotPanics(t, func() {
			*tbl.FetchTerm(i) = eval.S(eval.Eval(i), eval.Eval(-i))
		}, "index %d", i)
	}

	for i := 0; i < terms.TermsN; i++ {
		got := *tbl.FetchTerm(i)
		require.Equal(t, eval.S(eval.Eval(i), eval.Eval(-i)), got, "index %d was overwritten by a later write", i)
	}
}

func TestFetchTermPanicsOutOfRange(t *testing.T) {
	var tbl terms.Terms[eval.Score]
	require.Panics(t, func() { tbl.FetchTerm(-1) })
	require.Panics(t, func() { tbl.FetchTerm(terms.TermsN) })
}

// KingSafetyBoundary must partition the index space cleanly: every
// index at or after it is a safety term, every index before it isn't,
// and nothing follows the safety suffix.
func TestSafetyBoundaryPartitionsIndexSpace(t *testing.T) {
	for i := 0; i < terms.KingSafetyBoundary; i++ {
		require.False(t, terms.IsSafetyTerm(i), "index %d before the boundary reported as safety", i)
	}
	for i := terms.KingSafetyBoundary; i < terms.TermsN; i++ {
		require.True(t, terms.IsSafetyTerm(i), "index %d at or after the boundary reported as linear", i)
	}
}

func TestQuarterEntrySymmetric(t *testing.T) {
	a1 := square.New(square.FileA, square.Rank1)
	h1 := square.New(square.FileH, square.Rank1)
	b4 := square.New(square.FileB, square.Rank4)
	g4 := square.New(square.FileG, square.Rank4)
	a2 := square.New(square.FileA, square.Rank2)

	// A square and its file-mirrored counterpart on the same rank fold
	// into the same quarter-board entry.
	require.Equal(t, terms.QuarterEntry(a1), terms.QuarterEntry(h1))
	require.Equal(t, terms.QuarterEntry(b4), terms.QuarterEntry(g4))
	require.NotEqual(t, terms.QuarterEntry(a1), terms.QuarterEntry(a2))
}
