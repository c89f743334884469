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
	"sort"

	"laptudirm.com/x/mess/pkg/chess/piece"
	"laptudirm.com/x/mess/pkg/eval"
	"laptudirm.com/x/mess/pkg/eval/terms"
)

// Coeff is one sparse coefficient of a traced evaluation: White and
// Black each hold a non-negative occurrence count for the parameter at
// Index (never a signed, already-netted value); consumers compute the
// net contribution as White - Black, mirroring the reference tuner's
// wcoeff/bcoeff convention.
type Coeff struct {
	Index int
	White int8
	Black int8
}

// Trace is the complete record of one static evaluation: the linear
// scorepair it produced, the game phase it was interpolated at, and
// every coefficient that contributed to it. Tuples are kept sorted so
// that every coefficient touching the king-safety suffix (see
// terms.IsSafetyTerm) comes after every coefficient in the linear
// prefix, letting the tuner binary-search the boundary instead of
// scanning.
type Trace struct {
	// Eval is the linear (non-safety) scorepair total, before phase
	// interpolation and before the king-safety fold: exactly the
	// quantity the tuner's analytic re-evaluator adjusts by a delta
	// vector and re-folds, without ever calling Evaluate again.
	Eval        eval.Score
	Phase       int
	ScaleFactor int
	Safety      [piece.ColorN]eval.Score
	Coeffs      []Coeff
}

// tracer accumulates coefficients during one evaluation pass. The
// king-attack and weak-king-zone safety terms are recorded as tuples
// like any other term and are also folded into per-side raw
// scorepairs, since their contribution to the final score is
// non-linear; see Trace.Safety and terms.IsSafetyTerm.
type tracer struct {
	byIndex map[int]*Coeff
	order   []int

	safety [piece.ColorN]eval.Score
}

func newTracer() *tracer {
	return &tracer{byIndex: make(map[int]*Coeff, 64)}
}

// add records amount occurrences of the term at index for the given
// side.
func (t *tracer) add(index int, c piece.Color, amount int8) {
	e, ok := t.byIndex[index]
	if !ok {
		e = &Coeff{Index: index}
		t.byIndex[index] = e
		t.order = append(t.order, index)
	}
	if c == piece.White {
		e.White += amount
	} else {
		e.Black += amount
	}
}

// addSafety folds a raw (unclamped) king-safety scorepair contribution
// into the given side's safety accumulator.
func (t *tracer) addSafety(c piece.Color, s eval.Score) {
	t.safety[c] += s
}

// coeffs returns the accumulated coefficients sorted by index, which
// places every linear-prefix tuple ahead of every safety-suffix tuple
// because terms.KingSafetyBoundary is itself just an index value.
func (t *tracer) coeffs() []Coeff {
	sort.Ints(t.order)
	out := make([]Coeff, 0, len(t.order))
	for _, idx := range t.order {
		out = append(out, *t.byIndex[idx])
	}
	return out
}

// FetchValue reads the current parameter value at a coefficient's
// index from the given vector. The analytic re-evaluator in package
// tuner does not call it; it works from its own float64 delta Vector.
func FetchValue(v *terms.Terms[eval.Score], index int) eval.Score {
	return *v.FetchTerm(index)
}
