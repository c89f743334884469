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

// Package tuner implements the gradient-descent evaluation tuner: it
// loads a labeled dataset of positions, evaluates each once with the
// live evaluator in package classical, and then repeatedly adjusts a
// delta vector against that frozen trace to minimize the error
// between the position's predicted win probability and its label, a
// blend of the recorded game outcome and the dataset engine score.
package tuner

import (
	"math"

	"laptudirm.com/x/mess/pkg/eval"
	"laptudirm.com/x/mess/pkg/eval/terms"
)

// Phase selects which half of a scorepair a Vector slot holds.
type Phase int

const (
	MG Phase = iota
	EG
	PhaseN
)

// Vector is every tunable parameter's value, indexed densely exactly
// like package terms' index constants, held as float64 so gradient
// descent can make arbitrarily small adjustments instead of being
// stuck at integer centipawn granularity.
type Vector [terms.TermsN][PhaseN]float64

// NewBaseVector flattens a parameter table into a Vector: the base
// values tuning starts from, before any delta is applied.
func NewBaseVector(v *terms.Terms[eval.Score]) Vector {
	var out Vector
	for i := 0; i < terms.TermsN; i++ {
		s := *v.FetchTerm(i)
		out[i][MG] = float64(s.MG())
		out[i][EG] = float64(s.EG())
	}
	return out
}

// Terms reconstructs a parameter table from base+delta, rounding each
// half back to integer centipawns, for reporting and for re-seeding a
// live evaluation.
func (delta Vector) Terms(base Vector) *terms.Terms[eval.Score] {
	var out terms.Terms[eval.Score]
	for i := 0; i < terms.TermsN; i++ {
		mg := eval.Eval(math.Round(base[i][MG] + delta[i][MG]))
		eg := eval.Eval(math.Round(base[i][EG] + delta[i][EG]))
		*out.FetchTerm(i) = eval.S(mg, eg)
	}
	return &out
}
