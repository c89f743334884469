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
	"math"

	"laptudirm.com/x/mess/pkg/eval/terms"
)

// safetyPair is a midgame/endgame pair of raw (unclamped) king-safety
// scores for one side, carried out of adjustedEval so updateGradient
// can reuse them without recomputing the fold.
type safetyPair struct {
	mg, eg float64
}

// adjustedEval recomputes an entry's blended evaluation analytically
// from its frozen trace and the current delta vector, without ever
// calling the live evaluator again: it replays the linear scorepair
// plus every traced coefficient's delta contribution, re-derives each
// side's king-safety scorepair the same way, and folds and interpolates
// exactly as the live evaluator did. It also returns both sides' raw
// safety scores, which updateGradient needs to compute the
// safety-term gradient.
//
// e.Eval never has the king-safety fold baked in (see Trace.Eval), so
// unlike the reference tuner's adjusted_eval, there is no base fold to
// subtract back out here: the safety fold is added exactly once, freshly
// recomputed from the adjusted safety scores.
func adjustedEval(e *Entry, delta Vector) (mixed float64, safety [2]safetyPair) {
	var mg, eg [2][2]float64 // [isSafety][color]

	for _, c := range e.Coeffs {
		isSafety := 0
		if terms.IsSafetyTerm(c.Index) {
			isSafety = 1
		}
		mg[isSafety][white] += float64(c.White) * delta[c.Index][MG]
		mg[isSafety][black] += float64(c.Black) * delta[c.Index][MG]
		eg[isSafety][white] += float64(c.White) * delta[c.Index][EG]
		eg[isSafety][black] += float64(c.Black) * delta[c.Index][EG]
	}

	normalMG := float64(e.Eval.MG()) + mg[0][white] - mg[0][black]
	normalEG := float64(e.Eval.EG()) + eg[0][white] - eg[0][black]

	wSafety := safetyPair{
		mg: float64(e.Safety[white].MG()) + mg[1][white],
		eg: float64(e.Safety[white].EG()) + eg[1][white],
	}
	bSafety := safetyPair{
		mg: float64(e.Safety[black].MG()) + mg[1][black],
		eg: float64(e.Safety[black].EG()) + eg[1][black],
	}

	safetyMG := foldMGf(wSafety.mg) - foldMGf(bSafety.mg)
	safetyEG := foldEGf(wSafety.eg) - foldEGf(bSafety.eg)

	midgame := normalMG + safetyMG
	endgame := normalEG + safetyEG

	mixed = midgame*e.PhaseFactors[MG] + endgame*e.PhaseFactors[EG]*e.ScaleFactor
	return mixed, [2]safetyPair{white: wSafety, black: bSafety}
}

// foldMGf and foldEGf are the float64 analogues of the live evaluator's
// king-safety fold in package classical, operating on the raw
// (unclamped) safety scores that adjustedEval carries as float64
// rather than eval.Eval.
func foldMGf(x float64) float64 {
	return math.Max(0, x) * x / 256.0
}

func foldEGf(x float64) float64 {
	return math.Max(0, x) / 16.0
}

const (
	white = 0
	black = 1
)
