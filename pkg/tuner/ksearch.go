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

import "math"

// Sigmoid maps an evaluation to a win probability in [0, 1] under
// scaling constant K.
func Sigmoid(k, e float64) float64 {
	return 1.0 / (1.0 + math.Exp(-e*k))
}

// StaticMSE returns the mean squared error between each entry's
// blended label and the sigmoid of its frozen static evaluation, under
// scaling constant k. It never touches the delta vector: it is used
// only to search for the K that best fits the evaluator as it stood
// when the dataset was loaded.
func (d Dataset) StaticMSE(k float64) float64 {
	if len(d) == 0 {
		return 0
	}
	total := 0.0
	for i := range d {
		e := &d[i]
		label := e.Result*(1-Lambda) + Sigmoid(k, e.GameScore)*Lambda
		diff := label - Sigmoid(k, float64(e.StaticEval))
		total += diff * diff
	}
	return total / float64(len(d))
}

// ComputeK performs a bracketed decimal-grid search for the scaling
// constant that minimizes StaticMSE: precision passes over [start,
// end] in even steps, each pass narrowing around the best point found
// and shrinking its step by a factor of ten, exactly like a manual
// binary-search-by-hand over decimal digits.
func (d Dataset) ComputeK(precision int) float64 {
	start, end, step := 0.0, 10.0, 1.0

	best := d.StaticMSE(start)
	bestK := start

	for p := 0; p < precision; p++ {
		for cur := start - step; cur < end; {
			cur += step
			if err := d.StaticMSE(cur); err < best {
				best = err
				bestK = cur
			}
		}
		end = bestK + step
		start = bestK - step
		step /= 10
	}
	return bestK
}

// BlendLabels permanently replaces every entry's recorded game result
// with the label the tuner actually trains against: a Lambda-weighted
// blend of that result and the sigmoid of the entry's dataset engine
// score at the given K. It must run once, after ComputeK, and before
// the first gradient descent step.
func (d Dataset) BlendLabels(k float64) {
	for i := range d {
		e := &d[i]
		e.Result = e.Result*(1-Lambda) + Sigmoid(k, e.GameScore)*Lambda
	}
}
