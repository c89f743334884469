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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSigmoidBounds(t *testing.T) {
	require.InDelta(t, 0.5, Sigmoid(1, 0), 1e-9)
	require.Less(t, Sigmoid(1, -1000), 0.01)
	require.Greater(t, Sigmoid(1, 1000), 0.99)
}

func TestStaticMSEEmptyDataset(t *testing.T) {
	var d Dataset
	require.Zero(t, d.StaticMSE(1))
}

// A dataset whose static evaluation already perfectly predicts its
// label should drive StaticMSE to (near) zero regardless of K, so
// ComputeK must not wander away from a good fit.
func TestComputeKPerfectDatasetStaysLow(t *testing.T) {
	d := Dataset{
		{StaticEval: 100, Result: 1, GameScore: 100},
		{StaticEval: -100, Result: 0, GameScore: -100},
		{StaticEval: 0, Result: 0.5, GameScore: 0},
	}

	k := d.ComputeK(6)
	require.Less(t, d.StaticMSE(k), 0.05)
}

// ComputeK's grid search must evaluate the upper bound of its bracket
// on every pass, not stop short of it; otherwise a best-fit K sitting
// exactly on a bracket boundary is never found.
func TestComputeKHonorsBracketEndpoint(t *testing.T) {
	d := Dataset{
		{StaticEval: 1, Result: 1, GameScore: 1},
	}
	k := d.ComputeK(1)
	// With a single pass (precision=1) and the initial bracket
	// [0, 10], step 1, the search must consider K=10 itself and not
	// only values strictly less than it: this entry's error keeps
	// falling as K grows, so K=10 is the best grid point.
	require.Equal(t, 10.0, k)
}

func TestBlendLabelsOverwritesResult(t *testing.T) {
	d := Dataset{{Result: 1, GameScore: 0}}
	d.BlendLabels(1)
	want := 1*(1-Lambda) + Sigmoid(1, 0)*Lambda
	require.InDelta(t, want, d[0].Result, 1e-9)
}
