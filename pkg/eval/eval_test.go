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

package eval_test

import (
	"testing"

	"laptudirm.com/x/mess/pkg/eval"
)

func FuzzRecovery(f *testing.F) {
	f.Add(int32(1000), int32(-1000))
	f.Add(int32(2648), int32(7346))
	f.Add(int32(-3683), int32(-8374))
	f.Add(int32(0), int32(0))

	f.Fuzz(func(t *testing.T, a, b int32) {
		mg, eg := eval.Eval(a), eval.Eval(b)
		s := eval.S(mg, eg)

		if s.MG() != mg {
			t.Errorf("S(%d, %d).MG() = %d, want %d", mg, eg, s.MG(), mg)
		}
		if s.EG() != eg {
			t.Errorf("S(%d, %d).EG() = %d, want %d", mg, eg, s.EG(), eg)
		}
	})
}

func FuzzAddition(f *testing.F) {
	f.Add(int32(1000), int32(-1000), int32(-1000), int32(1000))
	f.Add(int32(2648), int32(7346), int32(3683), int32(8374))

	f.Fuzz(func(t *testing.T, mg1, eg1, mg2, eg2 int32) {
		s1 := eval.S(eval.Eval(mg1), eval.Eval(eg1))
		s2 := eval.S(eval.Eval(mg2), eval.Eval(eg2))

		want := eval.S(eval.Eval(mg1+mg2), eval.Eval(eg1+eg2))
		if sum := s1 + s2; sum != want {
			t.Errorf("S(%d,%d)+S(%d,%d) = S(%d,%d), want S(%d,%d)",
				mg1, eg1, mg2, eg2, sum.MG(), sum.EG(), want.MG(), want.EG())
		}
	})
}

func TestMaxPhase(t *testing.T) {
	want := 4*eval.KnightPhase + 4*eval.BishopPhase + 4*eval.RookPhase + 2*eval.QueenPhase
	if eval.MaxPhase != want {
		t.Errorf("MaxPhase = %d, want %d", eval.MaxPhase, want)
	}
}
