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

package terms

import "laptudirm.com/x/mess/pkg/eval"

// Default returns the starting parameter table a tuning session seeds
// its delta vector against. Only the material values are seeded to
// conventional centipawn scorepairs; every positional and safety term
// starts at zero, letting gradient descent discover its sign and
// magnitude from scratch rather than inheriting a prior tune's bias.
func Default() *Terms[eval.Score] {
	var t Terms[eval.Score]
	t.PieceValue = [PieceN]eval.Score{
		eval.S(100, 100), // pawn
		eval.S(320, 290), // knight
		eval.S(330, 300), // bishop
		eval.S(500, 520), // rook
		eval.S(950, 930), // queen
	}
	return &t
}
