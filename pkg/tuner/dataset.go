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
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"laptudirm.com/x/mess/pkg/chess"
	"laptudirm.com/x/mess/pkg/chess/piece"
	"laptudirm.com/x/mess/pkg/eval"
	"laptudirm.com/x/mess/pkg/eval/classical"
	"laptudirm.com/x/mess/pkg/eval/terms"
)

// Entry is one labeled training position: the evaluator's frozen
// trace from the moment the dataset was loaded, plus enough
// bookkeeping to recompute its predicted score from a delta vector
// without ever calling the live evaluator again.
type Entry struct {
	Coeffs       []classical.Coeff
	PhaseFactors [PhaseN]float64

	Safety [piece.ColorN]eval.Score
	Eval   eval.Score // scorepair before phase interpolation, White's perspective

	// StaticEval is the live evaluator's fully-folded verdict at load
	// time (delta zero), negated to the side to move's perspective
	// (unlike Eval and Safety above, which stay White's perspective).
	// It is never fed back into the gradient; ComputeK uses it to fit
	// K against the evaluator as it stood when the dataset was loaded.
	StaticEval eval.Eval

	ScaleFactor float64
	Result      float64 // blended game result / engine score label
	GameScore   float64 // raw engine centipawn score from the dataset line
}

// Dataset is the full set of positions the tuner trains against.
type Dataset []Entry

// LoadDataset reads a dataset file where every line holds a FEN
// record followed by a game result and an engine score, in that
// order, separated by spaces: "<fen> <result> <score>". Both trailing
// fields are parsed from the end of the line backwards, since a FEN
// record itself contains spaces. Entries whose live evaluation reports
// a zero scale factor are silently dropped, matching the live
// evaluator's own judgment that the position isn't worth training on;
// classical.Evaluate always reports a scale factor of 128, so with it
// no entry is dropped.
func LoadDataset(path string, base *terms.Terms[eval.Score]) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tuner: load dataset: %w", err)
	}
	defer f.Close()

	var dataset Dataset
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fenStr, result, score, err := splitDatasetLine(line)
		if err != nil {
			return nil, fmt.Errorf("tuner: load dataset: line %d: %w", lineNo, err)
		}

		b := &chess.Board{}
		if err := b.SetFEN(fenStr); err != nil {
			return nil, fmt.Errorf("tuner: load dataset: line %d: %w", lineNo, err)
		}

		e, ok := newEntry(b, base, result, score)
		if !ok {
			continue
		}
		dataset = append(dataset, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("tuner: load dataset: %w", err)
	}

	return dataset, nil
}

// splitDatasetLine peels the score and then the result off the tail
// of line, leaving the FEN record as whatever remains.
func splitDatasetLine(line string) (fenStr string, result, score float64, err error) {
	rest, scoreStr, ok := cutLast(line)
	if !ok {
		return "", 0, 0, fmt.Errorf("expected at least 3 fields")
	}
	score, err = strconv.ParseFloat(scoreStr, 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid engine score %q: %w", scoreStr, err)
	}

	rest, resultStr, ok := cutLast(rest)
	if !ok {
		return "", 0, 0, fmt.Errorf("expected at least 3 fields")
	}
	result, err = strconv.ParseFloat(resultStr, 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid game result %q: %w", resultStr, err)
	}

	return rest, result, score, nil
}

// cutLast splits s at its last space, returning everything before it
// and the final field.
func cutLast(s string) (rest, last string, ok bool) {
	i := strings.LastIndexByte(s, ' ')
	if i < 0 {
		return "", "", false
	}
	return strings.TrimRight(s[:i], " "), s[i+1:], true
}

// newEntry runs the live evaluator once on b and freezes the result
// into an Entry, reporting ok=false if the position's scale factor
// says it isn't worth tuning against.
func newEntry(b *chess.Board, base *terms.Terms[eval.Score], result, gameScore float64) (Entry, bool) {
	static, trace := classical.Evaluate(b, base)
	if trace.ScaleFactor == 0 {
		return Entry{}, false
	}

	if b.SideToMove == piece.Black {
		static = -static
	}

	phase := trace.Phase
	if phase > eval.MaxPhase {
		phase = eval.MaxPhase
	}

	var e Entry
	e.Coeffs = trace.Coeffs
	e.PhaseFactors[MG] = float64(phase) / float64(eval.MaxPhase)
	e.PhaseFactors[EG] = 1 - e.PhaseFactors[MG]
	e.Safety = trace.Safety
	e.Eval = trace.Eval
	e.StaticEval = static
	e.ScaleFactor = float64(trace.ScaleFactor) / 256.0
	e.Result = result
	e.GameScore = gameScore

	return e, true
}
