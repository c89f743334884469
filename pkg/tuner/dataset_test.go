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

	"laptudirm.com/x/mess/pkg/eval/terms"
)

func TestSplitDatasetLine(t *testing.T) {
	fen, result, score, err := splitDatasetLine(
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 1.0 23")
	require.NoError(t, err)
	require.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", fen)
	require.Equal(t, 1.0, result)
	require.Equal(t, 23.0, score)
}

func TestSplitDatasetLineRejectsMalformedLines(t *testing.T) {
	// "only two" has two fields; the trailing one ("two") fails to
	// parse as the numeric engine score.
	_, _, _, err := splitDatasetLine("only two")
	require.Error(t, err)

	_, _, _, err = splitDatasetLine("solo")
	require.Error(t, err)
}

func TestCutLast(t *testing.T) {
	rest, last, ok := cutLast("a b c")
	require.True(t, ok)
	require.Equal(t, "a b", rest)
	require.Equal(t, "c", last)

	_, _, ok = cutLast("nospaces")
	require.False(t, ok)
}

func TestLoadDatasetMissingFile(t *testing.T) {
	_, err := LoadDataset("/nonexistent/path/to/dataset.epd", terms.Default())
	require.Error(t, err)
}
