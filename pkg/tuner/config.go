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

import "runtime"

// Lambda blends a position's recorded game result against the sigmoid
// of its dataset engine score to form the training label used during
// tuning: 0 trains purely on game outcome, 1 trains purely on search
// score.
const Lambda = 0.7

// Config holds every tunable knob of a tuning session. NewConfig's
// defaults mirror the reference tuner's own invocation of itself.
type Config struct {
	KPrecision int

	ReportRate int

	LearningRate     float64
	LearningDropRate float64
	LearningStepRate int

	MaxEpochs int
	BatchSize int

	Threads int
}

// NewConfig returns a Config with every zero field replaced by a
// default, and Threads defaulting to the host's CPU count.
func NewConfig(c Config) Config {
	if c.KPrecision == 0 {
		c.KPrecision = 10
	}
	if c.ReportRate == 0 {
		c.ReportRate = 50
	}
	if c.LearningRate == 0 {
		c.LearningRate = 1
	}
	if c.LearningDropRate == 0 {
		c.LearningDropRate = 1
	}
	if c.LearningStepRate == 0 {
		c.LearningStepRate = 250
	}
	if c.MaxEpochs == 0 {
		c.MaxEpochs = 100_000
	}
	if c.BatchSize == 0 {
		c.BatchSize = 2 * 16384
	}
	if c.Threads == 0 {
		c.Threads = runtime.GOMAXPROCS(0)
	}
	return c
}
