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

package main

import (
	"flag"
	"fmt"
	"os"

	"laptudirm.com/x/mess/pkg/eval/terms"
	"laptudirm.com/x/mess/pkg/tuner"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "tuner:", err)
		os.Exit(1)
	}
}

func run() error {
	var config tuner.Config

	flag.IntVar(&config.MaxEpochs, "epochs", 0, "maximum number of training epochs (0 = default)")
	flag.IntVar(&config.BatchSize, "batch", 0, "positions per gradient batch (0 = default)")
	flag.IntVar(&config.Threads, "threads", 0, "worker goroutines per batch (0 = GOMAXPROCS)")
	flag.Float64Var(&config.LearningRate, "lr", 0, "initial Adam learning rate (0 = default)")
	flag.IntVar(&config.LearningStepRate, "lr-drop-epochs", 0, "epochs between learning-rate drops (0 = default)")
	flag.Float64Var(&config.LearningDropRate, "lr-drop-factor", 0, "divisor applied to the learning rate on drop (0 = default)")
	flag.IntVar(&config.ReportRate, "report-epochs", 0, "epochs between parameter dumps (0 = default)")
	flag.IntVar(&config.KPrecision, "k-precision", 0, "number of decimal-digit refinement passes in the K search (0 = default)")
	flag.Parse()

	if flag.NArg() != 1 {
		return fmt.Errorf("usage: tuner [flags] <dataset-file>")
	}

	t, err := tuner.NewTuner(config, terms.Default(), flag.Arg(0))
	if err != nil {
		return err
	}

	fmt.Printf("tuner: loaded %d positions\n", len(t.Dataset))
	if len(t.Dataset) == 0 {
		return fmt.Errorf("dataset is empty, nothing to tune")
	}

	t.Tune()
	return nil
}
