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
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/schollz/progressbar/v3"

	"laptudirm.com/x/mess/pkg/eval"
	"laptudirm.com/x/mess/pkg/eval/terms"
)

// Tuner holds the full state of one tuning session: the loaded and
// K-labeled dataset, the parameter vector it started from, and the
// delta it is learning.
type Tuner struct {
	Config Config

	Dataset Dataset
	Base    Vector
	Delta   Vector

	K float64

	Epoch int
	Batch int
}

// NewTuner loads dataset from path against the base parameter table,
// and returns a Tuner ready for Tune to be called on it.
func NewTuner(config Config, base *terms.Terms[eval.Score], datasetPath string) (*Tuner, error) {
	dataset, err := LoadDataset(datasetPath, base)
	if err != nil {
		return nil, err
	}
	return &Tuner{
		Config:  NewConfig(config),
		Dataset: dataset,
		Base:    NewBaseVector(base),
	}, nil
}

// Tune runs gradient descent for Config.MaxEpochs epochs, with no
// early stop on convergence, reporting progress with a per-epoch
// progress bar, an HTML loss-curve plot rewritten after every epoch,
// and a periodic parameter dump.
func (t *Tuner) Tune() {
	var velocity, momentum Vector

	rate := t.Config.LearningRate
	batchSize := float64(t.Config.BatchSize)

	var lossLabels []string
	var lossPoints []opts.LineData

	fmt.Println("tuner: computing optimal value of K")
	t.K = t.Dataset.ComputeK(t.Config.KPrecision)
	fmt.Printf("tuner: K = %v\n", t.K)

	t.Dataset.BlendLabels(t.K)
	scale := (t.K * 2) / batchSize

	loss := t.ComputeLoss()
	fmt.Printf("tuner: initial loss = %v\n", loss)
	lossLabels = append(lossLabels, strconv.Itoa(0))
	lossPoints = append(lossPoints, opts.LineData{Value: loss})
	writeLossPlot(lossLabels, lossPoints)

	batches := len(t.Dataset) / t.Config.BatchSize

	for t.Epoch = 0; t.Epoch < t.Config.MaxEpochs; t.Epoch++ {
		fmt.Printf("tuner: started epoch %d/%d\n", t.Epoch+1, t.Config.MaxEpochs)

		bar := progressbar.NewOptions(
			batches,
			progressbar.OptionSetElapsedTime(true),
			progressbar.OptionSetItsString("batch"),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
		)

		for t.Batch = 0; t.Batch < batches; t.Batch++ {
			gradient := computeGradient(t.Dataset, t.Delta, t.K, t.Batch, t.Config.BatchSize, t.Config.Threads)

			for i := 0; i < terms.TermsN; i++ {
				mgGrad := gradient[i][MG] * scale
				egGrad := gradient[i][EG] * scale

				momentum[i][MG] = momentum[i][MG]*0.9 + mgGrad*0.1
				momentum[i][EG] = momentum[i][EG]*0.9 + egGrad*0.1

				velocity[i][MG] = velocity[i][MG]*0.999 + mgGrad*mgGrad*0.001
				velocity[i][EG] = velocity[i][EG]*0.999 + egGrad*egGrad*0.001

				t.Delta[i][MG] += momentum[i][MG] * rate / math.Sqrt(1e-8+velocity[i][MG])
				t.Delta[i][EG] += momentum[i][EG] * rate / math.Sqrt(1e-8+velocity[i][EG])
			}

			_ = bar.Add(1)
		}
		_ = bar.Close()

		loss := t.ComputeLoss()
		fmt.Printf("tuner: epoch %d loss = %v\n", t.Epoch+1, loss)
		lossLabels = append(lossLabels, strconv.Itoa(t.Epoch+1))
		lossPoints = append(lossPoints, opts.LineData{Value: loss})
		writeLossPlot(lossLabels, lossPoints)

		if t.Epoch != 0 && t.Epoch%t.Config.LearningStepRate == 0 {
			rate /= t.Config.LearningDropRate
		}
		if t.Epoch%t.Config.ReportRate == t.Config.ReportRate-1 || t.Epoch == t.Config.MaxEpochs-1 {
			DumpParameters(os.Stdout, t.Base, t.Delta)
		}
	}
}

// ComputeLoss returns the mean squared error of the current delta
// vector against the dataset's blended labels.
func (t *Tuner) ComputeLoss() float64 {
	if len(t.Dataset) == 0 {
		return 0
	}
	total := 0.0
	for i := range t.Dataset {
		e := &t.Dataset[i]
		E, _ := adjustedEval(e, t.Delta)
		diff := e.Result - Sigmoid(t.K, E)
		total += diff * diff
	}
	return total / float64(len(t.Dataset))
}

func writeLossPlot(labels []string, points []opts.LineData) {
	plot := charts.NewLine()
	plot.SetXAxis(labels).AddSeries("Loss", points)

	f, err := os.Create("loss-plot.html")
	if err != nil {
		return
	}
	defer f.Close()
	_ = plot.Render(f)
}
