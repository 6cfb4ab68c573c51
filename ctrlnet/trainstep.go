// Copyright (c) 2024, The SpikingControllerNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctrlnet

import (
	"fmt"

	"github.com/emer/etable/metric"
)

// TrialStats are the statistics computed on one training trial, from the
// first (open-loop) output of the settling run.
type TrialStats struct {
	NIters    int       `desc:"number of settling iterations run on this trial"`
	Converged bool      `desc:"whether settling reached the control target within Precision before MaxIters"`
	Dist      float32   `desc:"mean absolute distance of the first output from the control target"`
	MSE       float32   `desc:"mean squared error of the first output vs the one-hot target pattern"`
	Err       float32   `desc:"1 if the max unit of the first output was not the target class, else 0"`
	FirstOut  []float32 `desc:"copy of the first output of the settling run"`
}

// TrainTrial runs one training trial: settle the network on input x with
// the one-hot target for class y, during which STDP accumulates weight
// changes, then apply them with WtFmDWt.  Trial statistics are computed on
// the first output of the settling run, before the controller has pushed
// the network anywhere.  Returns an error if y is not a valid output unit.
func (nt *Network) TrainTrial(x []float32, y int, tm *Time) (TrialStats, error) {
	var ts TrialStats
	nout := nt.NOut()
	if y < 0 || y >= nout {
		return ts, fmt.Errorf("ctrlnet.Network %v: target class %v out of range [0, %v)", nt.Nm, y, nout)
	}
	targ := make([]float32, nout)
	targ[y] = 1

	first, niters, conv := nt.EvolveToConvergence(x, targ)
	nt.WtFmDWt()

	ts.NIters = niters
	ts.Converged = conv
	ts.FirstOut = first
	nt.Ctrl.ControlTarget(targ, nt.ctrlTarg)
	ts.Dist = nt.Ctrl.Dist(first, nt.ctrlTarg)
	ts.MSE = metric.SumSquares32(first, targ) / float32(nout)
	if MaxIdx(first) != y {
		ts.Err = 1
	}

	if tm != nil {
		tm.StepTot += niters
		tm.Step = niters
		tm.Trial++
	}
	return ts, nil
}

// MaxIdx returns the index of the maximum value in the slice, -1 if empty.
func MaxIdx(vals []float32) int {
	mi := -1
	var mv float32
	for i, v := range vals {
		if mi < 0 || v > mv {
			mi = i
			mv = v
		}
	}
	return mi
}
