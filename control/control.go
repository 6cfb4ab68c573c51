// Copyright (c) 2024, The SpikingControllerNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package control provides the integral feedback controller that drives a
controlled network's output toward a target firing rate during settling.

The controller maintains no state of its own: it integrates the error
between the control target and the current network output into a shared
control vector owned by the network, which every layer reads through its
feedback pathway on the next step.  Convergence is judged against a separate
target pattern using mean absolute difference, and settling is bounded by
MaxIters so that an unreachable target reports non-convergence instead of
looping forever.
*/
package control

import (
	"github.com/emer/etable/minmax"
	"github.com/goki/mat32"
)

// Params are the integral feedback controller parameters.
type Params struct {
	Rate        float32    `def:"0.1" min:"0" desc:"integral gain: rate at which the shared control vector accumulates the error between the control target and the current output"`
	Precision   float32    `def:"0.01" min:"0" desc:"convergence tolerance: settling stops once the mean absolute difference between output and target is at or below this"`
	MaxIters    int        `def:"1000" min:"1" desc:"upper bound on settling iterations -- a loop that has not reached Precision within this many steps reports non-convergence instead of blocking"`
	TargetRates minmax.F32 `desc:"output firing rates corresponding to the off (Min) and on (Max) units of a binary target pattern"`
}

func (cp *Params) Update() {
}

func (cp *Params) Defaults() {
	cp.Rate = 0.1
	cp.Precision = 0.01
	cp.MaxIters = 1000
	cp.TargetRates.Set(0, 1)
	cp.Update()
}

// CFmOutput integrates the control vector one step from the error between
// the control target and the current output: c += Rate * (target - out).
// All slices must be the same length (the controller dimension).
func (cp *Params) CFmOutput(out, target, c []float32) {
	for i := range c {
		c[i] += cp.Rate * (target[i] - out[i])
	}
}

// ControlTarget maps a binary 0/1 target pattern onto control target rates
// using the TargetRates table: 0 -> Min, 1 -> Max.
func (cp *Params) ControlTarget(target, ct []float32) {
	for i := range target {
		ct[i] = cp.TargetRates.Min + target[i]*cp.TargetRates.Range()
	}
}

// Dist returns the mean absolute difference between output and target.
func (cp *Params) Dist(out, target []float32) float32 {
	n := len(out)
	if n == 0 {
		return 0
	}
	var sum float32
	for i := range out {
		sum += mat32.Abs(out[i] - target[i])
	}
	return sum / float32(n)
}

// Converged returns true if the mean absolute difference between output and
// target is at or below Precision.
func (cp *Params) Converged(out, target []float32) bool {
	return cp.Dist(out, target) <= cp.Precision
}
