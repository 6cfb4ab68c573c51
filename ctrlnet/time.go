// Copyright (c) 2024, The SpikingControllerNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctrlnet

// ctrlnet.Time contains the counters that track training progress: steps
// within the current settling run, total steps, trials, and epochs.
type Time struct {
	Step    int `desc:"step of settling within the current trial"`
	StepTot int `desc:"total step count across all trials and epochs"`
	Trial   int `desc:"trial within the current epoch"`
	Epoch   int `desc:"epoch of training"`
}

// NewTime returns a new Time struct with all counters zeroed
func NewTime() *Time {
	return &Time{}
}

// Reset resets all counters back to zero
func (tm *Time) Reset() {
	tm.Step = 0
	tm.StepTot = 0
	tm.Trial = 0
	tm.Epoch = 0
}

// StepInc increments the step counters
func (tm *Time) StepInc() {
	tm.Step++
	tm.StepTot++
}

// StepStart resets the within-trial step counter at the start of settling
func (tm *Time) StepStart() {
	tm.Step = 0
}

// TrialInc increments the trial counter and resets the step counter
func (tm *Time) TrialInc() {
	tm.Step = 0
	tm.Trial++
}

// EpochInc increments the epoch counter and resets the trial counter
func (tm *Time) EpochInc() {
	tm.Trial = 0
	tm.Epoch++
}
