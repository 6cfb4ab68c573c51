// Copyright (c) 2024, The SpikingControllerNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctrlnet

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/emer/etable/minmax"
	"github.com/goki/ki/kit"
)

///////////////////////////////////////////////////////////////////////
//  act.go contains the activation params and dynamics functions
//  for the controlled leaky-integrator neurons, at the neuron level.

// ctrlnet.ActParams contains the membrane potential integration and output
// dynamics parameters.  This is included in ctrlnet.Layer to drive the
// computation.
type ActParams struct {
	Mode    DynamicsModes `desc:"output dynamics: discrete thresholded spiking with hard reset, or smooth logistic rate code -- fixed at construction"`
	Leak    float32       `def:"0.9" min:"0" max:"1" desc:"decay coefficient applied to the membrane potential each step: vm <- vm - leak*vm + inputs -- closer to 1 means stronger decay toward zero (less memory)"`
	Thr     float32       `def:"1" desc:"spike threshold on the membrane potential, strictly exceeded to spike (spiking mode only)"`
	VmRange minmax.F32    `view:"inline" desc:"numerical safety range for the membrane potential -- wide enough that normal settling never touches it"`
}

func (ac *ActParams) Defaults() {
	ac.Leak = 0.9
	ac.Thr = 1
	ac.VmRange.Set(-100, 100)
	ac.Update()
}

// Update must be called after any changes to parameters
func (ac *ActParams) Update() {
}

// InitActs initializes activation state in neuron.  Does not touch the
// Apost eligibility trace, which persists across settling runs.
func (ac *ActParams) InitActs(nrn *Neuron) {
	nrn.Ge = 0
	nrn.Gfb = 0
	nrn.Vm = 0
	nrn.Act = 0
	nrn.Spike = 0
}

// VmFmG integrates the membrane potential one step from the feed-forward
// and feedback currents: vm <- vm - Leak*vm + Ge + Gfb, clipped to VmRange.
func (ac *ActParams) VmFmG(nrn *Neuron) {
	nrn.Vm = ac.VmRange.ClipVal(nrn.Vm - ac.Leak*nrn.Vm + nrn.Ge + nrn.Gfb)
}

// SpikeFmVm is the spiking dynamics strategy: any neuron whose potential
// strictly exceeds Thr emits a 1 and has its potential hard-reset to 0.
func (ac *ActParams) SpikeFmVm(nrn *Neuron) {
	if nrn.Vm > ac.Thr {
		nrn.Spike = 1
		nrn.Act = 1
		nrn.Vm = 0
	} else {
		nrn.Spike = 0
		nrn.Act = 0
	}
}

// RateFmVm is the rate dynamics strategy: logistic sigmoid of the
// potential, which is never reset.
func (ac *ActParams) RateFmVm(nrn *Neuron) {
	nrn.Act = SigFun(nrn.Vm)
}

// DynamicsFun returns the dynamics strategy function for the configured
// Mode, selected once at build time rather than re-branching every call.
// Returns an error for an unrecognized mode.
func (ac *ActParams) DynamicsFun() (func(ac *ActParams, nrn *Neuron), error) {
	switch ac.Mode {
	case Spiking:
		return (*ActParams).SpikeFmVm, nil
	case Rate:
		return (*ActParams).RateFmVm, nil
	}
	return nil, fmt.Errorf("ctrlnet.ActParams: dynamics mode %d not valid", ac.Mode)
}

// SigFun is the logistic sigmoid function used for rate-coded output.
func SigFun(v float32) float32 {
	return 1 / (1 + math32.Exp(-v))
}

//////////////////////////////////////////////////////////////////////////////////////
//  DynamicsModes

// DynamicsModes are the neuron output dynamics strategies, selected at
// construction time.
type DynamicsModes int

//go:generate stringer -type=DynamicsModes

var KiT_DynamicsModes = kit.Enums.AddEnum(DynamicsModesN, kit.NotBitFlag, nil)

func (ev DynamicsModes) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *DynamicsModes) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The dynamics modes
const (
	// Spiking is discrete binary output: 1 where the potential strictly
	// exceeds the threshold, with a hard reset of the potential to 0 there.
	Spiking DynamicsModes = iota

	// Rate is smooth logistic-sigmoid output of the potential, no reset.
	Rate

	DynamicsModesN
)
