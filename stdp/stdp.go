// Copyright (c) 2024, The SpikingControllerNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package stdp provides spike-timing-dependent plasticity (STDP) based on
exponentially decaying eligibility traces of pre and post synaptic spiking.

Each side of a synapse carries a trace that decays by 1 - 1/Tau per step and
is incremented by that side's binary spike.  The weight change for a synapse
is the classic trace-gated pairing: potentiation in proportion to the
presynaptic trace whenever the postsynaptic neuron spikes, and depression in
proportion to the postsynaptic trace whenever the presynaptic neuron spikes.
*/
package stdp

// Params are the eligibility trace parameters for STDP learning on a pathway.
type Params struct {
	On    bool    `desc:"enable STDP trace learning on this pathway -- when off, no weight changes are ever accumulated"`
	Tau   float32 `viewif:"On" def:"20" min:"1" desc:"time constant in steps of the exponential decay of the pre and post synaptic eligibility traces -- per-step decay multiplier is 1 - 1/tau"`
	Decay float32 `inactive:"+" view:"-" json:"-" xml:"-" desc:"trace decay multiplier = 1 - 1/tau"`
}

func (sp *Params) Update() {
	if sp.Tau > 0 {
		sp.Decay = 1 - 1/sp.Tau
	} else {
		sp.Decay = 0
	}
}

func (sp *Params) Defaults() {
	sp.On = true
	sp.Tau = 20
	sp.Update()
}

// TraceFmSpike updates an eligibility trace in place from a binary spike:
// tr = tr*Decay + spike.
func (sp *Params) TraceFmSpike(tr *float32, spike float32) {
	*tr = *tr*sp.Decay + spike
}

// DWt returns the weight change for one synapse given the binary spikes and
// the already-updated traces on both sides:
// dwt = postSpk*preTr - preSpk*postTr.
// The sign convention is the weight-change direction: the caller adds
// lrate * dwt to the weight directly.
func (sp *Params) DWt(preSpk, preTr, postSpk, postTr float32) float32 {
	return postSpk*preTr - preSpk*postTr
}
