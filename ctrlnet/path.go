// Copyright (c) 2024, The SpikingControllerNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctrlnet

import (
	"fmt"

	"github.com/emer/emergent/erand"
	"github.com/emer/emergent/prjn"
	"github.com/emer/etable/etensor"
	"github.com/mbalsells/SpikingControllerNet/stdp"
)

// WtInitParams are weight initialization parameters -- the random
// distribution used for initial synaptic weight values.
type WtInitParams struct {
	erand.RndParams
}

func (wp *WtInitParams) Defaults() {
	wp.Mean = 0
	wp.Var = 0.5
	wp.Dist = erand.Uniform
}

// LearnParams are the learning parameters for a pathway.
type LearnParams struct {
	Learn bool        `desc:"enable learning on this pathway -- always off for the fixed Ctrl feedback pathways"`
	Lrate float32     `def:"0.01" viewif:"Learn" desc:"learning rate multiplier on accumulated DWt when applied by WtFmDWt"`
	Stdp  stdp.Params `view:"inline" desc:"STDP eligibility trace parameters -- when off, no DWt is ever accumulated and WtFmDWt is a no-op"`
}

func (lp *LearnParams) Update() {
	lp.Stdp.Update()
}

func (lp *LearnParams) Defaults() {
	lp.Learn = true
	lp.Lrate = 0.01
	lp.Stdp.Defaults()
	lp.Update()
}

// ctrlnet.Path is a pathway of synaptic connections from a sending vector
// (the previous layer's output, the network input, or the shared controller
// vector) onto a receiving layer, and all associated synaptic state.
// Connectivity comes from a prjn.Pattern; synapses are stored dense,
// receiver-major, with unconnected pairs skipped via the pattern's
// connection bits.
type Path struct {
	Recv    *Layer         `copy:"-" json:"-" xml:"-" view:"-" desc:"receiving layer for this pathway"`
	Type    PathTypes      `desc:"type of pathway: Forward (learnable, drives Ge) or Ctrl (fixed feedback, drives Gfb)"`
	Cls     string         `desc:"Class is for applying parameter styles, can be space separated multiple tags"`
	SendNm  string         `desc:"name of the sending side: the sending layer name, Input for the network input, or Ctrl for the controller vector"`
	SendShp etensor.Shape  `desc:"shape of the sending vector"`
	Pat     prjn.Pattern   `desc:"pattern of connectivity: Full for feed-forward pathways, OneToOne (truncated identity) for controller feedback"`
	WtInit  WtInitParams   `view:"inline" desc:"initial random weight distribution -- Ctrl pathways use the Mean distribution with Mean = 1, i.e., fixed identity weights"`
	Learn   LearnParams    `view:"inline" desc:"learning parameters"`
	Syns    []Synapse      `view:"-" desc:"synaptic state values, receiver-major: [recv, send]"`
	Cons    *etensor.Bits  `view:"-" desc:"connection bits from Pat, receiver-major"`
	Apre    []float32      `view:"-" desc:"presynaptic eligibility traces, one per sending unit.  Not cleared by Reset -- traces persist across settling runs."`
}

// emer params.Styler interface, for parameter styling with Sel specs
func (pj *Path) TypeName() string { return "Path" }
func (pj *Path) Name() string     { return pj.SendNm + "To" + pj.Recv.Nm }
func (pj *Path) Class() string    { return pj.Type.String() + " " + pj.Cls }

func (pj *Path) Defaults() {
	pj.WtInit.Defaults()
	pj.Learn.Defaults()
	if pj.Type == CtrlPath {
		pj.WtInit.Dist = erand.Mean
		pj.WtInit.Mean = 1
		pj.Learn.Learn = false
	}
	pj.Update()
}

// Update must be called after any changes to parameters
func (pj *Path) Update() {
	pj.Learn.Update()
}

// UpdateParams updates all params given any changes that might have been
// made to individual values
func (pj *Path) UpdateParams() {
	pj.Update()
}

// NSend returns the number of sending units
func (pj *Path) NSend() int { return pj.SendShp.Len() }

// NRecv returns the number of receiving units
func (pj *Path) NRecv() int { return pj.Recv.Shp.Len() }

// Build constructs the connectivity from the Pat pattern and allocates the
// synapse and trace state.
func (pj *Path) Build() error {
	if pj.Recv == nil {
		return fmt.Errorf("ctrlnet.Path %v: no receiving layer set", pj.SendNm)
	}
	if pj.Pat == nil {
		return fmt.Errorf("ctrlnet.Path %v: no connectivity pattern set", pj.Name())
	}
	slen := pj.SendShp.Len()
	rlen := pj.Recv.Shp.Len()
	_, _, cons := pj.Pat.Connect(&pj.SendShp, &pj.Recv.Shp, false)
	pj.Cons = cons
	pj.Syns = make([]Synapse, rlen*slen)
	pj.Apre = make([]float32, slen)
	return nil
}

// ConIsOn returns true if the synapse from sending unit si to receiving
// unit ri is connected under the pathway's pattern.
func (pj *Path) ConIsOn(si, ri int) bool {
	return pj.Cons.Values.Index(ri*pj.NSend() + si)
}

// Syn returns the synapse for sending unit si, receiving unit ri.
func (pj *Path) Syn(si, ri int) *Synapse {
	return &pj.Syns[ri*pj.NSend()+si]
}

// SynVal returns the value of given variable name on the synapse from
// sending unit si to receiving unit ri, or error.
func (pj *Path) SynVal(varNm string, si, ri int) (float32, error) {
	if si < 0 || si >= pj.NSend() || ri < 0 || ri >= pj.NRecv() {
		return 0, fmt.Errorf("ctrlnet.Path %v: synapse index %v, %v out of range", pj.Name(), si, ri)
	}
	return pj.Syn(si, ri).VarByName(varNm)
}

//////////////////////////////////////////////////////////////////////////////////////
//  Init methods

// InitWts initializes weight values from the WtInit random distribution
// parameters, and resets all learning state (DWt, traces).
func (pj *Path) InitWts() {
	ns := pj.NSend()
	for ri := 0; ri < pj.NRecv(); ri++ {
		for si := 0; si < ns; si++ {
			sy := &pj.Syns[ri*ns+si]
			if !pj.ConIsOn(si, ri) {
				sy.Wt = 0
				sy.DWt = 0
				continue
			}
			sy.Wt = float32(pj.WtInit.Gen(-1))
			sy.DWt = 0
		}
	}
	pj.InitTraces()
}

// SetWtsFunc initializes the connected synaptic weights using given
// function of sending, receiving unit indexes.
func (pj *Path) SetWtsFunc(wtFun func(si, ri int) float32) {
	ns := pj.NSend()
	for ri := 0; ri < pj.NRecv(); ri++ {
		for si := 0; si < ns; si++ {
			if !pj.ConIsOn(si, ri) {
				continue
			}
			pj.Syns[ri*ns+si].Wt = wtFun(si, ri)
		}
	}
}

// InitTraces zeroes the pre and post synaptic eligibility traces.  Traces
// are otherwise never cleared: they persist across settling runs, carrying
// a slow memory of activity across trials.
func (pj *Path) InitTraces() {
	for si := range pj.Apre {
		pj.Apre[si] = 0
	}
	for ni := range pj.Recv.Neurons {
		pj.Recv.Neurons[ni].Apost = 0
	}
}

// InitDWt zeroes the accumulated weight changes.
func (pj *Path) InitDWt() {
	for si := range pj.Syns {
		pj.Syns[si].DWt = 0
	}
}

//////////////////////////////////////////////////////////////////////////////////////
//  Act methods

// RecvGFmActs projects the sending activations through the weights into
// the receiving neurons' current for this pathway type (Ge for Forward,
// Gfb for Ctrl).  No bias terms.
func (pj *Path) RecvGFmActs(acts []float32) {
	ns := pj.NSend()
	cbits := pj.Cons.Values
	for ri := range pj.Recv.Neurons {
		rbi := ri * ns
		var g float32
		for si := 0; si < ns; si++ {
			if !cbits.Index(rbi + si) {
				continue
			}
			g += pj.Syns[rbi+si].Wt * acts[si]
		}
		nrn := &pj.Recv.Neurons[ri]
		if pj.Type == CtrlPath {
			nrn.Gfb = g
		} else {
			nrn.Ge = g
		}
	}
}

//////////////////////////////////////////////////////////////////////////////////////
//  Learn methods

// StdpOn returns true if this pathway accumulates STDP weight changes.
func (pj *Path) StdpOn() bool {
	return pj.Learn.Learn && pj.Learn.Stdp.On
}

// DWtFmSpikes updates the pre and post synaptic eligibility traces from
// the given binary presynaptic spikes and the receiving neurons' Spike
// values, then accumulates the trace-gated STDP weight changes into DWt.
// DWt accumulates additively across calls: it is only drained by WtFmDWt
// (or InitDWt).
func (pj *Path) DWtFmSpikes(preSpks []float32) {
	if !pj.StdpOn() {
		return
	}
	st := &pj.Learn.Stdp
	for si := range preSpks {
		st.TraceFmSpike(&pj.Apre[si], preSpks[si])
	}
	for ni := range pj.Recv.Neurons {
		nrn := &pj.Recv.Neurons[ni]
		st.TraceFmSpike(&nrn.Apost, nrn.Spike)
	}
	ns := pj.NSend()
	cbits := pj.Cons.Values
	for ri := range pj.Recv.Neurons {
		nrn := &pj.Recv.Neurons[ri]
		rbi := ri * ns
		for si := 0; si < ns; si++ {
			if !cbits.Index(rbi + si) {
				continue
			}
			sy := &pj.Syns[rbi+si]
			sy.DWt += st.DWt(preSpks[si], pj.Apre[si], nrn.Spike, nrn.Apost)
		}
	}
}

// WtFmDWt applies the accumulated weight changes with the learning rate,
// and drains the DWt buffers: Wt += Lrate * DWt, DWt = 0.  This is the
// optimizer step for the pathway.  No-op if learning is off.
func (pj *Path) WtFmDWt() {
	if !pj.Learn.Learn {
		return
	}
	for si := range pj.Syns {
		sy := &pj.Syns[si]
		sy.Wt += pj.Learn.Lrate * sy.DWt
		sy.DWt = 0
	}
}
