// Copyright (c) 2024, The SpikingControllerNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctrlnet

import (
	"fmt"
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/emer/etable/etensor"
)

// ctrlnet.Layer is one controlled layer of leaky-integrator neurons: a
// learnable feed-forward pathway from the previous layer (or the network
// input) plus a fixed identity feedback pathway from the shared controller
// vector, both summing into the membrane potential each step.
type Layer struct {
	Nm      string        `desc:"Name of the layer -- this must be unique within the network"`
	Cls     string        `desc:"Class is for applying parameter styles, can be space separated multiple tags"`
	Off     bool          `desc:"inactivate this layer -- allows for easy experimentation"`
	Shp     etensor.Shape `desc:"shape of the layer -- flat 1D vector of units"`
	Act     ActParams     `view:"add-fields" desc:"activation and dynamics parameters"`
	FF      *Path         `desc:"feed-forward pathway from the previous layer's output or the network input"`
	FB      *Path         `desc:"fixed feedback pathway from the shared controller vector"`
	Neurons []Neuron      `desc:"slice of neurons for this layer, as a flat list of all units"`
	Rnd     *rand.Rand    `copy:"-" json:"-" xml:"-" view:"-" desc:"random source for Bernoulli spike sampling in rate mode -- shared across the network"`

	dyn     func(ac *ActParams, nrn *Neuron) // output dynamics strategy, from Act.Mode at Build
	acts    []float32                        // output activations, refreshed each Step
	preSpks []float32                        // scratch for sampled presynaptic spikes in rate mode
}

// emer params.Styler interface
func (ly *Layer) TypeName() string { return "Layer" }
func (ly *Layer) Name() string     { return ly.Nm }
func (ly *Layer) Class() string    { return ly.Cls }

func (ly *Layer) Defaults() {
	ly.Act.Defaults()
	if ly.FF != nil {
		ly.FF.Defaults()
	}
	if ly.FB != nil {
		ly.FB.Defaults()
	}
}

// UpdateParams updates all params given any changes that might have been
// made to individual values
func (ly *Layer) UpdateParams() {
	ly.Act.Update()
	if ly.FF != nil {
		ly.FF.UpdateParams()
	}
	if ly.FB != nil {
		ly.FB.UpdateParams()
	}
}

// SetShape sets the layer shape (number of units).
func (ly *Layer) SetShape(shape []int) {
	ly.Shp.SetShape(shape, nil, []string{"Units"})
}

// NUnits returns the number of units in the layer
func (ly *Layer) NUnits() int { return ly.Shp.Len() }

// Build allocates the neurons, resolves the dynamics strategy from
// Act.Mode, and builds both pathways.  Returns an error for an invalid
// mode or unbuildable pathway.
func (ly *Layer) Build() error {
	nu := ly.Shp.Len()
	if nu == 0 {
		return fmt.Errorf("ctrlnet.Layer %v: no units specified in Shp", ly.Nm)
	}
	ly.Neurons = make([]Neuron, nu)
	ly.acts = make([]float32, nu)
	dyn, err := ly.Act.DynamicsFun()
	if err != nil {
		return fmt.Errorf("ctrlnet.Layer %v: %v", ly.Nm, err)
	}
	ly.dyn = dyn
	if err := ly.FF.Build(); err != nil {
		return err
	}
	if err := ly.FB.Build(); err != nil {
		return err
	}
	ly.preSpks = make([]float32, ly.FF.NSend())
	return nil
}

//////////////////////////////////////////////////////////////////////////////////////
//  Init methods

// InitWts initializes the weights and learning state of both pathways.
func (ly *Layer) InitWts() {
	ly.FF.InitWts()
	ly.FB.InitWts()
}

// InitActs resets the per-step activation state of all neurons (currents,
// potential, output).  Eligibility traces are left intact.
func (ly *Layer) InitActs() {
	for ni := range ly.Neurons {
		ly.Act.InitActs(&ly.Neurons[ni])
	}
	for ni := range ly.acts {
		ly.acts[ni] = 0
	}
}

//////////////////////////////////////////////////////////////////////////////////////
//  Step methods

// Step advances the layer one time step from the given presynaptic
// activations and the shared controller vector: project both pathways
// into the neurons, integrate the potential, apply the output dynamics,
// and, when STDP learning is on, sample spikes and accumulate DWt.
func (ly *Layer) Step(x, c []float32) {
	ly.FF.RecvGFmActs(x)
	ly.FB.RecvGFmActs(c)
	for ni := range ly.Neurons {
		nrn := &ly.Neurons[ni]
		ly.Act.VmFmG(nrn)
		ly.dyn(&ly.Act, nrn)
		ly.acts[ni] = nrn.Act
	}
	if ly.FF.StdpOn() {
		pre := ly.SpikesFmRates(x)
		ly.SpikesFmActs()
		ly.FF.DWtFmSpikes(pre)
	}
}

// SpikesFmRates returns binary presynaptic spikes for the STDP update.
// In spiking mode the presynaptic activations already are spikes and pass
// through unchanged; in rate mode each is Bernoulli-sampled from its rate.
func (ly *Layer) SpikesFmRates(x []float32) []float32 {
	if ly.Act.Mode == Spiking {
		return x
	}
	for si := range x {
		if ly.Rnd.Float32() < x[si] {
			ly.preSpks[si] = 1
		} else {
			ly.preSpks[si] = 0
		}
	}
	return ly.preSpks
}

// SpikesFmActs sets the neurons' Spike values for the STDP update.  In
// spiking mode the dynamics already set them; in rate mode each is
// Bernoulli-sampled from the neuron's rate.
func (ly *Layer) SpikesFmActs() {
	if ly.Act.Mode == Spiking {
		return
	}
	for ni := range ly.Neurons {
		nrn := &ly.Neurons[ni]
		if ly.Rnd.Float32() < nrn.Act {
			nrn.Spike = 1
		} else {
			nrn.Spike = 0
		}
	}
}

// Acts returns the layer's current output activations.  The slice is
// owned by the layer and refreshed on each Step.
func (ly *Layer) Acts() []float32 { return ly.acts }

//////////////////////////////////////////////////////////////////////////////////////
//  Learn methods

// WtFmDWt applies accumulated weight changes on the learnable pathway.
func (ly *Layer) WtFmDWt() {
	ly.FF.WtFmDWt()
}

// InitTraces zeroes the eligibility traces on the learnable pathway.
func (ly *Layer) InitTraces() {
	ly.FF.InitTraces()
}

//////////////////////////////////////////////////////////////////////////////////////
//  Unit variable access

// UnitVal1D returns value of given variable index on given unit, using
// flat 1D index.  Returns NaN on invalid index.
func (ly *Layer) UnitVal1D(varIdx int, idx int) float32 {
	if idx < 0 || idx >= len(ly.Neurons) {
		return math32.NaN()
	}
	if varIdx < 0 || varIdx >= len(NeuronVars) {
		return math32.NaN()
	}
	return ly.Neurons[idx].VarByIndex(varIdx)
}

// UnitVals fills in values of given variable name on all units, into
// given float32 slice (which is reallocated as needed).
func (ly *Layer) UnitVals(vals *[]float32, varNm string) error {
	nu := len(ly.Neurons)
	if *vals == nil || cap(*vals) < nu {
		*vals = make([]float32, nu)
	} else {
		*vals = (*vals)[0:nu]
	}
	vidx, err := NeuronVarIdxByName(varNm)
	if err != nil {
		nan := math32.NaN()
		for i := range *vals {
			(*vals)[i] = nan
		}
		return err
	}
	for i := range ly.Neurons {
		(*vals)[i] = ly.Neurons[i].VarByIndex(vidx)
	}
	return nil
}
