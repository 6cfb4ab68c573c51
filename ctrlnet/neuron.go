// Copyright (c) 2024, The SpikingControllerNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctrlnet

import (
	"fmt"
	"unsafe"
)

// NeuronVarStart is the byte offset of fields in the Neuron structure
// where the float32 named variables start.  All fields are float32 here
// so it is 0, but any non-float32 infrastructure variables added later
// must go at the start and this offset updated.
const NeuronVarStart = 0

// ctrlnet.Neuron holds all of the neuron (unit) level state variables.
// All variables accessible via the name registry must be float32 and in
// contiguous order starting at NeuronVarStart.
type Neuron struct {

	// excitatory current from the feed-forward pathway: Wff dot input
	Ge float32

	// feedback current from the shared controller vector: Wfb dot c
	Gfb float32

	// membrane potential -- leaky integration of Ge + Gfb over steps; hard
	// reset to 0 at spikes in spiking mode
	Vm float32

	// output activation: 0/1 spike indicator in spiking mode, logistic
	// sigmoid of Vm in rate mode
	Act float32

	// binary spike this step (0 or 1) -- in rate mode this is the Bernoulli
	// sample of Act drawn for plasticity, and is only set when STDP is on
	Spike float32

	// postsynaptic eligibility trace: exponentially decaying memory of
	// recent spikes, used by STDP learning.  Not cleared by Reset -- traces
	// persist across settling runs.
	Apost float32
}

var NeuronVars = []string{"Ge", "Gfb", "Vm", "Act", "Spike", "Apost"}

var NeuronVarsMap map[string]int

var NeuronVarProps = map[string]string{
	"Vm":  `min:"0"`,
	"Act": `min:"0" max:"1"`,
}

func init() {
	NeuronVarsMap = make(map[string]int, len(NeuronVars))
	for i, v := range NeuronVars {
		NeuronVarsMap[v] = i
	}
}

func (nrn *Neuron) VarNames() []string {
	return NeuronVars
}

// NeuronVarIdxByName returns the index of the variable in the Neuron, or error
func NeuronVarIdxByName(varNm string) (int, error) {
	i, ok := NeuronVarsMap[varNm]
	if !ok {
		return -1, fmt.Errorf("Neuron VarByName: variable name: %v not valid", varNm)
	}
	return i, nil
}

// VarByIndex returns variable using index (0 = first variable in NeuronVars list)
func (nrn *Neuron) VarByIndex(idx int) float32 {
	fv := (*float32)(unsafe.Pointer(uintptr(unsafe.Pointer(nrn)) + uintptr(NeuronVarStart+4*idx)))
	return *fv
}

// VarByName returns variable by name, or error
func (nrn *Neuron) VarByName(varNm string) (float32, error) {
	i, err := NeuronVarIdxByName(varNm)
	if err != nil {
		return 0, err
	}
	return nrn.VarByIndex(i), nil
}
