// Copyright (c) 2024, The SpikingControllerNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctrlnet

import (
	"fmt"
	"math/rand"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/emer/emergent/params"
	"github.com/emer/emergent/prjn"
	"github.com/emer/etable/etensor"
	"github.com/mbalsells/SpikingControllerNet/control"
)

// ctrlnet.Network is a stack of controlled layers sharing one integral
// feedback controller.  Every layer receives the same control vector
// through a fixed identity feedback pathway, so the controller's push on
// the output units is felt at every depth of the stack simultaneously.
type Network struct {
	Nm       string         `desc:"overall name of network -- helps discriminate if there are multiple"`
	Mode     DynamicsModes  `desc:"output dynamics used by every layer -- fixed at construction"`
	Layers   []*Layer       `desc:"controlled layers, input-most first"`
	Ctrl     control.Params `view:"inline" desc:"integral feedback controller parameters, shared by all layers"`
	C        []float32      `view:"-" desc:"shared control vector, dimension of the output layer -- zeroed by Reset"`
	RndSeed  int64          `view:"-" desc:"random seed for the spike-sampling random source"`
	Rnd      *rand.Rand     `copy:"-" json:"-" xml:"-" view:"-" desc:"random source for Bernoulli spike sampling, shared by all layers"`

	ext      []float32 // input buffer filled by ApplyExt
	ctrlTarg []float32 // scratch for the scaled control target during settling
	zeroC    []float32 // all-zero control vector for open-loop stepping
}

// emer params.Styler interface
func (nt *Network) TypeName() string { return "Network" }
func (nt *Network) Name() string     { return nt.Nm }
func (nt *Network) Class() string    { return "" }

// NewNetwork configures and builds a controlled network with the given
// layer widths (input width first, output width last -- so len(widths)-1
// layers) and output dynamics mode.  Returns an error for fewer than two
// widths, a non-positive width, or an invalid mode.
func NewNetwork(name string, widths []int, mode DynamicsModes) (*Network, error) {
	if len(widths) < 2 {
		return nil, fmt.Errorf("ctrlnet.NewNetwork %v: need at least 2 widths (input, output), got %v", name, len(widths))
	}
	for i, w := range widths {
		if w <= 0 {
			return nil, fmt.Errorf("ctrlnet.NewNetwork %v: width %v at index %v not valid", name, w, i)
		}
	}
	nt := &Network{Nm: name, Mode: mode}
	nt.RndSeed = 1
	nt.Rnd = rand.New(rand.NewSource(nt.RndSeed))
	nt.Ctrl.Defaults()

	cdim := widths[len(widths)-1]
	nlay := len(widths) - 1
	nt.Layers = make([]*Layer, nlay)
	sendNm := "Input"
	for li := 0; li < nlay; li++ {
		ly := &Layer{Nm: fmt.Sprintf("Layer%d", li)}
		if li == nlay-1 {
			ly.Nm = "Output"
		}
		ly.SetShape([]int{widths[li+1]})
		ly.Act.Mode = mode
		ly.Rnd = nt.Rnd
		ly.FF = &Path{Recv: ly, Type: ForwardPath, SendNm: sendNm, Pat: prjn.NewFull()}
		ly.FF.SendShp.SetShape([]int{widths[li]}, nil, []string{"Units"})
		ly.FB = &Path{Recv: ly, Type: CtrlPath, SendNm: "Ctrl", Pat: prjn.NewOneToOne()}
		ly.FB.SendShp.SetShape([]int{cdim}, nil, []string{"Units"})
		ly.Defaults()
		nt.Layers[li] = ly
		sendNm = ly.Nm
	}
	nt.C = make([]float32, cdim)
	nt.ctrlTarg = make([]float32, cdim)
	nt.zeroC = make([]float32, cdim)

	if err := nt.Build(); err != nil {
		return nil, err
	}
	nt.InitWts()
	return nt, nil
}

// Build constructs all layers and their pathways.
func (nt *Network) Build() error {
	for _, ly := range nt.Layers {
		if err := ly.Build(); err != nil {
			return err
		}
	}
	return nil
}

// NLayers returns the number of layers in the network
func (nt *Network) NLayers() int { return len(nt.Layers) }

// Layer returns layer at given index -- will panic if index is out of range
func (nt *Network) Layer(idx int) *Layer { return nt.Layers[idx] }

// OutLay returns the output (last) layer
func (nt *Network) OutLay() *Layer { return nt.Layers[len(nt.Layers)-1] }

// LayerByName returns a layer by looking it up by name, with error if not found.
func (nt *Network) LayerByName(name string) (*Layer, error) {
	for _, ly := range nt.Layers {
		if ly.Nm == name {
			return ly, nil
		}
	}
	return nil, fmt.Errorf("ctrlnet.Network %v: layer named: %v not found", nt.Nm, name)
}

// NOut returns the number of output units, which is also the controller
// dimension.
func (nt *Network) NOut() int { return len(nt.C) }

// UnitVarNames returns a list of variable names available on the units
func (nt *Network) UnitVarNames() []string { return NeuronVars }

// SynVarNames returns the names of all the variables on the synapses
func (nt *Network) SynVarNames() []string { return SynapseVars }

// SetRndSeed reseeds the shared spike-sampling random source, for
// reproducible runs.
func (nt *Network) SetRndSeed(seed int64) {
	nt.RndSeed = seed
	nt.Rnd.Seed(seed)
}

//////////////////////////////////////////////////////////////////////////////////////
//  Init methods

// InitWts initializes synaptic weights and all learning state on all
// pathways, and resets the activation and controller state.
func (nt *Network) InitWts() {
	for _, ly := range nt.Layers {
		ly.InitWts()
	}
	nt.Reset()
}

// Reset zeroes the shared control vector and all per-step neuron state
// (currents, potentials, outputs).  Eligibility traces and weights are
// left intact: traces carry across settling runs.
func (nt *Network) Reset() {
	for i := range nt.C {
		nt.C[i] = 0
	}
	for _, ly := range nt.Layers {
		ly.InitActs()
	}
}

// InitTraces zeroes the STDP eligibility traces on all pathways.
func (nt *Network) InitTraces() {
	for _, ly := range nt.Layers {
		ly.InitTraces()
	}
}

// ApplyExt copies the given external input pattern into the network's
// input buffer and returns it, for feeding to Step or the settling
// methods.  Pattern length must match the input width.
func (nt *Network) ApplyExt(ext etensor.Tensor) ([]float32, error) {
	nin := nt.Layers[0].FF.NSend()
	if ext.Len() != nin {
		return nil, fmt.Errorf("ctrlnet.Network %v: external input length %v != input width %v", nt.Nm, ext.Len(), nin)
	}
	if nt.ext == nil {
		nt.ext = make([]float32, nin)
	}
	for i := 0; i < nin; i++ {
		nt.ext[i] = float32(ext.FloatVal1D(i))
	}
	return nt.ext, nil
}

//////////////////////////////////////////////////////////////////////////////////////
//  Step methods

// Step advances every layer one time step under the current control
// vector, feeding each layer's output forward to the next, and returns
// the output layer's activations.  Skips layers turned Off.
func (nt *Network) Step(x []float32) []float32 {
	acts := x
	for _, ly := range nt.Layers {
		if ly.Off {
			continue
		}
		ly.Step(acts, nt.C)
		acts = ly.Acts()
	}
	return acts
}

// Feedforward runs one step of the stack with a zero control vector in
// place of the shared one: the open-loop response from the current state.
// The shared control vector and the membrane potentials are not reset, so
// this is exactly Step with the controller silenced.
func (nt *Network) Feedforward(x []float32) []float32 {
	acts := x
	for _, ly := range nt.Layers {
		if ly.Off {
			continue
		}
		ly.Step(acts, nt.zeroC)
		acts = ly.Acts()
	}
	return acts
}

// EvolveToConvergence runs the closed settling loop on the given input and
// binary target pattern: the controller integrates the error between the
// scaled control target and the output after every step, until the output
// is within Precision of the control target or MaxIters is reached.
// Both the controller error and the convergence test use the same
// TargetRates-scaled control target derived from the binary pattern --
// with the default {0, 1} TargetRates that is the binary pattern itself.
// Membrane potentials and the control vector are reset first; eligibility
// traces are not.
//
// Returns a copy of the first (iteration 1) output -- the open-loop
// response used for the trial statistics -- along with the number of
// iterations run and whether settling converged.
func (nt *Network) EvolveToConvergence(x, target []float32) (first []float32, niters int, converged bool) {
	nt.Reset()
	nt.Ctrl.ControlTarget(target, nt.ctrlTarg)
	for itr := 1; itr <= nt.Ctrl.MaxIters; itr++ {
		out := nt.Step(x)
		if itr == 1 {
			first = make([]float32, len(out))
			copy(first, out)
		}
		niters = itr
		if nt.Ctrl.Converged(out, nt.ctrlTarg) {
			converged = true
			break
		}
		nt.Ctrl.CFmOutput(out, nt.ctrlTarg, nt.C)
	}
	return
}

//////////////////////////////////////////////////////////////////////////////////////
//  Learn methods

// WtFmDWt applies the accumulated STDP weight changes on all learnable
// pathways, draining the DWt buffers.
func (nt *Network) WtFmDWt() {
	for _, ly := range nt.Layers {
		ly.WtFmDWt()
	}
}

//////////////////////////////////////////////////////////////////////////////////////
//  Params methods

// ApplyParams applies given parameter style Sheet to layers and pathways
// in this network.  Calls UpdateParams to ensure derived parameters are
// all updated.  Returns true if any params were set, and error if any
// errors occurred.
func (nt *Network) ApplyParams(pars *params.Sheet, setMsg bool) (bool, error) {
	applied := false
	var rerr error
	for _, ly := range nt.Layers {
		app, err := ly.ApplyParams(pars, setMsg)
		if app {
			applied = true
		}
		if err != nil {
			rerr = err
		}
	}
	return applied, rerr
}

// ApplyParams applies given parameter style Sheet to this layer and its
// pathways.
func (ly *Layer) ApplyParams(pars *params.Sheet, setMsg bool) (bool, error) {
	applied := false
	var rerr error
	app, err := pars.Apply(ly, setMsg)
	if app {
		applied = true
	}
	if err != nil {
		rerr = err
	}
	for _, pj := range []*Path{ly.FF, ly.FB} {
		app, err = pars.Apply(pj, setMsg)
		if app {
			applied = true
		}
		if err != nil {
			rerr = err
		}
	}
	ly.UpdateParams()
	return applied, rerr
}

//////////////////////////////////////////////////////////////////////////////////////
//  Reports

// SizeReport returns a string reporting the size of the network in terms
// of neurons and synapses.
func (nt *Network) SizeReport() string {
	nneur := 0
	nsyn := 0
	memneur := 0
	memsyn := 0
	for _, ly := range nt.Layers {
		nn := len(ly.Neurons)
		nneur += nn
		memneur += nn * int(unsafe.Sizeof(Neuron{}))
		for _, pj := range []*Path{ly.FF, ly.FB} {
			ns := len(pj.Syns)
			nsyn += ns
			memsyn += ns * int(unsafe.Sizeof(Synapse{}))
		}
	}
	return fmt.Sprintf("%v has: %v neurons, %v mem, %v synapses, %v mem\n", nt.Nm,
		nneur, (datasize.ByteSize)(memneur).HumanReadable(),
		nsyn, (datasize.ByteSize)(memsyn).HumanReadable())
}
