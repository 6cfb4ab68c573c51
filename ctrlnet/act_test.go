// Copyright (c) 2024, The SpikingControllerNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctrlnet

import (
	"testing"

	"github.com/chewxy/math32"
)

// difTol is the tolerance for comparing computed to known-correct values
const difTol = float32(1.0e-6)

func CmprFloats(out, cor []float32, msg string, t *testing.T) {
	t.Helper()
	for i := range out {
		dif := math32.Abs(out[i] - cor[i])
		if dif > difTol {
			t.Errorf("%v err: out: %v, cor: %v, dif: %v\n", msg, out[i], cor[i], dif)
		}
	}
}

func TestVmFmG(t *testing.T) {
	ac := ActParams{}
	ac.Defaults()
	nrn := Neuron{}
	ac.InitActs(&nrn)
	nrn.Ge = 0.5
	nrn.Gfb = 0.2

	// vm <- vm - 0.9*vm + 0.7 each step
	cor := []float32{0.7, 0.77, 0.777, 0.7777}
	vms := make([]float32, len(cor))
	for i := range cor {
		ac.VmFmG(&nrn)
		vms[i] = nrn.Vm
	}
	CmprFloats(vms, cor, "VmFmG leak 0.9", t)
}

func TestSpikeFmVm(t *testing.T) {
	ac := ActParams{}
	ac.Defaults()
	nrn := Neuron{}

	// strictly greater than threshold: exactly at threshold does not spike
	nrn.Vm = 1.0
	ac.SpikeFmVm(&nrn)
	if nrn.Spike != 0 || nrn.Act != 0 {
		t.Errorf("at-threshold Vm spiked: Spike %v Act %v", nrn.Spike, nrn.Act)
	}
	if nrn.Vm != 1.0 {
		t.Errorf("non-spiking Vm was modified: %v", nrn.Vm)
	}

	nrn.Vm = 1.0001
	ac.SpikeFmVm(&nrn)
	if nrn.Spike != 1 || nrn.Act != 1 {
		t.Errorf("above-threshold Vm did not spike: Spike %v Act %v", nrn.Spike, nrn.Act)
	}
	if nrn.Vm != 0 {
		t.Errorf("spiking Vm not hard-reset to 0: %v", nrn.Vm)
	}
}

func TestRateFmVm(t *testing.T) {
	ac := ActParams{}
	ac.Defaults()
	ac.Mode = Rate
	nrn := Neuron{}

	vms := []float32{-1, -0.4, 0, 0.2, 0.5, 1}
	cor := []float32{0.26894143, 0.40131235, 0.5, 0.549834, 0.62245935, 0.7310586}
	acts := make([]float32, len(vms))
	for i, vm := range vms {
		nrn.Vm = vm
		ac.RateFmVm(&nrn)
		acts[i] = nrn.Act
	}
	CmprFloats(acts, cor, "RateFmVm sigmoid", t)

	if nrn.Vm != 1 {
		t.Errorf("rate dynamics modified Vm: %v", nrn.Vm)
	}
}

func TestDynamicsFun(t *testing.T) {
	ac := ActParams{}
	ac.Defaults()
	for _, md := range []DynamicsModes{Spiking, Rate} {
		ac.Mode = md
		fun, err := ac.DynamicsFun()
		if err != nil {
			t.Errorf("mode %v: unexpected error: %v", md, err)
		}
		if fun == nil {
			t.Errorf("mode %v: nil dynamics function", md)
		}
	}
	ac.Mode = DynamicsModesN
	if _, err := ac.DynamicsFun(); err == nil {
		t.Errorf("invalid mode did not return error")
	}
}
