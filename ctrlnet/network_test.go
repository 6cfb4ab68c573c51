// Copyright (c) 2024, The SpikingControllerNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctrlnet

import (
	"testing"

	"github.com/emer/etable/etensor"
)

// mkTestNet returns a built network with learning off and identity
// feed-forward weights, for deterministic dynamics tests.
func mkTestNet(t *testing.T, widths []int, mode DynamicsModes) *Network {
	t.Helper()
	nt, err := NewNetwork("TestNet", widths, mode)
	if err != nil {
		t.Fatalf("NewNetwork: %v", err)
	}
	for _, ly := range nt.Layers {
		ly.FF.Learn.Learn = false
		ly.FF.SetWtsFunc(func(si, ri int) float32 {
			if si == ri {
				return 1
			}
			return 0
		})
	}
	return nt
}

func TestNewNetworkErrors(t *testing.T) {
	if _, err := NewNetwork("Bad", []int{4}, Rate); err == nil {
		t.Errorf("single width did not return error")
	}
	if _, err := NewNetwork("Bad", []int{4, 0, 2}, Rate); err == nil {
		t.Errorf("zero width did not return error")
	}
	if _, err := NewNetwork("Bad", []int{4, 2}, DynamicsModesN); err == nil {
		t.Errorf("invalid dynamics mode did not return error")
	}
}

func TestStepRate(t *testing.T) {
	nt := mkTestNet(t, []int{2, 2}, Rate)
	x := []float32{0.2, -0.4}

	out := nt.Step(x)
	CmprFloats(out, []float32{0.549834, 0.40131235}, "step 1 out", t)

	// vm <- 0.1*vm + x: [0.22, -0.44]
	out = nt.Step(x)
	CmprFloats(out, []float32{0.5547795, 0.3917411}, "step 2 out", t)
}

func TestStepChaining(t *testing.T) {
	nt := mkTestNet(t, []int{2, 2, 2}, Rate)
	x := []float32{0.5, -0.5}

	out := nt.Step(x)
	cor := []float32{SigFun(SigFun(0.5)), SigFun(SigFun(-0.5))}
	CmprFloats(out, cor, "chained out", t)

	hid := nt.Layers[0].Acts()
	CmprFloats(hid, []float32{SigFun(0.5), SigFun(-0.5)}, "hidden out", t)
}

func TestStepSpiking(t *testing.T) {
	nt := mkTestNet(t, []int{1, 1}, Spiking)
	x := []float32{0.95}

	// vm: 0.95 (no spike), 1.045 (spike, reset), 0.95, 1.045 ...
	cor := []float32{0, 1, 0, 1}
	for i, c := range cor {
		out := nt.Step(x)
		if out[0] != c {
			t.Errorf("spiking step %v: out %v, cor %v", i+1, out[0], c)
		}
	}
}

func TestControllerFeedback(t *testing.T) {
	nt := mkTestNet(t, []int{2, 2}, Rate)
	nt.C[0] = 0.3

	out := nt.Step([]float32{0, 0})
	CmprFloats(out, []float32{0.5744425, 0.5}, "out with control push", t)

	// Feedforward silences the controller but keeps the potentials:
	// vm decays from [0.3, 0] to [0.03, 0]
	out = nt.Feedforward([]float32{0, 0})
	CmprFloats(out, []float32{0.5074994, 0.5}, "open-loop out", t)
	if nt.C[0] != 0.3 {
		t.Errorf("Feedforward modified the control vector: %v", nt.C[0])
	}
}

// Feedforward from an already-stepped state must match Step with the
// control vector at zero: same integration, controller silenced.
func TestFeedforwardFromCurrentState(t *testing.T) {
	nta := mkTestNet(t, []int{2, 2}, Rate)
	ntb := mkTestNet(t, []int{2, 2}, Rate)
	x := []float32{0.5, -0.5}
	nta.Step(x)
	ntb.Step(x)

	so := nta.Step(x)
	soc := make([]float32, len(so))
	copy(soc, so)
	fo := ntb.Feedforward(x)
	CmprFloats(fo, soc, "step vs open-loop from stepped state", t)
	// vm after two steps is [0.55, -0.55]
	CmprFloats(fo, []float32{0.6341356, 0.36586443}, "second-step out", t)

	// a non-zero shared control vector is ignored, not cleared
	ntb.C[0] = 0.25
	so = nta.Step(x)
	copy(soc, so)
	fo = ntb.Feedforward(x)
	CmprFloats(fo, soc, "open-loop ignores control vector", t)
	if ntb.C[0] != 0.25 {
		t.Errorf("Feedforward modified the control vector: %v", ntb.C[0])
	}
}

func TestResetPreservesTraces(t *testing.T) {
	nt := mkTestNet(t, []int{2, 2}, Rate)
	ly := nt.Layers[0]
	ly.FF.Apre[0] = 0.7
	ly.Neurons[0].Apost = 0.3
	ly.Neurons[0].Vm = 0.5
	nt.C[0] = 1

	nt.Reset()
	if ly.FF.Apre[0] != 0.7 || ly.Neurons[0].Apost != 0.3 {
		t.Errorf("Reset cleared eligibility traces: Apre %v Apost %v", ly.FF.Apre[0], ly.Neurons[0].Apost)
	}
	if ly.Neurons[0].Vm != 0 {
		t.Errorf("Reset did not clear Vm: %v", ly.Neurons[0].Vm)
	}
	if nt.C[0] != 0 {
		t.Errorf("Reset did not clear control vector: %v", nt.C[0])
	}

	nt.InitTraces()
	if ly.FF.Apre[0] != 0 || ly.Neurons[0].Apost != 0 {
		t.Errorf("InitTraces left traces: Apre %v Apost %v", ly.FF.Apre[0], ly.Neurons[0].Apost)
	}
}

func TestFirstOutputMatchesFeedforward(t *testing.T) {
	nt := mkTestNet(t, []int{4, 3, 2}, Rate)
	for _, ly := range nt.Layers {
		ly.FF.SetWtsFunc(func(si, ri int) float32 {
			return 0.1 * float32(si+1) * float32(ri+1)
		})
	}
	x := []float32{1, 0, 1, 0}

	ff := nt.Feedforward(x)
	ffc := make([]float32, len(ff))
	copy(ffc, ff)

	first, niters, _ := nt.EvolveToConvergence(x, []float32{1, 0})
	CmprFloats(first, ffc, "first output vs open-loop", t)
	if niters < 1 {
		t.Errorf("settling ran %v iterations", niters)
	}
}

func TestConvergence(t *testing.T) {
	nt := mkTestNet(t, []int{1, 1}, Rate)
	nt.Ctrl.Precision = 0.05

	_, niters, conv := nt.EvolveToConvergence([]float32{0}, []float32{1})
	if !conv {
		t.Errorf("settling did not converge in %v iterations", niters)
	}
	if niters <= 1 || niters >= nt.Ctrl.MaxIters {
		t.Errorf("implausible settling length: %v", niters)
	}
}

func TestNonConvergence(t *testing.T) {
	nt := mkTestNet(t, []int{1, 1}, Rate)
	nt.Ctrl.MaxIters = 50
	nt.Ctrl.TargetRates.Set(0, 2) // control target above the reachable rate range

	_, niters, conv := nt.EvolveToConvergence([]float32{0}, []float32{1})
	if conv {
		t.Errorf("settling converged on unreachable target")
	}
	if niters != 50 {
		t.Errorf("non-converging settling ran %v iterations, cor: 50", niters)
	}
}

func TestApplyExt(t *testing.T) {
	nt := mkTestNet(t, []int{3, 2}, Rate)
	pat := etensor.NewFloat32([]int{3}, nil, nil)
	pat.Values = []float32{1, 0, 0.5}

	x, err := nt.ApplyExt(pat)
	if err != nil {
		t.Fatalf("ApplyExt: %v", err)
	}
	CmprFloats(x, []float32{1, 0, 0.5}, "applied input", t)

	bad := etensor.NewFloat32([]int{2}, nil, nil)
	if _, err := nt.ApplyExt(bad); err == nil {
		t.Errorf("mismatched input length did not return error")
	}
}
