// Copyright (c) 2024, The SpikingControllerNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package control

import "testing"

const difTol = float32(1.0e-7)

func TestIntegralLaw(t *testing.T) {
	cp := Params{}
	cp.Defaults()
	cp.Rate = 0.25

	c := []float32{0.5}
	out1 := []float32{0.2}
	tgt := []float32{1}
	cp.CFmOutput(out1, tgt, c)
	// c0 + r*e1
	cor := float32(0.5) + 0.25*(1-0.2)
	if dif := c[0] - cor; dif > difTol || dif < -difTol {
		t.Errorf("after e1: c = %v != %v", c[0], cor)
	}
	out2 := []float32{0.6}
	cp.CFmOutput(out2, tgt, c)
	// c0 + r*e1 + r*e2: linear superposition of sequential errors
	cor += 0.25 * (1 - 0.6)
	if dif := c[0] - cor; dif > difTol || dif < -difTol {
		t.Errorf("after e2: c = %v != %v", c[0], cor)
	}
}

func TestControlTarget(t *testing.T) {
	cp := Params{}
	cp.Defaults()
	cp.TargetRates.Set(0.2, 0.8)
	tgt := []float32{0, 1, 0}
	ct := make([]float32, 3)
	cp.ControlTarget(tgt, ct)
	cor := []float32{0.2, 0.8, 0.2}
	for i := range ct {
		if dif := ct[i] - cor[i]; dif > difTol || dif < -difTol {
			t.Errorf("ct[%d] = %v != %v", i, ct[i], cor[i])
		}
	}
}

func TestConverged(t *testing.T) {
	cp := Params{}
	cp.Defaults()
	cp.Precision = 0.25
	out := []float32{0.75, 0.25}
	tgt := []float32{1, 0}
	// mean abs diff is exactly 0.25: at threshold counts as converged
	if !cp.Converged(out, tgt) {
		t.Errorf("dist %v at precision %v should be converged", cp.Dist(out, tgt), cp.Precision)
	}
	out[0] = 0.5
	if cp.Converged(out, tgt) {
		t.Errorf("dist %v above precision %v should not be converged", cp.Dist(out, tgt), cp.Precision)
	}
}
