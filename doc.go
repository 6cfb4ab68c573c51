// Copyright (c) 2024, The SpikingControllerNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package spikingcontrollernet is the overall repository for a closed-loop
spiking / rate-coded neural network driven by an integral feedback controller,
with optional STDP-style local plasticity, implemented in the Go language
(golang).

This top-level of the repository has no functional code -- everything is
organized into the following sub-repositories:

* ctrlnet: the core implementation: leaky-integrate-and-fire (or logistic
rate) neuron dynamics, controlled layers with learnable feed-forward and
fixed feedback pathways, the controlled network with its shared controller
vector, the settling (convergence) loop, and the training-trial driver.

* control: the integral feedback controller parameters and control law,
which drive the network output toward a control target during settling.

* stdp: spike-timing-dependent plasticity eligibility trace parameters and
the local weight-change rule accumulated during settling.

* examples: these compile into runnable programs -- examples/ctrl trains a
small controlled network on random binary patterns and logs per-trial and
per-epoch metrics.
*/
package spikingcontrollernet
