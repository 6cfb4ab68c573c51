// Copyright (c) 2024, The SpikingControllerNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package ctrlnet implements a closed-loop controlled network of
leaky-integrate-and-fire (or logistic rate) neurons.

Each Layer integrates current from a learnable feed-forward pathway (from
the previous layer's output, or the network input for the first layer) and
from a fixed identity-initialized feedback pathway that reads the shared
controller vector.  The Network composes layers in sequence for a single
timestep, and the settling loop (EvolveToConvergence) repeats timesteps
while the integral controller (package control) adjusts the shared
controller vector from the output error, until the output matches the
target within tolerance or the iteration bound is hit.

When STDP plasticity (package stdp) is enabled on a feed-forward pathway,
every settling step accumulates a local trace-based weight change into the
pathway's DWt buffers; WtFmDWt applies and drains them, which is the entire
optimizer step of a training trial (TrainTrial).
*/
package ctrlnet
