// Copyright (c) 2024, The SpikingControllerNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctrlnet

import "github.com/goki/ki/kit"

// PathTypes is the type of the pathway, which determines where its
// projected current goes on the receiving neurons and whether it learns.
type PathTypes int

//go:generate stringer -type=PathTypes

var KiT_PathTypes = kit.Enums.AddEnum(PathTypesN, kit.NotBitFlag, nil)

func (ev PathTypes) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *PathTypes) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The pathway types
const (
	// ForwardPath is the learnable feed-forward pathway from the previous
	// layer's output (or the network input) -- drives the Ge current.
	ForwardPath PathTypes = iota

	// CtrlPath is the fixed feedback pathway from the shared controller
	// vector -- identity-initialized, never trained -- drives the Gfb
	// current.
	CtrlPath

	PathTypesN
)
