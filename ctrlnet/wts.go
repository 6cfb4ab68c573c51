// Copyright (c) 2024, The SpikingControllerNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctrlnet

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// wts.go provides JSON persistence of network weights, optionally
// gzipped (filenames ending in .gz).

// NetWts are the full weights of a network
type NetWts struct {
	Network string     `desc:"name of the network these weights came from"`
	Layers  []LayerWts `desc:"weights for each layer, in network order"`
}

// LayerWts are the weights of one layer's pathways
type LayerWts struct {
	Layer string    `desc:"name of the layer"`
	Paths []PathWts `desc:"weights for each receiving pathway"`
}

// PathWts are the weights of one pathway, receiver-major
type PathWts struct {
	From string      `desc:"sending side name of the pathway"`
	Wts  [][]float32 `desc:"weight matrix [recv][send] -- unconnected synapses are 0"`
}

// WtsTo copies this pathway's weights into given PathWts record.
func (pj *Path) WtsTo(pw *PathWts) {
	pw.From = pj.SendNm
	ns := pj.NSend()
	nr := pj.NRecv()
	pw.Wts = make([][]float32, nr)
	for ri := 0; ri < nr; ri++ {
		rw := make([]float32, ns)
		for si := 0; si < ns; si++ {
			rw[si] = pj.Syns[ri*ns+si].Wt
		}
		pw.Wts[ri] = rw
	}
}

// SetWts sets this pathway's weights from given PathWts record, with
// error if the shape does not match.
func (pj *Path) SetWts(pw *PathWts) error {
	ns := pj.NSend()
	nr := pj.NRecv()
	wns := 0
	if len(pw.Wts) > 0 {
		wns = len(pw.Wts[0])
	}
	if len(pw.Wts) != nr || wns != ns {
		return fmt.Errorf("ctrlnet.Path %v: weights shape %v x %v does not match %v x %v", pj.Name(), len(pw.Wts), wns, nr, ns)
	}
	for ri := 0; ri < nr; ri++ {
		for si := 0; si < ns; si++ {
			pj.Syns[ri*ns+si].Wt = pw.Wts[ri][si]
		}
	}
	return nil
}

// WriteWtsJSON writes network weights (and any other state that adapts
// with learning) to JSON-formatted output.
func (nt *Network) WriteWtsJSON(w io.Writer) error {
	nw := NetWts{Network: nt.Nm}
	nw.Layers = make([]LayerWts, len(nt.Layers))
	for li, ly := range nt.Layers {
		lw := &nw.Layers[li]
		lw.Layer = ly.Nm
		lw.Paths = make([]PathWts, 2)
		ly.FF.WtsTo(&lw.Paths[0])
		ly.FB.WtsTo(&lw.Paths[1])
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(&nw)
}

// ReadWtsJSON reads network weights from JSON-formatted input.  Weights
// are applied by layer name and pathway sending name, so the network must
// already be built with the same structure.
func (nt *Network) ReadWtsJSON(r io.Reader) error {
	var nw NetWts
	dec := json.NewDecoder(r)
	if err := dec.Decode(&nw); err != nil {
		return err
	}
	for li := range nw.Layers {
		lw := &nw.Layers[li]
		ly, err := nt.LayerByName(lw.Layer)
		if err != nil {
			return err
		}
		for pi := range lw.Paths {
			pw := &lw.Paths[pi]
			var pj *Path
			switch pw.From {
			case ly.FF.SendNm:
				pj = ly.FF
			case ly.FB.SendNm:
				pj = ly.FB
			default:
				return fmt.Errorf("ctrlnet.Layer %v: no pathway from: %v", ly.Nm, pw.From)
			}
			if err := pj.SetWts(pw); err != nil {
				return err
			}
		}
	}
	return nil
}

// SaveWtsJSON saves network weights in a JSON text format, for easy
// additional applications.  If the filename has a .gz extension, it will
// be gzipped.
func (nt *Network) SaveWtsJSON(filename string) error {
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	if strings.HasSuffix(filename, ".gz") {
		gzr := gzip.NewWriter(fp)
		err = nt.WriteWtsJSON(gzr)
		if cerr := gzr.Close(); err == nil {
			err = cerr
		}
		return err
	}
	bw := bufio.NewWriter(fp)
	if err = nt.WriteWtsJSON(bw); err != nil {
		return err
	}
	return bw.Flush()
}

// OpenWtsJSON opens network weights from a JSON text format, gzipped if
// the filename has a .gz extension.
func (nt *Network) OpenWtsJSON(filename string) error {
	fp, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	if strings.HasSuffix(filename, ".gz") {
		gzr, err := gzip.NewReader(fp)
		if err != nil {
			return err
		}
		defer gzr.Close()
		return nt.ReadWtsJSON(gzr)
	}
	return nt.ReadWtsJSON(bufio.NewReader(fp))
}
