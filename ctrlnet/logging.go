// Copyright (c) 2024, The SpikingControllerNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctrlnet

import (
	"github.com/emer/etable/agg"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
)

// logging.go provides the standard etable log tables for training runs:
// one row per trial, aggregated into one row per epoch.

// ConfigTrlLog configures given table for recording one row per training
// trial.
func ConfigTrlLog(dt *etable.Table) {
	dt.SetMetaData("name", "TrlLog")
	dt.SetMetaData("desc", "one row per training trial")
	dt.SetMetaData("read-only", "true")
	sch := etable.Schema{
		{Name: "Epoch", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "Trial", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "TrialName", Type: etensor.STRING, CellShape: nil, DimNames: nil},
		{Name: "NIters", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "Converged", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "Dist", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "MSE", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "Err", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
	}
	dt.SetFromSchema(sch, 0)
}

// LogTrl adds a row to the trial log from the current counters and trial
// statistics.
func LogTrl(dt *etable.Table, tm *Time, trlNm string, ts *TrialStats) {
	row := dt.Rows
	dt.SetNumRows(row + 1)
	dt.SetCellFloat("Epoch", row, float64(tm.Epoch))
	dt.SetCellFloat("Trial", row, float64(tm.Trial))
	dt.SetCellString("TrialName", row, trlNm)
	dt.SetCellFloat("NIters", row, float64(ts.NIters))
	conv := 0.0
	if ts.Converged {
		conv = 1
	}
	dt.SetCellFloat("Converged", row, conv)
	dt.SetCellFloat("Dist", row, float64(ts.Dist))
	dt.SetCellFloat("MSE", row, float64(ts.MSE))
	dt.SetCellFloat("Err", row, float64(ts.Err))
}

// ConfigEpcLog configures given table for recording one row per epoch,
// aggregated over the trial log.
func ConfigEpcLog(dt *etable.Table) {
	dt.SetMetaData("name", "EpcLog")
	dt.SetMetaData("desc", "one row per training epoch, averaged over trials")
	dt.SetMetaData("read-only", "true")
	sch := etable.Schema{
		{Name: "Epoch", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "NIters", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "PctConv", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "Dist", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "MSE", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "PctErr", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
	}
	dt.SetFromSchema(sch, 0)
}

// LogEpc adds a row to the epoch log by aggregating the rows of the trial
// log for the given epoch.
func LogEpc(dt *etable.Table, epc int, trl *etable.Table) {
	ix := etable.NewIdxView(trl)
	ix.Filter(func(et *etable.Table, row int) bool {
		return int(et.CellFloat("Epoch", row)) == epc
	})
	if len(ix.Idxs) == 0 {
		return
	}
	row := dt.Rows
	dt.SetNumRows(row + 1)
	dt.SetCellFloat("Epoch", row, float64(epc))
	dt.SetCellFloat("NIters", row, agg.Mean(ix, "NIters")[0])
	dt.SetCellFloat("PctConv", row, agg.Mean(ix, "Converged")[0])
	dt.SetCellFloat("Dist", row, agg.Mean(ix, "Dist")[0])
	dt.SetCellFloat("MSE", row, agg.Mean(ix, "MSE")[0])
	dt.SetCellFloat("PctErr", row, agg.Mean(ix, "Err")[0])
}
