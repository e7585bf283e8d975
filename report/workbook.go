package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/katalvlaran/antga/matrix"
	"github.com/katalvlaran/antga/tsp"
)

// Sheet names of the workbook written by WriteWorkbook.
const (
	SummarySheet = "Summary"
	TourSheet    = "Tour"
	HistorySheet = "History"

	// PheromoneSheet holds the final field, one row per city. It is only
	// written when the run produced one.
	PheromoneSheet = "Pheromones"
)

// SaveWorkbook writes r as an .xlsx file at path.
func SaveWorkbook(path string, r Run) error {
	fx, err := buildWorkbook(r)
	if err != nil {
		return err
	}
	defer fx.Close()

	if err = fx.SaveAs(path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}

	return nil
}

// WriteWorkbook streams r as .xlsx bytes to w.
func WriteWorkbook(w io.Writer, r Run) error {
	fx, err := buildWorkbook(r)
	if err != nil {
		return err
	}
	defer fx.Close()

	if err = fx.Write(w); err != nil {
		return fmt.Errorf("report: write workbook: %w", err)
	}

	return nil
}

// sheetWriter keeps the first excelize error so rows can be appended without
// checking every call.
type sheetWriter struct {
	fx   *excelize.File
	bold int
	err  error
}

func (s *sheetWriter) row(sheet string, n int, values ...any) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.fx.SetSheetRow(sheet, cell, &values)
}

func (s *sheetWriter) header(sheet string, names ...any) {
	s.row(sheet, 1, names...)
	if s.err != nil {
		return
	}
	last, err := excelize.CoordinatesToCellName(len(names), 1)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.fx.SetCellStyle(sheet, "A1", last, s.bold)
}

func (s *sheetWriter) sheet(name string) {
	if s.err != nil {
		return
	}
	_, s.err = s.fx.NewSheet(name)
}

// pheromones writes m with city indices along the first row and column.
func (s *sheetWriter) pheromones(m *matrix.Dense) {
	head := make([]any, 0, m.Cols()+1)
	head = append(head, "City")
	for j := 0; j < m.Cols(); j++ {
		head = append(head, j)
	}
	s.header(PheromoneSheet, head...)

	values := make([]any, 0, m.Cols()+1)
	m.Do(func(i, j int, v float64) bool {
		if j == 0 {
			values = append(values[:0], i)
		}
		values = append(values, v)
		if j == m.Cols()-1 {
			s.row(PheromoneSheet, i+2, values...)
		}

		return s.err == nil
	})
}

func buildWorkbook(r Run) (*excelize.File, error) {
	fx := excelize.NewFile()
	s := &sheetWriter{fx: fx}

	s.err = fx.SetSheetName(fx.GetSheetName(0), SummarySheet)
	s.sheet(TourSheet)
	s.sheet(HistorySheet)
	if s.err == nil {
		s.bold, s.err = fx.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	}

	s.header(SummarySheet, "Field", "Value")
	line := 2
	for _, kv := range summaryPairs(r) {
		s.row(SummarySheet, line, kv[0], kv[1])
		line++
	}

	s.header(TourSheet, "Position", "City")
	for i, c := range r.Result.BestTour {
		s.row(TourSheet, i+2, i+1, c)
	}

	s.header(HistorySheet, "Phase", "Outer", "Step", "Step Best", "Best", "GA Mean", "GA StdDev")
	for i, o := range r.Result.History {
		values := []any{o.Phase.String(), o.Outer, o.Step, o.RoundBest, o.Best}
		if o.Phase == tsp.PhaseGenetic {
			values = append(values, o.Mean, o.StdDev)
		}
		s.row(HistorySheet, i+2, values...)
	}

	if r.Result.Pheromones != nil {
		s.sheet(PheromoneSheet)
		s.pheromones(r.Result.Pheromones)
	}

	if s.err == nil {
		s.err = fx.SetColWidth(SummarySheet, "A", "B", 24)
	}
	if s.err != nil {
		_ = fx.Close()
		return nil, fmt.Errorf("report: build workbook: %w", s.err)
	}

	return fx, nil
}

// summaryPairs flattens the summary table for the Summary sheet. Best length
// stays numeric unless no tour was found.
func summaryPairs(r Run) [][2]any {
	o := r.Options
	var best any = r.Result.BestLength
	if r.Result.BestTour == nil {
		best = FormatLength(r.Result.BestLength)
	}

	return [][2]any{
		{"Run", r.ID},
		{"Instance", r.Instance},
		{"Cities", r.Cities},
		{"Algorithm", o.Algo.String()},
		{"Ants", o.Ants},
		{"Alpha", o.Alpha},
		{"Beta", o.Beta},
		{"Evaporation", o.Evaporation},
		{"Iterations", o.Iterations},
		{"AS Rounds", o.ASRounds},
		{"GA Generations", o.GAGenerations},
		{"Crossover Probability", o.CrossoverProb},
		{"Mutation Probability", o.MutationProb},
		{"Seed", o.Seed},
		{"Workers", o.Workers},
		{"Initial Pheromone", r.Result.InitialPheromone},
		{"Best Tour Length", best},
		{"Best Iteration", r.Result.BestIteration},
		{"Elapsed Seconds", r.Elapsed.Seconds()},
	}
}
