// Package report renders a finished run as console tables and as an Excel
// workbook.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/katalvlaran/antga/tsp"
)

// MaxTourCities caps how many cities of the best tour the summary table prints.
const MaxTourCities = 32

// Run bundles everything the reports describe.
type Run struct {
	ID       string
	Instance string
	Cities   int
	Options  tsp.Options
	Result   tsp.Result
	Elapsed  time.Duration
}

// NewRunID returns a random run identifier.
func NewRunID() string { return uuid.NewString() }

// WriteSummary writes the configuration and outcome of r as one table.
func WriteSummary(w io.Writer, r Run) error {
	t := table.NewWriter()
	t.SetTitle("ANTGA RUN")
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"Run", r.ID},
		{"Instance", r.Instance},
		{"Cities", r.Cities},
	})
	t.AppendSeparator()
	t.AppendRows(optionRows(r.Options))
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Initial Pheromone", fmt.Sprintf("%g", r.Result.InitialPheromone)},
		{"Best Tour Length", FormatLength(r.Result.BestLength)},
		{"Best Iteration", r.Result.BestIteration},
		{"Best Tour", abbreviate(r.Result.BestTour, MaxTourCities)},
		{"Elapsed", r.Elapsed.Round(time.Millisecond)},
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 18, Align: text.AlignLeft},
		{Number: 2, WidthMin: 20, Align: text.AlignLeft},
	})

	return render(w, t)
}

// optionRows lists the knobs that influence the chosen loop only.
func optionRows(o tsp.Options) []table.Row {
	rows := []table.Row{
		{"Algorithm", o.Algo},
		{"Ants", o.Ants},
		{"Alpha / Beta", fmt.Sprintf("%g / %g", o.Alpha, o.Beta)},
		{"Evaporation", o.Evaporation},
		{"Iterations", o.Iterations},
	}
	if o.Algo == tsp.GAHybrid {
		rows = append(rows,
			table.Row{"AS Rounds", o.ASRounds},
			table.Row{"GA Generations", o.GAGenerations},
			table.Row{"Crossover / Mutation", fmt.Sprintf("%g / %g", o.CrossoverProb, o.MutationProb)},
		)
	}

	return append(rows,
		table.Row{"Seed", o.Seed},
		table.Row{"Workers", o.Workers},
	)
}

// WriteHistory writes one table row per observation.
func WriteHistory(w io.Writer, history []tsp.Observation) error {
	t := table.NewWriter()
	t.SetTitle("PROGRESS")
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "Phase", "Outer", "Step", "Step Best", "Best", "GA Mean", "GA StdDev"})
	for i, o := range history {
		mean, std := "", ""
		if o.Phase == tsp.PhaseGenetic {
			mean, std = FormatLength(o.Mean), FormatLength(o.StdDev)
		}
		t.AppendRow(table.Row{
			i + 1, o.Phase, o.Outer, o.Step,
			FormatLength(o.RoundBest), FormatLength(o.Best), mean, std,
		})
	}
	numeric := []int{1, 3, 4, 5, 6, 7, 8}
	cfg := make([]table.ColumnConfig, 0, len(numeric))
	for _, n := range numeric {
		cfg = append(cfg, table.ColumnConfig{Number: n, Align: text.AlignRight})
	}
	t.SetColumnConfigs(cfg)

	return render(w, t)
}

// FormatLength prints a tour length with six decimals; +Inf reads "none".
func FormatLength(x float64) string {
	if math.IsInf(x, 1) {
		return "none"
	}

	return strconv.FormatFloat(x, 'f', 6, 64)
}

// abbreviate prints at most limit cities of t followed by the number omitted.
func abbreviate(t tsp.Tour, limit int) string {
	if len(t) == 0 {
		return "-"
	}
	if len(t) <= limit {
		return t.String()
	}
	parts := make([]string, limit)
	for i := 0; i < limit; i++ {
		parts[i] = strconv.Itoa(t[i])
	}

	return fmt.Sprintf("[%s ... (+%d)]", strings.Join(parts, " "), len(t)-limit)
}

func render(w io.Writer, t table.Writer) error {
	_, err := io.WriteString(w, t.Render()+"\n")

	return err
}
