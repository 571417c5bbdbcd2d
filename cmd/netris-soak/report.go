package main

import (
	"io"
	"slices"
	"strings"
	"text/template"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
)

type Report struct {
	// Configuration
	Games    int
	Ticks    int
	Workers  int
	Seed     uint64
	Duration time.Duration

	// Results
	TotalTicks int
	Rounds     int
	Lines      int
	Score      Summary
	TickTime   Summary
	Violations []string
	Table      string
}

// Summary describes one sample set.
type Summary struct {
	Count int
	Mean  float64
	P50   float64
	P90   float64
	P99   float64
	Max   float64
}

func summarize(samples []float64) Summary {
	if len(samples) == 0 {
		return Summary{}
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	return Summary{
		Count: len(sorted),
		Mean:  stat.Mean(sorted, nil),
		P50:   stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:   stat.Quantile(0.9, stat.Empirical, sorted, nil),
		P99:   stat.Quantile(0.99, stat.Empirical, sorted, nil),
		Max:   sorted[len(sorted)-1],
	}
}

func newReport(results []gameResult, workers int, seed uint64, ticks int, elapsed time.Duration) *Report {
	r := &Report{
		Games:    len(results),
		Ticks:    ticks,
		Workers:  workers,
		Seed:     seed,
		Duration: elapsed.Round(time.Millisecond),
	}
	var scores, tickTimes []float64
	for _, res := range results {
		r.TotalTicks += res.Ticks
		r.Rounds += res.Rounds
		r.Lines += res.Lines
		scores = append(scores, res.Scores...)
		tickTimes = append(tickTimes, res.TickTimes...)
		if res.Violation != nil {
			r.Violations = append(r.Violations, res.Violation.Error())
		}
	}
	r.Score = summarize(scores)
	r.TickTime = summarize(tickTimes)
	r.Table = gameTable(results)
	return r
}

// gameTable lays out one row per game with columns padded to display width.
func gameTable(results []gameResult) string {
	p := message.NewPrinter(language.English)
	rows := [][]string{{"seed", "ticks", "rounds", "lines", "max level", "best score", "status"}}
	for _, res := range results {
		status := "ok"
		if res.Violation != nil {
			status = "FAILED"
		}
		best := 0.0
		if len(res.Scores) > 0 {
			best = slices.Max(res.Scores)
		}
		rows = append(rows, []string{
			p.Sprintf("%d", res.Seed),
			p.Sprintf("%d", res.Ticks),
			p.Sprintf("%d", res.Rounds),
			p.Sprintf("%d", res.Lines),
			p.Sprintf("%d", res.MaxLevel),
			p.Sprintf("%.0f", best),
			status,
		})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString("|")
		for i, cell := range row {
			sb.WriteString(" ")
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Netris Soak Report

## Configuration
- **Games:** {{num .Games}}
- **Ticks per Game:** {{num .Ticks}}
- **Workers:** {{.Workers}}
- **Base Seed:** {{.Seed}}

## Results
- **Total Ticks:** {{num .TotalTicks}}
- **Wall Time:** {{.Duration}}
- **Rounds Finished:** {{num .Rounds}}
- **Lines Cleared:** {{num .Lines}}
- **Score per Round:** mean {{float .Score.Mean}}, p50 {{float .Score.P50}}, p90 {{float .Score.P90}}, max {{float .Score.Max}}
- **Tick Time (µs):** mean {{float .TickTime.Mean}}, p50 {{float .TickTime.P50}}, p99 {{float .TickTime.P99}}, max {{float .TickTime.Max}}

## Games
{{.Table}}
{{if .Violations}}
## Invariant Violations
{{range .Violations}}- {{.}}
{{end}}{{else}}
No invariant violations.
{{end}}`

	p := message.NewPrinter(language.English)
	fm := template.FuncMap{
		"num": func(v int) string {
			return p.Sprintf("%d", v)
		},
		"float": func(v float64) string {
			return p.Sprintf("%.1f", v)
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
