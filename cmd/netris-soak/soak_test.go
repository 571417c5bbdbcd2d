package main

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/mattn/go-runewidth"
	"github.com/plus3/netris/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietBar(total int) *pb.ProgressBar {
	bar := pb.New(total)
	bar.SetWriter(io.Discard)
	return bar.Start()
}

func TestSoakKeepsInvariants(t *testing.T) {
	const ticks = 3000
	bar := quietBar(ticks)
	res := soak(7, ticks, board.DefaultTuning(), bar)
	bar.Finish()

	require.NoError(t, res.Violation)
	assert.Equal(t, ticks, res.Ticks)
	assert.Len(t, res.TickTimes, ticks)
	assert.Equal(t, int64(ticks), bar.Current())
	assert.GreaterOrEqual(t, res.MaxLevel, 1)
	assert.Len(t, res.Scores, res.Rounds)
}

func TestSoakIsDeterministic(t *testing.T) {
	a := soak(11, 1500, board.DefaultTuning(), quietBar(1500))
	b := soak(11, 1500, board.DefaultTuning(), quietBar(1500))
	assert.Equal(t, a.Rounds, b.Rounds)
	assert.Equal(t, a.Lines, b.Lines)
	assert.Equal(t, a.Scores, b.Scores)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{}, summarize(nil))

	s := summarize([]float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1})
	assert.Equal(t, 10, s.Count)
	assert.InDelta(t, 5.5, s.Mean, 1e-9)
	assert.Equal(t, 5.0, s.P50)
	assert.Equal(t, 9.0, s.P90)
	assert.Equal(t, 10.0, s.Max)
}

func TestGameTableAligns(t *testing.T) {
	table := gameTable([]gameResult{
		{Seed: 1, Ticks: 12000, Rounds: 2, Lines: 31, MaxLevel: 4, Scores: []float64{1200, 3100}},
		{Seed: 22, Ticks: 50, Violation: errors.New("boom")},
	})
	lines := strings.Split(strings.TrimSuffix(table, "\n"), "\n")
	require.Len(t, lines, 3)
	for _, l := range lines[1:] {
		assert.Equal(t, runewidth.StringWidth(lines[0]), runewidth.StringWidth(l))
	}
	assert.Contains(t, lines[1], "12,000")
	assert.Contains(t, lines[1], "3,100")
	assert.Contains(t, lines[2], "FAILED")
}

func TestReportGenerate(t *testing.T) {
	results := []gameResult{
		{Seed: 5, Ticks: 100, Rounds: 1, Lines: 4, Scores: []float64{400}, TickTimes: []float64{10, 20}},
		{Seed: 6, Ticks: 40, Violation: errors.New("seed 6 tick 40: field row 3 out of sync")},
	}
	r := newReport(results, 2, 5, 100, 1500*time.Millisecond)
	assert.Equal(t, 140, r.TotalTicks)
	assert.Equal(t, 1, r.Rounds)
	assert.Len(t, r.Violations, 1)

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "# Netris Soak Report")
	assert.Contains(t, out, "**Wall Time:** 1.5s")
	assert.Contains(t, out, "mean 400.0")
	assert.Contains(t, out, "- seed 6 tick 40")
	assert.NotContains(t, out, "No invariant violations.")
}
