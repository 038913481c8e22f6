package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/blockfit/ecs"
)

type GameResult struct {
	Index     int
	Score     int
	Hands     int
	Moves     int
	Rejected  int
	Lines     int
	Cleared   int
	BestTurn  int
	Ticks     int
	Truncated bool
}

type Report struct {
	// Configuration
	Games    int
	Strategy string
	Seed     uint64
	Deferred bool

	// Results
	Results    []GameResult
	Best       int
	Scores     IntStats
	Moves      IntStats
	TotalTicks uint64
	TotalTime  time.Duration
	UpdateTime Stats
	Systems    []ecs.SystemStats

	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

type IntStats struct {
	Min, Max, Total int
	Avg             float64
}

func newIntStats(values []int) IntStats {
	if len(values) == 0 {
		return IntStats{}
	}
	s := IntStats{Min: values[0], Max: values[0]}
	for _, v := range values {
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
		s.Total += v
	}
	s.Avg = float64(s.Total) / float64(len(values))
	return s
}

func (r *Report) Finalize() {
	scores := make([]int, len(r.Results))
	moves := make([]int, len(r.Results))
	for i, res := range r.Results {
		scores[i] = res.Score
		moves[i] = res.Moves
	}
	r.Scores = newIntStats(scores)
	r.Moves = newIntStats(moves)
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfit Autoplay Report

## Configuration
- **Games:** {{.Games}}
- **Strategy:** {{.Strategy}}
- **Seed:** {{.Seed}}
- **Deferred clears and refills:** {{.Deferred}}

## Games
| # | Score | Moves | Rejected | Lines | Cells | Best turn | Hands | Ticks |
|---|---|---|---|---|---|---|---|---|
{{- range .Results}}
| {{.Index}} | {{.Score}}{{if .Truncated}}*{{end}} | {{.Moves}} | {{.Rejected}} | {{.Lines}} | {{.Cleared}} | {{.BestTurn}} | {{.Hands}} | {{.Ticks}} |
{{- end}}

## Summary
- **Best score:** {{.Best}}
- **Score:** avg {{printf "%.1f" .Scores.Avg}}, min {{.Scores.Min}}, max {{.Scores.Max}}
- **Moves:** avg {{printf "%.1f" .Moves.Avg}}, min {{.Moves.Min}}, max {{.Moves.Max}}
{{- if truncated .Results}}
- Games marked * hit the tick limit before game over.
{{- end}}

## Performance
- **Total Ticks:** {{.TotalTicks}}
- **Total Time:** {{.TotalTime}}
- **Tick Time:** avg {{.UpdateTime.Avg}}, min {{.UpdateTime.Min}}, max {{.UpdateTime.Max}}
{{range .Systems}}
- {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{- end}}

## Memory Usage (MB)
- Heap Alloc:  {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end)
- Total Alloc: {{mb .MemStatsStart.TotalAlloc}} (start) -> {{mb .MemStatsEnd.TotalAlloc}} (end)
- Num GC:      {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"truncated": func(results []GameResult) bool {
			for _, r := range results {
				if r.Truncated {
					return true
				}
			}
			return false
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
