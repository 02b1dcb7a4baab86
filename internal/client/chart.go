package client

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/parsa-mehek/LinkingLink-client/internal/models"
)

const (
	chartPoint = '●'
	chartLine  = '·'
	chartEmpty = "Нет данных для графика"

	minChartWidth  = 8
	minChartHeight = 3
)

type chartSample struct {
	label string
	value int
}

// chartSeries упорядочивает записи по времени. Записи без разбираемой даты
// идут после датированных в исходном порядке.
func chartSeries(entries []models.ProgressEntry) []chartSample {
	type indexed struct {
		entry models.ProgressEntry
		index int
	}

	items := make([]indexed, len(entries))
	for i, e := range entries {
		items[i] = indexed{entry: e, index: i}
	}

	slices.SortStableFunc(items, func(a, b indexed) int {
		ta, okA := a.entry.Timestamp()
		tb, okB := b.entry.Timestamp()

		switch {
		case okA && okB:
			return ta.Compare(tb)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})

	samples := make([]chartSample, 0, len(items))
	for _, it := range items {
		label := "?"
		if ts, ok := it.entry.Timestamp(); ok {
			label = ts.Format("01-02")
		}

		samples = append(samples, chartSample{label: label, value: it.entry.MinutesStudied})
	}

	return samples
}

// RenderChart рисует линейный график минут по времени текстом заданного размера
func RenderChart(entries []models.ProgressEntry, width, height int) string {
	samples := chartSeries(entries)
	if len(samples) == 0 {
		return chartEmpty
	}

	height = max(height, minChartHeight)

	maxValue := 1
	for _, s := range samples {
		maxValue = max(maxValue, s.value)
	}

	axisWidth := len(fmt.Sprint(maxValue))
	plotWidth := max(width-axisWidth-2, minChartWidth, len(samples))

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", plotWidth))
	}

	column := func(i int) int {
		if len(samples) == 1 {
			return 0
		}

		return i * (plotWidth - 1) / (len(samples) - 1)
	}

	row := func(v float64) int {
		v = math.Max(0, v)
		r := int(math.Round(v * float64(height-1) / float64(maxValue)))

		return height - 1 - r
	}

	for i := 0; i+1 < len(samples); i++ {
		x0, x1 := column(i), column(i+1)
		v0, v1 := float64(samples[i].value), float64(samples[i+1].value)

		for x := x0; x <= x1; x++ {
			v := v0
			if x1 > x0 {
				v = v0 + (v1-v0)*float64(x-x0)/float64(x1-x0)
			}

			grid[row(v)][x] = chartLine
		}
	}

	for i, s := range samples {
		grid[row(float64(s.value))][column(i)] = chartPoint
	}

	var b strings.Builder

	for i, line := range grid {
		label := ""
		switch i {
		case 0:
			label = fmt.Sprint(maxValue)
		case height - 1:
			label = "0"
		}

		fmt.Fprintf(&b, "%*s ┤%s\n", axisWidth, label, strings.TrimRight(string(line), " "))
	}

	fmt.Fprintf(&b, "%*s └%s\n", axisWidth, "", strings.Repeat("─", plotWidth))

	first, last := samples[0].label, samples[len(samples)-1].label
	gap := max(plotWidth-len(first)-len(last), 1)
	if len(samples) == 1 {
		fmt.Fprintf(&b, "%*s  %s", axisWidth, "", first)
	} else {
		fmt.Fprintf(&b, "%*s  %s%s%s", axisWidth, "", first, strings.Repeat(" ", gap), last)
	}

	return b.String()
}
