package sim

import (
	"slices"
	"strings"
	"time"

	"github.com/kamstrup/intmap"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
)

// histogramBuckets is the target number of histogram rows.
const histogramBuckets = 10

// Bucket is one histogram row: scores from Low up to Low+BucketWidth-1.
type Bucket struct {
	Low   int
	Count int
}

// Report summarizes a batch of sessions.
type Report struct {
	Game     string
	Results  []Result
	Elapsed  time.Duration
	Sessions int
	Finished int // sessions that reached game over

	Mean      float64
	StdDev    float64
	Min, Max  int
	P50, P90  float64
	P99       float64
	MeanTicks float64

	BucketWidth int
	Histogram   []Bucket
}

// NewReport computes statistics over results.
func NewReport(game string, results []Result, elapsed time.Duration) Report {
	r := Report{
		Game:     game,
		Results:  results,
		Elapsed:  elapsed,
		Sessions: len(results),
	}
	if len(results) == 0 {
		return r
	}

	scores := make([]float64, len(results))
	ticks := make([]float64, len(results))
	r.Min, r.Max = results[0].Score, results[0].Score
	for i, res := range results {
		scores[i] = float64(res.Score)
		ticks[i] = float64(res.Ticks)
		r.Min = min(r.Min, res.Score)
		r.Max = max(r.Max, res.Score)
		if res.GameOver {
			r.Finished++
		}
	}

	r.Mean, r.StdDev = stat.MeanStdDev(scores, nil)
	if len(scores) < 2 {
		r.StdDev = 0
	}
	r.MeanTicks = stat.Mean(ticks, nil)

	slices.Sort(scores)
	r.P50 = stat.Quantile(0.50, stat.Empirical, scores, nil)
	r.P90 = stat.Quantile(0.90, stat.Empirical, scores, nil)
	r.P99 = stat.Quantile(0.99, stat.Empirical, scores, nil)

	r.BucketWidth, r.Histogram = histogram(results, r.Min, r.Max)
	return r
}

// histogram groups scores into about histogramBuckets equal-width buckets.
// Only non-empty buckets are returned, lowest first.
func histogram(results []Result, lo, hi int) (int, []Bucket) {
	width := max(1, (hi-lo+histogramBuckets-1)/histogramBuckets)

	counts := intmap.New[int, int](histogramBuckets)
	var keys []int
	for _, res := range results {
		k := (res.Score - lo) / width
		n, seen := counts.Get(k)
		if !seen {
			keys = append(keys, k)
		}
		counts.Put(k, n+1)
	}
	slices.Sort(keys)

	buckets := make([]Bucket, 0, len(keys))
	for _, k := range keys {
		n, _ := counts.Get(k)
		buckets = append(buckets, Bucket{Low: lo + k*width, Count: n})
	}
	return width, buckets
}

// String renders the report as two boxed tables with locale-grouped numbers.
func (r Report) String() string {
	p := message.NewPrinter(language.English)

	summary := [][2]string{
		{"Game", r.Game},
		{"Sessions", p.Sprintf("%d", r.Sessions)},
		{"Game over", p.Sprintf("%d", r.Finished)},
		{"Mean score", p.Sprintf("%.1f", r.Mean)},
		{"Std dev", p.Sprintf("%.1f", r.StdDev)},
		{"Min / Max", p.Sprintf("%d / %d", r.Min, r.Max)},
		{"P50 / P90 / P99", p.Sprintf("%.0f / %.0f / %.0f", r.P50, r.P90, r.P99)},
		{"Mean ticks", p.Sprintf("%.0f", r.MeanTicks)},
		{"Elapsed", r.Elapsed.Round(time.Millisecond).String()},
	}

	var b strings.Builder
	b.WriteString(table("Simulation", summary))

	if len(r.Histogram) > 0 {
		peak := 0
		for _, bk := range r.Histogram {
			peak = max(peak, bk.Count)
		}
		rows := make([][2]string, len(r.Histogram))
		for i, bk := range r.Histogram {
			bar := strings.Repeat("█", max(1, bk.Count*20/peak))
			rows[i] = [2]string{
				p.Sprintf("%d-%d", bk.Low, bk.Low+r.BucketWidth-1),
				p.Sprintf("%s %d", bar, bk.Count),
			}
		}
		b.WriteString(table("Score histogram", rows))
	}
	return b.String()
}

// table draws a two-column box sized by display width.
func table(title string, rows [][2]string) string {
	keyW, valW := 0, 0
	for _, row := range rows {
		keyW = max(keyW, runewidth.StringWidth(row[0]))
		valW = max(valW, runewidth.StringWidth(row[1]))
	}
	keyW += 2
	valW += 2
	inner := keyW + valW + 1
	if tw := runewidth.StringWidth(title) + 2; tw > inner {
		valW += tw - inner
		inner = tw
	}

	var b strings.Builder
	top := "+" + strings.Repeat("-", inner) + "+\n"
	divider := "+" + strings.Repeat("-", keyW) + "+" + strings.Repeat("-", valW) + "+\n"

	left := (inner - runewidth.StringWidth(title)) / 2
	b.WriteString(top)
	b.WriteString("|" + pad(title, left, inner-left-runewidth.StringWidth(title)) + "|\n")
	b.WriteString(divider)
	for _, row := range rows {
		b.WriteString("| " + row[0] + blank(keyW-2-runewidth.StringWidth(row[0])) + " ")
		b.WriteString("| " + row[1] + blank(valW-2-runewidth.StringWidth(row[1])) + " |\n")
	}
	b.WriteString(divider)
	return b.String()
}

func pad(s string, left, right int) string {
	return blank(left) + s + blank(right)
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
