package histo

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Data is a histogram with fixed bin dividers. Bin i counts the values v with
// dividers[i] <= v < dividers[i+1]. Values outside the dividers are omitted.
type Data struct {
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

func (D *Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Normalized bool      `json:"normalized"`
		Total      int       `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
	}{
		Normalized: D.normalized,
		Total:      D.total,
		Dividers:   D.dividers,
		Histo:      D.histo,
	})
}

func (D *Data) UnmarshalJSON(b []byte) error {
	var a struct {
		Normalized bool      `json:"normalized"`
		Total      int       `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if len(a.Dividers) < 2 || len(a.Histo) != len(a.Dividers)-1 {
		return fmt.Errorf("histo: %d dividers and %d bins do not make a histogram", len(a.Dividers), len(a.Histo))
	}
	D.normalized = a.Normalized
	D.total = a.Total
	D.dividers = a.Dividers
	D.histo = a.Histo
	return nil
}

// Uniform returns the dividers of n bins of equal width between min and max.
func Uniform(min, max float64, n int) []float64 {
	if n < 1 {
		n = 1
	}
	ret := make([]float64, n+1)
	floats.Span(ret, min, max)
	return ret
}

// Covering returns the dividers of n equal bins that include every value in data,
// the largest one too. data must not be empty.
func Covering(data []float64, n int) []float64 {
	lo, hi := floats.Min(data), floats.Max(data)
	if hi == lo {
		lo, hi = lo-0.5, hi+0.5
	}
	return Uniform(lo, math.Nextafter(hi, math.Inf(1)), n)
}

// NewData returns a new histogram from the dividers and rawdata given.
// rawdata can be nil. In that case, an empty histogram is created.
// Neither slice is modified.
func NewData(dividers []float64, rawdata []float64) *Data {
	if len(dividers) < 2 {
		panic("histo.NewData: a histogram needs at least 2 dividers")
	}
	d := &Data{dividers: append([]float64(nil), dividers...)}
	d.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		d.ReHisto(d.dividers, rawdata)
	}
	return d
}

// AddData adds the given data point(s) to the histogram.
func (D *Data) AddData(point ...float64) {
	norma := D.normalized
	if norma {
		D.UnNormalize()
	}
	last := len(D.dividers) - 1
	for _, v := range point {
		//first divider larger than v
		j := sort.Search(len(D.dividers), func(i int) bool { return D.dividers[i] > v })
		if j == 0 || j > last {
			continue
		}
		D.histo[j-1]++
		D.total++
	}
	if norma {
		D.Normalize()
	}
}

// Normalized Returns true if the histogram is normalized
func (D *Data) Normalized() bool {
	return D.normalized
}

// Normalize normalizes the histogram so it sums to 1.
func (D *Data) Normalize() {
	D.normaunnorma(true)
}

// UnNormalize returns the histogram to counts.
func (D *Data) UnNormalize() {
	D.normaunnorma(false)
}

func (D *Data) normaunnorma(normalize bool) {
	if D.total <= 0 || D.normalized == normalize {
		return
	}
	n := float64(D.total)
	if normalize {
		n = 1 / n
	}
	D.normalized = normalize
	floats.Scale(n, D.histo)
}

// Total returns the number of values counted.
func (D *Data) Total() int {
	return D.total
}

// Dividers returns a copy of the bin dividers.
func (D *Data) Dividers() []float64 {
	return append([]float64(nil), D.dividers...)
}

// View returns the bins. The slice is not a copy.
func (D *Data) View() []float64 {
	return D.histo
}

func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

// ReHisto replaces the contents of the histogram with the values in rawdata,
// binned with dividers.
func (D *Data) ReHisto(dividers, rawdata []float64) {
	data := append([]float64(nil), rawdata...)
	sort.Float64s(data)
	//stat.Histogram panics instead of omitting the values that are off limits
	//so we remove them here before the call.
	maxi := sort.SearchFloat64s(data, dividers[len(dividers)-1])
	data = data[:maxi]
	mini := sort.SearchFloat64s(data, dividers[0])
	data = data[mini:]
	D.dividers = append(D.dividers[:0], dividers...)
	D.total = len(data)
	D.normalized = false
	D.histo = stat.Histogram(nil, D.dividers, data, nil)
}

// String prints a -hopefully- pretty string representation of
// the histogram, in 3 lines of text.
func (D *Data) String() string {
	ret := fmt.Sprintf("Normalized: %v, TotalData: %d\n", D.normalized, D.total)
	d := make([]string, 0, len(D.histo))
	h := make([]string, 0, len(D.histo))
	for i, v := range D.histo {
		d = append(d, fmt.Sprintf("%4.2f-%4.2f", D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return ret + fmt.Sprintf("%s\n%s", strings.Join(d, " "), strings.Join(h, " "))
}

// Bars draws the histogram as horizontal bars, one line per bin, the
// fullest bin being width characters long.
func (D *Data) Bars(width int) string {
	top := floats.Max(D.histo)
	var b strings.Builder
	for i, v := range D.histo {
		n := 0
		if top > 0 {
			n = int(math.Round(v / top * float64(width)))
		}
		fmt.Fprintf(&b, "%6.3f-%-6.3f |%s %g\n", D.dividers[i], D.dividers[i+1], strings.Repeat("#", n), v)
	}
	return b.String()
}
