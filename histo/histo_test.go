package histo

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestHisto(Te *testing.T) {
	rawdata := []float64{1, 6, 3, 2, 4, 5, 7, 6, 3.5, 3, 5, 1, 1, 0, 0, 5, 8, 1, 2, 3, 44, 3, 7, 3, 1, 3, 5, 32, 1}
	D := NewData([]float64{0, 1, 2, 3, 4, 8}, rawdata)
	expected := []float64{2, 6, 2, 7, 9}
	for i, v := range D.View() {
		if v != expected[i] {
			Te.Fatalf("Expected %v, got %v", expected, D.View())
		}
	}
	if D.Total() != 26 || rawdata[0] != 1 {
		Te.Errorf("Wrong total %d or modified input", D.Total())
	}
	D.AddData(0.5, 100, -1)
	if D.View()[0] != 3 || D.Total() != 27 {
		Te.Errorf("AddData went wrong: %v %d", D.View(), D.Total())
	}
	D.Normalize()
	if math.Abs(D.Sum()-1) > 1e-12 || !D.Normalized() {
		Te.Errorf("Normalized histogram sums %f", D.Sum())
	}
	D.UnNormalize()
	if math.Abs(D.View()[0]-3) > 1e-12 {
		Te.Errorf("Unnormalizing went wrong %v", D.View())
	}
	j, err := json.Marshal(D)
	if err != nil {
		Te.Fatal(err)
	}
	D2 := new(Data)
	if err := json.Unmarshal(j, D2); err != nil {
		Te.Fatal(err)
	}
	if D2.String() != D.String() {
		Te.Errorf("Histograms differ after JSON:\n%s\n%s", D, D2)
	}
	if err := json.Unmarshal([]byte(`{"dividers":[0,1],"histo":[1,2]}`), D2); err == nil {
		Te.Error("Ill-formed histogram accepted")
	}
}

func TestBars(Te *testing.T) {
	lengths := []float64{0.96, 0.96, 1.09, 1.09, 1.09, 1.53}
	D := NewData(Covering(lengths, 3), lengths)
	if D.Total() != len(lengths) {
		Te.Fatalf("The largest value was not counted: %v", D)
	}
	lines := strings.Split(strings.TrimSuffix(D.Bars(6), "\n"), "\n")
	if len(lines) != 3 || !strings.HasSuffix(lines[0], "|###### 5") || !strings.HasSuffix(lines[2], "|# 1") {
		Te.Errorf("Unexpected bars:\n%s", strings.Join(lines, "\n"))
	}
	if d := Uniform(0, 1, 4); len(d) != 5 || d[2] != 0.5 {
		Te.Errorf("Unexpected dividers %v", d)
	}
}
