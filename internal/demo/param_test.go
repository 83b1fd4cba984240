package demo

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/physdemo/internal/dynamo"
	"github.com/san-kum/physdemo/internal/figure"
)

func TestParamClamp(t *testing.T) {
	p := Param{Name: "N", Min: 0, Max: 10, Default: 3, Step: 1, Integer: true}
	tests := []struct {
		in, want float64
	}{
		{-4, 0},
		{2.4, 2},
		{2.6, 3},
		{42, 10},
		{math.NaN(), 3},
	}
	for _, tt := range tests {
		if got := p.Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParamStepped(t *testing.T) {
	lin := Param{Min: 0, Max: 1, Step: 0.1}
	if got := lin.Stepped(0.5, 2); math.Abs(got-0.7) > 1e-12 {
		t.Errorf("linear step = %v, want 0.7", got)
	}
	if got := lin.Stepped(0.95, 3); got != 1 {
		t.Errorf("step past max = %v, want 1", got)
	}

	log := Param{Min: 0.1, Max: 10000, Step: 1, Log: true}
	if got := log.Stepped(10, 2); math.Abs(got-1000) > 1e-9 {
		t.Errorf("log step = %v, want 1000", got)
	}
	if got := log.Stepped(10, -5); got != 0.1 {
		t.Errorf("log step below min = %v, want 0.1", got)
	}
}

func TestResolve(t *testing.T) {
	params := []Param{
		{Name: "a", Min: 0, Max: 10, Default: 1, Step: 1},
		{Name: "b", Min: 0, Max: 1, Default: 0.5, Step: 0.1},
	}
	v, err := Resolve(params, Values{"a": 4}, Values{"a": 6, "b": 7})
	if err != nil {
		t.Fatal(err)
	}
	if v["a"] != 6 || v["b"] != 1 {
		t.Errorf("Resolve = %v, want a=6 b=1", v)
	}

	_, err = Resolve(params, Values{"c": 1})
	if err == nil || !strings.Contains(err.Error(), "unknown param: c") {
		t.Errorf("expected unknown param error, got %v", err)
	}
}

func TestParseAssignments(t *testing.T) {
	v, err := ParseAssignments([]string{"T=5800", " R = 0.9"})
	if err != nil {
		t.Fatal(err)
	}
	if v["T"] != 5800 || v["R"] != 0.9 {
		t.Errorf("ParseAssignments = %v", v)
	}

	for _, bad := range []string{"T", "=3", "T=hot"} {
		if _, err := ParseAssignments([]string{bad}); err == nil {
			t.Errorf("ParseAssignments(%q) should fail", bad)
		}
	}
}

func TestFrameWrapsTime(t *testing.T) {
	d := &WavePacket{}
	v := Defaults(d.Params())
	next := d.Frame(v)
	if math.Abs(next["t"]-wavePacketFrame) > 1e-12 {
		t.Errorf("t after one frame = %v", next["t"])
	}
	if v["t"] != 0 {
		t.Error("Frame must not modify its input")
	}

	v["t"] = 50
	if got := d.Frame(v)["t"]; got != 0 {
		t.Errorf("t past the end = %v, want 0", got)
	}
}

func TestEvaluateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Evaluate(ctx, &Lorentz{}, nil)
	if !errors.Is(err, dynamo.ErrContextCanceled) {
		t.Errorf("expected ErrContextCanceled, got %v", err)
	}
}

func TestEvaluateRejectsUnknownParam(t *testing.T) {
	_, err := Evaluate(context.Background(), &Lorentz{}, Values{"gamma": 2})
	if err == nil || !strings.HasPrefix(err.Error(), "lorentz: ") {
		t.Errorf("expected error prefixed with the demo name, got %v", err)
	}
}

func TestFilterAttenuatesHighTone(t *testing.T) {
	d := &Filter{}
	fig, err := Evaluate(context.Background(), d, Values{"N": 8192})
	if err != nil {
		t.Fatal(err)
	}
	sig := fig.Panels[0]
	in, out := sig.Series[0].Y, sig.Series[1].Y
	var peakIn, peakOut float64
	for i := range in {
		peakIn = math.Max(peakIn, math.Abs(in[i]))
		peakOut = math.Max(peakOut, math.Abs(out[i]))
	}
	if peakOut >= peakIn {
		t.Errorf("filtered peak %v should be below input peak %v", peakOut, peakIn)
	}

	spectrum, bode := fig.Panels[1], fig.Panels[2]
	if !spectrum.LogX || spectrum.LogY {
		t.Error("spectrum should be semi-log in frequency")
	}
	if !bode.LogX || !bode.LogY {
		t.Error("transfer function should be log-log")
	}
	gain := bode.Series[0].Y
	if g := gain[len(gain)-1]; math.Abs(g-0.01) > 1e-4 {
		t.Errorf("|H| two decades above fc = %g, want about 0.01", g)
	}
}

func simulatedField(t *testing.T, fig *figure.Figure) []float64 {
	t.Helper()
	for _, s := range fig.Panels[0].Series {
		if s.Name == "simulated" {
			return s.Y
		}
	}
	t.Fatal("no simulated series")
	return nil
}

func TestKleinGordonFramesMatchFreshRun(t *testing.T) {
	ctx := context.Background()
	d := &KleinGordon{}
	v := Values{"t": 0}
	for i := 0; i < 20; i++ {
		v = d.Frame(v)
	}
	var last *figure.Figure
	for _, at := range []float64{0.05, 0.1, v["t"]} {
		fig, err := Evaluate(ctx, d, Values{"t": at})
		if err != nil {
			t.Fatal(err)
		}
		last = fig
	}
	fresh, err := Evaluate(ctx, &KleinGordon{}, Values{"t": v["t"]})
	if err != nil {
		t.Fatal(err)
	}
	got, want := simulatedField(t, last), simulatedField(t, fresh)
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("field[%d] = %g after frames, %g from rest", i, got[i], want[i])
		}
	}
}

func TestNMRBlochMatchesClosedForm(t *testing.T) {
	fig, err := Evaluate(context.Background(), &NMR{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	mz := fig.Panels[0]
	var closed, bloch []float64
	for _, s := range mz.Series {
		switch s.Name {
		case "Mz":
			closed = s.Y
		case "Mz (Bloch)":
			bloch = s.Y
		}
	}
	if len(closed) == 0 || len(bloch) == 0 {
		t.Fatal("missing Mz series")
	}
	// the adaptive run samples other times, but both end on the window
	got, want := bloch[len(bloch)-1], closed[len(closed)-1]
	if math.Abs(got-want) > 1e-3 {
		t.Errorf("Mz at the end of the window: Bloch %v, closed form %v", got, want)
	}
}
