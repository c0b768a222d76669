// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hit

import "testing"

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Event
	}{
		{
			name: "full",
			line: `{"severity":"hard","amplitude":2.50,"undos":1}`,
			want: Event{Severity: Hard, Amplitude: 2.5, Undos: 1},
		},
		{
			name: "defaults",
			line: `{"severity":"light"}`,
			want: Event{Severity: Light, Amplitude: 0, Undos: 1},
		},
		{
			name: "unknown fields ignored",
			line: `{"severity":"medium","amplitude":1.2,"undos":3,"axis":"z","seq":9}`,
			want: Event{Severity: Medium, Amplitude: 1.2, Undos: 3},
		},
		{
			name: "arbitrary severity",
			line: `{"severity":"cataclysmic","amplitude":9}`,
			want: Event{Severity: "cataclysmic", Amplitude: 9, Undos: 1},
		},
		{
			name: "explicit zero undos kept",
			line: `{"severity":"light","undos":0}`,
			want: Event{Severity: Light, Undos: 0},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, ok := Decode([]byte(test.line))
			if !ok {
				t.Fatalf("Decode(%s) rejected", test.line)
			}
			if got != test.want {
				t.Fatalf("Decode(%s) = %+v, want %+v", test.line, got, test.want)
			}
		})
	}
}

func TestDecodeDiscards(t *testing.T) {
	lines := []string{
		``,
		`not json`,
		`{"severity":`,
		`{"amplitude":2.0,"undos":5}`,
		`{"severity":null}`,
		`{"severity":""}`,
		`{"severity":5}`,
		`{"severity":"hard","amplitude":"loud"}`,
		`["hard"]`,
		`"hard"`,
		`null`,
	}
	for _, line := range lines {
		if event, ok := Decode([]byte(line)); ok {
			t.Errorf("Decode(%q) = %+v, want discard", line, event)
		}
	}
}

func TestEncodeMatchesDetectorFormat(t *testing.T) {
	got := string(Encode(Event{Severity: Medium, Amplitude: 1.23456, Undos: 3}))
	want := `{"severity":"medium","amplitude":1.2346,"undos":3}` + "\n"
	if got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}

	decoded, ok := Decode([]byte(got[:len(got)-1]))
	if !ok || decoded.Severity != Medium || decoded.Undos != 3 {
		t.Fatalf("Decode(Encode()) = %+v, %v", decoded, ok)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		excess float64
		want   string
		ok     bool
	}{
		{0.1, "", false},
		{0.3, "", false},
		{0.31, Light, true},
		{1.0, Light, true},
		{1.01, Medium, true},
		{2.0, Medium, true},
		{2.5, Hard, true},
	}
	for _, test := range tests {
		got, ok := Classify(test.excess)
		if got != test.want || ok != test.ok {
			t.Errorf("Classify(%v) = %q, %v; want %q, %v", test.excess, got, ok, test.want, test.ok)
		}
	}
}

func TestNew(t *testing.T) {
	event, ok := New(2.2)
	if !ok || event.Severity != Hard || event.Undos != 5 || event.Amplitude != 2.2 {
		t.Fatalf("New(2.2) = %+v, %v", event, ok)
	}
	if _, ok := New(0.2); ok {
		t.Fatal("New(0.2) produced an event below the light threshold")
	}
}
