package net

import "testing"

var correctRounds = []struct{ a, correct int }{
	{0, 0},
	{1, 1},
	{2, 2},
	{3, 4},
	{5, 4},
	{8, 8},
	{10, 8},
	{31, 32},
	{33, 32},
	{80, 64},
	{100, 128},
}

func TestRound(t *testing.T) {
	for _, c := range correctRounds {
		if b := round(c.a); b != c.correct {
			t.Errorf("expected rounding of %v to be %v, got %v", c.a, c.correct, b)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	if !DefaultConf(9, 9, 9*9).IsValid() {
		t.Errorf("expected default config to be valid")
	}
}
