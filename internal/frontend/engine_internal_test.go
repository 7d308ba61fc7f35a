package frontend

import "testing"

func TestDemandSize(t *testing.T) {
	engine := &Engine{maxIdle: 100, reserveIdle: 5}

	cases := []struct {
		idle int
		want int
	}{
		{0, 0},
		{-3, 0},
		{1, 6},
		{10, 15},
		{94, 99},
		{95, 100},
		{98, 100},
		{1000, 100},
	}
	for _, tc := range cases {
		if got := engine.demandSize(tc.idle); got != tc.want {
			t.Errorf("demandSize(%d) = %d, want %d", tc.idle, got, tc.want)
		}
	}
}

func TestDemandSizeZeroReserve(t *testing.T) {
	engine := &Engine{maxIdle: 10, reserveIdle: 0}
	if got := engine.demandSize(4); got != 4 {
		t.Fatalf("demandSize(4) = %d, want 4", got)
	}
	if got := engine.demandSize(10); got != 10 {
		t.Fatalf("demandSize(10) = %d, want 10", got)
	}
}
