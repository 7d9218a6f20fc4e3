package analyses

import "testing"

func TestHeatmapColorBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0, "#b7e4c7"},
		{0.01, "#fff9db"},
		{0.15, "#ffe066"},
		{0.3, "#ffd166"},
		{0.45, "#ffb347"},
		{0.6, "#ff8800"},
		{0.75, "#ff704d"},
		{0.9, "#ff4d4d"},
		{1, "#ff4d4d"},
		{-0.3, "#b7e4c7"},
		{2, "#ff4d4d"},
	}
	for _, tc := range cases {
		if got := HeatmapColor(tc.score); got != tc.want {
			t.Fatalf("score %v: expected %s, got %s", tc.score, tc.want, got)
		}
	}
}
