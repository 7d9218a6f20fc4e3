package analyses

// HeatmapColor maps a suspicion score in [0,1] to a hex color for the
// transcript view, green through yellow to deep red.
func HeatmapColor(score float64) string {
	score = clampUnit(score)
	switch {
	case score == 0:
		return "#b7e4c7"
	case score < 0.15:
		return "#fff9db"
	case score < 0.3:
		return "#ffe066"
	case score < 0.45:
		return "#ffd166"
	case score < 0.6:
		return "#ffb347"
	case score < 0.75:
		return "#ff8800"
	case score < 0.9:
		return "#ff704d"
	default:
		return "#ff4d4d"
	}
}
