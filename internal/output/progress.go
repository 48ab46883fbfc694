package output

import (
	"fmt"
	"strings"
)

// Section prints a styled section header.
func Section(title string) string {
	return StyleHeader.Render("━━ "+title+" ") + StyleMuted.Render(strings.Repeat("━", max(0, 40-len(title))))
}

// ScoreBar renders a horizontal bar for a score out of a maximum, colored
// by how full it is.
func ScoreBar(score, maxScore, width int) string {
	if maxScore <= 0 || width <= 0 {
		return ""
	}
	if score < 0 {
		score = 0
	}
	if score > maxScore {
		score = maxScore
	}

	filled := score * width / maxScore
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	ratio := float64(score) / float64(maxScore)
	switch {
	case ratio >= 0.7:
		return StyleSuccess.Render(bar)
	case ratio >= 0.4:
		return StyleWarning.Render(bar)
	default:
		return StyleError.Render(bar)
	}
}

// ScoreLabel renders "score/max" colored like ScoreBar.
func ScoreLabel(score, maxScore int) string {
	label := fmt.Sprintf("%d/%d", score, maxScore)
	if maxScore <= 0 {
		return label
	}
	ratio := float64(score) / float64(maxScore)
	switch {
	case ratio >= 0.7:
		return StyleSuccess.Render(label)
	case ratio >= 0.4:
		return StyleWarning.Render(label)
	default:
		return StyleError.Render(label)
	}
}

// TrendArrow renders the delta between a current and previous value.
func TrendArrow(current, previous int) string {
	delta := current - previous
	switch {
	case delta > 0:
		return StyleSuccess.Render(fmt.Sprintf("↑ +%d", delta))
	case delta < 0:
		return StyleError.Render(fmt.Sprintf("↓ %d", delta))
	default:
		return StyleMuted.Render("→ 0")
	}
}
