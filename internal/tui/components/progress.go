package components

import (
	"fmt"
	"strings"

	"github.com/colonyops/hard75/internal/core/styles"
)

// ProgressBar renders percent as a bar of width cells followed by the
// percentage.
func ProgressBar(percent, width int) string {
	percent = max(0, min(percent, 100))
	filled := percent * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return styles.ProgressStyle.Render(fmt.Sprintf("%s %3d%%", bar, percent))
}
