package outwriter

import (
	"os"

	"github.com/novetech/deskeval/internal/contract"
	"golang.org/x/term"
)

// getMaxTableLabelWidth calculates the maximum width for responsible labels
// in table output based on terminal width and table configuration.
func getMaxTableLabelWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns with table formatting
	baseWidth := 30 // Rank + Tickets + Wait + Duration + Rating with borders/padding

	// Reserve generous space for table borders, separators, and padding
	baseWidth += 15

	// Calculate available space for the label
	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}
