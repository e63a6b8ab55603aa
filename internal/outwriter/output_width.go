package outwriter

import (
	"os"

	"golang.org/x/term"

	"github.com/broadsage/opensource-template/internal/contract"
)

// GetMaxTableTextWidth calculates the maximum width for rule ids in table output
// based on terminal width and table configuration.
func GetMaxTableTextWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank column plus borders, separators, and padding
	available := termWidth - 15
	if available < 15 {
		return 15
	}
	if available > 100 {
		return 100
	}
	return available
}
