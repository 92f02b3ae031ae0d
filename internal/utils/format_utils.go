package utils

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatBytes renders a byte count in IEC units, e.g. "12 KiB".
func FormatBytes(n uint64) string {
	return humanize.IBytes(n)
}

// FormatPercent renders a signed percentage change with two decimals.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%+.2f%%", p)
}
