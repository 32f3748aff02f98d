// Package view turns controller state and backend replies into view models.
//
// View models carry no markup. The TUI styles them with lipgloss and the
// CLI renders them as json, table or yaml.
package view

import (
	"fmt"
	"math"
	"strconv"

	"github.com/weversonbarbieri/accountant-pdf-extract/types"
)

// sizeUnits are the base-1024 units used by FormatFileSize.
var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count with base-1024 units rounded to
// two decimals, trailing zeros trimmed: 0 → "0 Bytes", 1536 → "1.5 KB".
// Sizes beyond the GB range stay in GB.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	v := float64(bytes)
	i := 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}

	rounded := math.Round(v*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizeUnits[i]
}

// FormatProcessingTime converts a duration in seconds to minutes.
func FormatProcessingTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%.2f min", seconds/60)
}

// PreviewItem is one row of the staged-file preview list.
type PreviewItem struct {
	Index int    `json:"index" yaml:"index"`
	Name  string `json:"name" yaml:"name"`
	Size  string `json:"size" yaml:"size"`
}

// StagedPreview derives the preview list shown under the drop zone.
func StagedPreview(files []types.StagedFile) []PreviewItem {
	items := make([]PreviewItem, len(files))
	for i, f := range files {
		items[i] = PreviewItem{Index: i, Name: f.Name, Size: FormatFileSize(f.Size)}
	}
	return items
}
