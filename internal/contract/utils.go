package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/novetech/deskeval/schema"
)

// Color variables for console output.
var (
	ExcellentColor   = color.New(color.FgGreen, color.Bold) // top band
	VeryGoodColor    = color.New(color.FgCyan, color.Bold)
	GoodColor        = color.New(color.FgBlue)
	RegularColor     = color.New(color.FgYellow)
	MustImproveColor = color.New(color.FgRed, color.Bold)
)

// GetColorGradeLabel returns a colored grade label for console output (table).
// Plain output paths use the label string directly.
func GetColorGradeLabel(label schema.GradeLabel) string {
	text := string(label)

	switch label {
	case schema.ExcellentGrade:
		return ExcellentColor.Sprint(text)
	case schema.VeryGoodGrade:
		return VeryGoodColor.Sprint(text)
	case schema.GoodGrade:
		return GoodColor.Sprint(text)
	case schema.RegularGrade:
		return RegularColor.Sprint(text)
	case schema.MustImproveGrade:
		return MustImproveColor.Sprint(text)
	default: // "N/A"
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It returns os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for the store.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".deskeval.db"
	}
	return filepath.Join(homeDir, ".deskeval.db")
}

// TruncateLabel truncates a responsible label to a maximum width with an
// ellipsis suffix. Requires maxWidth > 3 so there is space for both the
// ellipsis and at least one character of content.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
