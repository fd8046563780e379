package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Status label constants.
const (
	UpdateValue  = "Update"  // an update is pending
	CurrentValue = "Current" // nothing pending
	TrackedValue = "Tracked" // under version control
	PlainValue   = "Plain"   // not under version control
)

// Color variables for console output.
var (
	UpdateColor  = color.New(color.FgYellow, color.Bold) // UpdateColor calls attention to pending work.
	CurrentColor = color.New(color.FgGreen)              // CurrentColor marks an up-to-date category.
	TrackedColor = color.New(color.FgCyan, color.Bold)   // TrackedColor marks a VCS checkout.
	PlainColor   = color.New(color.FgWhite)              // PlainColor marks a plain install.
)

// GetPlainCountLabel returns a plain text label for an update count.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainCountLabel(count int) string {
	if count > 0 {
		return UpdateValue
	}
	return CurrentValue
}

// GetColorCountLabel returns a colored label for an update count.
func GetColorCountLabel(count int) string {
	text := GetPlainCountLabel(count)
	if text == UpdateValue {
		return UpdateColor.Sprint(text)
	}
	return CurrentColor.Sprint(text)
}

// GetPlainVCSLabel returns a plain text label for VCS status.
func GetPlainVCSLabel(isVCS bool) string {
	if isVCS {
		return TrackedValue
	}
	return PlainValue
}

// GetColorVCSLabel returns a colored label for VCS status.
func GetColorVCSLabel(isVCS bool) string {
	text := GetPlainVCSLabel(isVCS)
	if isVCS {
		return TrackedColor.Sprint(text)
	}
	return PlainColor.Sprint(text)
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
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

// GetStoreDBFilePath returns the path to the SQLite DB file for option and transient storage.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".siteagent_store.db"
	}
	return filepath.Join(homeDir, ".siteagent_store.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for snapshot history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".siteagent_history.db"
	}
	return filepath.Join(homeDir, ".siteagent_history.db")
}

// GetLevelDBPath returns the directory for the embedded LevelDB store.
func GetLevelDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".siteagent_leveldb"
	}
	return filepath.Join(homeDir, ".siteagent_leveldb")
}

// TruncateValue truncates a value to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 so there is room for the "..." prefix and at least one character.
func TruncateValue(value string, maxWidth int) string {
	runes := []rune(value)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return value
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
