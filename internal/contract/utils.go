package contract

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fatih/color"

	"github.com/broadsage/opensource-template/schema"
)

// Color variables for console output.
var (
	ErrorColor   = color.New(color.FgRed, color.Bold) // ErrorColor represents standard danger.
	WarningColor = color.New(color.FgYellow)          // WarningColor represents standard caution, not bold.
	NoteColor    = color.New(color.FgCyan)            // NoteColor represents informational signal.
)

// GetColorCount renders a severity count with the color of its level.
// Levels without a color are returned plain.
func GetColorCount(level string, count int) string {
	text := fmt.Sprint(count)
	switch level {
	case schema.LevelError:
		return ErrorColor.Sprint(text)
	case schema.LevelWarning:
		return WarningColor.Sprint(text)
	case schema.LevelNote:
		return NoteColor.Sprint(text)
	default:
		return text
	}
}

// WriteFileAtomic writes data to a temp file in the destination directory and
// renames it into place, so readers never observe a partial file.
func WriteFileAtomic(filePath string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filePath)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", filePath, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", filePath, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod %s: %w", filePath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filePath, err)
	}
	if err := os.Rename(tmpName, filePath); err != nil {
		return fmt.Errorf("rename into %s: %w", filePath, err)
	}
	return nil
}

// MatchesPathspec reports whether a slash-separated repository path matches
// any of the given pathspecs. Patterns with glob characters are matched
// against both the full path and the base name, mirroring git's handling of
// wildcard pathspecs. Other patterns match exact paths or directory prefixes.
func MatchesPathspec(filePath string, pathspecs []string) bool {
	base := path.Base(filePath)
	for _, spec := range pathspecs {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		if strings.ContainsAny(spec, "*?[") {
			pat := strings.ReplaceAll(spec, "**", "*")
			if ok, err := path.Match(pat, filePath); err == nil && ok {
				return true
			}
			if ok, err := path.Match(pat, base); err == nil && ok {
				return true
			}
			continue
		}
		if filePath == spec || strings.HasPrefix(filePath, strings.TrimSuffix(spec, "/")+"/") {
			return true
		}
	}
	return false
}

// UniqueLines returns the distinct non-blank lines of out, sorted and
// newline-joined, the same shape as piping through sort | uniq.
func UniqueLines(out []byte) []byte {
	var lines []string
	for line := range strings.SplitSeq(string(out), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	slices.Sort(lines)
	lines = slices.Compact(lines)
	return []byte(strings.Join(lines, "\n"))
}

// HeadLines returns the first n lines of out. A non-positive n returns out unchanged.
func HeadLines(out []byte, n int) []byte {
	if n <= 0 {
		return out
	}
	lines := bytes.SplitAfter(out, []byte("\n"))
	if len(lines) <= n {
		return out
	}
	return bytes.TrimRight(bytes.Join(lines[:n], nil), "\n")
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}

// LogFatalMessage prints msg as-is and exits the program.
func LogFatalMessage(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", msg, err)
}

// TruncateText shortens s to maxWidth runes with a trailing ellipsis.
// Requires maxWidth > 3 so at least one character of content survives.
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
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
