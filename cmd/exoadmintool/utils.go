package main

import (
	"fmt"
	"os"

	"exoadmintool/internal/common/security"
)

// logVerbose prints verbose output to stderr if verbose mode is enabled
func logVerbose(verbose bool, format string, args ...interface{}) {
	if verbose {
		prefix := "[VERBOSE] "
		fmt.Fprintf(os.Stderr, prefix+format+"\n", args...)
	}
}

// maskSecret masks a secret for display, showing only first and last 4 characters
func maskSecret(secret string) string {
	return security.MaskSecret(secret)
}

// ifEmpty returns defaultVal if s is empty, otherwise returns s
func ifEmpty(s, defaultVal string) string {
	if s == "" {
		return defaultVal
	}
	return s
}

// truncate truncates a string to maxLen characters, adding ellipsis if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
