// Package main provides a portable CLI tool for Exchange Online
// administration. It supports two actions: converting user mailboxes to
// shared mailboxes (with sign-in disable and optional password rotation),
// and scanning distribution groups for inactivity with CSV and HTML
// report artifacts.
//
// Authentication methods supported:
//   - Client Secret: Standard App Registration secret
//   - PFX Certificate: Certificate file with private key
//   - Windows Certificate Store: Thumbprint-based certificate retrieval (Windows only)
//
// All operations are automatically logged to action-specific CSV files in
// the system temp directory for audit and troubleshooting purposes.
//
// Example usage:
//
//	exoadmintool -tenantid "..." -clientid "..." -secret "..." -action scan -threshold 90
//
// Version information is embedded from the VERSION file at compile time using go:embed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"exoadmintool/internal/common/logger"
	"exoadmintool/internal/common/version"
)

func main() {
	// Handle -completion flag FIRST, before anything else runs
	// This ensures only completion script is output, all other flags are ignored
	for i, arg := range os.Args {
		if arg == "-completion" && i+1 < len(os.Args) {
			shellType := os.Args[i+1]
			if shellType == "bash" {
				fmt.Print(generateBashCompletion())
				os.Exit(0)
			} else if shellType == "powershell" {
				fmt.Print(generatePowerShellCompletion())
				os.Exit(0)
			} else {
				fmt.Fprintf(os.Stderr, "Error: Invalid completion shell type '%s'\n", shellType)
				fmt.Fprintf(os.Stderr, "Valid options: bash, powershell\n\n")
				fmt.Fprintf(os.Stderr, "Usage:\n")
				fmt.Fprintf(os.Stderr, "  %s -completion bash > exoadmintool-completion.bash\n", os.Args[0])
				fmt.Fprintf(os.Stderr, "  %s -completion powershell > exoadmintool-completion.ps1\n", os.Args[0])
				os.Exit(1)
			}
		}
	}

	if err := run(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

// setupSignalHandling configures graceful shutdown on interrupt signals
// Returns a cancellable context for use throughout the application
func setupSignalHandling() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	// Handle interrupt signals (Ctrl+C, SIGTERM)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\n\nReceived interrupt signal. Shutting down gracefully...")
		cancel()
	}()

	return ctx, cancel
}

// initializeServices sets up CSV audit logging and proxy configuration.
// If CSV logger initialization fails, a warning is logged but execution
// continues.
func initializeServices(config *Config) *logger.CSVLogger {
	csvLogger, err := logger.NewCSVLogger("exoadmintool", config.Action)
	if err != nil {
		log.Printf("Warning: Could not initialize CSV logging: %v", err)
		csvLogger = nil // Continue without logging
	}

	// Go's http package automatically uses HTTP_PROXY/HTTPS_PROXY environment variables
	if config.ProxyURL != "" {
		os.Setenv("HTTP_PROXY", config.ProxyURL)
		os.Setenv("HTTPS_PROXY", config.ProxyURL)
		fmt.Printf("Using proxy: %s\n", config.ProxyURL)
	}

	return csvLogger
}

// run is the main application entry point that orchestrates the tool's
// execution flow:
//  1. Sets up graceful shutdown handling for interrupt signals
//  2. Parses and validates configuration from flags and environment variables
//  3. Initializes services (CSV audit logging, proxy configuration)
//  4. Creates the credential and service clients
//  5. Executes the requested action (scan, convert)
func run() error {
	// 1. Setup signal handling for graceful shutdown
	ctx, cancel := setupSignalHandling()
	defer cancel()

	// 2. Parse command-line flags and apply environment variables
	config := parseAndConfigureFlags()

	// 3. Handle version flag early exit
	if config.ShowVersion {
		fmt.Printf("Exchange Online Admin Toolkit - Version %s\n", version.Get())
		return nil
	}

	// 4. Validate configuration
	if err := validateConfiguration(config); err != nil {
		flag.Usage()
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// 5. Setup structured logger
	slogger := logger.SetupLogger(config.VerboseMode, config.LogLevel)
	logger.LogInfo(slogger, "Application starting", "version", version.Get(), "action", config.Action)

	// 6. Initialize services (CSV audit logging and proxy)
	csvLogger := initializeServices(config)
	if csvLogger != nil {
		defer csvLogger.Close()
	}

	// 7. Setup credential shared by the Graph and admin REST clients
	cred, err := setupCredential(ctx, config, slogger)
	if err != nil {
		return err
	}

	// 8. Execute the requested action
	return executeAction(ctx, cred, config, slogger, csvLogger)
}
