package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"exoadmintool/internal/common/validation"
	"exoadmintool/internal/common/version"
)

// Action constants
const (
	ActionScan    = "scan"
	ActionConvert = "convert"
)

// Config holds all application configuration including command-line flags,
// environment variables, and runtime state.
type Config struct {
	// Core configuration
	ShowVersion  bool   // Display version information and exit
	TenantID     string // Entra ID Tenant ID (GUID format)
	ClientID     string // Application (Client) ID (GUID format)
	Organization string // Tenant organization for the admin endpoint (defaults to tenant ID)
	Action       string // Operation to perform (scan, convert)

	// Authentication configuration (mutually exclusive)
	Secret     string // Client Secret for authentication
	PfxPath    string // Path to .pfx certificate file
	PfxPass    string // Password for .pfx certificate file
	Thumbprint string // SHA1 thumbprint of certificate in Windows Certificate Store

	// Convert configuration
	Mailboxes       stringSlice // Mailbox addresses to convert to shared
	RotatePasswords bool        // Rotate account passwords after sign-in disable

	// Scan configuration
	ThresholdDays int         // Inactivity threshold in days
	WindowDays    int         // Message trace lookback window in days
	NameFilter    string      // Display name filter (substring or wildcard pattern)
	Domains       stringSlice // Restrict scan to these accepted domains
	CSVOut        string      // Path of the tabular report artifact
	HTMLOut       string      // Path of the narrative report artifact

	// Network configuration
	ProxyURL string  // HTTP/HTTPS proxy URL (e.g., http://proxy.example.com:8080)
	RPS      float64 // Admin REST requests per second

	// Runtime configuration
	VerboseMode bool   // Enable verbose diagnostic output (maps to DEBUG log level)
	LogLevel    string // Logging level: DEBUG, INFO, WARN, ERROR (default: INFO)
}

// parseAndConfigureFlags defines all command-line flags, parses them,
// applies environment variables, and returns a populated Config struct with
// all configuration values merged from defaults, environment variables, and
// command-line arguments (in that order of precedence).
func parseAndConfigureFlags() *Config {
	// Customize help output
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Exchange Online Admin Toolkit - Version %s\n\n", version.Get())
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(flag.CommandLine.Output(), "\nEnvironment Variables:\n")
		fmt.Fprintf(flag.CommandLine.Output(), "  All flags can be set via environment variables with EXOADMIN prefix\n")
		fmt.Fprintf(flag.CommandLine.Output(), "  Example: EXOADMINTENANTID, EXOADMINCLIENTID, EXOADMINSECRET\n")
		fmt.Fprintf(flag.CommandLine.Output(), "  Command-line flags take precedence over environment variables\n\n")
		fmt.Fprintf(flag.CommandLine.Output(), "Examples:\n")
		fmt.Fprintf(flag.CommandLine.Output(), "  %s -tenantid \"...\" -clientid \"...\" -secret \"...\" -action scan -threshold 90\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "  %s -tenantid \"...\" -clientid \"...\" -pfx cert.pfx -action convert -mailboxes \"a@example.com,b@example.com\"\n\n", os.Args[0])
	}

	// Define Command Line Parameters
	showVersion := flag.Bool("version", false, "Show version information")
	tenantID := flag.String("tenantid", "", "The Entra ID Tenant ID (env: EXOADMINTENANTID)")
	clientID := flag.String("clientid", "", "The Application (Client) ID (env: EXOADMINCLIENTID)")
	organization := flag.String("organization", "", "Tenant organization for the admin endpoint, e.g. contoso.onmicrosoft.com; defaults to the tenant ID (env: EXOADMINORGANIZATION)")
	secret := flag.String("secret", "", "The Client Secret (env: EXOADMINSECRET)")
	pfxPath := flag.String("pfx", "", "Path to the .pfx certificate file (env: EXOADMINPFX)")
	pfxPass := flag.String("pfxpass", "", "Password for the .pfx file (env: EXOADMINPFXPASS)")
	thumbprint := flag.String("thumbprint", "", "Thumbprint of the certificate in the CurrentUser\\My store (env: EXOADMINTHUMBPRINT)")

	// Convert flags
	var mailboxes stringSlice
	flag.Var(&mailboxes, "mailboxes", "Comma-separated list of mailbox addresses to convert to shared (env: EXOADMINMAILBOXES)")
	rotatePasswords := flag.Bool("rotatepasswords", false, "Rotate account passwords after disabling sign-in (env: EXOADMINROTATEPASSWORDS)")

	// Scan flags
	threshold := flag.Int("threshold", 90, "Inactivity threshold in days (env: EXOADMINTHRESHOLD)")
	window := flag.Int("window", 10, "Message trace lookback window in days (env: EXOADMINWINDOW)")
	nameFilter := flag.String("namefilter", "", "Restrict scan to groups whose display name matches a substring or wildcard pattern (env: EXOADMINNAMEFILTER)")
	var domains stringSlice
	flag.Var(&domains, "domains", "Comma-separated list of accepted domains to restrict the scan to (env: EXOADMINDOMAINS)")
	csvOut := flag.String("csvout", "inactive_distribution_groups.csv", "Path of the tabular (CSV) report artifact (env: EXOADMINCSVOUT)")
	htmlOut := flag.String("htmlout", "inactive_distribution_groups.html", "Path of the narrative (HTML) report artifact (env: EXOADMINHTMLOUT)")

	// Proxy configuration
	proxyURL := flag.String("proxy", "", "HTTP/HTTPS proxy URL (e.g., http://proxy.example.com:8080) (env: EXOADMINPROXY)")

	// Request pacing
	rps := flag.Float64("rps", 4, "Admin REST requests per second, 0 disables pacing (env: EXOADMINRPS)")

	// Verbose mode
	verbose := flag.Bool("verbose", false, "Enable verbose output (shows configuration, tokens, API details)")

	// Log level
	logLevel := flag.String("loglevel", "INFO", "Logging level: DEBUG, INFO, WARN, ERROR (default: INFO)")

	action := flag.String("action", ActionScan, "Action to perform: scan, convert (env: EXOADMINACTION)")
	flag.Parse()

	// Apply environment variables if flags not set via command line
	applyEnvVars(map[string]*string{
		"EXOADMINTENANTID":     tenantID,
		"EXOADMINCLIENTID":     clientID,
		"EXOADMINORGANIZATION": organization,
		"EXOADMINSECRET":       secret,
		"EXOADMINPFX":          pfxPath,
		"EXOADMINPFXPASS":      pfxPass,
		"EXOADMINTHUMBPRINT":   thumbprint,
		"EXOADMINNAMEFILTER":   nameFilter,
		"EXOADMINCSVOUT":       csvOut,
		"EXOADMINHTMLOUT":      htmlOut,
		"EXOADMINACTION":       action,
		"EXOADMINPROXY":        proxyURL,
		"EXOADMINLOGLEVEL":     logLevel,
	})

	// Apply environment variables for stringSlice flags
	applyEnvVarsToSlice("mailboxes", &mailboxes, "EXOADMINMAILBOXES")
	applyEnvVarsToSlice("domains", &domains, "EXOADMINDOMAINS")

	applyEnvInt("threshold", threshold, "EXOADMINTHRESHOLD")
	applyEnvInt("window", window, "EXOADMINWINDOW")
	applyEnvFloat("rps", rps, "EXOADMINRPS")
	applyEnvBool("rotatepasswords", rotatePasswords, "EXOADMINROTATEPASSWORDS")

	// Create and populate Config struct with all parsed values
	config := &Config{
		ShowVersion:     *showVersion,
		TenantID:        *tenantID,
		ClientID:        *clientID,
		Organization:    *organization,
		Action:          strings.ToLower(*action),
		Secret:          *secret,
		PfxPath:         *pfxPath,
		PfxPass:         *pfxPass,
		Thumbprint:      *thumbprint,
		Mailboxes:       mailboxes,
		RotatePasswords: *rotatePasswords,
		ThresholdDays:   *threshold,
		WindowDays:      *window,
		NameFilter:      *nameFilter,
		Domains:         domains,
		CSVOut:          *csvOut,
		HTMLOut:         *htmlOut,
		ProxyURL:        *proxyURL,
		RPS:             *rps,
		VerboseMode:     *verbose,
		LogLevel:        *logLevel,
	}

	if config.Organization == "" {
		config.Organization = config.TenantID
	}

	if config.VerboseMode {
		printVerboseConfig(config)
	}

	return config
}

// applyEnvVars applies environment variable values to flags that weren't explicitly set via command line
func applyEnvVars(envMap map[string]*string) {
	// Track which flags were explicitly set via command line
	providedFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		providedFlags[f.Name] = true
	})

	// Map flag names to environment variable names
	flagToEnv := map[string]string{
		"tenantid":     "EXOADMINTENANTID",
		"clientid":     "EXOADMINCLIENTID",
		"organization": "EXOADMINORGANIZATION",
		"secret":       "EXOADMINSECRET",
		"pfx":          "EXOADMINPFX",
		"pfxpass":      "EXOADMINPFXPASS",
		"thumbprint":   "EXOADMINTHUMBPRINT",
		"namefilter":   "EXOADMINNAMEFILTER",
		"csvout":       "EXOADMINCSVOUT",
		"htmlout":      "EXOADMINHTMLOUT",
		"action":       "EXOADMINACTION",
		"proxy":        "EXOADMINPROXY",
		"loglevel":     "EXOADMINLOGLEVEL",
	}

	// For each environment variable, if flag wasn't provided, use env value
	for envName, flagPtr := range envMap {
		var flagName string
		for fn, en := range flagToEnv {
			if en == envName {
				flagName = fn
				break
			}
		}

		if !providedFlags[flagName] {
			if envValue := os.Getenv(envName); envValue != "" {
				*flagPtr = envValue
			}
		}
	}
}

// applyEnvVarsToSlice applies environment variable values to stringSlice flags
func applyEnvVarsToSlice(flagName string, slice *stringSlice, envName string) {
	flagProvided := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == flagName {
			flagProvided = true
		}
	})

	if !flagProvided {
		if envValue := os.Getenv(envName); envValue != "" {
			slice.Set(envValue)
		}
	}
}

func applyEnvInt(flagName string, value *int, envName string) {
	flagProvided := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == flagName {
			flagProvided = true
		}
	})
	if !flagProvided {
		if envValue := os.Getenv(envName); envValue != "" {
			if parsed, err := strconv.Atoi(envValue); err == nil && parsed > 0 {
				*value = parsed
			}
		}
	}
}

func applyEnvFloat(flagName string, value *float64, envName string) {
	flagProvided := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == flagName {
			flagProvided = true
		}
	})
	if !flagProvided {
		if envValue := os.Getenv(envName); envValue != "" {
			if parsed, err := strconv.ParseFloat(envValue, 64); err == nil && parsed >= 0 {
				*value = parsed
			}
		}
	}
}

func applyEnvBool(flagName string, value *bool, envName string) {
	flagProvided := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == flagName {
			flagProvided = true
		}
	})
	if !flagProvided {
		if envValue := os.Getenv(envName); envValue != "" {
			if parsed, err := strconv.ParseBool(envValue); err == nil {
				*value = parsed
			}
		}
	}
}

// validateConfiguration validates all required configuration fields
func validateConfiguration(config *Config) error {
	// Validate required fields with format checking
	if err := validation.ValidateGUID(config.TenantID, "Tenant ID"); err != nil {
		return err
	}
	if err := validation.ValidateGUID(config.ClientID, "Client ID"); err != nil {
		return err
	}

	// Check that at least one authentication method is provided
	authMethodCount := 0
	if config.Secret != "" {
		authMethodCount++
	}
	if config.PfxPath != "" {
		authMethodCount++
	}
	if config.Thumbprint != "" {
		authMethodCount++
	}

	if authMethodCount == 0 {
		return fmt.Errorf("missing authentication: must provide one of -secret, -pfx, or -thumbprint")
	}
	if authMethodCount > 1 {
		return fmt.Errorf("multiple authentication methods provided: use only one of -secret, -pfx, or -thumbprint")
	}

	// Validate PFX file path if provided
	if config.PfxPath != "" {
		if err := validation.ValidateFilePath(config.PfxPath, "PFX certificate file"); err != nil {
			return err
		}
	}

	// Validate action
	switch config.Action {
	case ActionScan:
		if config.ThresholdDays <= 0 {
			return fmt.Errorf("invalid threshold: %d (must be a positive day count)", config.ThresholdDays)
		}
		if config.WindowDays <= 0 {
			return fmt.Errorf("invalid window: %d (must be a positive day count)", config.WindowDays)
		}
		if config.CSVOut == "" || config.HTMLOut == "" {
			return fmt.Errorf("scan action requires -csvout and -htmlout paths")
		}
		if len(config.Domains) > 0 {
			if err := validation.ValidateDomains(config.Domains, "Accepted domains"); err != nil {
				return err
			}
		}
	case ActionConvert:
		if len(config.Mailboxes) == 0 {
			return fmt.Errorf("convert action requires -mailboxes (comma-separated addresses)")
		}
		if err := validation.ValidateEmails(config.Mailboxes, "Mailboxes"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid action: %s (use: scan, convert)", config.Action)
	}

	if config.RPS < 0 {
		return fmt.Errorf("invalid rps: %v (must be zero or positive)", config.RPS)
	}

	return nil
}

// Print verbose configuration summary
func printVerboseConfig(config *Config) {
	fmt.Println("========================================")
	fmt.Println("VERBOSE MODE ENABLED")
	fmt.Println("========================================")
	fmt.Println()

	// Display environment variables
	fmt.Println("Environment Variables (EXOADMIN*):")
	fmt.Println("----------------------------------")
	envVars := getEnvVariables()
	if len(envVars) == 0 {
		fmt.Println("  (no EXOADMIN environment variables set)")
	} else {
		keys := make([]string, 0, len(envVars))
		for k := range envVars {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, key := range keys {
			value := envVars[key]
			displayValue := value
			if key == "EXOADMINSECRET" || key == "EXOADMINPFXPASS" {
				displayValue = maskSecret(value)
			}
			fmt.Printf("  %s = %s\n", key, displayValue)
		}
	}
	fmt.Println()

	fmt.Println("Final Configuration (after env vars + flags):")
	fmt.Println("----------------------------------------------")
	fmt.Printf("Version: %s\n", version.Get())
	fmt.Printf("Tenant ID: %s\n", config.TenantID)
	fmt.Printf("Client ID: %s\n", config.ClientID)
	fmt.Printf("Organization: %s\n", config.Organization)
	fmt.Printf("Action: %s\n", config.Action)

	fmt.Println()
	fmt.Println("Authentication:")
	if config.Secret != "" {
		fmt.Println("  Method: Client Secret")
		fmt.Printf("  Secret: %s (length: %d)\n", maskSecret(config.Secret), len(config.Secret))
	} else if config.PfxPath != "" {
		fmt.Println("  Method: PFX Certificate")
		fmt.Printf("  PFX Path: %s\n", config.PfxPath)
		fmt.Println("  PFX Password: ******** (provided)")
	} else if config.Thumbprint != "" {
		fmt.Println("  Method: Windows Certificate Store")
		fmt.Printf("  Thumbprint: %s\n", config.Thumbprint)
	}

	if config.ProxyURL != "" {
		fmt.Println()
		fmt.Println("Network Configuration:")
		fmt.Printf("  Proxy: %s\n", config.ProxyURL)
	}

	fmt.Println()
	fmt.Println("Action Parameters:")
	switch config.Action {
	case ActionScan:
		fmt.Printf("  Threshold: %d days\n", config.ThresholdDays)
		fmt.Printf("  Trace Window: %d days\n", config.WindowDays)
		fmt.Printf("  Name Filter: %s\n", ifEmpty(config.NameFilter, "(all groups)"))
		fmt.Printf("  Domains: %s\n", ifEmpty(config.Domains.String(), "(all domains)"))
		fmt.Printf("  CSV Output: %s\n", config.CSVOut)
		fmt.Printf("  HTML Output: %s\n", config.HTMLOut)
		fmt.Printf("  Requests/s: %v\n", config.RPS)
	case ActionConvert:
		fmt.Printf("  Mailboxes: %s\n", config.Mailboxes.String())
		fmt.Printf("  Rotate Passwords: %t\n", config.RotatePasswords)
	}

	fmt.Println()
	fmt.Println("========================================")
	fmt.Println()
}

// Get all EXOADMIN environment variables
func getEnvVariables() map[string]string {
	envVars := make(map[string]string)

	exoadminEnvVars := []string{
		"EXOADMINTENANTID",
		"EXOADMINCLIENTID",
		"EXOADMINORGANIZATION",
		"EXOADMINSECRET",
		"EXOADMINPFX",
		"EXOADMINPFXPASS",
		"EXOADMINTHUMBPRINT",
		"EXOADMINMAILBOXES",
		"EXOADMINROTATEPASSWORDS",
		"EXOADMINTHRESHOLD",
		"EXOADMINWINDOW",
		"EXOADMINNAMEFILTER",
		"EXOADMINDOMAINS",
		"EXOADMINCSVOUT",
		"EXOADMINHTMLOUT",
		"EXOADMINACTION",
		"EXOADMINPROXY",
		"EXOADMINRPS",
		"EXOADMINLOGLEVEL",
	}

	for _, envVar := range exoadminEnvVars {
		if value := os.Getenv(envVar); value != "" {
			envVars[envVar] = value
		}
	}

	return envVars
}

// stringSlice implements the flag.Value interface for comma-separated string lists.
type stringSlice []string

// String returns the comma-separated string representation of the slice.
func (s *stringSlice) String() string {
	if s == nil {
		return ""
	}
	return strings.Join(*s, ",")
}

// Set parses a comma-separated string into a slice of trimmed strings.
func (s *stringSlice) Set(value string) error {
	if value == "" {
		*s = nil
		return nil
	}
	parts := strings.Split(value, ",")
	var result []string
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	*s = result
	return nil
}

// generateBashCompletion generates a bash completion script for the tool
func generateBashCompletion() string {
	return `# exoadmintool bash completion script
# Installation:
#   Linux: Copy to /etc/bash_completion.d/exoadmintool
#   macOS: Copy to /usr/local/etc/bash_completion.d/exoadmintool
#   Manual: source this file in your ~/.bashrc

_exoadmintool_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # All available flags
    opts="-action -tenantid -clientid -organization -secret -pfx -pfxpass -thumbprint
          -mailboxes -rotatepasswords -threshold -window -namefilter -domains
          -csvout -htmlout -proxy -rps -verbose -version -help -loglevel -completion"

    # Flag-specific completions
    case "${prev}" in
        -action)
            COMPREPLY=( $(compgen -W "scan convert" -- ${cur}) )
            return 0
            ;;
        -pfx)
            COMPREPLY=( $(compgen -f -- ${cur}) )
            return 0
            ;;
        -csvout|-htmlout)
            COMPREPLY=( $(compgen -f -- ${cur}) )
            return 0
            ;;
        -loglevel)
            COMPREPLY=( $(compgen -W "DEBUG INFO WARN ERROR" -- ${cur}) )
            return 0
            ;;
        -completion)
            COMPREPLY=( $(compgen -W "bash powershell" -- ${cur}) )
            return 0
            ;;
        -version|-verbose|-rotatepasswords|-help)
            return 0
            ;;
        -threshold|-window|-rps)
            return 0
            ;;
        -tenantid|-clientid|-organization|-secret|-pfxpass|-thumbprint|-mailboxes|-namefilter|-domains|-proxy)
            return 0
            ;;
    esac

    # Default: complete with flag names
    COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
    return 0
}

# Register the completion function for the tool
complete -F _exoadmintool_completions exoadmintool.exe
complete -F _exoadmintool_completions exoadmintool
complete -F _exoadmintool_completions ./exoadmintool.exe
complete -F _exoadmintool_completions ./exoadmintool
`
}

// generatePowerShellCompletion generates a PowerShell completion script for the tool
func generatePowerShellCompletion() string {
	return `# exoadmintool PowerShell completion script
# Installation:
#   Add to your PowerShell profile: notepad $PROFILE
#   Or run manually: . .\exoadmintool-completion.ps1

Register-ArgumentCompleter -CommandName exoadmintool.exe,exoadmintool,'.\exoadmintool.exe','.\exoadmintool' -ScriptBlock {
    param($commandName, $parameterName, $wordToComplete, $commandAst, $fakeBoundParameters)

    # Define valid actions
    $actions = @('scan', 'convert')

    # Define log levels
    $logLevels = @('DEBUG', 'INFO', 'WARN', 'ERROR')

    # Define shell types for completion flag
    $shellTypes = @('bash', 'powershell')

    # All flags that accept values
    $flags = @(
        '-action', '-tenantid', '-clientid', '-organization', '-secret', '-pfx',
        '-pfxpass', '-thumbprint', '-mailboxes', '-rotatepasswords', '-threshold',
        '-window', '-namefilter', '-domains', '-csvout', '-htmlout', '-proxy',
        '-rps', '-loglevel', '-completion', '-verbose', '-version', '-help'
    )

    # Get the last word from command line
    $lastWord = ''
    if ($commandAst.CommandElements.Count -gt 1) {
        $lastWord = $commandAst.CommandElements[-2].ToString()
    }

    # Provide context-specific completions based on the previous flag
    switch ($lastWord) {
        '-action' {
            $actions | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', "Action: $_")
            }
            return
        }
        '-loglevel' {
            $logLevels | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', "Log Level: $_")
            }
            return
        }
        '-completion' {
            $shellTypes | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', "Shell: $_")
            }
            return
        }
        '-pfx' {
            # File completion for PFX files
            Get-ChildItem -Path "$wordToComplete*" -File -ErrorAction SilentlyContinue |
                Where-Object { $_.Extension -in @('.pfx', '.p12') -or $wordToComplete -eq '' } |
                ForEach-Object {
                    [System.Management.Automation.CompletionResult]::new(
                        $_.FullName,
                        $_.Name,
                        'ParameterValue',
                        "Certificate: $($_.Name)"
                    )
                }
            return
        }
    }

    # Default: complete with flag names
    $flags | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
        $description = switch ($_) {
            '-action' { 'Operation to perform (scan, convert)' }
            '-tenantid' { 'Entra ID Tenant ID (GUID)' }
            '-clientid' { 'Application (Client) ID (GUID)' }
            '-organization' { 'Tenant organization for the admin endpoint' }
            '-secret' { 'Client Secret for authentication' }
            '-pfx' { 'Path to .pfx certificate file' }
            '-pfxpass' { 'Password for .pfx certificate' }
            '-thumbprint' { 'Certificate thumbprint (Windows Certificate Store)' }
            '-mailboxes' { 'Comma-separated mailbox addresses to convert' }
            '-rotatepasswords' { 'Rotate account passwords after conversion' }
            '-threshold' { 'Inactivity threshold in days (default: 90)' }
            '-window' { 'Message trace window in days (default: 10)' }
            '-namefilter' { 'Display name filter (substring or wildcard)' }
            '-domains' { 'Comma-separated accepted domains filter' }
            '-csvout' { 'Path of the CSV report artifact' }
            '-htmlout' { 'Path of the HTML report artifact' }
            '-proxy' { 'HTTP/HTTPS proxy URL' }
            '-rps' { 'Admin REST requests per second (default: 4)' }
            '-loglevel' { 'Logging level (DEBUG, INFO, WARN, ERROR)' }
            '-completion' { 'Generate completion script (bash or powershell)' }
            '-verbose' { 'Enable verbose output' }
            '-version' { 'Show version information' }
            '-help' { 'Show help message' }
            default { $_ }
        }
        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $description)
    }
}

Write-Host "PowerShell completion for exoadmintool loaded successfully!" -ForegroundColor Green
Write-Host "Try typing: exoadmintool.exe -<TAB>" -ForegroundColor Cyan
`
}
