package main

import (
	"os"
	"os/exec"
	"reflect"
	"strings"
	"testing"
)

// TestValidateConfiguration tests validateConfiguration with various scenarios
func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid scan with secret",
			config: &Config{
				TenantID:      "12345678-1234-1234-1234-123456789012",
				ClientID:      "abcdefab-5678-9012-abcd-ef1234567890",
				Secret:        "my-secret",
				Action:        ActionScan,
				ThresholdDays: 90,
				WindowDays:    10,
				CSVOut:        "out.csv",
				HTMLOut:       "out.html",
				RPS:           4,
			},
			wantErr: false,
		},
		{
			name: "valid convert with thumbprint",
			config: &Config{
				TenantID:   "12345678-1234-1234-1234-123456789012",
				ClientID:   "abcdefab-5678-9012-abcd-ef1234567890",
				Thumbprint: "ABC123DEF456",
				Action:     ActionConvert,
				Mailboxes:  stringSlice{"user@example.com"},
			},
			wantErr: false,
		},
		{
			name: "missing tenant ID",
			config: &Config{
				ClientID: "abcdefab-5678-9012-abcd-ef1234567890",
				Secret:   "my-secret",
				Action:   ActionConvert,
			},
			wantErr: true,
			errMsg:  "Tenant ID cannot be empty",
		},
		{
			name: "missing client ID",
			config: &Config{
				TenantID: "12345678-1234-1234-1234-123456789012",
				Secret:   "my-secret",
				Action:   ActionConvert,
			},
			wantErr: true,
			errMsg:  "Client ID cannot be empty",
		},
		{
			name: "no authentication method",
			config: &Config{
				TenantID:      "12345678-1234-1234-1234-123456789012",
				ClientID:      "abcdefab-5678-9012-abcd-ef1234567890",
				Action:        ActionScan,
				ThresholdDays: 90,
				WindowDays:    10,
				CSVOut:        "out.csv",
				HTMLOut:       "out.html",
			},
			wantErr: true,
			errMsg:  "missing authentication: must provide one of -secret, -pfx, or -thumbprint",
		},
		{
			name: "multiple authentication methods",
			config: &Config{
				TenantID:      "12345678-1234-1234-1234-123456789012",
				ClientID:      "abcdefab-5678-9012-abcd-ef1234567890",
				Secret:        "my-secret",
				PfxPath:       "/path/to/cert.pfx",
				Action:        ActionScan,
				ThresholdDays: 90,
				WindowDays:    10,
				CSVOut:        "out.csv",
				HTMLOut:       "out.html",
			},
			wantErr: true,
			errMsg:  "multiple authentication methods provided: use only one of -secret, -pfx, or -thumbprint",
		},
		{
			name: "invalid tenant GUID",
			config: &Config{
				TenantID: "invalid-guid",
				ClientID: "abcdefab-1234-5678-90ab-cdef12345678",
				Secret:   "my-secret",
				Action:   ActionScan,
			},
			wantErr: true,
		},
		{
			name: "scan rejects non-positive threshold",
			config: &Config{
				TenantID:      "12345678-1234-1234-1234-123456789012",
				ClientID:      "abcdefab-1234-5678-90ab-cdef12345678",
				Secret:        "my-secret",
				Action:        ActionScan,
				ThresholdDays: 0,
				WindowDays:    10,
				CSVOut:        "out.csv",
				HTMLOut:       "out.html",
			},
			wantErr: true,
			errMsg:  "invalid threshold",
		},
		{
			name: "scan rejects non-positive window",
			config: &Config{
				TenantID:      "12345678-1234-1234-1234-123456789012",
				ClientID:      "abcdefab-1234-5678-90ab-cdef12345678",
				Secret:        "my-secret",
				Action:        ActionScan,
				ThresholdDays: 90,
				WindowDays:    -1,
				CSVOut:        "out.csv",
				HTMLOut:       "out.html",
			},
			wantErr: true,
			errMsg:  "invalid window",
		},
		{
			name: "scan requires artifact paths",
			config: &Config{
				TenantID:      "12345678-1234-1234-1234-123456789012",
				ClientID:      "abcdefab-1234-5678-90ab-cdef12345678",
				Secret:        "my-secret",
				Action:        ActionScan,
				ThresholdDays: 90,
				WindowDays:    10,
				CSVOut:        "",
				HTMLOut:       "out.html",
			},
			wantErr: true,
			errMsg:  "scan action requires -csvout and -htmlout paths",
		},
		{
			name: "scan rejects bad domain",
			config: &Config{
				TenantID:      "12345678-1234-1234-1234-123456789012",
				ClientID:      "abcdefab-1234-5678-90ab-cdef12345678",
				Secret:        "my-secret",
				Action:        ActionScan,
				ThresholdDays: 90,
				WindowDays:    10,
				CSVOut:        "out.csv",
				HTMLOut:       "out.html",
				Domains:       stringSlice{"contoso.com", "not a domain"},
			},
			wantErr: true,
			errMsg:  "Accepted domains",
		},
		{
			name: "convert requires mailboxes",
			config: &Config{
				TenantID: "12345678-1234-1234-1234-123456789012",
				ClientID: "abcdefab-1234-5678-90ab-cdef12345678",
				Secret:   "my-secret",
				Action:   ActionConvert,
			},
			wantErr: true,
			errMsg:  "convert action requires -mailboxes",
		},
		{
			name: "convert rejects invalid mailbox address",
			config: &Config{
				TenantID:  "12345678-1234-1234-1234-123456789012",
				ClientID:  "abcdefab-1234-5678-90ab-cdef12345678",
				Secret:    "my-secret",
				Action:    ActionConvert,
				Mailboxes: stringSlice{"user@example.com", "not-an-address"},
			},
			wantErr: true,
			errMsg:  "Mailboxes contains invalid email",
		},
		{
			name: "unknown action",
			config: &Config{
				TenantID: "12345678-1234-1234-1234-123456789012",
				ClientID: "abcdefab-1234-5678-90ab-cdef12345678",
				Secret:   "my-secret",
				Action:   "purge",
			},
			wantErr: true,
			errMsg:  "invalid action: purge",
		},
		{
			name: "negative rps",
			config: &Config{
				TenantID:      "12345678-1234-1234-1234-123456789012",
				ClientID:      "abcdefab-1234-5678-90ab-cdef12345678",
				Secret:        "my-secret",
				Action:        ActionScan,
				ThresholdDays: 90,
				WindowDays:    10,
				CSVOut:        "out.csv",
				HTMLOut:       "out.html",
				RPS:           -1,
			},
			wantErr: true,
			errMsg:  "invalid rps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfiguration(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfiguration() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && tt.errMsg != "" {
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("validateConfiguration() error = %v, should contain %q", err, tt.errMsg)
				}
			}
		})
	}
}

// TestValidateConfiguration_PfxPathValidation tests that validateConfiguration validates PFX paths
func TestValidateConfiguration_PfxPathValidation(t *testing.T) {
	tmpPfx, err := os.CreateTemp("", "test-*.pfx")
	if err != nil {
		t.Fatalf("Failed to create temp PFX file: %v", err)
	}
	defer os.Remove(tmpPfx.Name())
	tmpPfx.Close()

	scanConfig := func(pfxPath string) *Config {
		return &Config{
			TenantID:      "12345678-1234-1234-1234-123456789012",
			ClientID:      "abcdefab-1234-1234-1234-abcdefabcdef",
			PfxPath:       pfxPath,
			PfxPass:       "password",
			Action:        ActionScan,
			ThresholdDays: 90,
			WindowDays:    10,
			CSVOut:        "out.csv",
			HTMLOut:       "out.html",
		}
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid PFX path",
			config:  scanConfig(tmpPfx.Name()),
			wantErr: false,
		},
		{
			name:    "PFX path does not exist",
			config:  scanConfig("/nonexistent/path/cert.pfx"),
			wantErr: true,
			errMsg:  "file not found",
		},
		{
			name:    "PFX path with traversal",
			config:  scanConfig("../../etc/passwd"),
			wantErr: true,
			errMsg:  "directory traversal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfiguration(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfiguration() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err != nil {
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("validateConfiguration() error = %v, should contain %q", err, tt.errMsg)
				}
			}
		})
	}
}

// Test stringSlice.Set() method
func TestStringSliceSet(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"single", "a@example.com", []string{"a@example.com"}},
		{"multiple", "a@example.com,b@example.com", []string{"a@example.com", "b@example.com"}},
		{"with spaces", " a@example.com , b@example.com ", []string{"a@example.com", "b@example.com"}},
		{"trailing comma", "a@example.com,", []string{"a@example.com"}},
		{"domains", "contoso.com,fabrikam.com", []string{"contoso.com", "fabrikam.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s stringSlice
			err := s.Set(tt.input)
			if err != nil {
				t.Fatalf("Set() returned error: %v", err)
			}
			if !reflect.DeepEqual([]string(s), tt.expected) {
				t.Errorf("Set(%q) = %v, want %v", tt.input, s, tt.expected)
			}
		})
	}
}

// Test stringSlice.String() method
func TestStringSliceString(t *testing.T) {
	tests := []struct {
		name     string
		slice    stringSlice
		expected string
	}{
		{"nil", nil, ""},
		{"empty", stringSlice{}, ""},
		{"single", stringSlice{"a@example.com"}, "a@example.com"},
		{"multiple", stringSlice{"a@example.com", "b@example.com"}, "a@example.com,b@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.slice.String()
			if result != tt.expected {
				t.Errorf("String() = %q, want %q", result, tt.expected)
			}
		})
	}
}

// TestGenerateBashCompletion tests the bash completion script generator
func TestGenerateBashCompletion(t *testing.T) {
	script := generateBashCompletion()

	if script == "" {
		t.Error("generateBashCompletion() returned empty string")
	}

	requiredStrings := []string{
		"_exoadmintool_completions",
		"COMPREPLY",
		"COMP_WORDS",
		"-action",
		"-tenantid",
		"scan convert",
	}

	for _, required := range requiredStrings {
		if !strings.Contains(script, required) {
			t.Errorf("generateBashCompletion() missing required string: %q", required)
		}
	}
}

// TestGeneratePowerShellCompletion tests the PowerShell completion script generator
func TestGeneratePowerShellCompletion(t *testing.T) {
	script := generatePowerShellCompletion()

	if script == "" {
		t.Error("generatePowerShellCompletion() returned empty string")
	}

	requiredStrings := []string{
		"Register-ArgumentCompleter",
		"exoadmintool.exe",
		"param(",
		"-action",
	}

	for _, required := range requiredStrings {
		if !strings.Contains(script, required) {
			t.Errorf("generatePowerShellCompletion() missing required string: %q", required)
		}
	}
}

// TestGenerateBashCompletion_Syntax tests that the generated bash completion script is syntactically valid
func TestGenerateBashCompletion_Syntax(t *testing.T) {
	script := generateBashCompletion()

	tmpFile, err := os.CreateTemp("", "bash-completion-*.sh")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(script); err != nil {
		t.Fatalf("Failed to write script to temp file: %v", err)
	}
	tmpFile.Close()

	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("Skipping bash syntax test - bash not found")
	}

	cmd := exec.Command("bash", "-n", tmpFile.Name())
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Errorf("Bash completion script has invalid syntax: %v\nOutput: %s", err, output)
	}
}

// TestTruncate tests the console cell truncation helper
func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"shorter than max", "short", 10, "short"},
		{"exactly max", "1234567890", 10, "1234567890"},
		{"longer than max", "a very long group display name", 10, "a very lon..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.max); got != tt.expected {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.expected)
			}
		})
	}
}
