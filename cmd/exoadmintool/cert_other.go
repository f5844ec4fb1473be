//go:build !windows

package main

import "fmt"

// exportCertFromStore is only available on Windows, where the certificate
// lives in the CurrentUser\My store.
func exportCertFromStore(thumbprint string) ([]byte, string, error) {
	return nil, "", fmt.Errorf("thumbprint authentication requires the Windows certificate store; use -secret or -pfx instead")
}
