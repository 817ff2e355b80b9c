//go:build windows

package proc

import "os"

// signalName returns an empty string, Windows has no notion of a terminating signal name.
func signalName(_ *os.ProcessState) string {
	return ""
}
