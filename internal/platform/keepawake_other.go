//go:build !linux && !darwin && !windows

package platform

func newKeepAwake(string) KeepAwake {
	return unsupportedKeepAwake{}
}
