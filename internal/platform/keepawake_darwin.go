//go:build darwin

package platform

func newKeepAwake(string) KeepAwake {
	return newInhibitorHold("caffeinate", "-d", "-i")
}
