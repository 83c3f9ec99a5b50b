//go:build linux

package platform

import "fmt"

func newKeepAwake(appName string) KeepAwake {
	return newInhibitorHold("systemd-inhibit",
		"--what=idle:sleep",
		fmt.Sprintf("--who=%s", appName),
		"--why=Interval session running",
		"--mode=block",
		"sleep", "infinity",
	)
}
