// Package logger is the ambient I/W/E printf logger this core's tests and
// host embedders use for diagnostics, gated behind an explicit debug
// switch rather than always-on output.
//
// Grounded on logger/logger.go, which gated the same three levels behind
// a package-level consts.Debug constant; that constant lived in the
// teacher's consts package (out of scope here — §1 excludes the
// interpreter/stdlib code that owned it), so the gate is reconstructed as
// an explicit SetDebug(bool) setter instead of a compile-time constant.
package logger

import "fmt"

var debug bool

// SetDebug turns logging on or off; off by default, matching the
// teacher's release-build convention of shipping with consts.Debug
// false.
func SetDebug(v bool) { debug = v }

func I(fm string, a ...any) {
	if debug {
		fmt.Printf("[INFO] "+fm+"\n", a...)
	}
}

func W(fm string, a ...any) {
	if debug {
		fmt.Printf("[WARN] "+fm+"\n", a...)
	}
}

func E(fm string, a ...any) {
	if debug {
		fmt.Printf("[ERROR] "+fm+"\n", a...)
	}
}
