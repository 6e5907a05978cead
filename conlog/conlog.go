// SPDX-License-Identifier: GPL-2.0-or-later

// Diagnostic output of the compiler. The host can redirect everything
// with SetPrintf; tests use this to capture the warning strings.
package conlog

import (
	"log"
	"os"
)

var (
	syslog = log.New(os.Stdout, "", 0)

	p = func(format string, v ...interface{}) {
		syslog.Printf(format, v...)
	}
	verbose = false
)

// SetPrintf redirects all output; nil restores the default printer.
func SetPrintf(f func(string, ...interface{})) {
	if f == nil {
		f = func(format string, v ...interface{}) {
			syslog.Printf(format, v...)
		}
	}
	p = f
}

func SetVerbose(v bool) {
	verbose = v
}

func Printf(format string, v ...interface{}) {
	p(format, v...)
}

// DPrintf is only printed in verbose mode
func DPrintf(format string, v ...interface{}) {
	if !verbose {
		return
	}
	p(format, v...)
}

// Warningf prints a recoverable geometric degeneracy
func Warningf(format string, v ...interface{}) {
	p("WARNING: "+format, v...)
}

// Progressf marks the start of a compile stage
func Progressf(format string, v ...interface{}) {
	p(format, v...)
}

// Statf prints the summary counters of a stage
func Statf(format string, v ...interface{}) {
	p(format, v...)
}
