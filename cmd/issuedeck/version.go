package main

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

// Version information - injected at build time via ldflags
var (
	Version   = "dev"
	Build     = "unknown"
	BuildTime = ""
)

// printVersion writes version and platform details to w.
func printVersion(w io.Writer) {
	line := fmt.Sprintf("issuedeck version %s", Version)
	if Build != "unknown" && Build != "" {
		line += fmt.Sprintf(" (build: %s)", Build)
	}
	if BuildTime != "" {
		line += fmt.Sprintf(" [%s]", BuildTime)
	}
	_, _ = fmt.Fprintln(w, line)
	_, _ = fmt.Fprintf(w, "Go version: %s\n", runtime.Version())
	_, _ = fmt.Fprintf(w, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)

	if Version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && len(setting.Value) > 7 {
				_, _ = fmt.Fprintf(w, "Commit: %s\n", setting.Value[:7])
				break
			}
		}
	}
}
