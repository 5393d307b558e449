// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"os"
	"path/filepath"
)

// ID identifies the application to the windowing system. On X11 it is
// the WM_CLASS of every window.
//
// Set ID with the -X linker flag,
//
//	go build -ldflags="-X 'taoui.org/app.ID=org.example.Viewer'" .
//
// or before the first window is created. It defaults to the base name
// of the executable.
var ID = ""

func init() {
	if ID == "" {
		ID = filepath.Base(os.Args[0])
	}
}
