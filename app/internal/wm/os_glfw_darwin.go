// SPDX-License-Identifier: Unlicense OR MIT

//go:build darwin && !ios && !headless

package wm

/*
#cgo CFLAGS: -Werror -Wno-deprecated-declarations -fobjc-arc -x objective-c
#cgo LDFLAGS: -framework AppKit

#include <AppKit/AppKit.h>

static CFTypeRef contentView(CFTypeRef windowRef) {
	NSWindow *window = (__bridge NSWindow *)windowRef;
	return (__bridge CFTypeRef)window.contentView;
}

static void setSharingType(CFTypeRef windowRef, int none) {
	NSWindow *window = (__bridge NSWindow *)windowRef;
	window.sharingType = none ? NSWindowSharingNone : NSWindowSharingReadOnly;
}

static int isDarkMode(void) {
	@autoreleasepool {
		NSString *style = [[NSUserDefaults standardUserDefaults] stringForKey:@"AppleInterfaceStyle"];
		return [style isEqualToString:@"Dark"];
	}
}
*/
import "C"

import (
	"errors"

	"taoui.org/io/system"
	"taoui.org/surface"
)

func glfwSystemTheme() system.Theme {
	if C.isDarkMode() != 0 {
		return system.ThemeDark
	}
	return system.ThemeLight
}

func (w *glfwWindow) nsWindow() C.CFTypeRef {
	return C.CFTypeRef(w.w.GetCocoaWindow())
}

func (w *glfwWindow) RawHandle() (surface.Handle, error) {
	if w.destroyed {
		return nil, errors.New("glfw: window destroyed")
	}
	win := w.nsWindow()
	return surface.AppKit{
		NSWindow: uintptr(win),
		NSView:   uintptr(C.contentView(win)),
	}, nil
}

func (w *glfwWindow) SetContentProtection(protect bool) error {
	none := C.int(0)
	if protect {
		none = 1
	}
	C.setSharingType(w.nsWindow(), none)
	w.protected = protect
	return nil
}
