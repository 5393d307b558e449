// SPDX-License-Identifier: Unlicense OR MIT

/*
Package surface describes the native handles a renderer needs to
create a drawing surface for a window.

A Handle is one of AppKit, UIKit, Win32, X11, Wayland, Android or
Headless. A Descriptor pairs a handle with the graphics Backend it is
meant for; Valid reports whether the handle carries what that backend
requires.
*/
package surface

import (
	"fmt"

	"taoui.org/unit"
)

// Backend is a graphics API.
type Backend uint8

const (
	Metal Backend = iota
	Vulkan
	DirectX12
	OpenGL
)

// DefaultBackend returns the preferred Backend for the operating
// system goos, in the format of runtime.GOOS.
func DefaultBackend(goos string) Backend {
	switch goos {
	case "darwin", "ios":
		return Metal
	case "windows":
		return DirectX12
	case "linux", "freebsd", "openbsd", "netbsd", "android":
		return Vulkan
	default:
		return OpenGL
	}
}

// Supported reports whether b is available on goos.
func (b Backend) Supported(goos string) bool {
	switch b {
	case Metal:
		return goos == "darwin" || goos == "ios"
	case DirectX12:
		return goos == "windows"
	case Vulkan:
		return goos != "darwin" && goos != "ios" && goos != "js"
	case OpenGL:
		return true
	}
	return false
}

func (b Backend) String() string {
	switch b {
	case Metal:
		return "Metal"
	case Vulkan:
		return "Vulkan"
	case DirectX12:
		return "DirectX12"
	case OpenGL:
		return "OpenGL"
	default:
		panic("invalid Backend")
	}
}

// Handle is a native window handle.
type Handle interface {
	// Platform returns a short name of the windowing system.
	Platform() string
	implementsHandle()
}

// AppKit is a macOS window.
type AppKit struct {
	NSWindow uintptr
	NSView   uintptr
}

// UIKit is an iOS window.
type UIKit struct {
	UIWindow uintptr
	UIView   uintptr
}

// Win32 is a Windows window.
type Win32 struct {
	HWND      uintptr
	HInstance uintptr
}

// X11 is an X11 window. Display is nil when the connection was not
// established through Xlib.
type X11 struct {
	Window   uint32
	VisualID uint32
	Screen   int
	Display  uintptr
}

// Wayland is a Wayland surface.
type Wayland struct {
	Surface uintptr
	Display uintptr
}

// Android is an ANativeWindow.
type Android struct {
	NativeWindow uintptr
}

// Headless is a window without a native counterpart.
type Headless struct {
	ID uint64
}

func (AppKit) Platform() string   { return "appkit" }
func (UIKit) Platform() string    { return "uikit" }
func (Win32) Platform() string    { return "win32" }
func (X11) Platform() string      { return "x11" }
func (Wayland) Platform() string  { return "wayland" }
func (Android) Platform() string  { return "android" }
func (Headless) Platform() string { return "headless" }

func (AppKit) implementsHandle()   {}
func (UIKit) implementsHandle()    {}
func (Win32) implementsHandle()    {}
func (X11) implementsHandle()      {}
func (Wayland) implementsHandle()  {}
func (Android) implementsHandle()  {}
func (Headless) implementsHandle() {}

// Descriptor is everything a renderer needs to create a surface.
type Descriptor struct {
	Backend     Backend
	Handle      Handle
	Size        unit.PhysicalSize
	ScaleFactor float64
}

// Valid reports whether d.Handle carries the fields d.Backend needs.
func (d Descriptor) Valid() bool {
	switch h := d.Handle.(type) {
	case AppKit:
		return (d.Backend == Metal || d.Backend == OpenGL || d.Backend == Vulkan) && h.NSView != 0
	case UIKit:
		return (d.Backend == Metal || d.Backend == OpenGL) && h.UIView != 0
	case Win32:
		return d.Backend != Metal && h.HWND != 0
	case X11:
		return (d.Backend == Vulkan || d.Backend == OpenGL) && h.Window != 0
	case Wayland:
		return (d.Backend == Vulkan || d.Backend == OpenGL) && h.Surface != 0 && h.Display != 0
	case Android:
		return (d.Backend == Vulkan || d.Backend == OpenGL) && h.NativeWindow != 0
	}
	return false
}

func (d Descriptor) String() string {
	platform := "none"
	if d.Handle != nil {
		platform = d.Handle.Platform()
	}
	return fmt.Sprintf("%s surface on %s %v@%g", d.Backend, platform, d.Size, d.ScaleFactor)
}
