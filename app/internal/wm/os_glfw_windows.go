// SPDX-License-Identifier: Unlicense OR MIT

//go:build windows && !headless

package wm

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"taoui.org/io/system"
	"taoui.org/surface"
)

const (
	wdaNone    = 0x0
	wdaMonitor = 0x1
)

var (
	user32                        = windows.NewLazySystemDLL("user32.dll")
	_SetWindowDisplayAffinity     = user32.NewProc("SetWindowDisplayAffinity")
	errDisplayAffinityUnsupported = errors.New("SetWindowDisplayAffinity is unavailable")
)

func glfwSystemTheme() system.Theme {
	k, err := registry.OpenKey(registry.CURRENT_USER, `Software\Microsoft\Windows\CurrentVersion\Themes\Personalize`, registry.QUERY_VALUE)
	if err != nil {
		return system.ThemeLight
	}
	defer k.Close()
	v, _, err := k.GetIntegerValue("AppsUseLightTheme")
	if err == nil && v == 0 {
		return system.ThemeDark
	}
	return system.ThemeLight
}

func (w *glfwWindow) hwnd() uintptr {
	return uintptr(unsafe.Pointer(w.w.GetWin32Window()))
}

func (w *glfwWindow) RawHandle() (surface.Handle, error) {
	if w.destroyed {
		return nil, errors.New("glfw: window destroyed")
	}
	var inst windows.Handle
	if err := windows.GetModuleHandleEx(0, nil, &inst); err != nil {
		return nil, fmt.Errorf("glfw: GetModuleHandleEx: %w", err)
	}
	return surface.Win32{
		HWND:      w.hwnd(),
		HInstance: uintptr(inst),
	}, nil
}

func (w *glfwWindow) SetContentProtection(protect bool) error {
	if err := _SetWindowDisplayAffinity.Find(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupported, errDisplayAffinityUnsupported)
	}
	affinity := uintptr(wdaNone)
	if protect {
		affinity = wdaMonitor
	}
	r, _, err := _SetWindowDisplayAffinity.Call(w.hwnd(), affinity)
	if r == 0 {
		return fmt.Errorf("glfw: SetWindowDisplayAffinity: %w", err)
	}
	w.protected = protect
	return nil
}
