// SPDX-License-Identifier: Unlicense OR MIT

package surface

import "testing"

func TestDefaultBackend(t *testing.T) {
	tests := map[string]Backend{
		"darwin":  Metal,
		"ios":     Metal,
		"windows": DirectX12,
		"linux":   Vulkan,
		"js":      OpenGL,
	}
	for goos, exp := range tests {
		b := DefaultBackend(goos)
		if b != exp {
			t.Errorf("DefaultBackend(%s) = %v, expected %v", goos, b, exp)
		}
		if !b.Supported(goos) {
			t.Errorf("default backend %v not supported on %s", b, goos)
		}
	}
	if Metal.Supported("linux") {
		t.Error("Metal supported on linux")
	}
}

func TestDescriptorValid(t *testing.T) {
	tests := []struct {
		d   Descriptor
		exp bool
	}{
		{Descriptor{Backend: Vulkan, Handle: X11{Window: 42}}, true},
		{Descriptor{Backend: Metal, Handle: X11{Window: 42}}, false},
		{Descriptor{Backend: Vulkan, Handle: X11{}}, false},
		{Descriptor{Backend: Metal, Handle: AppKit{NSWindow: 1, NSView: 2}}, true},
		{Descriptor{Backend: DirectX12, Handle: Win32{HWND: 7}}, true},
		{Descriptor{Backend: Vulkan, Handle: Wayland{Surface: 1}}, false},
		{Descriptor{Backend: OpenGL, Handle: Headless{ID: 1}}, false},
		{Descriptor{Backend: OpenGL}, false},
	}
	for _, test := range tests {
		if got := test.d.Valid(); got != test.exp {
			t.Errorf("%v: Valid() = %v, expected %v", test.d, got, test.exp)
		}
	}
}
