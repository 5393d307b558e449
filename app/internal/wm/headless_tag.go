// SPDX-License-Identifier: Unlicense OR MIT

//go:build headless
// +build headless

package wm

func init() {
	defaultHeadless = true
}
