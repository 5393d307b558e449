// SPDX-License-Identifier: Unlicense OR MIT

package wm

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
)

// ErrNoDriver is returned when no driver can be started.
var ErrNoDriver = errors.New("no window driver available")

type driverFunc func(cb Callbacks, log *zap.Logger) (Driver, error)

// Instead of creating files with build tags for each combination of
// platforms, let each driver initialize its own variable.
var x11Driver, glfwDriver driverFunc

// defaultHeadless is set when building with the headless tag.
var defaultHeadless bool

// New starts the named driver, or the first available platform driver
// if name is empty.
func New(name string, cb Callbacks, log *zap.Logger) (Driver, error) {
	if log == nil {
		log = zap.NewNop()
	}
	candidates := []struct {
		name string
		f    driverFunc
	}{
		{"x11", x11Driver},
		{"glfw", glfwDriver},
	}
	if name == "headless" || (name == "" && defaultHeadless) {
		return NewHeadless(cb, log), nil
	}
	var errFirst error
	for _, c := range candidates {
		if c.f == nil || (name != "" && name != c.name) {
			continue
		}
		d, err := c.f(cb, log)
		if err == nil {
			log.Debug("driver started", zap.String("driver", c.name))
			return d, nil
		}
		log.Warn("driver failed to start", zap.String("driver", c.name), zap.Error(err))
		if errFirst == nil {
			errFirst = err
		}
	}
	if errFirst != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDriver, errFirst)
	}
	if name != "" {
		return nil, fmt.Errorf("%w: %q is not built into this binary", ErrNoDriver, name)
	}
	return nil, ErrNoDriver
}

// clampDim limits v to [min, max], where zero bounds are unset.
func clampDim[T constraints.Integer | constraints.Float](v, min, max T) T {
	if min != 0 && v < min {
		v = min
	}
	if max != 0 && v > max {
		v = max
	}
	return v
}
