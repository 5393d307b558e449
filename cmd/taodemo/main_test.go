// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taoui.org/app"
)

func init() {
	*backend = "headless"
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const testSceneYAML = `
exit_after: 50ms
messages: [hello, world]
windows:
  - title: Main
    size: {width: 320, height: 240}
    position: {x: 10, y: 20}
    theme: dark
    cursor: Hand
  - title: Tool
    resizable: false
    always_on_top: true
`

const testSceneTOML = `
exit_after = "1s"

[[windows]]
title = "Viewer"
fullscreen = "borderless"

[windows.min_size]
width = 100
height = 50
`

func TestLoadSceneYAML(t *testing.T) {
	sc, err := loadScene(writeFile(t, "scene.yaml", testSceneYAML))
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "world"}, sc.Messages)
	require.Len(t, sc.Windows, 2)
	first := sc.Windows[0]
	assert.Equal(t, "Main", first.Title)
	assert.Equal(t, &sceneSize{Width: 320, Height: 240}, first.Size)
	assert.Equal(t, &scenePoint{X: 10, Y: 20}, first.Position)
	assert.Equal(t, "Hand", first.Cursor)
	tool := sc.Windows[1]
	require.NotNil(t, tool.Resizable)
	assert.False(t, *tool.Resizable)
	assert.True(t, tool.AlwaysOnTop)
}

func TestLoadSceneTOML(t *testing.T) {
	sc, err := loadScene(writeFile(t, "scene.toml", testSceneTOML))
	require.NoError(t, err)
	require.Len(t, sc.Windows, 1)
	w := sc.Windows[0]
	assert.Equal(t, "borderless", w.Fullscreen)
	assert.Equal(t, &sceneSize{Width: 100, Height: 50}, w.MinSize)
	assert.Nil(t, w.Size)
	assert.Equal(t, "1s", sc.ExitAfter)
}

func TestLoadSceneErrors(t *testing.T) {
	tests := []struct {
		name, file, content string
	}{
		{"format", "scene.json", `{}`},
		{"empty", "scene.yaml", "windows: []\n"},
		{"unknown field", "scene.yaml", "windows:\n  - title: x\n    colour: red\n"},
		{"unknown toml field", "scene.toml", "[[windows]]\nopacity = 1\n"},
		{"theme", "scene.yaml", "windows:\n  - theme: purple\n"},
		{"fullscreen", "scene.yaml", "windows:\n  - fullscreen: sometimes\n"},
		{"cursor", "scene.yaml", "windows:\n  - cursor: Sideways\n"},
		{"size", "scene.yaml", "windows:\n  - size: {width: 0, height: 10}\n"},
		{"duration", "scene.yaml", "exit_after: soon\nwindows:\n  - title: x\n"},
		{"negative duration", "scene.toml", "exit_after = \"-1s\"\n[[windows]]\ntitle = \"x\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadScene(writeFile(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}
	_, err := loadScene(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSceneCommand(t *testing.T) {
	var out bytes.Buffer
	path := writeFile(t, "scene.yml", testSceneYAML)
	require.NoError(t, mainErr(&out, []string{"scene", path}))
	assert.Contains(t, out.String(), `message "hello"`)
	assert.Contains(t, out.String(), `message "world"`)
	assert.Contains(t, out.String(), "timeout")
}

func TestSceneExclusiveFullscreen(t *testing.T) {
	var out bytes.Buffer
	path := writeFile(t, "scene.yaml", "exit_after: 10ms\nwindows:\n  - fullscreen: exclusive\n")
	require.NoError(t, mainErr(&out, []string{"scene", path}))
	assert.Contains(t, out.String(), "timeout")
}

func TestMonitorsCommand(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, mainErr(&out, []string{"monitors"}))
	assert.Contains(t, out.String(), "* headless-0 1920x1080 at (0,0) (scale 1)")
	assert.Contains(t, out.String(), "1280x720 24bpp @60Hz")
}

func TestPumpCommand(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, mainErr(&out, []string{"pump", "-frames", "2"}))
	got := out.String()
	assert.Contains(t, got, "frame 0: Poll")
	assert.Contains(t, got, "frame 1: Poll")
	assert.Contains(t, got, "frame 2: Exit(0)")
	assert.Contains(t, got, "redraws 1")
}

func TestUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, mainErr(&out, nil))
	assert.Error(t, mainErr(&out, []string{"dance"}))
	assert.Error(t, mainErr(&out, []string{"scene"}))
	assert.Error(t, mainErr(&out, []string{"pump", "-frames", "-1"}))
}

func TestLogFromEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loop.log")
	t.Setenv("TAO_LOG_LEVEL", "info")
	t.Setenv("TAO_LOG_OUTPUT", path)
	var out bytes.Buffer
	require.NoError(t, mainErr(&out, []string{"monitors"}))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "event loop created")
	assert.Contains(t, string(b), "event loop exited")
}

func TestLoopOptionsVerbose(t *testing.T) {
	cnf := app.DefaultRunConfig()
	assert.Len(t, loopOptions(cnf), 1)
	*verbose = true
	defer func() { *verbose = false }()
	assert.Len(t, loopOptions(cnf), 2)
}
