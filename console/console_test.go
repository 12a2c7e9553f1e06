package console

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lixenwraith/superpong/config"
	"github.com/lixenwraith/superpong/core"
)

func lastLine(c *Console) string {
	h := c.History()
	if len(h) == 0 {
		return ""
	}
	return h[len(h)-1]
}

func TestVSyncCommand(t *testing.T) {
	c := New(config.DefaultSettings())

	cmd := c.Execute("vsync off")
	if cmd == nil || cmd.Kind != core.CmdApplySettings {
		t.Fatalf("Expected apply settings, got %v", cmd)
	}
	if cmd.Settings.VSync {
		t.Error("Expected vsync disabled")
	}
	if cmd.Settings.FPSLimit != config.DefaultSettings().FPSLimit || cmd.Settings.Fullscreen != config.DefaultSettings().Fullscreen {
		t.Error("Expected other settings preserved")
	}
	if len(c.History()) != 1 {
		t.Errorf("Expected only the echoed command before the change is applied, got %v", c.History())
	}

	if cmd := c.Execute("VSYNC Maybe"); cmd != nil {
		t.Errorf("Expected nil for invalid value, got %v", cmd)
	}
	if got := lastLine(c); got != `You can not set vsync to "maybe".` {
		t.Errorf("Unexpected message %q", got)
	}
}

func TestUsageWithoutArguments(t *testing.T) {
	c := New(config.DefaultSettings())
	for _, name := range []string{"vsync", "fps_limit", "fullscreen", "difficulty", "screen_shake", "scene", "stage"} {
		if cmd := c.Execute(name); cmd != nil {
			t.Errorf("%s: expected nil, got %v", name, cmd)
		}
		found := false
		for _, line := range c.History() {
			if strings.HasPrefix(line, "  "+name) {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: expected usage line", name)
		}
	}
}

func TestFPSLimitCommand(t *testing.T) {
	c := New(config.DefaultSettings())

	cmd := c.Execute("fps_limit 144")
	if cmd == nil || cmd.Settings.FPSLimit != 144 {
		t.Fatalf("Expected fps 144, got %v", cmd)
	}
	if strings.Contains(lastLine(c), "set:") {
		t.Errorf("Expected no change announced before it is applied, got %q", lastLine(c))
	}

	for _, bad := range []string{"fast", "-3", "5", "99999"} {
		if cmd := c.Execute("fps_limit " + bad); cmd != nil {
			t.Errorf("Expected %q rejected, got %v", bad, cmd)
		}
	}
}

func TestFullscreenCommand(t *testing.T) {
	c := New(config.DefaultSettings())
	cmd := c.Execute("fullscreen b")
	if cmd == nil || cmd.Settings.Fullscreen != config.FullscreenBorderless {
		t.Fatalf("Expected borderless, got %v", cmd)
	}
	if !cmd.Settings.VSync {
		t.Error("Expected vsync kept")
	}
	if cmd := c.Execute("fullscreen huge"); cmd != nil {
		t.Errorf("Expected nil, got %v", cmd)
	}
	if got := lastLine(c); got != `Can not set fullscreen to "huge"` {
		t.Errorf("Unexpected message %q", got)
	}
}

func TestDifficultyAndShake(t *testing.T) {
	c := New(config.DefaultSettings())
	if cmd := c.Execute("difficulty normal"); cmd == nil || cmd.Settings.Difficulty != config.DifficultyNormal {
		t.Errorf("Expected normal difficulty, got %v", cmd)
	}
	if cmd := c.Execute("screen_shake 50%"); cmd == nil || cmd.Settings.ScreenShake != 50 {
		t.Errorf("Expected shake 50, got %v", cmd)
	}
	if cmd := c.Execute("screen_shake 500"); cmd != nil {
		t.Errorf("Expected out of range shake rejected, got %v", cmd)
	}
}

func TestSceneAndStage(t *testing.T) {
	c := New(config.DefaultSettings())

	if cmd := c.Execute("scene ingame"); cmd == nil || cmd.Kind != core.CmdSwitchScene || cmd.Scene != core.SceneIngame {
		t.Errorf("Expected switch to ingame, got %v", cmd)
	}
	if cmd := c.Execute("scene credits"); cmd != nil {
		t.Errorf("Expected nil, got %v", cmd)
	}
	if got := lastLine(c); got != `There is no scene called "credits".` {
		t.Errorf("Unexpected message %q", got)
	}

	if cmd := c.Execute("stage 3"); cmd == nil || cmd.Kind != core.CmdChangeStage || cmd.Stage != 3 {
		t.Errorf("Expected change stage 3, got %v", cmd)
	}
	if cmd := c.Execute("stage two"); cmd != nil {
		t.Errorf("Expected nil, got %v", cmd)
	}
	if got := lastLine(c); got != `Invalid stage "two".` {
		t.Errorf("Unexpected message %q", got)
	}
}

func TestControlCommands(t *testing.T) {
	c := New(config.DefaultSettings())
	for _, name := range []string{"quit", "exit"} {
		if cmd := c.Execute(name); cmd == nil || cmd.Kind != core.CmdExit {
			t.Errorf("%s: expected exit, got %v", name, cmd)
		}
	}

	c.Toggle()
	c.Execute("close")
	if c.Active() {
		t.Error("Expected close to hide the console")
	}

	c.Execute("frobnicate")
	if got := lastLine(c); got != `"frobnicate" not defined.` {
		t.Errorf("Unexpected message %q", got)
	}

	c.Execute("clear")
	if len(c.History()) != 0 {
		t.Errorf("Expected empty history, got %v", c.History())
	}

	c.Execute("help")
	if !strings.Contains(strings.Join(c.History(), "\n"), "quit/exit") {
		t.Error("Expected help text")
	}
}

func TestHistoryLimit(t *testing.T) {
	c := New(config.DefaultSettings())
	for i := 0; i < 120; i++ {
		c.Print(fmt.Sprintf("line %d", i))
	}
	h := c.History()
	if len(h) != HistoryLimit {
		t.Fatalf("Expected %d lines, got %d", HistoryLimit, len(h))
	}
	if h[0] != "line 70" || h[len(h)-1] != "line 119" {
		t.Errorf("Expected oldest lines dropped, got %q .. %q", h[0], h[len(h)-1])
	}
}

func TestEditLine(t *testing.T) {
	c := New(config.DefaultSettings())
	c.Type("stag")
	c.Type("e 2x")
	c.Backspace()
	if c.Line() != "stage 2" {
		t.Fatalf("Expected edit line %q, got %q", "stage 2", c.Line())
	}

	cmd := c.Submit()
	if cmd == nil || cmd.Stage != 2 {
		t.Errorf("Expected stage 2, got %v", cmd)
	}
	if c.Line() != "" {
		t.Error("Expected line cleared after submit")
	}

	c.Recall()
	if c.Line() != "stage 2" {
		t.Errorf("Expected recall of last command, got %q", c.Line())
	}
}

func TestChanges(t *testing.T) {
	prev := config.DefaultSettings()
	if lines := Changes(prev, prev); len(lines) != 0 {
		t.Errorf("Expected no changes, got %v", lines)
	}

	next := prev
	next.VSync = false
	next.FPSLimit = 144
	next.ScreenShake = 50
	lines := Changes(prev, next)
	want := []string{
		"vsync set: true -> false",
		"framerate limit set: 0 -> 144",
		fmt.Sprintf("screen shake set: %d -> 50", prev.ScreenShake),
	}
	if len(lines) != len(want) {
		t.Fatalf("Expected %v, got %v", want, lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("Expected %q, got %q", want[i], lines[i])
		}
	}
}
