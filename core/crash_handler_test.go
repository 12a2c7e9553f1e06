package core

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func captureCrash(t *testing.T) (*bytes.Buffer, chan int) {
	t.Helper()
	var buf bytes.Buffer
	codes := make(chan int, 1)

	prevOut, prevExit := crashOut, crashExit
	crashOut = &buf
	crashExit = func(code int) { codes <- code }
	t.Cleanup(func() {
		crashOut, crashExit = prevOut, prevExit
		crashMu.Lock()
		crashCleanup = nil
		crashMu.Unlock()
	})
	return &buf, codes
}

func TestHandleCrashRunsHooksInReverse(t *testing.T) {
	buf, codes := captureCrash(t)

	var order []string
	OnCrash(func() { order = append(order, "logger") })
	OnCrash(func() { order = append(order, "terminal") })
	OnCrash(func() { panic("hook failure") })

	HandleCrash("boom")

	if code := <-codes; code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
	if len(order) != 2 || order[0] != "terminal" || order[1] != "logger" {
		t.Errorf("Expected reverse hook order, got %v", order)
	}
	if !strings.Contains(buf.String(), "CRASH DETECTED: boom") {
		t.Errorf("Expected crash report, got %q", buf.String())
	}
}

func TestHandleCrashNil(t *testing.T) {
	_, codes := captureCrash(t)
	HandleCrash(nil)
	select {
	case <-codes:
		t.Error("Expected no exit for nil panic value")
	default:
	}
}

func TestGoRecoversPanic(t *testing.T) {
	buf, codes := captureCrash(t)

	Go(func() { panic("worker died") })

	select {
	case code := <-codes:
		if code != 1 {
			t.Errorf("Expected exit code 1, got %d", code)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected crash handler to run")
	}
	if !strings.Contains(buf.String(), "worker died") {
		t.Errorf("Expected panic value in report, got %q", buf.String())
	}
}

func TestCommandString(t *testing.T) {
	tests := []struct {
		cmd  *Command
		want string
	}{
		{Exit(), "exit"},
		{ShowSettingsPanel(true), "show_settings(true)"},
		{SwitchScene(SceneIngame), "switch_scene(ingame)"},
		{ChangeStage(3), "change_stage(3)"},
	}
	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}
