package console

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/lixenwraith/superpong/config"
	"github.com/lixenwraith/superpong/core"
)

// HistoryLimit is the number of lines kept in the scrollback
const HistoryLimit = 50

const helpMessage = `Available commands:
  vsync [on/off] - enables or disables vsync
  fps_limit [number] - sets the framerate limit, 0 removes it
  fullscreen [windowed/borderless/exclusive] - sets the window mode
  difficulty [normal/hard] - sets the enemy fire rate
  screen_shake [percent] - scales the camera shake
  scene [menu/ingame] - changes the scene
  stage [number] - sets the stage
  clear - clears the console
  close - closes the console
  quit/exit - quits the game immediately
  help - displays this help message`

// Console is the drop-down command line, it turns text into controller commands
type Console struct {
	mu       sync.Mutex
	settings config.Settings
	active   bool
	line     []rune
	history  []string
	last     string
}

func New(s config.Settings) *Console {
	return &Console{settings: s}
}

// SetSettings updates the values reported and used as the base for changes
func (c *Console) SetSettings(s config.Settings) {
	c.mu.Lock()
	c.settings = s
	c.mu.Unlock()
}

// Toggle shows or hides the console
func (c *Console) Toggle() {
	c.mu.Lock()
	c.active = !c.active
	c.mu.Unlock()
}

func (c *Console) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Type appends text to the edit line
func (c *Console) Type(s string) {
	c.mu.Lock()
	c.line = append(c.line, []rune(s)...)
	c.mu.Unlock()
}

// Backspace removes the last rune of the edit line
func (c *Console) Backspace() {
	c.mu.Lock()
	if n := len(c.line); n > 0 {
		c.line = c.line[:n-1]
	}
	c.mu.Unlock()
}

// Recall restores the previous command into the edit line
func (c *Console) Recall() {
	c.mu.Lock()
	c.line = []rune(c.last)
	c.mu.Unlock()
}

// Line returns the edit line
func (c *Console) Line() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return string(c.line)
}

// Submit executes the edit line and clears it
func (c *Console) Submit() *core.Command {
	c.mu.Lock()
	text := string(c.line)
	c.line = c.line[:0]
	c.mu.Unlock()
	return c.Execute(text)
}

// History returns a copy of the scrollback, oldest first
func (c *Console) History() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.history))
	copy(out, c.history)
	return out
}

// Changes describes every console-visible setting that differs between prev and
// next, the controller prints them once next is actually applied
func Changes(prev, next config.Settings) []string {
	var lines []string
	if prev.VSync != next.VSync {
		lines = append(lines, fmt.Sprintf("vsync set: %t -> %t", prev.VSync, next.VSync))
	}
	if prev.FPSLimit != next.FPSLimit {
		lines = append(lines, fmt.Sprintf("framerate limit set: %d -> %d", prev.FPSLimit, next.FPSLimit))
	}
	if prev.Fullscreen != next.Fullscreen {
		lines = append(lines, fmt.Sprintf("fullscreen set: %s -> %s", prev.Fullscreen, next.Fullscreen))
	}
	if prev.Difficulty != next.Difficulty {
		lines = append(lines, fmt.Sprintf("difficulty set: %s -> %s", prev.Difficulty, next.Difficulty))
	}
	if prev.ScreenShake != next.ScreenShake {
		lines = append(lines, fmt.Sprintf("screen shake set: %d -> %d", prev.ScreenShake, next.ScreenShake))
	}
	return lines
}

// Print appends a message to the scrollback, multi-line text is split
func (c *Console) Print(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.print(text)
}

func (c *Console) print(text string) {
	c.history = append(c.history, strings.Split(text, "\n")...)
	if over := len(c.history) - HistoryLimit; over > 0 {
		c.history = append(c.history[:0], c.history[over:]...)
	}
}

// Execute interprets one command line, invalid input prints a message and returns nil
func (c *Console) Execute(text string) *core.Command {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.print(text)
	c.last = text

	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return nil
	}
	cmd, args := tokens[0], tokens[1:]

	switch cmd {
	case "vsync":
		return c.handleVSyncCommand(args)
	case "fps_limit":
		return c.handleFPSLimitCommand(args)
	case "fullscreen":
		return c.handleFullscreenCommand(args)
	case "difficulty":
		return c.handleDifficultyCommand(args)
	case "screen_shake":
		return c.handleScreenShakeCommand(args)
	case "scene":
		return c.handleSceneCommand(args)
	case "stage":
		return c.handleStageCommand(args)
	case "quit", "exit":
		return core.Exit()
	case "close":
		c.active = false
	case "clear":
		c.history = c.history[:0]
	case "help":
		c.print(helpMessage)
	default:
		c.print(fmt.Sprintf("%q not defined.", cmd))
	}
	return nil
}

func (c *Console) handleVSyncCommand(args []string) *core.Command {
	if len(args) == 0 {
		c.print(fmt.Sprintf("usage:\n  vsync [on/off]\nvsync=%t", c.settings.VSync))
		return nil
	}
	var vsync bool
	switch args[0] {
	case "on", "true", "enable":
		vsync = true
	case "off", "false", "disable":
		vsync = false
	default:
		c.print(fmt.Sprintf("You can not set vsync to %q.", args[0]))
		return nil
	}
	next := c.settings
	next.VSync = vsync
	return core.ApplySettings(next)
}

func (c *Console) handleFPSLimitCommand(args []string) *core.Command {
	if len(args) == 0 {
		c.print(fmt.Sprintf("usage:\n  fps_limit [number]\nfps_limit=%d", c.settings.FPSLimit))
		return nil
	}
	limit, err := strconv.ParseUint(args[0], 10, 16)
	if err != nil {
		c.print(fmt.Sprintf("You can not set your fps limit to %q.", args[0]))
		return nil
	}
	next := c.settings
	next.FPSLimit = int(limit)
	if err := next.Validate(); err != nil {
		c.print(err.Error())
		return nil
	}
	return core.ApplySettings(next)
}

func (c *Console) handleFullscreenCommand(args []string) *core.Command {
	if len(args) == 0 {
		c.print(fmt.Sprintf("usage:\n  fullscreen [windowed/borderless/exclusive]\nfullscreen=%s", c.settings.Fullscreen))
		return nil
	}
	mode, err := config.ParseFullscreen(args[0])
	if err != nil {
		c.print(fmt.Sprintf("Can not set fullscreen to %q", args[0]))
		return nil
	}
	next := c.settings
	next.Fullscreen = mode
	return core.ApplySettings(next)
}

func (c *Console) handleDifficultyCommand(args []string) *core.Command {
	if len(args) == 0 {
		c.print(fmt.Sprintf("usage:\n  difficulty [normal/hard]\ndifficulty=%s", c.settings.Difficulty))
		return nil
	}
	next := c.settings
	if err := next.Difficulty.UnmarshalText([]byte(args[0])); err != nil {
		c.print(fmt.Sprintf("There is no difficulty called %q.", args[0]))
		return nil
	}
	return core.ApplySettings(next)
}

func (c *Console) handleScreenShakeCommand(args []string) *core.Command {
	if len(args) == 0 {
		c.print(fmt.Sprintf("usage:\n  screen_shake [percent]\nscreen_shake=%d", c.settings.ScreenShake))
		return nil
	}
	pct, err := strconv.Atoi(strings.TrimSuffix(args[0], "%"))
	next := c.settings
	next.ScreenShake = pct
	if err != nil || next.Validate() != nil {
		c.print(fmt.Sprintf("You can not set screen shake to %q.", args[0]))
		return nil
	}
	return core.ApplySettings(next)
}

func (c *Console) handleSceneCommand(args []string) *core.Command {
	if len(args) == 0 {
		c.print("usage:\n  scene [scene]")
		return nil
	}
	switch args[0] {
	case "menu":
		return core.SwitchScene(core.SceneMenu)
	case "ingame":
		return core.SwitchScene(core.SceneIngame)
	default:
		c.print(fmt.Sprintf("There is no scene called %q.", args[0]))
		return nil
	}
}

func (c *Console) handleStageCommand(args []string) *core.Command {
	if len(args) == 0 {
		c.print("usage:\n  stage [number]")
		return nil
	}
	stage, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		c.print(fmt.Sprintf("Invalid stage %q.", args[0]))
		return nil
	}
	return core.ChangeStage(uint32(stage))
}
