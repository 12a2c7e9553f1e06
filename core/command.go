package core

import (
	"fmt"

	"github.com/lixenwraith/superpong/config"
)

// SceneKind names a top-level scene
type SceneKind uint8

const (
	SceneMenu SceneKind = iota
	SceneIngame
)

func (k SceneKind) String() string {
	switch k {
	case SceneMenu:
		return "menu"
	case SceneIngame:
		return "ingame"
	default:
		return fmt.Sprintf("scene(%d)", uint8(k))
	}
}

// CommandKind tags a Command
type CommandKind uint8

const (
	CmdExit CommandKind = iota
	CmdShowSettingsPanel
	CmdSwitchScene
	CmdApplySettings
	CmdChangeStage
)

// Command is a message consumed by the scene controller
// Only the payload field matching Kind is meaningful
type Command struct {
	Kind     CommandKind
	Show     bool
	Scene    SceneKind
	Settings config.Settings
	Stage    uint32
}

func Exit() *Command {
	return &Command{Kind: CmdExit}
}

func ShowSettingsPanel(show bool) *Command {
	return &Command{Kind: CmdShowSettingsPanel, Show: show}
}

func SwitchScene(k SceneKind) *Command {
	return &Command{Kind: CmdSwitchScene, Scene: k}
}

func ApplySettings(s config.Settings) *Command {
	return &Command{Kind: CmdApplySettings, Settings: s}
}

func ChangeStage(stage uint32) *Command {
	return &Command{Kind: CmdChangeStage, Stage: stage}
}

func (c Command) String() string {
	switch c.Kind {
	case CmdExit:
		return "exit"
	case CmdShowSettingsPanel:
		return fmt.Sprintf("show_settings(%t)", c.Show)
	case CmdSwitchScene:
		return "switch_scene(" + c.Scene.String() + ")"
	case CmdApplySettings:
		return "apply_settings"
	case CmdChangeStage:
		return fmt.Sprintf("change_stage(%d)", c.Stage)
	default:
		return fmt.Sprintf("command(%d)", uint8(c.Kind))
	}
}
