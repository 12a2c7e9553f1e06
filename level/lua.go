package level

import (
	"context"
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// luaBudget bounds script execution, stage scripts only build tables
const luaBudget = time.Second

// LoadLua runs a stage script and decodes the table it returns
//
//	return level {
//	  name = "Night Shift", cap = 3, pacing = 1.5,
//	  events = {
//	    announce { text = "Night Shift", size = 70, color = {0.9, 0.3, 0.1} },
//	    wait(3),
//	    spawn("Target", 2),
//	  },
//	}
func LoadLua(name, src string) (Script, error) {
	vm := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer vm.Close()
	openStageLibs(vm)

	ctx, cancel := context.WithTimeout(context.Background(), luaBudget)
	defer cancel()
	vm.SetContext(ctx)

	registerLevelAPI(vm)

	if err := vm.DoString(src); err != nil {
		return Script{}, fmt.Errorf("%w: %s: %v", ErrInvalidScript, name, err)
	}

	tbl, ok := vm.Get(-1).(*lua.LTable)
	if !ok {
		return Script{}, fmt.Errorf("%w: %s: script must return level{...}", ErrInvalidScript, name)
	}

	s, err := decodeLuaLevel(tbl)
	if err != nil {
		return Script{}, fmt.Errorf("%w: %s: %v", ErrInvalidScript, name, err)
	}
	if s.Name == "" {
		s.Name = name
	}
	if err := s.Validate(); err != nil {
		return Script{}, err
	}
	return s, nil
}

// openStageLibs opens only the pure libraries, stage scripts get no os, io or file loading
func openStageLibs(vm *lua.LState) {
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		vm.Push(vm.NewFunction(lib.open))
		vm.Push(lua.LString(lib.name))
		vm.Call(1, 0)
	}
	for _, name := range []string{"dofile", "loadfile"} {
		vm.SetGlobal(name, lua.LNil)
	}
}

// registerLevelAPI installs the constructor helpers, each returns a tagged table
func registerLevelAPI(vm *lua.LState) {
	tagged := func(tag string) *lua.LTable {
		t := vm.NewTable()
		t.RawSetString("type", lua.LString(tag))
		return t
	}

	vm.SetGlobal("level", vm.NewFunction(func(L *lua.LState) int {
		t := L.CheckTable(1)
		L.Push(t)
		return 1
	}))
	vm.SetGlobal("announce", vm.NewFunction(func(L *lua.LState) int {
		args := L.CheckTable(1)
		t := tagged("announce")
		t.RawSetString("text", args.RawGetString("text"))
		t.RawSetString("size", args.RawGetString("size"))
		t.RawSetString("color", args.RawGetString("color"))
		L.Push(t)
		return 1
	}))
	vm.SetGlobal("wait", vm.NewFunction(func(L *lua.LState) int {
		t := tagged("wait")
		t.RawSetString("seconds", L.CheckNumber(1))
		L.Push(t)
		return 1
	}))
	vm.SetGlobal("spawn", vm.NewFunction(func(L *lua.LState) int {
		t := tagged("spawn")
		t.RawSetString("kind", lua.LString(L.CheckString(1)))
		t.RawSetString("count", lua.LNumber(L.OptInt(2, 1)))
		L.Push(t)
		return 1
	}))
}

func decodeLuaLevel(tbl *lua.LTable) (Script, error) {
	s := Script{
		Name:     lua.LVAsString(tbl.RawGetString("name")),
		SpawnCap: int(lua.LVAsNumber(tbl.RawGetString("cap"))),
		Pacing:   seconds(lua.LVAsNumber(tbl.RawGetString("pacing"))),
	}

	list, ok := tbl.RawGetString("events").(*lua.LTable)
	if !ok {
		return Script{}, fmt.Errorf("events must be a table")
	}

	for i := 1; i <= list.Len(); i++ {
		entry, ok := list.RawGetInt(i).(*lua.LTable)
		if !ok {
			return Script{}, fmt.Errorf("event %d: not a table", i)
		}
		events, err := decodeLuaEvent(entry)
		if err != nil {
			return Script{}, fmt.Errorf("event %d: %w", i, err)
		}
		s.Events = append(s.Events, events...)
	}
	return s, nil
}

func decodeLuaEvent(t *lua.LTable) ([]Event, error) {
	switch tag := lua.LVAsString(t.RawGetString("type")); tag {
	case "announce":
		var rgb []float64
		if c, ok := t.RawGetString("color").(*lua.LTable); ok {
			for j := 1; j <= c.Len(); j++ {
				rgb = append(rgb, float64(lua.LVAsNumber(c.RawGetInt(j))))
			}
		}
		color, err := colorFrom(rgb)
		if err != nil {
			return nil, err
		}
		text := lua.LVAsString(t.RawGetString("text"))
		size := float64(lua.LVAsNumber(t.RawGetString("size")))
		return []Event{Announce(color, size, text)}, nil
	case "wait":
		return []Event{Wait(seconds(lua.LVAsNumber(t.RawGetString("seconds"))))}, nil
	case "spawn":
		kind := lua.LVAsString(t.RawGetString("kind"))
		count := int(lua.LVAsNumber(t.RawGetString("count")))
		return spawnRun(kind, count)
	default:
		return nil, fmt.Errorf("unknown event type %q, build events with announce, wait, spawn", tag)
	}
}

func seconds(n lua.LNumber) time.Duration {
	return time.Duration(float64(n) * float64(time.Second))
}
