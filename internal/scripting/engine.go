// Package scripting wraps a single gopher-lua VM used to run scripted
// interaction effects: named Lua functions invoked with a table of
// arguments, returning a table of results.
package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM. Single-goroutine access only — its
// only caller in this module is interaction.ScriptedEffect, run on the
// world's owning goroutine. Hot-reload is
// planned via atomic swap of the whole Engine, not in-place mutation.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every .lua file under
// scriptsDir/effects, then scriptsDir/lib (shared helpers loaded second so
// effect files may reference globals defined at top level, mirroring how
// Lua's own require-order-sensitive globals work).
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	if err := e.loadDir(filepath.Join(scriptsDir, "effects")); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load effect scripts: %w", err)
	}
	if err := e.loadDir(filepath.Join(scriptsDir, "lib")); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load lib scripts: %w", err)
	}
	return e, nil
}

func (e *Engine) Close() { e.vm.Close() }

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// HasFunction reports whether name is defined as a Lua global function.
func (e *Engine) HasFunction(name string) bool {
	return e.vm.GetGlobal(name) != lua.LNil
}

// Call invokes the Lua global function name with args packed into a single
// table argument, and unpacks its single table return value into a
// map[string]any. Numbers convert to float64, strings to string, booleans
// to bool; values of any other kind are stored under their key as nil.
func (e *Engine) Call(name string, args map[string]any) (map[string]any, error) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return nil, fmt.Errorf("scripting: function %q not defined", name)
	}

	t := e.vm.NewTable()
	for k, v := range args {
		t.RawSetString(k, toLua(v))
	}

	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, t); err != nil {
		return nil, fmt.Errorf("scripting: call %q: %w", name, err)
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return map[string]any{}, nil
	}
	out := make(map[string]any)
	rt.ForEach(func(k, v lua.LValue) {
		out[k.String()] = fromLua(v)
	})
	return out, nil
}

func toLua(v any) lua.LValue {
	switch x := v.(type) {
	case bool:
		return lua.LBool(x)
	case string:
		return lua.LString(x)
	case int:
		return lua.LNumber(x)
	case int64:
		return lua.LNumber(x)
	case float64:
		return lua.LNumber(x)
	case uint64:
		return lua.LNumber(x)
	default:
		return lua.LNil
	}
}

func fromLua(v lua.LValue) any {
	switch x := v.(type) {
	case lua.LBool:
		return bool(x)
	case lua.LString:
		return string(x)
	case lua.LNumber:
		return float64(x)
	default:
		return nil
	}
}
