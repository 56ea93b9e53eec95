package interaction

import (
	"go.uber.org/zap"

	"github.com/l1jgo/ecsrun/internal/scripting"
)

// ScriptedEffect runs a named Lua function through an Engine whenever the
// owning entity is interacted with. The interactor/interacted entity ids
// are passed as numeric fields so the script can look either entity back
// up through whatever world-side registry it has bound.
type ScriptedEffect struct {
	Engine   *scripting.Engine
	Function string
	Log      *zap.Logger
}

func (s ScriptedEffect) Run(a Args) {
	args := map[string]any{
		"interactor": int64(a.Interactor.ID()),
	}
	if a.Interacted != nil {
		args["interacted"] = int64(a.Interacted.ID())
	}
	if _, err := s.Engine.Call(s.Function, args); err != nil {
		if s.Log != nil {
			s.Log.Error("scripted interaction effect failed",
				zap.String("function", s.Function), zap.Error(err))
		}
	}
}
