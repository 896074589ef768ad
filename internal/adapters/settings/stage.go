package settings

import (
	"os"

	"github.com/jsamuelsen/viewlink/internal/ports"
)

// EnvStage reads the stage from an environment variable.
// A variable that is set but empty is still a stage.
type EnvStage struct {
	Variable string
}

var _ ports.StageSource = EnvStage{}

// NewEnvStage creates a stage source for the given variable.
func NewEnvStage(variable string) EnvStage {
	return EnvStage{Variable: variable}
}

// Stage implements ports.StageSource.
func (s EnvStage) Stage() (string, bool) {
	return os.LookupEnv(s.Variable)
}

// FixedStage is a stage source that always returns the same stage.
type FixedStage string

// Stage implements ports.StageSource.
func (s FixedStage) Stage() (string, bool) {
	return string(s), true
}
