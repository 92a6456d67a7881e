// Package dependencies resolves the collaborators shared by command builders, substituting production
// defaults for anything a caller leaves unset.
package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/gitbatch/internal/batching"
	"github.com/temirov/gitbatch/internal/discovery"
	"github.com/temirov/gitbatch/internal/execshell"
	"github.com/temirov/gitbatch/internal/gitrepo"
	"github.com/temirov/gitbatch/internal/ui"
)

// FileDiscoverer lists candidate files beneath a root directory.
type FileDiscoverer interface {
	DiscoverFiles(root string, excludePatterns []string) ([]string, error)
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default. When humanReadableLogging
// is enabled each git invocation is also rendered through consoleLogger.
func ResolveGitExecutor(existing gitrepo.GitExecutor, logger *zap.Logger, consoleLogger *zap.Logger, humanReadableLogging bool) (gitrepo.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	observers := make([]execshell.CommandEventObserver, 0, 1)
	if humanReadableLogging {
		observers = append(observers, ui.NewConsoleCommandEventLogger(consoleLogger))
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner, observers...)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveFileDiscoverer returns the provided discoverer or a filesystem-backed default.
func ResolveFileDiscoverer(existing FileDiscoverer) FileDiscoverer {
	if existing != nil {
		return existing
	}
	return discovery.NewFileDiscoverer()
}

// ResolveSleeper returns the provided sleeper or a timer-backed default.
func ResolveSleeper(existing batching.Sleeper) batching.Sleeper {
	if existing != nil {
		return existing
	}
	return batching.TimerSleeper{}
}

// ResolveProgressLogger picks the logger batch progress is reported through: the console logger for
// human-readable output, the diagnostic logger otherwise.
func ResolveProgressLogger(logger *zap.Logger, consoleLogger *zap.Logger, humanReadableLogging bool) *zap.Logger {
	if humanReadableLogging && consoleLogger != nil {
		return consoleLogger
	}
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
