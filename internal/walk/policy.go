package walk

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// AccessDeniedAction decides what a walk does after a permission failure.
type AccessDeniedAction int

const (
	ActionSkip      AccessDeniedAction = iota // Abandon the failing subtree and keep walking
	ActionTerminate                           // Stop the walk and return what was found so far
	ActionFail                                // Abort the walk with the permission error
)

// AccessDeniedLogLevel is the severity used to report a permission failure.
type AccessDeniedLogLevel int

const (
	LogDebug AccessDeniedLogLevel = iota
	LogWarn
	LogInfo
)

func (a AccessDeniedAction) String() string {
	switch a {
	case ActionSkip:
		return "skip"
	case ActionTerminate:
		return "terminate"
	case ActionFail:
		return "fail"
	default:
		return fmt.Sprintf("AccessDeniedAction(%d)", int(a))
	}
}

func (l AccessDeniedLogLevel) String() string {
	switch l {
	case LogDebug:
		return "debug"
	case LogWarn:
		return "warn"
	case LogInfo:
		return "info"
	default:
		return fmt.Sprintf("AccessDeniedLogLevel(%d)", int(l))
	}
}

// ParseAccessDeniedAction parses "skip", "terminate" or "fail".
func ParseAccessDeniedAction(s string) (AccessDeniedAction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "skip", "":
		return ActionSkip, nil
	case "terminate", "stop":
		return ActionTerminate, nil
	case "fail":
		return ActionFail, nil
	}
	return ActionSkip, fmt.Errorf("globwalk: invalid access-denied action %q (want skip|terminate|fail)", s)
}

// ParseAccessDeniedLogLevel parses "debug", "warn" or "info".
func ParseAccessDeniedLogLevel(s string) (AccessDeniedLogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "":
		return LogDebug, nil
	case "warn", "warning":
		return LogWarn, nil
	case "info":
		return LogInfo, nil
	}
	return LogDebug, fmt.Errorf("globwalk: invalid access-denied log level %q (want warn|debug|info)", s)
}

// verdict is the outcome of a failed visit.
type verdict int

const (
	verdictSkip verdict = iota
	verdictTerminate
	verdictFail
)

// onAccessDenied logs a permission failure at the configured severity and
// maps the configured action to a verdict.
func (o Options) onAccessDenied(logger *zap.Logger, path string, err error) verdict {
	msg := "access denied: " + err.Error()
	switch o.AccessDeniedLog {
	case LogWarn:
		logger.Warn(msg, zap.String("path", path))
	case LogInfo:
		logger.Info(msg, zap.String("path", path))
	default:
		logger.Debug(msg, zap.String("path", path))
	}

	switch o.AccessDenied {
	case ActionTerminate:
		return verdictTerminate
	case ActionFail:
		return verdictFail
	default:
		return verdictSkip
	}
}
