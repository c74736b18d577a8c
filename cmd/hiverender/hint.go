package main

import (
	"errors"

	renderer "github.com/openhive-network/denser-sub002"
	"github.com/openhive-network/denser-sub002/internal/config"
	"github.com/openhive-network/denser-sub002/internal/hints"
)

// hintFor returns a hint to print after err, or "".
func hintFor(err error, configName string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(configName)
	case errors.Is(err, config.ErrUnknownPlugin):
		return hints.ForUnknownPlugin(config.PluginNames())
	case errors.Is(err, renderer.ErrDangerousContent):
		return hints.ForDangerousContent()
	case errors.Is(err, ErrInvalidExtension):
		return hints.ForExtension(inputExtensions)
	case errors.Is(err, ErrOutputNotDir):
		return hints.ForMultipleOutputs()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, renderer.ErrInvalidConfig):
		return hints.ForInvalidConfig()
	}
	return ""
}
