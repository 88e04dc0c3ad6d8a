// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/ply/internal/adapters/config"
	_ "go.trai.ch/ply/internal/adapters/inventory"
	_ "go.trai.ch/ply/internal/adapters/local"
	_ "go.trai.ch/ply/internal/adapters/logger"
	_ "go.trai.ch/ply/internal/adapters/playbook"
	_ "go.trai.ch/ply/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/ply/internal/app"
	_ "go.trai.ch/ply/internal/engine/runner"
	// Register the built-in modules.
	_ "go.trai.ch/ply/internal/modules/command"
	_ "go.trai.ch/ply/internal/modules/copy"
	_ "go.trai.ch/ply/internal/modules/debug"
	_ "go.trai.ch/ply/internal/modules/file"
)
