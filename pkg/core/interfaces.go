package core

import "github.com/arnavsurve/stepshot/pkg/types"

// Logging contracts, re-exported so callers of core need not import types.
type (
	Event   = types.Event
	Context = types.Context
	Logger  = types.Logger
)
