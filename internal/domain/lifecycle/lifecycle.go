// Package lifecycle holds shared timing constants for fx start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds a single start or stop hook (ping, shutdown, close).
const DefaultTimeout = 10 * time.Second
