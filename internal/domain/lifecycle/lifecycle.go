// Package lifecycle holds shared settings for application start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds every start-up check and graceful shutdown step.
const DefaultTimeout = 10 * time.Second
