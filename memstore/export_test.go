// SPDX-License-Identifier: MIT

package memstore

import "time"

// Test bridge: exposes unexported helpers to memstore_test only.

// AcceptBackoff_TestOnly is acceptBackoff.
func AcceptBackoff_TestOnly(prev time.Duration) time.Duration { return acceptBackoff(prev) }
