//go:build tools

package tools

// Keeps code generators pinned in go.mod.
import (
	_ "github.com/dmarkham/enumer"
)
