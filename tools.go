//go:build tools

package tools

// Pins the swagger doc generator used by the API annotations
import (
	_ "github.com/swaggo/swag"
)
