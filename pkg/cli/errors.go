package cli

import (
	"errors"
	"fmt"

	"github.com/getmockd/itemd/pkg/client"
)

// ErrServerNotRunning is returned when a client command cannot reach the server.
var ErrServerNotRunning = errors.New("server not running - start with: itemd serve")

// formatClientError turns connection failures into an actionable message and
// leaves API errors untouched.
func formatClientError(baseURL string, err error) error {
	if client.IsConnectionError(err) {
		return fmt.Errorf("%w (%s)", ErrServerNotRunning, baseURL)
	}
	return err
}
