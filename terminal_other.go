//go:build !unix

package celadon

import (
	"os"
	"time"
)

// readable reports every descriptor as ready; reads block until input
// arrives.
func readable(int, time.Duration) (bool, error) {
	return true, nil
}

func notifyResize(chan os.Signal) {}
