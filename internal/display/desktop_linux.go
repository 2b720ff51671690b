//go:build linux

package display

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// DesktopSize returns the size of the first X11 screen.
func DesktopSize() (width, height int, err error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to connect to X server: %w", err)
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	if len(setup.Roots) == 0 {
		return 0, 0, fmt.Errorf("no screens found")
	}

	screen := setup.Roots[0]
	return int(screen.WidthInPixels), int(screen.HeightInPixels), nil
}
