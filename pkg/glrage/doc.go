// Package glrage runs legacy DirectDraw-style clients on top of a modern
// window and renderer.
//
// # Basic Usage
//
// A client draws through the [ddraw.DirectDraw] object handed to its Frame
// method; the instance owns the window, the display context and the
// renderer:
//
//	inst, err := glrage.New("/path/to/glrage.lua", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := inst.Run(myClient); err != nil {
//		log.Fatal(err)
//	}
//
// # Configuration Sources
//
//   - Disk file: [New], which also enables [Options.WatchConfig]
//   - Embedded FS: [NewFromFS]
//   - io.Reader: [NewFromReader]
//   - Built-in defaults: [NewDefault]
//
// # Headless Mode
//
// With [Options.Headless] frames are rendered on the CPU and no window is
// opened. Run then executes [Options.Frames] client frames, which is how
// the tests drive a full instance.
//
// # Keys
//
// In windowed mode F11 and Alt+Enter toggle fullscreen and PrintScreen
// saves a screenshot of the next presented frame.
package glrage
