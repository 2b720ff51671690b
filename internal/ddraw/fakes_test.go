package ddraw

import "testing"

// callLog records collaborator calls in order across renderer and context.
type callLog struct {
	calls []string
}

func (l *callLog) add(name string) { l.calls = append(l.calls, name) }

func (l *callLog) count(name string) int {
	n := 0
	for _, c := range l.calls {
		if c == name {
			n++
		}
	}
	return n
}

type recordingRenderer struct {
	log     *callLog
	uploads [][]byte
	descs   []SurfaceDesc
}

func (r *recordingRenderer) Upload(desc SurfaceDesc, buf []byte) {
	r.log.add("upload")
	cp := make([]byte, len(buf))
	copy(cp, buf)
	r.uploads = append(r.uploads, cp)
	r.descs = append(r.descs, desc)
}

func (r *recordingRenderer) Render() { r.log.add("render") }

type fakeContext struct {
	log      *callLog
	rendered bool
	gameID   string
	width    int
	height   int
}

func (c *fakeContext) IsRendered() bool {
	c.log.add("isRendered")
	v := c.rendered
	c.rendered = false
	return v
}

func (c *fakeContext) Rendering() bool { return c.rendered }
func (c *fakeContext) SwapBuffers()    { c.log.add("swap") }
func (c *fakeContext) SetupViewport()  { c.log.add("viewport") }
func (c *fakeContext) GameID() string  { return c.gameID }

func (c *fakeContext) SetDisplaySize(w, h int) {
	c.width, c.height = w, h
}

type fixture struct {
	dd       *DirectDraw
	log      *callLog
	renderer *recordingRenderer
	ctx      *fakeContext
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	log := &callLog{}
	r := &recordingRenderer{log: log}
	c := &fakeContext{log: log}
	dd, err := New(r, c, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return &fixture{dd: dd, log: log, renderer: r, ctx: c}
}

func (f *fixture) mustCreate(t *testing.T, desc SurfaceDesc) *Surface {
	t.Helper()
	s, err := f.dd.CreateSurface(desc)
	if err != nil {
		t.Fatalf("CreateSurface() error = %v", err)
	}
	return s
}

func flipChainDesc() SurfaceDesc {
	return SurfaceDesc{
		Flags:           DescCaps | DescBackBufferCount,
		Caps:            CapsPrimarySurface | CapsFlip | CapsComplex,
		BackBufferCount: 1,
	}
}

func offscreenDesc(w, h, bpp int) SurfaceDesc {
	pf, _ := StandardPixelFormat(bpp)
	return SurfaceDesc{
		Flags:       DescCaps | DescWidth | DescHeight | DescPixelFormat,
		Caps:        CapsOffscreenPlain,
		Width:       w,
		Height:      h,
		PixelFormat: pf,
	}
}
