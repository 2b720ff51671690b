package ddraw

// ref is a shared-ownership counter. free runs when the count drops to zero.
type ref struct {
	count int
	free  func()
}

func (r *ref) retain() int {
	r.count++
	return r.count
}

func (r *ref) release() int {
	if r.count == 0 {
		return 0
	}
	r.count--
	if r.count == 0 && r.free != nil {
		r.free()
	}
	return r.count
}

// attachment is a slot in the surface graph. An owned surface was built by
// its parent and is destroyed with it; any other surface is shared and only
// released.
type attachment struct {
	surface *Surface
	owned   bool
}

func (a *attachment) set(s *Surface, owned bool) {
	if s == a.surface {
		return
	}
	a.drop()
	a.surface = s
	a.owned = owned
}

func (a *attachment) drop() {
	if a.surface == nil {
		return
	}
	s := a.surface
	a.surface = nil
	if a.owned {
		s.destroy()
	} else {
		s.Release()
	}
}
