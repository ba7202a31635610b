package engine

import "sort"

// fakeVideo is a synchronous stand-in for a player: frames are presented
// only when the test calls present.
type fakeVideo struct {
	now          float64
	nextHandle   FrameHandle
	pending      map[FrameHandle]func(FrameInfo)
	listeners    map[int]func(Event)
	nextListener int
	presented    int
	ignoreCancel bool
}

func newFakeVideo() *fakeVideo {
	return &fakeVideo{
		pending:   make(map[FrameHandle]func(FrameInfo)),
		listeners: make(map[int]func(Event)),
	}
}

func (v *fakeVideo) CurrentTime() float64 {
	return v.now
}

func (v *fakeVideo) RequestFrame(cb func(FrameInfo)) FrameHandle {
	v.nextHandle++
	v.pending[v.nextHandle] = cb
	return v.nextHandle
}

func (v *fakeVideo) CancelFrame(h FrameHandle) {
	if v.ignoreCancel {
		return
	}
	delete(v.pending, h)
}

func (v *fakeVideo) Subscribe(fn func(Event)) func() {
	id := v.nextListener
	v.nextListener++
	v.listeners[id] = fn
	return func() { delete(v.listeners, id) }
}

func (v *fakeVideo) emit(ev Event) {
	ids := make([]int, 0, len(v.listeners))
	for id := range v.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		v.listeners[id](ev)
	}
}

// fires every callback pending at call time, in request order
func (v *fakeVideo) present() int {
	handles := make([]FrameHandle, 0, len(v.pending))
	for h := range v.pending {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	callbacks := make([]func(FrameInfo), 0, len(handles))
	for _, h := range handles {
		callbacks = append(callbacks, v.pending[h])
		delete(v.pending, h)
	}

	v.presented++
	for _, cb := range callbacks {
		cb(FrameInfo{MediaTime: v.now, PresentedFrames: v.presented})
	}
	return len(callbacks)
}
