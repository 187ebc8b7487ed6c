package main

import "github.com/nsf/viewengine"

// clipRegister is the Register payload: a byte-slice clipboard slot, the
// same role godit's per-view yank buffers play, just without the
// named-register table (demo has one cursor's worth of cut/copy to show).
type clipRegister struct {
	data []byte
}

// poolAllocator hands out a fresh clipRegister per cursor and drops it on
// release; nothing is pooled, there just aren't enough cursors in a demo
// session to make that worthwhile.
type poolAllocator struct{}

func (poolAllocator) AllocRegister() viewengine.Register { return &clipRegister{} }
func (poolAllocator) ReleaseRegister(viewengine.Register) {}
