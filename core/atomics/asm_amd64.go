package atomics

// AsmCell uses hand-written LOCK XADD and XCHG sequences.
type AsmCell struct {
	v uint64
}

func (c *AsmCell) Load() uint64             { return load64(&c.v) }
func (c *AsmCell) Store(v uint64)           { xchg64(&c.v, v) }
func (c *AsmCell) Exchange(v uint64) uint64 { return xchg64(&c.v, v) }
func (c *AsmCell) Add(delta uint64) uint64  { return xadd64(&c.v, delta) }
func (*AsmCell) LockFree() bool             { return true }

// AsmFlag uses a hand-written XCHG sequence.
type AsmFlag struct {
	v uint32
}

func (f *AsmFlag) TestAndSet() bool { return xchg32(&f.v, 1) != 0 }
func (f *AsmFlag) Clear()           { xchg32(&f.v, 0) }
func (*AsmFlag) LockFree() bool     { return true }

//go:noescape
func xchg64(addr *uint64, v uint64) (old uint64)

//go:noescape
func xadd64(addr *uint64, delta uint64) (old uint64)

//go:noescape
func load64(addr *uint64) (v uint64)

//go:noescape
func xchg32(addr *uint32, v uint32) (old uint32)
