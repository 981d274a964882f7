package tthread

// MemoryOrder names a C++11 memory ordering. Every atomic operation in this
// package is sequentially consistent; the order arguments are accepted for
// source compatibility and otherwise ignored.
type MemoryOrder int

const (
	Relaxed MemoryOrder = iota
	Consume
	Acquire
	Release
	AcqRel
	SeqCst
)

func (o MemoryOrder) String() string {
	switch o {
	case Relaxed:
		return "relaxed"
	case Consume:
		return "consume"
	case Acquire:
		return "acquire"
	case Release:
		return "release"
	case AcqRel:
		return "acq_rel"
	case SeqCst:
		return "seq_cst"
	}
	return "invalid"
}
