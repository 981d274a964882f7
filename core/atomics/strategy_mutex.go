//go:build tthread_noatomics

package atomics

const Strategy = "mutex"

type (
	Cell = MutexCell
	Flag = MutexFlag
)
