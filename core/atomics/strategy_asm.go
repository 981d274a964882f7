//go:build tthread_asm && amd64 && !tthread_noatomics

package atomics

const Strategy = "asm"

type (
	Cell = AsmCell
	Flag = AsmFlag
)
