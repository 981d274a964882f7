//go:build !tthread_noatomics && !(tthread_asm && amd64)

package atomics

const Strategy = "builtin"

type (
	Cell = BuiltinCell
	Flag = BuiltinFlag
)
