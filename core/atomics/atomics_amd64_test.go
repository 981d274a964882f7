package atomics

func init() {
	strategies = append(strategies, strategy{
		name:     "asm",
		lockFree: true,
		newCell:  func() cell { return new(AsmCell) },
		newFlag:  func() flag { return new(AsmFlag) },
	})
}
