package checkers

// Winner 一方没子就输；只剩无子可走不在这里判断
func (b *Board) Winner() Color {
	if b.Left[Dark] <= 0 {
		return Light
	}
	if b.Left[Light] <= 0 {
		return Dark
	}
	return NoColor
}

// Evaluate 固定从浅色视角打分：正数浅色好
func (b *Board) Evaluate() int {
	return b.EvaluateFor(Light)
}

// EvaluateFor 子数差 + 2×王数差，c 为正方
func (b *Board) EvaluateFor(c Color) int {
	opp := c.Other()
	return (b.Count(c) - b.Count(opp)) + 2*(b.KingCount(c)-b.KingCount(opp))
}
