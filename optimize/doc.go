// Package optimize implements fixed-step gradient descent over a
// vector-valued parameter.
//
// Descend treats the objective and its gradient as black boxes:
//
//	res, err := optimize.Descend(x0, 0.1, f, g, 1e-6)
//
// Each step is x ← x − λ·∇f(x). Iteration stops as soon as the objective
// changes by less than eps between two consecutive iterates, and the newer
// iterate is returned. There is no line search and no step-size adaptation.
// Without WithMaxIter the loop is uncapped: a step size that is too large
// for the objective diverges (reported once the objective overflows), and an
// objective that keeps oscillating by more than eps never returns.
package optimize
