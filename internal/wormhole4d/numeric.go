package wormhole4d

// Epsilon is both the finite-difference step and the convergence tolerance
// of every Newton-Raphson solve in the package.
const Epsilon = 1.0e-7

// forwardDiff returns f(t+Epsilon) - f(t), given ft = f(t). All gradients
// and line derivatives go through here so they share one step size.
func forwardDiff(f func(Real) Real, t, ft Real) Real {
	return f(t+Epsilon) - ft
}
