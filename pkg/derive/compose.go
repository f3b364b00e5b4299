package derive

// Leaf lifts a plain accessor into a derivation. The accessor must only read from the
// snapshot; its output is cached per snapshot and compared like any other input, so an
// unchanged slice keeps downstream derivations warm.
func Leaf[S comparable, T any](name string, read func(S) T, opts ...Option) *Derivation[S, T] {
	inputs := []func(S) any{
		func(state S) any { return read(state) },
	}
	opts = append([]Option{WithName(name)}, opts...)
	return newDerivation(inputs, func(args []any) T {
		return as[T](args[0])
	}, opts)
}

// Derive1 builds a derivation over one input.
func Derive1[S comparable, A, T any](a Selector[S, A], fn func(A) T, opts ...Option) *Derivation[S, T] {
	inputs := []func(S) any{input(a)}
	return newDerivation(inputs, func(args []any) T {
		return fn(as[A](args[0]))
	}, opts)
}

// Derive2 builds a derivation over two inputs.
func Derive2[S comparable, A, B, T any](a Selector[S, A], b Selector[S, B], fn func(A, B) T, opts ...Option) *Derivation[S, T] {
	inputs := []func(S) any{input(a), input(b)}
	return newDerivation(inputs, func(args []any) T {
		return fn(as[A](args[0]), as[B](args[1]))
	}, opts)
}

// Derive3 builds a derivation over three inputs.
func Derive3[S comparable, A, B, C, T any](
	a Selector[S, A], b Selector[S, B], c Selector[S, C],
	fn func(A, B, C) T, opts ...Option,
) *Derivation[S, T] {
	inputs := []func(S) any{input(a), input(b), input(c)}
	return newDerivation(inputs, func(args []any) T {
		return fn(as[A](args[0]), as[B](args[1]), as[C](args[2]))
	}, opts)
}

// Derive4 builds a derivation over four inputs.
func Derive4[S comparable, A, B, C, D, T any](
	a Selector[S, A], b Selector[S, B], c Selector[S, C], d Selector[S, D],
	fn func(A, B, C, D) T, opts ...Option,
) *Derivation[S, T] {
	inputs := []func(S) any{input(a), input(b), input(c), input(d)}
	return newDerivation(inputs, func(args []any) T {
		return fn(as[A](args[0]), as[B](args[1]), as[C](args[2]), as[D](args[3]))
	}, opts)
}

// Derive5 builds a derivation over five inputs.
func Derive5[S comparable, A, B, C, D, E, T any](
	a Selector[S, A], b Selector[S, B], c Selector[S, C], d Selector[S, D], e Selector[S, E],
	fn func(A, B, C, D, E) T, opts ...Option,
) *Derivation[S, T] {
	inputs := []func(S) any{input(a), input(b), input(c), input(d), input(e)}
	return newDerivation(inputs, func(args []any) T {
		return fn(as[A](args[0]), as[B](args[1]), as[C](args[2]), as[D](args[3]), as[E](args[4]))
	}, opts)
}
