package formula

// Axiom1 builds the A1 instance a → (b → a).
func Axiom1(a *Formula, b *Formula) *Formula {
	return Implies(a, Implies(b, a))
}

// Axiom2 builds the A2 instance (a → (b → c)) → ((a → b) → (a → c)).
func Axiom2(a *Formula, b *Formula, c *Formula) *Formula {
	return Implies(
		Implies(a, Implies(b, c)),
		Implies(Implies(a, b), Implies(a, c)),
	)
}

// Axiom1Parts decomposes f = a → (b → a).
func Axiom1Parts(f *Formula) (a *Formula, b *Formula, ok bool) {
	if !f.IsImplication() || !f.right.IsImplication() {
		return nil, nil, false
	}
	if !f.left.Equal(f.right.right) {
		return nil, nil, false
	}
	return f.left, f.right.left, true
}

// Axiom2Parts decomposes f = (a → (b → c)) → ((a2 → b2) → (a3 → c2)),
// requiring a = a2 = a3, b = b2 and c = c2.
func Axiom2Parts(f *Formula) (a *Formula, b *Formula, c *Formula, ok bool) {
	if !f.IsImplication() {
		return nil, nil, nil, false
	}
	l, r := f.left, f.right
	if !l.IsImplication() || !l.right.IsImplication() {
		return nil, nil, nil, false
	}
	if !r.IsImplication() || !r.left.IsImplication() || !r.right.IsImplication() {
		return nil, nil, nil, false
	}
	a, b, c = l.left, l.right.left, l.right.right
	if !a.Equal(r.left.left) || !a.Equal(r.right.left) {
		return nil, nil, nil, false
	}
	if !b.Equal(r.left.right) || !c.Equal(r.right.right) {
		return nil, nil, nil, false
	}
	return a, b, c, true
}

func IsAxiom1(f *Formula) bool {
	_, _, ok := Axiom1Parts(f)
	return ok
}

func IsAxiom2(f *Formula) bool {
	_, _, _, ok := Axiom2Parts(f)
	return ok
}
