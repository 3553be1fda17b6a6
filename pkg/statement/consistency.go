package statement

import "go.dedis.ch/kyber/v3"

// checkConsistency enforces group coherence across a composite statement: a
// Secret name may legitimately appear under several different generators
// (that's how a conjunction asserts "the same x satisfies two relations"),
// but every generator it is ever paired with must come from the same prime
// order group, or the resulting scalar arithmetic is meaningless.
func checkConsistency(names []string, generators []kyber.Point) error {
	tags := make(map[string]string, len(names))
	for i, n := range names {
		tag := pointGroupTag(generators[i])
		if prev, ok := tags[n]; ok {
			if prev != tag {
				return malformedStatementf("secret %q is used with generators from two different groups", n)
			}
			continue
		}
		tags[n] = tag
	}
	return nil
}
