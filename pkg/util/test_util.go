package util

import "testing"

// AssertError fails the test if err doesn't match the expected error text;
// an empty expectation means success. Returns true if an error was expected
// and matched, i.e. the caller should move on to the next case.
func AssertError(t *testing.T, caseIdx int, expected string, err error) bool {
	t.Helper()
	if err != nil {
		if expected == "" {
			t.Fatalf(`case %d: expected success; got error "%s"`, caseIdx, err.Error())
			return false
		}
		if err.Error() != expected {
			t.Fatalf(`case %d: expected error "%s"; got "%s"`, caseIdx, expected, err.Error())
			return false
		}
		return true
	}
	if expected != "" {
		t.Fatalf(`case %d: expected error "%s"; got success`, caseIdx, expected)
	}
	return false
}
