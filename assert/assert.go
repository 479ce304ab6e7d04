package assert

import "github.com/oomph-ac/leapvox/oerror"

// IsTrue panics with an oerror.LeapError if ok is false.
func IsTrue(ok bool, message string, args ...interface{}) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
