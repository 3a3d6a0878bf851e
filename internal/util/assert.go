package assert

import "log"

// Success returns v, or exits the program if err is set. It is meant for
// writes to the terminal, where there is nobody left to report an error to.
func Success[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}
