//go:build !linux

package parallel

func affinityCores() (int, bool) {
	return 0, false
}
