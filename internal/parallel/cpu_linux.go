//go:build linux

package parallel

import "golang.org/x/sys/unix"

// affinityCores counts the CPUs this process may be scheduled on, which can
// be fewer than the machine has when running under taskset or a cgroup cpuset.
func affinityCores() (int, bool) {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return 0, false
	}
	return set.Count(), true
}
