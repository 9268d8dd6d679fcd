//go:build !linux && !windows

package cpu

// pinToCore is a no-op here: the platform has no per-thread affinity call,
// so a pinned worker is only locked to its OS thread.
func pinToCore(int) error {
	return nil
}
