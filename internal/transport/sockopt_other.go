//go:build !unix

package transport

func setSockopts(uintptr, string) error { return nil }
