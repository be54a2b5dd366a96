//go:build cgo
// +build cgo

package z3

/*
// Linking against libz3. Distribution packages (libz3-dev, z3-devel) install
// into the default search path; Homebrew uses one of two prefixes on macOS.
// Anything else goes through CGO_CFLAGS and CGO_LDFLAGS.
#cgo darwin CFLAGS: -I/opt/homebrew/include -I/usr/local/include
#cgo darwin LDFLAGS: -L/opt/homebrew/lib -L/usr/local/lib
#cgo LDFLAGS: -lz3
*/
import "C"
