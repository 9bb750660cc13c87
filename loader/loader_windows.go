//go:build windows

package loader

import (
	"golang.org/x/sys/windows"
)

var openLibrary = func(path string) (uintptr, error) {
	h, err := windows.LoadLibrary(path)
	return uintptr(h), err
}

var lookupSymbol = func(module uintptr, name string) uintptr {
	p, err := windows.GetProcAddress(windows.Handle(module), name)
	if err != nil {
		return 0
	}
	return p
}

var closeLibrary = func(module uintptr) error {
	return windows.FreeLibrary(windows.Handle(module))
}
