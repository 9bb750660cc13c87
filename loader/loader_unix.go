//go:build darwin || linux || freebsd

package loader

import (
	"github.com/ebitengine/purego"
)

var openLibrary = func(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

var lookupSymbol = func(module uintptr, name string) uintptr {
	p, err := purego.Dlsym(module, name)
	if err != nil {
		return 0
	}
	return p
}

var closeLibrary = func(module uintptr) error {
	return purego.Dlclose(module)
}
