package logging

import (
	"path"
	"runtime"
)

// GetFuncName returns the caller as "package.Func" or "package.(*Type).Method"
// for use as the scope field.
func GetFuncName() string {
	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return "unknown"
	}

	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}

	// strip the import path, keep the package name
	return path.Base(fn.Name())
}
