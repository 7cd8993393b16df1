// Package native loads the physics module as a platform shared library.
//
// On unix-like systems the module is opened with dlopen(RTLD_LAZY) and
// symbols are resolved with dlsym, both through purego so no cgo toolchain
// is required. On Windows LoadLibrary and GetProcAddress are used. Resolved
// addresses become typed Go functions via purego.RegisterFunc.
//
// A module that cannot be opened is not an error for the caller to handle:
// Open returns a null Library whose every Bind reports not_found, together
// with the load error for logging.
package native
