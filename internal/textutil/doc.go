// Package textutil sanitizes user-provided song names for safe use as
// filenames inside the library.
package textutil
