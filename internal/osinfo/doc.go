// Package osinfo classifies raw operating system name strings into coarse
// platform families.
//
// Classification is a pure function of the supplied name so the matching
// rules can be exhaustively table-tested; callers inject the live value
// (for example runtime.GOOS or an os.name style property) at the boundary.
package osinfo
