package osinfo

import "strings"

const (
	darwinSubstringConstant   = "darwin"
	macSubstringConstant      = "mac"
	osxSubstringConstant      = "os x"
	cygwinSubstringConstant   = "cygwin"
	mingwSubstringConstant    = "mingw"
	msysSubstringConstant     = "msys"
	windowsSubstringConstant  = "win"
	linuxSubstringConstant    = "linux"
	aixSubstringConstant      = "aix"
	freeBSDSubstringConstant  = "freebsd"
	openVMSSubstringConstant  = "openvms"
	solarisSubstringConstant  = "solaris"
	sunOSSubstringConstant    = "sunos"
	unknownFamilyNameConstant = "unknown"
)

// PlatformFamily identifies a coarse operating system classification.
type PlatformFamily string

// Supported platform families.
const (
	PlatformFamilyLinux   PlatformFamily = "linux"
	PlatformFamilyMacOS   PlatformFamily = "macos"
	PlatformFamilyWindows PlatformFamily = "windows"
	PlatformFamilyAix     PlatformFamily = "aix"
	PlatformFamilyCygwin  PlatformFamily = "cygwin"
	PlatformFamilyFreeBSD PlatformFamily = "freebsd"
	PlatformFamilyMingw   PlatformFamily = "mingw"
	PlatformFamilyOpenVMS PlatformFamily = "openvms"
	PlatformFamilySolaris PlatformFamily = "solaris"
	PlatformFamilyUnknown PlatformFamily = PlatformFamily(unknownFamilyNameConstant)
)

// classificationRule associates an operating system name substring with a platform family.
type classificationRule struct {
	substring string
	family    PlatformFamily
}

// classificationRules are evaluated in order; earlier rules win so that names
// containing "darwin", "cygwin", or "mingw" never classify as Windows through
// their embedded "win" fragment.
var classificationRules = []classificationRule{
	{substring: darwinSubstringConstant, family: PlatformFamilyMacOS},
	{substring: macSubstringConstant, family: PlatformFamilyMacOS},
	{substring: osxSubstringConstant, family: PlatformFamilyMacOS},
	{substring: cygwinSubstringConstant, family: PlatformFamilyCygwin},
	{substring: mingwSubstringConstant, family: PlatformFamilyMingw},
	{substring: msysSubstringConstant, family: PlatformFamilyMingw},
	{substring: windowsSubstringConstant, family: PlatformFamilyWindows},
	{substring: linuxSubstringConstant, family: PlatformFamilyLinux},
	{substring: aixSubstringConstant, family: PlatformFamilyAix},
	{substring: freeBSDSubstringConstant, family: PlatformFamilyFreeBSD},
	{substring: openVMSSubstringConstant, family: PlatformFamilyOpenVMS},
	{substring: solarisSubstringConstant, family: PlatformFamilySolaris},
	{substring: sunOSSubstringConstant, family: PlatformFamilySolaris},
}

// unixPlatformFamilies enumerates the families treated as Unix-like systems.
var unixPlatformFamilies = map[PlatformFamily]struct{}{
	PlatformFamilyLinux:   {},
	PlatformFamilyMacOS:   {},
	PlatformFamilyAix:     {},
	PlatformFamilyFreeBSD: {},
	PlatformFamilySolaris: {},
}

// Classify maps a raw operating system name to its platform family. The match
// is case-insensitive and substring-based; empty or unrecognized names
// classify as PlatformFamilyUnknown.
func Classify(rawOperatingSystemName string) PlatformFamily {
	normalizedName := strings.ToLower(strings.TrimSpace(rawOperatingSystemName))
	if len(normalizedName) == 0 {
		return PlatformFamilyUnknown
	}

	for _, rule := range classificationRules {
		if strings.Contains(normalizedName, rule.substring) {
			return rule.family
		}
	}

	return PlatformFamilyUnknown
}

// IsLinux reports whether the family is Linux.
func (family PlatformFamily) IsLinux() bool {
	return family == PlatformFamilyLinux
}

// IsMacOS reports whether the family is macOS.
func (family PlatformFamily) IsMacOS() bool {
	return family == PlatformFamilyMacOS
}

// IsWindows reports whether the family is Windows.
func (family PlatformFamily) IsWindows() bool {
	return family == PlatformFamilyWindows
}

// IsAix reports whether the family is AIX.
func (family PlatformFamily) IsAix() bool {
	return family == PlatformFamilyAix
}

// IsCygwin reports whether the family is Cygwin.
func (family PlatformFamily) IsCygwin() bool {
	return family == PlatformFamilyCygwin
}

// IsFreeBSD reports whether the family is FreeBSD.
func (family PlatformFamily) IsFreeBSD() bool {
	return family == PlatformFamilyFreeBSD
}

// IsMingw reports whether the family is MinGW.
func (family PlatformFamily) IsMingw() bool {
	return family == PlatformFamilyMingw
}

// IsOpenVMS reports whether the family is OpenVMS.
func (family PlatformFamily) IsOpenVMS() bool {
	return family == PlatformFamilyOpenVMS
}

// IsSolaris reports whether the family is Solaris.
func (family PlatformFamily) IsSolaris() bool {
	return family == PlatformFamilySolaris
}

// IsUnknown reports whether the family could not be classified.
func (family PlatformFamily) IsUnknown() bool {
	return family == PlatformFamilyUnknown
}

// IsUnixFamily reports whether the family belongs to the Unix-like group.
func (family PlatformFamily) IsUnixFamily() bool {
	_, isUnix := unixPlatformFamilies[family]
	return isUnix
}
