package osinfo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rife2/bld-exec/internal/osinfo"
)

const (
	testDarwinCaseNameConstant         = "darwin"
	testMacOSXCaseNameConstant         = "mac_os_x"
	testWindowsElevenCaseNameConstant  = "windows_11"
	testLinuxCaseNameConstant          = "linux"
	testFreeBSDUnixCaseNameConstant    = "freebsd_unix"
	testCygwinCaseNameConstant         = "cygwin"
	testMingwCaseNameConstant          = "mingw"
	testAixCaseNameConstant            = "aix"
	testOpenVMSCaseNameConstant        = "openvms"
	testSolarisCaseNameConstant        = "solaris"
	testSunOSCaseNameConstant          = "sunos"
	testEmptyNameCaseNameConstant      = "empty_name"
	testUnrecognizedCaseNameConstant   = "unrecognized_name"
	testMixedCaseNameConstant          = "mixed_case_windows"
	testWhitespacePaddedCaseConstant   = "whitespace_padded"
	testUnrecognizedPlatformConstant   = "plan9"
	testWhitespacePaddedValueConstant  = "  Linux  "
	testMixedCaseWindowsValueConstant  = "WiNdOwS Server 2022"
	testDarwinValueConstant            = "Darwin"
	testMacOSXValueConstant            = "Mac OS X"
	testWindowsElevenValueConstant     = "windows 11"
	testLinuxValueConstant             = "linux"
	testFreeBSDUnixValueConstant       = "freebsd unix"
	testCygwinValueConstant            = "cygwin under windows"
	testMingwValueConstant             = "mingw32"
	testAixValueConstant               = "AIX"
	testOpenVMSValueConstant           = "OpenVMS V8.4"
	testSolarisValueConstant           = "Solaris 11"
	testSunOSValueConstant             = "SunOS 5.11"
	testEmptyOperatingSystemConstant   = ""
	allFamilyPredicateCountExpectation = 10
)

func TestClassify(testInstance *testing.T) {
	testCases := []struct {
		name           string
		rawName        string
		expectedFamily osinfo.PlatformFamily
	}{
		{name: testDarwinCaseNameConstant, rawName: testDarwinValueConstant, expectedFamily: osinfo.PlatformFamilyMacOS},
		{name: testMacOSXCaseNameConstant, rawName: testMacOSXValueConstant, expectedFamily: osinfo.PlatformFamilyMacOS},
		{name: testWindowsElevenCaseNameConstant, rawName: testWindowsElevenValueConstant, expectedFamily: osinfo.PlatformFamilyWindows},
		{name: testLinuxCaseNameConstant, rawName: testLinuxValueConstant, expectedFamily: osinfo.PlatformFamilyLinux},
		{name: testFreeBSDUnixCaseNameConstant, rawName: testFreeBSDUnixValueConstant, expectedFamily: osinfo.PlatformFamilyFreeBSD},
		{name: testCygwinCaseNameConstant, rawName: testCygwinValueConstant, expectedFamily: osinfo.PlatformFamilyCygwin},
		{name: testMingwCaseNameConstant, rawName: testMingwValueConstant, expectedFamily: osinfo.PlatformFamilyMingw},
		{name: testAixCaseNameConstant, rawName: testAixValueConstant, expectedFamily: osinfo.PlatformFamilyAix},
		{name: testOpenVMSCaseNameConstant, rawName: testOpenVMSValueConstant, expectedFamily: osinfo.PlatformFamilyOpenVMS},
		{name: testSolarisCaseNameConstant, rawName: testSolarisValueConstant, expectedFamily: osinfo.PlatformFamilySolaris},
		{name: testSunOSCaseNameConstant, rawName: testSunOSValueConstant, expectedFamily: osinfo.PlatformFamilySolaris},
		{name: testEmptyNameCaseNameConstant, rawName: testEmptyOperatingSystemConstant, expectedFamily: osinfo.PlatformFamilyUnknown},
		{name: testUnrecognizedCaseNameConstant, rawName: testUnrecognizedPlatformConstant, expectedFamily: osinfo.PlatformFamilyUnknown},
		{name: testMixedCaseNameConstant, rawName: testMixedCaseWindowsValueConstant, expectedFamily: osinfo.PlatformFamilyWindows},
		{name: testWhitespacePaddedCaseConstant, rawName: testWhitespacePaddedValueConstant, expectedFamily: osinfo.PlatformFamilyLinux},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			classifiedFamily := osinfo.Classify(testCase.rawName)
			require.Equal(testInstance, testCase.expectedFamily, classifiedFamily)
		})
	}
}

func TestClassifyExactlyOnePredicateMatches(testInstance *testing.T) {
	rawNames := []string{
		testDarwinValueConstant,
		testWindowsElevenValueConstant,
		testLinuxValueConstant,
		testFreeBSDUnixValueConstant,
		testCygwinValueConstant,
		testMingwValueConstant,
		testAixValueConstant,
		testOpenVMSValueConstant,
		testSolarisValueConstant,
	}

	for _, rawName := range rawNames {
		testInstance.Run(rawName, func(testInstance *testing.T) {
			classifiedFamily := osinfo.Classify(rawName)
			predicates := []bool{
				classifiedFamily.IsLinux(),
				classifiedFamily.IsMacOS(),
				classifiedFamily.IsWindows(),
				classifiedFamily.IsAix(),
				classifiedFamily.IsCygwin(),
				classifiedFamily.IsFreeBSD(),
				classifiedFamily.IsMingw(),
				classifiedFamily.IsOpenVMS(),
				classifiedFamily.IsSolaris(),
				classifiedFamily.IsUnknown(),
			}
			require.Len(testInstance, predicates, allFamilyPredicateCountExpectation)

			matchedPredicateCount := 0
			for _, predicateValue := range predicates {
				if predicateValue {
					matchedPredicateCount++
				}
			}
			require.Equal(testInstance, 1, matchedPredicateCount)
		})
	}
}

func TestClassifyUnknownSatisfiesNoFamilyPredicate(testInstance *testing.T) {
	classifiedFamily := osinfo.Classify(testEmptyOperatingSystemConstant)

	require.True(testInstance, classifiedFamily.IsUnknown())
	require.False(testInstance, classifiedFamily.IsLinux())
	require.False(testInstance, classifiedFamily.IsMacOS())
	require.False(testInstance, classifiedFamily.IsWindows())
	require.False(testInstance, classifiedFamily.IsAix())
	require.False(testInstance, classifiedFamily.IsCygwin())
	require.False(testInstance, classifiedFamily.IsFreeBSD())
	require.False(testInstance, classifiedFamily.IsMingw())
	require.False(testInstance, classifiedFamily.IsOpenVMS())
	require.False(testInstance, classifiedFamily.IsSolaris())
	require.False(testInstance, classifiedFamily.IsUnixFamily())
}

func TestDarwinNeverClassifiesAsWindows(testInstance *testing.T) {
	classifiedFamily := osinfo.Classify(testDarwinValueConstant)

	require.True(testInstance, classifiedFamily.IsMacOS())
	require.False(testInstance, classifiedFamily.IsWindows())
}

func TestUnixFamilyMembership(testInstance *testing.T) {
	testCases := []struct {
		name         string
		family       osinfo.PlatformFamily
		expectedUnix bool
	}{
		{name: string(osinfo.PlatformFamilyLinux), family: osinfo.PlatformFamilyLinux, expectedUnix: true},
		{name: string(osinfo.PlatformFamilyMacOS), family: osinfo.PlatformFamilyMacOS, expectedUnix: true},
		{name: string(osinfo.PlatformFamilyFreeBSD), family: osinfo.PlatformFamilyFreeBSD, expectedUnix: true},
		{name: string(osinfo.PlatformFamilyAix), family: osinfo.PlatformFamilyAix, expectedUnix: true},
		{name: string(osinfo.PlatformFamilySolaris), family: osinfo.PlatformFamilySolaris, expectedUnix: true},
		{name: string(osinfo.PlatformFamilyWindows), family: osinfo.PlatformFamilyWindows, expectedUnix: false},
		{name: string(osinfo.PlatformFamilyCygwin), family: osinfo.PlatformFamilyCygwin, expectedUnix: false},
		{name: string(osinfo.PlatformFamilyMingw), family: osinfo.PlatformFamilyMingw, expectedUnix: false},
		{name: string(osinfo.PlatformFamilyOpenVMS), family: osinfo.PlatformFamilyOpenVMS, expectedUnix: false},
		{name: string(osinfo.PlatformFamilyUnknown), family: osinfo.PlatformFamilyUnknown, expectedUnix: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedUnix, testCase.family.IsUnixFamily())
		})
	}
}
