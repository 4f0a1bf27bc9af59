package execute

import (
	"fmt"
	"sort"
	"strings"
)

const (
	failureModeExitNameConstant          = "exit"
	failureModeStandardErrorNameConstant = "stderr"
	failureModeStandardOutNameConstant   = "stdout"
	failureModeOutputNameConstant        = "output"
	failureModeNormalNameConstant        = "normal"
	failureModeAllNameConstant           = "all"
	failureModeNoneNameConstant          = "none"
	unknownFailureModeTemplateConstant   = "unknown failure mode %q"
	failureModeJoinSeparatorConstant     = ","
)

// FailureMode names a trigger, or a shorthand union of triggers, that turns a
// completed execution into a failure.
type FailureMode string

// Supported failure modes.
const (
	FailureModeExit   FailureMode = FailureMode(failureModeExitNameConstant)
	FailureModeStderr FailureMode = FailureMode(failureModeStandardErrorNameConstant)
	FailureModeStdout FailureMode = FailureMode(failureModeStandardOutNameConstant)
	FailureModeOutput FailureMode = FailureMode(failureModeOutputNameConstant)
	FailureModeNormal FailureMode = FailureMode(failureModeNormalNameConstant)
	FailureModeAll    FailureMode = FailureMode(failureModeAllNameConstant)
	FailureModeNone   FailureMode = FailureMode(failureModeNoneNameConstant)
)

var recognizedFailureModes = map[FailureMode]struct{}{
	FailureModeExit:   {},
	FailureModeStderr: {},
	FailureModeStdout: {},
	FailureModeOutput: {},
	FailureModeNormal: {},
	FailureModeAll:    {},
	FailureModeNone:   {},
}

// ParseFailureMode converts a raw string into a FailureMode. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseFailureMode(rawMode string) (FailureMode, error) {
	normalizedMode := FailureMode(strings.ToLower(strings.TrimSpace(rawMode)))
	if _, recognized := recognizedFailureModes[normalizedMode]; !recognized {
		return FailureMode(""), fmt.Errorf(unknownFailureModeTemplateConstant, rawMode)
	}
	return normalizedMode, nil
}

// FailureModeSet is an unordered collection of failure modes.
type FailureModeSet struct {
	members map[FailureMode]struct{}
}

// NewFailureModeSet builds a set containing the provided modes.
func NewFailureModeSet(modes ...FailureMode) FailureModeSet {
	modeSet := FailureModeSet{members: map[FailureMode]struct{}{}}
	for _, mode := range modes {
		modeSet.members[mode] = struct{}{}
	}
	return modeSet
}

// ParseFailureModeSet converts raw strings into a FailureModeSet, rejecting
// unrecognized names.
func ParseFailureModeSet(rawModes []string) (FailureModeSet, error) {
	parsedModes := make([]FailureMode, 0, len(rawModes))
	for _, rawMode := range rawModes {
		parsedMode, parseError := ParseFailureMode(rawMode)
		if parseError != nil {
			return FailureModeSet{}, parseError
		}
		parsedModes = append(parsedModes, parsedMode)
	}
	return NewFailureModeSet(parsedModes...), nil
}

// Contains reports whether the set holds the given mode.
func (modeSet FailureModeSet) Contains(mode FailureMode) bool {
	_, present := modeSet.members[mode]
	return present
}

// IsEmpty reports whether no modes were configured.
func (modeSet FailureModeSet) IsEmpty() bool {
	return len(modeSet.members) == 0
}

// Members returns the configured modes sorted by name.
func (modeSet FailureModeSet) Members() []FailureMode {
	memberModes := make([]FailureMode, 0, len(modeSet.members))
	for mode := range modeSet.members {
		memberModes = append(memberModes, mode)
	}
	sort.Slice(memberModes, func(firstIndex int, secondIndex int) bool {
		return memberModes[firstIndex] < memberModes[secondIndex]
	})
	return memberModes
}

// String renders the sorted member names joined by commas.
func (modeSet FailureModeSet) String() string {
	memberNames := make([]string, 0, len(modeSet.members))
	for _, mode := range modeSet.Members() {
		memberNames = append(memberNames, string(mode))
	}
	return strings.Join(memberNames, failureModeJoinSeparatorConstant)
}

// primitiveTriggers is the fully expanded failure-trigger selection.
type primitiveTriggers struct {
	failOnExitCode       bool
	failOnStandardError  bool
	failOnStandardOutput bool
}

// expandPrimitives resolves shorthand modes into the primitive trigger set.
// An empty set expands to the NORMAL default (exit code plus stderr). The
// NONE override is handled by the caller before expansion.
func (modeSet FailureModeSet) expandPrimitives() primitiveTriggers {
	if modeSet.IsEmpty() {
		return primitiveTriggers{failOnExitCode: true, failOnStandardError: true}
	}

	expandedTriggers := primitiveTriggers{}
	for mode := range modeSet.members {
		switch mode {
		case FailureModeExit:
			expandedTriggers.failOnExitCode = true
		case FailureModeStderr:
			expandedTriggers.failOnStandardError = true
		case FailureModeStdout:
			expandedTriggers.failOnStandardOutput = true
		case FailureModeOutput:
			expandedTriggers.failOnStandardOutput = true
			expandedTriggers.failOnStandardError = true
		case FailureModeNormal:
			expandedTriggers.failOnExitCode = true
			expandedTriggers.failOnStandardError = true
		case FailureModeAll:
			expandedTriggers.failOnExitCode = true
			expandedTriggers.failOnStandardError = true
			expandedTriggers.failOnStandardOutput = true
		}
	}
	return expandedTriggers
}
