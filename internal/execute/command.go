package execute

import "strings"

const commandTokenJoinSeparatorConstant = " "

// CommandSpec holds the executable and its arguments as an ordered token
// vector. The first token names the executable; the remainder are passed to
// it verbatim without shell interpretation.
type CommandSpec struct {
	tokens []string
}

// NewCommandSpec builds a CommandSpec from the provided tokens.
func NewCommandSpec(tokens ...string) CommandSpec {
	duplicatedTokens := make([]string, len(tokens))
	copy(duplicatedTokens, tokens)
	return CommandSpec{tokens: duplicatedTokens}
}

// Tokens returns a copy of the full token vector in configuration order.
func (specification CommandSpec) Tokens() []string {
	duplicatedTokens := make([]string, len(specification.tokens))
	copy(duplicatedTokens, specification.tokens)
	return duplicatedTokens
}

// Executable returns the first token or an empty string for an empty spec.
func (specification CommandSpec) Executable() string {
	if len(specification.tokens) == 0 {
		return ""
	}
	return specification.tokens[0]
}

// Arguments returns a copy of every token after the executable.
func (specification CommandSpec) Arguments() []string {
	if len(specification.tokens) <= 1 {
		return nil
	}
	duplicatedArguments := make([]string, len(specification.tokens)-1)
	copy(duplicatedArguments, specification.tokens[1:])
	return duplicatedArguments
}

// IsEmpty reports whether no tokens were configured.
func (specification CommandSpec) IsEmpty() bool {
	return len(specification.tokens) == 0
}

// String renders the token vector as a space-joined command line label.
func (specification CommandSpec) String() string {
	return strings.Join(specification.tokens, commandTokenJoinSeparatorConstant)
}
