// Package classify labels user prompts by the kind of preference signal
// they carry. Corrections ("no, use camelCase") are rarer and more
// information-dense than broad instructions ("always use TypeScript"),
// so correction rules are evaluated first and must not be shadowed by
// an instruction rule matching the same text.
package classify

import "regexp"

// PromptType labels the signal a prompt carries.
type PromptType string

const (
	// TypeCorrection marks a prompt that corrects or reverses prior work,
	// revealing an implicit preference.
	TypeCorrection PromptType = "correction"

	// TypeInstruction marks an explicit directive or stated preference.
	TypeInstruction PromptType = "instruction"

	// TypeGeneral is the fallback for everything else.
	TypeGeneral PromptType = "general"
)

// promptRule pairs a compiled regex with the type it detects.
// Rules are evaluated in order; the first match wins.
type promptRule struct {
	regex *regexp.Regexp
	ptype PromptType
}

// correctionRules detect a change of mind or a reversal. Listed before
// instruction rules so that "actually, always use tabs" classifies as a
// correction, not an instruction.
var correctionRules = []*promptRule{
	{regexp.MustCompile(`(?i)^no[,\s]`), TypeCorrection},
	{regexp.MustCompile(`(?i)^actually[,\s]`), TypeCorrection},
	{regexp.MustCompile(`(?i)^wait[,\s]`), TypeCorrection},
	{regexp.MustCompile(`(?i)^sorry[,\s]`), TypeCorrection},
	{regexp.MustCompile(`(?i)change (this|that|it) to`), TypeCorrection},
	{regexp.MustCompile(`(?i)instead[,\s]`), TypeCorrection},
	{regexp.MustCompile(`(?i)^not? like that`), TypeCorrection},
	{regexp.MustCompile(`(?i)i meant`), TypeCorrection},
	{regexp.MustCompile(`(?i)that's not (right|correct|what i)`), TypeCorrection},
	{regexp.MustCompile(`(?i)^undo`), TypeCorrection},
	{regexp.MustCompile(`(?i)^revert`), TypeCorrection},
	{regexp.MustCompile(`(?i)go back to`), TypeCorrection},
}

// instructionRules detect explicit directives and stated preferences.
var instructionRules = []*promptRule{
	{regexp.MustCompile(`(?i)always\s`), TypeInstruction},
	{regexp.MustCompile(`(?i)never\s`), TypeInstruction},
	{regexp.MustCompile(`(?i)make sure (to|you)`), TypeInstruction},
	{regexp.MustCompile(`(?i)don't forget`), TypeInstruction},
	{regexp.MustCompile(`(?i)remember to`), TypeInstruction},
	{regexp.MustCompile(`(?i)prefer\s`), TypeInstruction},
	{regexp.MustCompile(`(?i)use\s+\w+\s+instead of`), TypeInstruction},
	{regexp.MustCompile(`(?i)i (like|want|prefer)`), TypeInstruction},
	{regexp.MustCompile(`(?i)(should|must) (be|have|use)`), TypeInstruction},
}

// Classify returns the prompt type for the given text. Pure and
// deterministic: correction rules are checked before instruction rules,
// first match anywhere in the text wins, and empty text is always
// general without evaluating any rule.
func Classify(text string) PromptType {
	if text == "" {
		return TypeGeneral
	}

	for _, rule := range correctionRules {
		if rule.regex.MatchString(text) {
			return rule.ptype
		}
	}

	for _, rule := range instructionRules {
		if rule.regex.MatchString(text) {
			return rule.ptype
		}
	}

	return TypeGeneral
}
