// Package flags provides helpers for binding the shared batch flags to Cobra commands.
package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	// BatchSizeFlagName exposes the batch size flag name.
	BatchSizeFlagName = "batch-size"
	// BatchSizeFlagUsage describes the batch size flag purpose.
	BatchSizeFlagUsage = "Number of files staged per batch"
	// DelayFlagName exposes the inter-batch delay flag name.
	DelayFlagName = "delay"
	// DelayFlagUsage describes the inter-batch delay flag purpose.
	DelayFlagUsage = "Milliseconds to wait between batches"
	// VerboseFlagName exposes the verbose flag name.
	VerboseFlagName = "verbose"
	// VerboseFlagShorthand provides the shorthand for the verbose flag.
	VerboseFlagShorthand = "v"
	// VerboseFlagUsage describes the verbose flag purpose.
	VerboseFlagUsage = "Report progress for every batch"
	// DryRunFlagName exposes the dry-run flag name.
	DryRunFlagName = "dry-run"
	// DryRunFlagUsage describes the dry-run flag purpose.
	DryRunFlagUsage = "Preview batches without staging or committing"
	// ProfileFlagName exposes the batch profile flag name.
	ProfileFlagName = "profile"
	// ExcludeFlagName exposes the exclude pattern flag name.
	ExcludeFlagName = "exclude"
	// ExcludeFlagUsage describes the exclude pattern flag purpose.
	ExcludeFlagUsage = "Substring or glob pattern of paths to skip (repeatable)"
)

// FlagDefinition captures a single flag's configuration.
type FlagDefinition struct {
	Name      string
	Usage     string
	Shorthand string
	Enabled   bool
}

// BatchFlagDefinitions groups the batch flag definitions a command exposes.
type BatchFlagDefinitions struct {
	BatchSize FlagDefinition
	Delay     FlagDefinition
	Verbose   FlagDefinition
	DryRun    FlagDefinition
	Profile   FlagDefinition
	Exclude   FlagDefinition
}

// BatchFlagOverrides holds the flags explicitly set on the command line. Nil fields were not provided.
type BatchFlagOverrides struct {
	BatchSize         *int
	DelayMilliseconds *int
	Verbose           *bool
	DryRun            *bool
	Profile           *string
	Exclude           []string
}

// StagingFlagDefinitions enables every batch flag, as used by the add and commit commands.
func StagingFlagDefinitions(profileUsage string) BatchFlagDefinitions {
	return BatchFlagDefinitions{
		BatchSize: FlagDefinition{Name: BatchSizeFlagName, Usage: BatchSizeFlagUsage, Enabled: true},
		Delay:     FlagDefinition{Name: DelayFlagName, Usage: DelayFlagUsage, Enabled: true},
		Verbose:   FlagDefinition{Name: VerboseFlagName, Usage: VerboseFlagUsage, Shorthand: VerboseFlagShorthand, Enabled: true},
		DryRun:    FlagDefinition{Name: DryRunFlagName, Usage: DryRunFlagUsage, Enabled: true},
		Profile:   FlagDefinition{Name: ProfileFlagName, Usage: profileUsage, Enabled: true},
		Exclude:   FlagDefinition{Name: ExcludeFlagName, Usage: ExcludeFlagUsage, Enabled: true},
	}
}

// AnalysisFlagDefinitions enables the flags that influence status analysis.
func AnalysisFlagDefinitions(profileUsage string) BatchFlagDefinitions {
	return BatchFlagDefinitions{
		BatchSize: FlagDefinition{Name: BatchSizeFlagName, Usage: BatchSizeFlagUsage, Enabled: true},
		Verbose:   FlagDefinition{Name: VerboseFlagName, Usage: "List every changed file", Shorthand: VerboseFlagShorthand, Enabled: true},
		Profile:   FlagDefinition{Name: ProfileFlagName, Usage: profileUsage, Enabled: true},
	}
}

// BindBatchFlags attaches the enabled batch flags to the command's local flag set.
// Defaults are zero values; configuration supplies the effective defaults and only changed flags override it.
func BindBatchFlags(command *cobra.Command, definitions BatchFlagDefinitions) {
	if command == nil {
		return
	}

	flagSet := command.Flags()
	if isBindable(definitions.BatchSize) {
		flagSet.IntP(definitions.BatchSize.Name, definitions.BatchSize.Shorthand, 0, definitions.BatchSize.Usage)
	}
	if isBindable(definitions.Delay) {
		flagSet.IntP(definitions.Delay.Name, definitions.Delay.Shorthand, 0, definitions.Delay.Usage)
	}
	if isBindable(definitions.Verbose) {
		flagSet.BoolP(definitions.Verbose.Name, definitions.Verbose.Shorthand, false, definitions.Verbose.Usage)
	}
	if isBindable(definitions.DryRun) {
		flagSet.BoolP(definitions.DryRun.Name, definitions.DryRun.Shorthand, false, definitions.DryRun.Usage)
	}
	if isBindable(definitions.Profile) {
		flagSet.StringP(definitions.Profile.Name, definitions.Profile.Shorthand, "", definitions.Profile.Usage)
	}
	if isBindable(definitions.Exclude) {
		flagSet.StringSliceP(definitions.Exclude.Name, definitions.Exclude.Shorthand, nil, definitions.Exclude.Usage)
	}
}

// ReadBatchFlagOverrides collects the batch flags the user explicitly set.
func ReadBatchFlagOverrides(command *cobra.Command) (BatchFlagOverrides, error) {
	overrides := BatchFlagOverrides{}
	if command == nil {
		return overrides, nil
	}

	flagSet := command.Flags()
	var readError error
	if overrides.BatchSize, readError = changedValue(flagSet, BatchSizeFlagName, flagSet.GetInt); readError != nil {
		return BatchFlagOverrides{}, readError
	}
	if overrides.DelayMilliseconds, readError = changedValue(flagSet, DelayFlagName, flagSet.GetInt); readError != nil {
		return BatchFlagOverrides{}, readError
	}
	if overrides.Verbose, readError = changedValue(flagSet, VerboseFlagName, flagSet.GetBool); readError != nil {
		return BatchFlagOverrides{}, readError
	}
	if overrides.DryRun, readError = changedValue(flagSet, DryRunFlagName, flagSet.GetBool); readError != nil {
		return BatchFlagOverrides{}, readError
	}
	if overrides.Profile, readError = changedValue(flagSet, ProfileFlagName, flagSet.GetString); readError != nil {
		return BatchFlagOverrides{}, readError
	}

	excludePatterns, excludeError := changedValue(flagSet, ExcludeFlagName, flagSet.GetStringSlice)
	if excludeError != nil {
		return BatchFlagOverrides{}, excludeError
	}
	if excludePatterns != nil {
		overrides.Exclude = *excludePatterns
	}

	return overrides, nil
}

func isBindable(definition FlagDefinition) bool {
	return definition.Enabled && len(definition.Name) > 0
}

func changedValue[T any](flagSet *pflag.FlagSet, flagName string, getter func(string) (T, error)) (*T, error) {
	if flagSet.Lookup(flagName) == nil || !flagSet.Changed(flagName) {
		return nil, nil
	}
	value, getError := getter(flagName)
	if getError != nil {
		return nil, getError
	}
	return &value, nil
}
