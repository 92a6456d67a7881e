package settings

import (
	"fmt"

	"github.com/temirov/gitbatch/internal/batching"
	"github.com/temirov/gitbatch/internal/profiles"
	"github.com/temirov/gitbatch/internal/utils/flags"
)

const profileCatalogUnavailableTemplateConstant = "%w %q (no profiles loaded)"

// ProfileLookup resolves named batch profiles.
type ProfileLookup interface {
	Lookup(name string) (profiles.Profile, error)
}

// Resolved holds the effective settings for a single command run.
type Resolved struct {
	Batching        batching.Configuration
	ExcludePatterns []string
	CommitMessage   string
	ProfileName     string
}

// Resolve applies, in increasing precedence, the loaded configuration, the selected profile, and explicit
// command-line overrides. Exclude patterns accumulate across all three sources. The resulting batch
// configuration is validated.
func Resolve(configuration Configuration, overrides flags.BatchFlagOverrides, lookup ProfileLookup) (Resolved, error) {
	sanitized := configuration.Sanitize()

	batchSize := sanitized.Batch.Size
	delayMilliseconds := sanitized.Batch.DelayMilliseconds
	excludePatterns := append([]string{}, sanitized.Discovery.Exclude...)

	profileName := sanitized.Batch.Profile
	if overrides.Profile != nil {
		profileName = *overrides.Profile
	}
	profileName = sanitizeProfileName(profileName)

	if len(profileName) > 0 {
		if lookup == nil {
			return Resolved{}, fmt.Errorf(profileCatalogUnavailableTemplateConstant, profiles.ErrUnknownProfile, profileName)
		}
		profile, lookupError := lookup.Lookup(profileName)
		if lookupError != nil {
			return Resolved{}, lookupError
		}
		batchSize = profile.BatchSize
		delayMilliseconds = profile.DelayMilliseconds
		excludePatterns = append(excludePatterns, profile.Exclude...)
	}

	if overrides.DelayMilliseconds != nil {
		delayMilliseconds = *overrides.DelayMilliseconds
	}
	delay, delayError := batching.DelayFromMilliseconds(delayMilliseconds)
	if delayError != nil {
		return Resolved{}, delayError
	}

	resolvedBatching := batching.Configuration{
		BatchSize: batchSize,
		Delay:     delay,
		Verbose:   sanitized.Batch.Verbose,
		DryRun:    sanitized.Batch.DryRun,
	}
	if overrides.BatchSize != nil {
		resolvedBatching.BatchSize = *overrides.BatchSize
	}
	if overrides.Verbose != nil {
		resolvedBatching.Verbose = *overrides.Verbose
	}
	if overrides.DryRun != nil {
		resolvedBatching.DryRun = *overrides.DryRun
	}
	excludePatterns = append(excludePatterns, sanitizePatterns(overrides.Exclude)...)

	if validationError := resolvedBatching.Validate(); validationError != nil {
		return Resolved{}, validationError
	}

	commitMessage := sanitized.Commit.Message
	if len(commitMessage) == 0 {
		commitMessage = DefaultCommitMessage
	}

	return Resolved{
		Batching:        resolvedBatching,
		ExcludePatterns: excludePatterns,
		CommitMessage:   commitMessage,
		ProfileName:     profileName,
	}, nil
}
