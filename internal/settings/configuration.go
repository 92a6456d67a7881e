package settings

import (
	"strings"

	"github.com/temirov/gitbatch/internal/batching"
)

// DefaultCommitMessage is the base commit message when none is configured or supplied.
const DefaultCommitMessage = "Batch commit"

const (
	batchConfigurationKeyConstant     = "batch"
	discoveryConfigurationKeyConstant = "discovery"
	commitConfigurationKeyConstant    = "commit"
	configurationKeySeparatorConstant = "."
	batchSizeKeyConstant              = "size"
	batchDelayKeyConstant             = "delay_ms"
	batchVerboseKeyConstant           = "verbose"
	batchDryRunKeyConstant            = "dry_run"
	batchProfileKeyConstant           = "profile"
	batchProfilesFileKeyConstant      = "profiles_file"
	discoveryExcludeKeyConstant       = "exclude"
	commitMessageKeyConstant          = "message"
)

// Configuration groups the batch, discovery, and commit sections.
type Configuration struct {
	Batch     BatchConfiguration     `mapstructure:"batch"`
	Discovery DiscoveryConfiguration `mapstructure:"discovery"`
	Commit    CommitConfiguration    `mapstructure:"commit"`
}

// BatchConfiguration captures batch scheduling values.
type BatchConfiguration struct {
	Size              int    `mapstructure:"size"`
	DelayMilliseconds int    `mapstructure:"delay_ms"`
	Verbose           bool   `mapstructure:"verbose"`
	DryRun            bool   `mapstructure:"dry_run"`
	Profile           string `mapstructure:"profile"`
	ProfilesFile      string `mapstructure:"profiles_file"`
}

// DiscoveryConfiguration captures file discovery values.
type DiscoveryConfiguration struct {
	Exclude []string `mapstructure:"exclude"`
}

// CommitConfiguration captures commit values.
type CommitConfiguration struct {
	Message string `mapstructure:"message"`
}

// DefaultConfiguration provides baseline configuration values.
func DefaultConfiguration() Configuration {
	return Configuration{
		Batch: BatchConfiguration{
			Size:              batching.DefaultBatchSize,
			DelayMilliseconds: batching.DefaultDelayMilliseconds,
		},
		Discovery: DiscoveryConfiguration{Exclude: []string{}},
		Commit:    CommitConfiguration{Message: DefaultCommitMessage},
	}
}

// DefaultConfigurationValues flattens DefaultConfiguration into configuration keys for the loader.
func DefaultConfigurationValues() map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		joinKey(batchConfigurationKeyConstant, batchSizeKeyConstant):            defaults.Batch.Size,
		joinKey(batchConfigurationKeyConstant, batchDelayKeyConstant):           defaults.Batch.DelayMilliseconds,
		joinKey(batchConfigurationKeyConstant, batchVerboseKeyConstant):         defaults.Batch.Verbose,
		joinKey(batchConfigurationKeyConstant, batchDryRunKeyConstant):          defaults.Batch.DryRun,
		joinKey(batchConfigurationKeyConstant, batchProfileKeyConstant):         defaults.Batch.Profile,
		joinKey(batchConfigurationKeyConstant, batchProfilesFileKeyConstant):    defaults.Batch.ProfilesFile,
		joinKey(discoveryConfigurationKeyConstant, discoveryExcludeKeyConstant): defaults.Discovery.Exclude,
		joinKey(commitConfigurationKeyConstant, commitMessageKeyConstant):       defaults.Commit.Message,
	}
}

// Sanitize trims textual values and drops blank exclude patterns without applying implicit defaults.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration
	sanitized.Batch.Profile = strings.TrimSpace(configuration.Batch.Profile)
	sanitized.Batch.ProfilesFile = strings.TrimSpace(configuration.Batch.ProfilesFile)
	sanitized.Discovery.Exclude = sanitizePatterns(configuration.Discovery.Exclude)
	sanitized.Commit.Message = strings.TrimSpace(configuration.Commit.Message)
	return sanitized
}

func sanitizePatterns(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for _, candidate := range raw {
		trimmed := strings.TrimSpace(candidate)
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}

func joinKey(section string, key string) string {
	return section + configurationKeySeparatorConstant + key
}

func sanitizeProfileName(name string) string {
	return strings.TrimSpace(name)
}
