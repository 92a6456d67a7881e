package profiles

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/temirov/gitbatch/internal/utils"
)

const (
	unknownProfileMessageConstant           = "unknown batch profile"
	unknownProfileTemplateConstant          = "%w %q (available: %s)"
	profileNameRequiredMessageConstant      = "batch profile names must be non-empty"
	duplicateProfileTemplateConstant        = "batch profile %q is defined more than once"
	invalidProfileBatchSizeTemplateConstant = "batch profile %q must use a batch size of at least 1, got %d"
	invalidProfileDelayTemplateConstant     = "batch profile %q must not use a negative delay, got %d"
	catalogParseErrorTemplateConstant       = "failed to parse batch profiles: %w"
	catalogLoadErrorTemplateConstant        = "failed to load batch profiles from %s: %w"
	profilesFieldNameConstant               = "profiles"
	profileNameSeparatorConstant            = ", "
)

//go:embed profiles.json
var embeddedProfilesContent []byte

// ErrUnknownProfile indicates a lookup for a profile the catalog does not define.
var ErrUnknownProfile = errors.New(unknownProfileMessageConstant)

// Profile describes a named batch profile.
type Profile struct {
	Name              string   `mapstructure:"name"`
	Description       string   `mapstructure:"description"`
	BatchSize         int      `mapstructure:"batch_size"`
	DelayMilliseconds int      `mapstructure:"delay_ms"`
	Exclude           []string `mapstructure:"exclude"`
}

type profileDocument struct {
	Profiles []Profile `mapstructure:"profiles"`
}

// Catalog holds profiles in definition order.
type Catalog struct {
	profiles []Profile
	lookup   map[string]int
}

// BuiltinCatalog returns the embedded profiles.
func BuiltinCatalog() (*Catalog, error) {
	return ParseCatalog(embeddedProfilesContent)
}

// LoadCatalogFile reads a YAML or JSON profile file from disk.
func LoadCatalogFile(filePath string) (*Catalog, error) {
	trimmedPath := strings.TrimSpace(filePath)
	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return nil, fmt.Errorf(catalogLoadErrorTemplateConstant, trimmedPath, readError)
	}

	catalog, parseError := ParseCatalog(contentBytes)
	if parseError != nil {
		return nil, fmt.Errorf(catalogLoadErrorTemplateConstant, trimmedPath, parseError)
	}
	return catalog, nil
}

// ParseCatalog decodes a profile document. The document is either a top-level list of profiles or a mapping
// with a profiles key. Numbers may be given as strings and exclude patterns as a comma-separated string.
func ParseCatalog(content []byte) (*Catalog, error) {
	var rawDocument any
	if unmarshalError := yaml.Unmarshal(content, &rawDocument); unmarshalError != nil {
		return nil, fmt.Errorf(catalogParseErrorTemplateConstant, unmarshalError)
	}

	if rawProfiles, isList := rawDocument.([]any); isList {
		rawDocument = map[string]any{profilesFieldNameConstant: rawProfiles}
	}

	var document profileDocument
	if rawDocument != nil {
		if decodeError := utils.DecodeConfigurationMap(rawDocument, &document); decodeError != nil {
			return nil, fmt.Errorf(catalogParseErrorTemplateConstant, decodeError)
		}
	}

	return newCatalog(document.Profiles)
}

func newCatalog(definitions []Profile) (*Catalog, error) {
	catalog := &Catalog{
		profiles: make([]Profile, 0, len(definitions)),
		lookup:   make(map[string]int, len(definitions)),
	}

	for _, definition := range definitions {
		profile := definition.sanitize()
		if len(profile.Name) == 0 {
			return nil, errors.New(profileNameRequiredMessageConstant)
		}
		if _, exists := catalog.lookup[profile.Name]; exists {
			return nil, fmt.Errorf(duplicateProfileTemplateConstant, profile.Name)
		}
		if profile.BatchSize < 1 {
			return nil, fmt.Errorf(invalidProfileBatchSizeTemplateConstant, profile.Name, profile.BatchSize)
		}
		if profile.DelayMilliseconds < 0 {
			return nil, fmt.Errorf(invalidProfileDelayTemplateConstant, profile.Name, profile.DelayMilliseconds)
		}

		catalog.lookup[profile.Name] = len(catalog.profiles)
		catalog.profiles = append(catalog.profiles, profile)
	}

	return catalog, nil
}

// Merge returns a catalog containing the receiver's profiles with overrides applied. Profiles sharing a name
// replace the receiver's definition in place; new names are appended.
func (catalog *Catalog) Merge(overrides *Catalog) *Catalog {
	merged := &Catalog{
		profiles: append([]Profile{}, catalog.profiles...),
		lookup:   make(map[string]int, len(catalog.lookup)),
	}
	for name, position := range catalog.lookup {
		merged.lookup[name] = position
	}
	if overrides == nil {
		return merged
	}

	for _, profile := range overrides.profiles {
		if position, exists := merged.lookup[profile.Name]; exists {
			merged.profiles[position] = profile
			continue
		}
		merged.lookup[profile.Name] = len(merged.profiles)
		merged.profiles = append(merged.profiles, profile)
	}
	return merged
}

// Lookup returns the named profile or an error wrapping ErrUnknownProfile.
func (catalog *Catalog) Lookup(name string) (Profile, error) {
	trimmedName := strings.TrimSpace(name)
	position, exists := catalog.lookup[trimmedName]
	if !exists {
		return Profile{}, fmt.Errorf(unknownProfileTemplateConstant, ErrUnknownProfile, trimmedName, strings.Join(catalog.Names(), profileNameSeparatorConstant))
	}
	return catalog.profiles[position].clone(), nil
}

// Profiles returns copies of all profiles in definition order.
func (catalog *Catalog) Profiles() []Profile {
	profiles := make([]Profile, 0, len(catalog.profiles))
	for _, profile := range catalog.profiles {
		profiles = append(profiles, profile.clone())
	}
	return profiles
}

// Names lists profile names in definition order.
func (catalog *Catalog) Names() []string {
	names := make([]string, 0, len(catalog.profiles))
	for _, profile := range catalog.profiles {
		names = append(names, profile.Name)
	}
	return names
}

func (profile Profile) sanitize() Profile {
	sanitized := profile
	sanitized.Name = strings.TrimSpace(profile.Name)
	sanitized.Description = strings.TrimSpace(profile.Description)
	sanitized.Exclude = make([]string, 0, len(profile.Exclude))
	for _, pattern := range profile.Exclude {
		trimmedPattern := strings.TrimSpace(pattern)
		if len(trimmedPattern) == 0 {
			continue
		}
		sanitized.Exclude = append(sanitized.Exclude, trimmedPattern)
	}
	return sanitized
}

func (profile Profile) clone() Profile {
	cloned := profile
	cloned.Exclude = append([]string{}, profile.Exclude...)
	return cloned
}
