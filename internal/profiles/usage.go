package profiles

import "github.com/temirov/gitbatch/internal/utils/flags"

const (
	// DefaultProfileName names the built-in profile matching the default batch settings.
	DefaultProfileName = "default"

	profileFlagDescriptionConstant = "Batch profile; built-in or defined in batch.profiles_file."
)

// FlagUsage renders the --profile usage text listing the built-in profile names.
func FlagUsage() string {
	names := []string{}
	if catalog, catalogError := BuiltinCatalog(); catalogError == nil {
		names = catalog.Names()
	}
	return flags.FormatChoiceUsage(DefaultProfileName, names, profileFlagDescriptionConstant)
}
