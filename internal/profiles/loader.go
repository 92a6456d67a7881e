package profiles

import "strings"

// LoadCatalog returns the built-in profiles merged with the optional user profile file.
func LoadCatalog(userProfilesFile string) (*Catalog, error) {
	builtinCatalog, builtinError := BuiltinCatalog()
	if builtinError != nil {
		return nil, builtinError
	}
	if len(strings.TrimSpace(userProfilesFile)) == 0 {
		return builtinCatalog, nil
	}

	userCatalog, userError := LoadCatalogFile(userProfilesFile)
	if userError != nil {
		return nil, userError
	}
	return builtinCatalog.Merge(userCatalog), nil
}
