package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/gitbatch/internal/utils/path"
)

func TestHomeExpanderExpand(testInstance *testing.T) {
	homeDirectory := filepath.Join(string(filepath.Separator), "home", "builder")
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return homeDirectory, nil
	})

	testCases := []struct {
		name         string
		candidate    string
		expectedPath string
	}{
		{name: "bare_shortcut", candidate: "~", expectedPath: homeDirectory},
		{name: "nested_path", candidate: "~/src/assets", expectedPath: filepath.Join(homeDirectory, "src", "assets")},
		{name: "other_user_unchanged", candidate: "~builder/src", expectedPath: "~builder/src"},
		{name: "relative_unchanged", candidate: "src/~", expectedPath: "src/~"},
		{name: "empty_unchanged", candidate: "", expectedPath: ""},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			require.Equal(subtest, testCase.expectedPath, expander.Expand(testCase.candidate))
		})
	}
}

func TestHomeExpanderKeepsInputWhenHomeUnknown(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "", errors.New("no home directory")
	})
	require.Equal(testInstance, "~/src", expander.Expand("~/src"))
}
