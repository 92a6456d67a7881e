package profiles

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	commandUseConstant                    = "profiles"
	commandShortDescriptionConstant       = "List available batch profiles"
	commandLongDescriptionConstant        = "profiles lists the built-in batch profiles together with any profiles defined in the configured profiles file."
	commandExecutionErrorTemplateConstant = "profile listing failed: %w"
	unexpectedArgumentsMessageConstant    = "profiles does not accept positional arguments"
	tableHeaderConstant                   = "NAME\tBATCH SIZE\tDELAY\tEXCLUDE\tDESCRIPTION\n"
	tableRowTemplateConstant              = "%s\t%d\t%dms\t%s\t%s\n"
	emptyExcludeLabelConstant             = "-"
	excludeSeparatorConstant              = ","
	profilesListedLogMessageConstant      = "Listed batch profiles"
	profileCountFieldConstant             = "profile_count"
	profilesFileFieldConstant             = "profiles_file"
	tableMinimumWidthConstant             = 0
	tableTabWidthConstant                 = 4
	tablePaddingConstant                  = 2
	tablePaddingCharacterConstant         = ' '
	tableFlagsConstant                    = 0
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ProfilesFileProvider supplies the path of the user profile file, if any.
type ProfilesFileProvider func() string

// CommandBuilder assembles the profiles command.
type CommandBuilder struct {
	LoggerProvider       LoggerProvider
	ProfilesFileProvider ProfilesFileProvider
}

// Build constructs the profiles command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	profilesFile := builder.resolveProfilesFile()
	catalog, catalogError := LoadCatalog(profilesFile)
	if catalogError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, catalogError)
	}

	tableWriter := tabwriter.NewWriter(command.OutOrStdout(), tableMinimumWidthConstant, tableTabWidthConstant, tablePaddingConstant, tablePaddingCharacterConstant, tableFlagsConstant)
	fmt.Fprint(tableWriter, tableHeaderConstant)
	for _, profile := range catalog.Profiles() {
		fmt.Fprintf(tableWriter, tableRowTemplateConstant, profile.Name, profile.BatchSize, profile.DelayMilliseconds, formatExclude(profile.Exclude), profile.Description)
	}
	if flushError := tableWriter.Flush(); flushError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, flushError)
	}

	builder.resolveLogger().Debug(
		profilesListedLogMessageConstant,
		zap.Int(profileCountFieldConstant, len(catalog.Names())),
		zap.String(profilesFileFieldConstant, profilesFile),
	)
	return nil
}

func (builder *CommandBuilder) resolveProfilesFile() string {
	if builder.ProfilesFileProvider == nil {
		return ""
	}
	return strings.TrimSpace(builder.ProfilesFileProvider())
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func formatExclude(patterns []string) string {
	if len(patterns) == 0 {
		return emptyExcludeLabelConstant
	}
	return strings.Join(patterns, excludeSeparatorConstant)
}
