package cmd

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// StandardFlags provides consistent flag definitions across commands.
type StandardFlags struct {
	// Server flags
	Port int
	Host string

	// Content flags
	Locales []string

	// Output flags
	OutputFormat string
}

// AddStandardFlags adds the named flag groups to a command.
func AddStandardFlags(cmd *cobra.Command, flagTypes ...string) *StandardFlags {
	flags := &StandardFlags{}

	for _, flagType := range flagTypes {
		switch flagType {
		case "server":
			addServerFlags(cmd, flags)
		case "locale":
			addLocaleFlags(cmd, flags)
		case "output":
			addOutputFlags(cmd, flags)
		}
	}

	return flags
}

func addServerFlags(cmd *cobra.Command, flags *StandardFlags) {
	cmd.Flags().IntVarP(&flags.Port, "port", "p", 3000, "Port to serve on")
	cmd.Flags().StringVar(&flags.Host, "host", "localhost", "Host to bind to")
	AddFlagValidation(cmd, "port", ValidatePort)
}

func addLocaleFlags(cmd *cobra.Command, flags *StandardFlags) {
	cmd.Flags().StringSliceVar(&flags.Locales, "locale", nil, "Locales to process (default: all configured)")
	AddFlagValidation(cmd, "locale", ValidateLocales)
}

func addOutputFlags(cmd *cobra.Command, flags *StandardFlags) {
	cmd.Flags().StringVarP(&flags.OutputFormat, "format", "f", "table", "Output format (table|json|yaml)")
	AddFlagValidation(cmd, "format", func(format string) error {
		return ValidateFormat(format, []string{"table", "json", "yaml"})
	})
}

// SelectLocales returns the requested locales, or all configured ones when
// none were given. Requested locales must be configured.
func (f *StandardFlags) SelectLocales(configured []string) ([]string, error) {
	if len(f.Locales) == 0 {
		return configured, nil
	}
	for _, code := range f.Locales {
		if !slices.Contains(configured, code) {
			return nil, fmt.Errorf("locale %q is not configured, must be one of: %s",
				code, strings.Join(configured, ", "))
		}
	}
	return f.Locales, nil
}

// BindViper binds flags to configuration keys so flags override the file
// and the environment.
func BindViper(cmd *cobra.Command, bindings map[string]string) {
	for flagName, configKey := range bindings {
		if flag := cmd.Flags().Lookup(flagName); flag != nil {
			_ = viper.BindPFlag(configKey, flag)
		}
	}
}

// AddFlagValidation adds validation for a specific flag.
func AddFlagValidation(cmd *cobra.Command, flagName string, validator func(string) error) {
	flag := cmd.Flags().Lookup(flagName)
	if flag == nil {
		return
	}

	flag.Value = &validatingValue{
		Value:     flag.Value,
		validator: validator,
	}
}

type validatingValue struct {
	pflag.Value
	validator func(string) error
}

func (v *validatingValue) Set(val string) error {
	if v.validator != nil {
		if err := v.validator(val); err != nil {
			return err
		}
	}
	return v.Value.Set(val)
}

// ValidatePort checks a port flag value.
func ValidatePort(portStr string) error {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid port number: %s", portStr)
	}

	if port < 0 || port > 65535 {
		return fmt.Errorf("port must be between 0 and 65535, got %d", port)
	}

	return nil
}

// ValidateLocales checks a comma separated list of language tags.
func ValidateLocales(value string) error {
	for _, code := range strings.Split(value, ",") {
		if _, err := language.Parse(strings.TrimSpace(code)); err != nil {
			return fmt.Errorf("invalid locale %q: %w", code, err)
		}
	}
	return nil
}

// ValidateFormat checks format against the supported ones.
func ValidateFormat(format string, valid []string) error {
	if slices.Contains(valid, format) {
		return nil
	}
	return fmt.Errorf("invalid format %s, must be one of: %s", format, strings.Join(valid, ", "))
}
