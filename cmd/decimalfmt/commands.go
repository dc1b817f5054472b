package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/goliatone/go-decimalfmt"
)

const envPrefix = "DECIMALFMT"

// newRootCmd wires the subcommands around a fresh viper instance so flags can
// also come from DECIMALFMT_* environment variables.
func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "decimalfmt",
		Short: "Format and parse decimals with locale number formats",
		Long: `decimalfmt renders canonical decimals with a locale's separator,
delimiter and precision, and reads formatted input back into canonical form.

Number formats come from YAML or JSON locale files (--config) and, with
--cldr, from CLDR data for locales the files do not cover.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("locale", "", "locale used to resolve the number format")
	flags.StringSlice("config", nil, "locale files with <locale>.number.format entries")
	flags.StringArray("fallback", nil, "locale fallbacks as L=F1,F2 (repeatable)")
	flags.Bool("cldr", false, "use CLDR symbols for locales missing from the config files")
	flags.Int("cldr-precision", 3, "precision applied to CLDR formats, negative for none")
	flags.Bool("strict", false, "fail on malformed formats and unparsable input")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	_ = v.BindPFlags(flags)

	rootCmd.AddCommand(
		newFormatCmd(v),
		newParseCmd(v),
		newResolveCmd(v),
	)
	return rootCmd
}

func newFormatCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "format VALUE...",
		Short: "Render canonical decimals with the locale format",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd, v)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			spec := cfg.Provider().Resolve(v.GetString("locale"))
			out := cmd.OutOrStdout()
			for _, arg := range args {
				if v.GetBool("strict") {
					formatted, err := decimalfmt.TryFormat(arg, spec)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, formatted)
					continue
				}
				fmt.Fprintln(out, decimalfmt.Format(arg, spec))
			}
			return nil
		},
	}
}

func newParseCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "parse TEXT...",
		Short: "Read formatted input back into canonical decimals",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd, v)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			locale := v.GetString("locale")
			spec := cfg.Provider().Resolve(locale)
			out := cmd.OutOrStdout()
			for _, arg := range args {
				value, err := decimalfmt.TryParse(arg, spec)
				if err != nil {
					if v.GetBool("strict") {
						return err
					}
					logger.Debug("input passed through", zap.String("locale", locale), zap.String("input", arg), zap.Error(err))
					fmt.Fprintln(out, arg)
					continue
				}
				fmt.Fprintln(out, decimalfmt.FormatDecimal(value, decimalfmt.FormatSpec{Separator: "."}))
			}
			return nil
		},
	}
}

func newResolveCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [LOCALE...]",
		Short: "Show the number format each locale resolves to",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd, v)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			locales := args
			if len(locales) == 0 {
				locales = []string{v.GetString("locale")}
			}

			provider := cfg.Provider()
			out := cmd.OutOrStdout()
			for _, locale := range locales {
				fmt.Fprintf(out, "%s\t%s\n", displayLocale(locale), provider.Resolve(locale))
			}
			return nil
		},
	}
}

// loadConfig builds the decimalfmt Config from flags and environment.
// Fallbacks are read from the flag set directly: viper splits list values on
// commas, which the L=F1,F2 syntax relies on.
func loadConfig(cmd *cobra.Command, v *viper.Viper) (*decimalfmt.Config, *zap.Logger, error) {
	logger, err := newLogger(v.GetString("log-level"))
	if err != nil {
		return nil, nil, err
	}

	opts := []decimalfmt.Option{
		decimalfmt.WithLogger(logger),
		decimalfmt.WithLocaleFiles(v.GetStringSlice("config")...),
	}

	entries, err := cmd.Flags().GetStringArray("fallback")
	if err != nil {
		return nil, nil, err
	}
	for _, entry := range entries {
		locale, fallbacks, err := parseFallback(entry)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, decimalfmt.WithFallback(locale, fallbacks...))
	}

	if v.GetBool("cldr") {
		opts = append(opts, decimalfmt.WithCLDR(v.GetInt("cldr-precision")))
	}
	if v.GetBool("strict") {
		opts = append(opts, decimalfmt.WithStrictFormats())
	}

	cfg, err := decimalfmt.NewConfig(opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("load number formats: %w", err)
	}

	logger.Debug("number formats loaded", zap.Strings("locales", cfg.Catalog().Locales()))
	return cfg, logger, nil
}

// parseFallback reads "rm=it,de" into its locale and fallback list.
func parseFallback(entry string) (string, []string, error) {
	locale, list, ok := strings.Cut(entry, "=")
	locale = strings.TrimSpace(locale)
	if !ok || locale == "" {
		return "", nil, fmt.Errorf("invalid fallback %q, want LOCALE=FALLBACK[,FALLBACK]", entry)
	}

	var fallbacks []string
	for _, fallback := range strings.Split(list, ",") {
		if fallback = strings.TrimSpace(fallback); fallback != "" {
			fallbacks = append(fallbacks, fallback)
		}
	}
	if len(fallbacks) == 0 {
		return "", nil, fmt.Errorf("invalid fallback %q, no fallback locales", entry)
	}
	return locale, fallbacks, nil
}

func displayLocale(locale string) string {
	if strings.TrimSpace(locale) == "" {
		return "(default)"
	}
	return locale
}
