// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// configKeyAnnotation tags a flag with the config key it overrides.
const configKeyAnnotation = "booklet/config-key"

// stringFlag adds a flag that overrides the config key when given.
func stringFlag(fs *pflag.FlagSet, name, key, usage string) {
	fs.String(name, "", usage+" (config: "+key+")")
	_ = fs.SetAnnotation(name, configKeyAnnotation, []string{key})
}

// intFlag is stringFlag for integer settings.
func intFlag(fs *pflag.FlagSet, name, key, usage string) {
	fs.Int(name, 0, usage+" (config: "+key+")")
	_ = fs.SetAnnotation(name, configKeyAnnotation, []string{key})
}

// applyFlagOverrides copies every changed config flag of cmd, inherited
// ones included, into viper. Several subcommands share keys, so flags are
// not bound with viper.BindPFlag.
func applyFlagOverrides(cmd *cobra.Command) {
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if keys := f.Annotations[configKeyAnnotation]; len(keys) == 1 {
			viper.Set(keys[0], f.Value.String())
		}
	})
}
