package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const viperKeyAnnotation = "wasmweight/viper-key"

// bindTo marks flag name in fs as the command-line source of config key.
// The binding itself happens in bindFlags once the command is known.
func bindTo(fs *pflag.FlagSet, name, key string) {
	if err := fs.SetAnnotation(name, viperKeyAnnotation, []string{key}); err != nil {
		panic(err)
	}
}

// bindFlags binds every annotated flag visible to cmd, inherited ones
// included, into viper.
func bindFlags(cmd *cobra.Command) error {
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		keys, ok := f.Annotations[viperKeyAnnotation]
		if !ok || len(keys) == 0 || err != nil {
			return
		}
		err = viper.BindPFlag(keys[0], f)
	})
	return err
}
