// Command cipherkit exposes the module's digests, Blowfish and bcrypt from the
// command line.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dcrodman/cipherkit/internal/core"
)

var (
	ConfigFlag   string
	LogLevelFlag string
)

// Populated by the root command before any subcommand runs.
var (
	cfg    *core.Config
	logger *logrus.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "cipherkit",
		Short:             "MD5, SHA-1, Blowfish and bcrypt tools",
		SilenceUsage:      true,
		PersistentPreRunE: initialize,
	}
	rootCmd.PersistentFlags().StringVarP(&ConfigFlag, "config", "c", "", "Path to the directory containing config.yaml")
	rootCmd.PersistentFlags().StringVar(&LogLevelFlag, "log-level", "", "Override the configured log level")

	digestCmd.Flags().StringVarP(&AlgorithmFlag, "algorithm", "a", "", "Digest algorithm (md5, sha1)")
	digestCmd.Flags().BoolVarP(&StringFlag, "string", "s", false, "Hash the arguments themselves instead of files")
	digestCmd.Flags().BoolVarP(&Base64Flag, "base64", "b", false, "Print digests in base64 instead of hex")

	blowfishCmd.PersistentFlags().StringVarP(&KeyFlag, "key", "k", "", "Blowfish key in hex")
	blowfishKeygenCmd.Flags().IntVarP(&KeySizeFlag, "size", "n", 16, "Key size in bytes")
	blowfishCmd.AddCommand(blowfishEncryptCmd)
	blowfishCmd.AddCommand(blowfishDecryptCmd)
	blowfishCmd.AddCommand(blowfishKeygenCmd)

	rootCmd.AddCommand(digestCmd)
	rootCmd.AddCommand(blowfishCmd)
	rootCmd.AddCommand(bcryptCmd)
	rootCmd.AddCommand(selftestCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initialize(cmd *cobra.Command, args []string) error {
	var err error
	if cfg, err = core.LoadConfig(ConfigFlag); err != nil {
		return err
	}
	if LogLevelFlag != "" {
		cfg.LogLevel = LogLevelFlag
	}
	if logger, err = core.NewLogger(cfg); err != nil {
		return err
	}
	logger.Debugf("effective configuration:\n%s", cfg.Dump())
	return nil
}
