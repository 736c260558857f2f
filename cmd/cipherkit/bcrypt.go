package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dcrodman/cipherkit/internal/auth"
	"github.com/dcrodman/cipherkit/internal/bcrypt"
)

var bcryptCmd = &cobra.Command{
	Use:   "bcrypt",
	Short: "bcrypt password hashing",
}

var bcryptHashCmd = &cobra.Command{
	Use:   "hash PASSWORD",
	Short: "Prints the $2b$ hash of a password",
	Args:  cobra.ExactArgs(1),
	RunE:  BcryptHashCommand,
}

var bcryptVerifyCmd = &cobra.Command{
	Use:   "verify HASH PASSWORD",
	Short: "Checks a password against a bcrypt hash",
	Args:  cobra.ExactArgs(2),
	RunE:  BcryptVerifyCommand,
}

var bcryptCostCmd = &cobra.Command{
	Use:   "cost HASH",
	Short: "Prints the cost a bcrypt hash was created with",
	Args:  cobra.ExactArgs(1),
	RunE:  BcryptCostCommand,
}

var bcryptRawCmd = &cobra.Command{
	Use:   "raw",
	Short: "Prints the raw 24 byte bcrypt output for a hex salt and password",
	Args:  cobra.NoArgs,
	RunE:  BcryptRawCommand,
}

var (
	CostFlag        int
	RawCostFlag     int
	SaltFlag        string
	PasswordHexFlag string
)

func init() {
	bcryptHashCmd.Flags().IntVarP(&CostFlag, "cost", "n", 0, "bcrypt cost (defaults to bcrypt.cost from the config)")
	bcryptVerifyCmd.Flags().IntVarP(&CostFlag, "cost", "n", 0, "Cost to expect when checking for a needed rehash")
	bcryptRawCmd.Flags().IntVarP(&RawCostFlag, "cost", "n", bcrypt.DefaultCost, "bcrypt cost, 0 to 63")
	bcryptRawCmd.Flags().StringVar(&SaltFlag, "salt", "", "16 byte salt in hex")
	bcryptRawCmd.Flags().StringVar(&PasswordHexFlag, "password", "", "1 to 72 byte password in hex, used as-is")
	_ = bcryptRawCmd.MarkFlagRequired("salt")
	_ = bcryptRawCmd.MarkFlagRequired("password")
	bcryptCmd.AddCommand(bcryptHashCmd)
	bcryptCmd.AddCommand(bcryptVerifyCmd)
	bcryptCmd.AddCommand(bcryptCostCmd)
	bcryptCmd.AddCommand(bcryptRawCmd)
}

func hasher(cmd *cobra.Command) (*auth.Hasher, error) {
	cost, err := bcryptCost(cfg.Bcrypt.Cost, cmd.Flags().Changed("cost"), CostFlag)
	if err != nil {
		return nil, err
	}
	return auth.NewHasher(cost, cfg.Bcrypt.Normalize), nil
}

// bcryptCost picks the --cost flag over the configured cost when it was set.
// An explicit cost outside the text format's range is an error rather than
// being replaced by the default.
func bcryptCost(configured int, flagSet bool, flagCost int) (int, error) {
	if !flagSet {
		return configured, nil
	}
	if flagCost < bcrypt.MinCost || flagCost > bcrypt.MaxCost {
		return 0, bcrypt.InvalidCostError(flagCost)
	}
	return flagCost, nil
}

func BcryptHashCommand(cmd *cobra.Command, args []string) error {
	h, err := hasher(cmd)
	if err != nil {
		return err
	}
	hash, err := h.HashPassword(args[0])
	if err != nil {
		return err
	}
	logger.WithField("cost", h.Cost).Debug("hashed password")
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}

func BcryptVerifyCommand(cmd *cobra.Command, args []string) error {
	h, err := hasher(cmd)
	if err != nil {
		return err
	}
	if err := h.VerifyPassword(args[0], args[1]); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			fmt.Fprintln(cmd.OutOrStdout(), "mismatch")
		}
		return err
	}
	if h.NeedsRehash(args[0]) {
		logger.WithField("cost", h.Cost).Info("hash was created with a different cost and should be regenerated")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}

func BcryptCostCommand(cmd *cobra.Command, args []string) error {
	cost, err := bcrypt.Cost([]byte(args[0]))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), strconv.Itoa(cost))
	return nil
}

func BcryptRawCommand(cmd *cobra.Command, _ []string) error {
	out, err := rawHash(RawCostFlag, SaltFlag, PasswordHexFlag)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func rawHash(cost int, saltHex, passwordHex string) (string, error) {
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return "", fmt.Errorf("decoding salt: %w", err)
	}
	password, err := hex.DecodeString(passwordHex)
	if err != nil {
		return "", fmt.Errorf("decoding password: %w", err)
	}

	out := make([]byte, bcrypt.Size)
	if err := bcrypt.Hash(out, cost, salt, password); err != nil {
		return "", err
	}
	return hex.EncodeToString(out), nil
}
