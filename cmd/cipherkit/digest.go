package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dcrodman/cipherkit/internal/core"
	"github.com/dcrodman/cipherkit/internal/digest"
)

var digestCmd = &cobra.Command{
	Use:   "digest [FILE|-]...",
	Short: "Prints the MD5 or SHA-1 digest of files, stdin or strings",
	RunE:  DigestCommand,
}

var (
	AlgorithmFlag string
	StringFlag    bool
	Base64Flag    bool
)

func DigestCommand(cmd *cobra.Command, args []string) error {
	algorithm := cfg.Digest.Algorithm
	if AlgorithmFlag != "" {
		algorithm = AlgorithmFlag
	}
	encoding := cfg.Digest.Encoding
	if Base64Flag {
		encoding = core.EncodingBase64
	}
	if len(args) == 0 && !StringFlag {
		args = []string{"-"}
	}

	logger.WithField("algorithm", algorithm).Debugf("hashing %d inputs", len(args))
	return printDigests(cmd.OutOrStdout(), cmd.InOrStdin(), algorithm, encoding, StringFlag, args)
}

// printDigests writes one "<digest>  <name>" line per input.
func printDigests(w io.Writer, stdin io.Reader, algorithm, encoding string, asStrings bool, inputs []string) error {
	for _, in := range inputs {
		sum, name, err := sumInput(stdin, algorithm, asStrings, in)
		if err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}
		fmt.Fprintf(w, "%s  %s\n", encodeDigest(sum, encoding), name)
	}
	return nil
}

func sumInput(stdin io.Reader, algorithm string, asStrings bool, in string) ([]byte, string, error) {
	if asStrings {
		sum, err := digest.Sum(algorithm, []byte(in))
		return sum, strconv.Quote(in), err
	}
	if in == "-" {
		sum, err := digest.SumReader(algorithm, stdin)
		return sum, in, err
	}

	f, err := os.Open(in)
	if err != nil {
		return nil, in, err
	}
	defer f.Close()
	sum, err := digest.SumReader(algorithm, f)
	return sum, in, err
}

func encodeDigest(sum []byte, encoding string) string {
	if encoding == core.EncodingBase64 {
		return base64.StdEncoding.EncodeToString(sum)
	}
	return hex.EncodeToString(sum)
}
