// Command crcsum prints and checks CRC-32 (IEEE) checksums of files, standard
// input and objects in S3 or MinIO buckets.
//
//	$ printf 123456789 | crcsum
//	cbf43926
//	$ crcsum *.tar > CRC32SUMS
//	$ crcsum -c CRC32SUMS
//	backup-1.tar: OK
//	$ crcsum --store s3://my-bucket/backups/ -o json
package main

import (
	"errors"
	"fmt"
	"os"
)

const (
	exitOK       = 0
	exitMismatch = 1
	exitError    = 2
)

func main() {
	cmd := newRootCommand(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errMismatch) {
			fmt.Fprintln(os.Stderr, "crcsum:", err)
		}
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errMismatch):
		return exitMismatch
	default:
		return exitError
	}
}
