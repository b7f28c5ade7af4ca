package main

import (
	"errors"
	"os"

	"github.com/bnema/telemux/cmd"
	"github.com/bnema/telemux/internal/domain"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, domain.ErrMissingCredentials) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
