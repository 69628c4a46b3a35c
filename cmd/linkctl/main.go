package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("linkctl failed")
	}
}
