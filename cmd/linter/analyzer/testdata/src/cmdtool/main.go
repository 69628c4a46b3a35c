package main

import (
	"log"
	"os"
)

func run() error {
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}

	defer func() {
		os.Exit(0)
	}()
}

func init() {
	if len(os.Args) > 10 {
		os.Exit(2) // want `os.Exit is forbidden outside func main`
	}
	panic("not even in init") // want "panic is forbidden"
}
