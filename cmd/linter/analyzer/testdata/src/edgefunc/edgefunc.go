package edgefunc

import (
	"errors"
	"log"
	"os"
)

func Lookup(key string) (string, error) {
	if key == "" {
		return "", errors.New("empty key")
	}
	return "https://example.com/" + key, nil
}

func MustLookup(key string) string {
	url, err := Lookup(key)
	if err != nil {
		panic(err) // want "panic is forbidden"
	}
	return url
}

func Handle(key string) {
	if _, err := Lookup(key); err != nil {
		log.Fatalf("lookup: %v", err) // want `log.Fatalf is forbidden outside func main`
	}
}

func Shutdown() {
	log.Println("stopping")
	os.Exit(1) // want `os.Exit is forbidden outside func main`
}

// main in a library package is an ordinary function.
func main() {
	log.Panic("boom") // want `log.Panic is forbidden outside func main`
}
