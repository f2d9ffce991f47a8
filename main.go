// Command content-manager serves the content API for the company site:
// service areas, photo gallery, news, and contact messages.
package main

import (
	"log"

	"github.com/ustaweb/content-manager/internal/bootstrap"
)

func main() {
	if err := bootstrap.Start(); err != nil {
		log.Fatalf("content-manager: %v", err)
	}
}
