// Command cartctl browses the storefront catalog and prices a cart from the
// terminal, using the same catalog loading and checkout rules as the server.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
