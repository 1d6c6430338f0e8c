// Command hashpassword prints a bcrypt hash for the given password, for
// seeding admin users directly in the database.
package main

import (
	"fmt"
	"log"
	"os"

	"materials-and-more/utils"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpassword <password>")
		os.Exit(1)
	}

	hash, err := utils.HashPassword(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	fmt.Println(hash)
}
