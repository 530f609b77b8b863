package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Prints a bcrypt hash for the given password, for rotating the admin
// credential directly in the admin_users table.
//
// Usage: go run scripts/hash_password.go <password>
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hash_password <password>")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(hash))
}
