// One-off: go run scripts/genhash.go [password]
// Prints a bcrypt hash for hand-seeding a users row (e.g. a demo account
// before the register endpoint is wired up in a new environment).
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	password := "timecapsule"
	if len(os.Args) > 1 {
		password = os.Args[1]
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(h))
}
