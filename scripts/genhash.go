// One-off: go run scripts/genhash.go [password]
// Prints a bcrypt digest suitable for seeding users.password_hash.
package main

import (
	"fmt"
	"os"

	"taskboard/internal/service"
)

func main() {
	password := "admin"
	if len(os.Args) > 1 {
		password = os.Args[1]
	}
	h, err := service.HashPassword(password, service.DefaultBcryptCost)
	if err != nil {
		panic(err)
	}
	fmt.Print(h)
}
