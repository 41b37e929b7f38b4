// Command hashpassword prints a bcrypt hash for ORGANIZER_PASSWORD_HASH.
//
//	go run ./cmd/hashpassword 's3cret'
//	echo -n 's3cret' | go run ./cmd/hashpassword
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"eventcatalog/internal/adapters/auth"
)

func main() {
	cost := flag.Int("cost", auth.DefaultCost, "bcrypt cost")
	flag.Parse()

	password := flag.Arg(0)
	if password == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(os.Stderr, "usage: hashpassword [-cost n] <password>")
			os.Exit(2)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	hash, err := auth.NewBcryptHasher(*cost).Hash(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
