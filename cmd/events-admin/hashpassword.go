package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"events-cms/internal/permission"
)

// passwordReader prompts for one password.
type passwordReader func(prompt string) (string, error)

// hashPasswordCommand handles the hash-password subcommand. The hash it
// prints goes into EVENTS_ADMIN_ADMIN_PASSWORD_HASH.
func hashPasswordCommand(args []string, read passwordReader, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("hash-password", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		fmt.Fprintf(errOut, "Usage: events-admin hash-password\n\n")
		fmt.Fprintf(errOut, "Prompts for a password and prints its Argon2id hash.\n")
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	password, err := read("Enter password:   ")
	if err != nil {
		fmt.Fprintf(errOut, "Error reading password: %v\n", err)
		return 1
	}
	confirm, err := read("Confirm password: ")
	if err != nil {
		fmt.Fprintf(errOut, "Error reading password confirmation: %v\n", err)
		return 1
	}

	if password == "" {
		fmt.Fprintf(errOut, "Password cannot be empty\n")
		return 1
	}
	if password != confirm {
		fmt.Fprintf(errOut, "Passwords do not match\n")
		return 1
	}

	hash, err := permission.HashPassword(password)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintln(out, hash)
	return 0
}

// stdinPasswordReader hides input on a terminal and reads plain lines when
// stdin is piped.
func stdinPasswordReader() passwordReader {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		return func(prompt string) (string, error) {
			fmt.Fprint(os.Stderr, prompt)
			password, err := term.ReadPassword(fd)
			fmt.Fprintln(os.Stderr)
			return string(password), err
		}
	}

	reader := bufio.NewReader(os.Stdin)
	return func(string) (string, error) {
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
}
