package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mdwallick/okta-sdk-go/internal/constants"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// confirm asks a yes/no question on the command's input. force skips the prompt.
func confirm(cmd *cobra.Command, prompt string, force bool) bool {
	if force {
		return true
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (y/N): ", prompt)

	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))

	if answer == "y" || answer == constants.ConfirmationYes {
		return true
	}

	_, _ = io.WriteString(cmd.OutOrStdout(), "Cancelled\n")

	return false
}

// promptLine reads one line of input. A blank answer returns fallback.
func promptLine(in *bufio.Reader, out io.Writer, label, fallback string) string {
	if fallback != "" {
		_, _ = fmt.Fprintf(out, "%s [%s]: ", label, fallback)
	} else {
		_, _ = fmt.Fprintf(out, "%s: ", label)
	}

	line, _ := in.ReadString('\n')

	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}

	return line
}

// promptSecret reads a secret without echo when stdin is a terminal, and a plain
// line otherwise.
func promptSecret(in *bufio.Reader, out io.Writer, label string) (string, error) {
	_, _ = fmt.Fprintf(out, "%s: ", label)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)

		_, _ = fmt.Fprintln(out)

		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
		}

		return strings.TrimSpace(string(secret)), nil
	}

	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}

	return strings.TrimSpace(line), nil
}

// promptNewPassword asks for a password twice.
func promptNewPassword(cmd *cobra.Command) (string, error) {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.ErrOrStderr()

	password, err := promptSecret(in, out, "Password")
	if err != nil {
		return "", err
	}

	again, err := promptSecret(in, out, "Confirm password")
	if err != nil {
		return "", err
	}

	if password != again {
		return "", constants.ErrPasswordsMismatched
	}

	return password, nil
}
