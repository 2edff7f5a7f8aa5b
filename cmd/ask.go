package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/edupath/internal/advice"
	"github.com/abhisek/edupath/internal/store"
)

var askCmd = &cobra.Command{
	Use:   "ask [TEXT]",
	Short: "Ask EduBot a question",
	Long: `Ask EduBot about study habits, careers, wellbeing or SHS programs.

With TEXT, prints one answer. Without it, starts a conversation that ends
on "exit", "quit" or end of input. EduBot uses a language model when one is
configured and its built-in answers otherwise.`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().Bool("offline", false, "Use the built-in answers even when an LLM is configured")
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	offlineFlag, _ := cmd.Flags().GetBool("offline")

	var advisor advice.Advisor = advice.NewDefaultResponder()
	if !offlineFlag {
		var eventRepo store.EventRepo
		if st, err := openStore(cmd); err == nil {
			defer st.Close()
			eventRepo = st.EventRepo()
		} else {
			fmt.Fprintln(os.Stderr, "LLM events will not be recorded:", err)
		}
		advisor, _, _ = buildAdvisor(ctx, eventRepo)
	}

	if len(args) > 0 {
		return askOnce(ctx, advisor, strings.Join(args, " "), os.Stdout)
	}
	return askLoop(ctx, advisor, os.Stdin, os.Stdout)
}

func askOnce(ctx context.Context, advisor advice.Advisor, text string, w io.Writer) error {
	reply, err := advisor.Advise(ctx, text)
	if err != nil {
		return fmt.Errorf("ask: %w", err)
	}
	fmt.Fprintln(w, reply.Text)
	return nil
}

// askLoop reads one question per line until exit or end of input.
func askLoop(ctx context.Context, advisor advice.Advisor, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)

	fmt.Fprintln(w, "EduBot: Hello! How can I assist you today?")
	fmt.Fprintf(w, "Try asking: %s\n", strings.Join(advice.QuickActions, " · "))
	fmt.Fprintln(w, `(type "exit" to leave)`)

	for {
		fmt.Fprint(w, "\nYou: ")
		if !scanner.Scan() {
			fmt.Fprintln(w)
			return scanner.Err()
		}
		text := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(text) {
		case "":
			continue
		case "exit", "quit", "bye":
			fmt.Fprintln(w, "EduBot: Goodbye! Good luck with your studies.")
			return nil
		}

		answer := advice.Fallback
		if reply, err := advisor.Advise(ctx, text); err == nil {
			answer = reply.Text
		}
		fmt.Fprintf(w, "EduBot: %s\n", answer)
	}
}
