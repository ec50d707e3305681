package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/matheus3301/wppstatus/internal/activity"
	"github.com/matheus3301/wppstatus/internal/config"
	"github.com/matheus3301/wppstatus/internal/locale"
	"github.com/matheus3301/wppstatus/internal/session"
	"github.com/matheus3301/wppstatus/internal/store"
)

func main() {
	configFlag := flag.String("config", session.ConfigPath(), "path to config.toml")
	jsonFlag := flag.Bool("json", false, "output in JSON format")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.LoadOrDefault(*configFlag)
	if err != nil {
		fatal(fmt.Errorf("load config: %w", err))
	}

	switch args[0] {
	case "summarize":
		err = cmdSummarize(os.Stdout, cfg, args[1:], *jsonFlag)
	case "locales":
		err = cmdLocales(os.Stdout, *jsonFlag)
	case "chats":
		err = cmdChats(os.Stdout, cfg, args[1:], *jsonFlag)
	case "config":
		err = toml.NewEncoder(os.Stdout).Encode(cfg)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fatal(err)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: wppstatusctl [--config <path>] [--json] <command>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  summarize [--locale l] [--group] [--width n] name:kind...")
	fmt.Fprintln(os.Stderr, "                   Render the activity label for the given participants")
	fmt.Fprintln(os.Stderr, "  locales          List available phrase languages")
	fmt.Fprintln(os.Stderr, "  chats [--session s] [--limit n]")
	fmt.Fprintln(os.Stderr, "                   List the chats stored for a session")
	fmt.Fprintln(os.Stderr, "  config           Print the effective configuration")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintf(os.Stderr, "kinds: %s\n", kindNames())
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func kindNames() string {
	names := make([]string, len(activity.Kinds))
	for i, k := range activity.Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

type summaryOutput struct {
	Animation string `json:"animation"`
	Text      string `json:"text"`
	Visible   string `json:"visible"`
	Width     int    `json:"width"`
	Truncated bool   `json:"truncated"`
}

func cmdSummarize(w io.Writer, cfg *config.Config, args []string, jsonOut bool) error {
	fs := flag.NewFlagSet("summarize", flag.ContinueOnError)
	lang := fs.String("locale", cfg.Locale, "phrase language")
	group := fs.Bool("group", false, "treat the chat as a group")
	width := fs.Int("width", 80, "available width in cells")
	if err := fs.Parse(args); err != nil {
		return err
	}

	acts, err := parseParticipants(fs.Args(), !*group)
	if err != nil {
		return err
	}
	phrases, err := locale.New(*lang)
	if err != nil {
		return err
	}

	anim, label := activity.Summarize(activity.Snapshot{ChatID: "cli", Activities: acts}, *width, cfg.ActivityTheme(), phrases)
	out := summaryOutput{Animation: anim.String()}
	if label != nil {
		out.Text, out.Visible, out.Width, out.Truncated = label.Text, label.Visible, label.Width, label.Truncated
	}

	if jsonOut {
		return outputJSON(w, out)
	}
	if label == nil {
		_, err = fmt.Fprintln(w, "(nobody is active)")
		return err
	}
	_, err = fmt.Fprintf(w, "[%s] %s\n", out.Animation, out.Visible)
	return err
}

// parseParticipants reads "name:kind" pairs. A missing kind means typing.
func parseParticipants(args []string, direct bool) ([]activity.ParticipantActivity, error) {
	acts := make([]activity.ParticipantActivity, 0, len(args))
	for _, arg := range args {
		name, kind, hasKind := strings.Cut(arg, ":")
		if name == "" {
			return nil, fmt.Errorf("participant %q has no name", arg)
		}
		k := activity.TypingText
		if hasKind {
			k = activity.ParseKind(kind)
		}
		acts = append(acts, activity.ParticipantActivity{
			Participant: activity.Participant{ID: name, Name: name, Direct: direct},
			Kind:        k,
		})
	}
	if direct && len(acts) > 1 {
		return nil, errors.New("a direct chat has a single participant, use --group")
	}
	return acts, nil
}

func cmdLocales(w io.Writer, jsonOut bool) error {
	tags, err := locale.Languages()
	if err != nil {
		return err
	}
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.String()
	}
	if jsonOut {
		return outputJSON(w, names)
	}
	for _, n := range names {
		if _, err := fmt.Fprintln(w, n); err != nil {
			return err
		}
	}
	return nil
}

func cmdChats(w io.Writer, cfg *config.Config, args []string, jsonOut bool) error {
	fs := flag.NewFlagSet("chats", flag.ContinueOnError)
	sessionFlag := fs.String("session", "", "session name (overrides config default)")
	limit := fs.Int("limit", 20, "maximum number of chats")
	if err := fs.Parse(args); err != nil {
		return err
	}
	name, err := session.Resolve(*sessionFlag, cfg)
	if err != nil {
		return err
	}

	path := session.AppDBPath(name)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("session %q has no data yet: %w", name, err)
	}
	db, err := store.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	chats, err := db.ListChats(*limit, 0)
	if err != nil {
		return err
	}
	if jsonOut {
		return outputJSON(w, chats)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tJID\tLAST MESSAGE")
	for _, c := range chats {
		at := ""
		if c.LastMessageAt > 0 {
			at = time.UnixMilli(c.LastMessageAt).Format(time.DateTime)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, c.JID, at)
	}
	return tw.Flush()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
