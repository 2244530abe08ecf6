package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/classroom/core"
	"github.com/trezcool/classroom/core/dashboard"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf    *core.Config
	logger  core.Logger
	session *dashboard.Session
	out     io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  list [-status all|pending|submitted|graded] [-search TEXT] - list the assignments")
	fmt.Fprintln(cli.out, "  stats - count the assignments per status")
	fmt.Fprintln(cli.out, "  deadlines [-limit N] - list the upcoming deadlines")
	fmt.Fprintln(cli.out, "  validate -schema NAME [FIELD=VALUE ...] - validate a form input")
	fmt.Fprintln(cli.out, "  login -email EMAIL - validate login credentials; the password will be prompted next")
	fmt.Fprintln(cli.out, "  simulate [-ticks N] [-seed S] - run the notification simulator N times")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	listCmd := flag.NewFlagSet("list", flag.ContinueOnError)
	listStatus := listCmd.String("status", "all", "Only list assignments with this status.")
	listSearch := listCmd.String("search", "", "Only list assignments whose title, course or description contains this text.")

	deadlinesCmd := flag.NewFlagSet("deadlines", flag.ContinueOnError)
	deadlinesLimit := deadlinesCmd.Int("limit", dashboard.DefaultDeadlineLimit, "The maximum number of deadlines; 0 lists them all.")

	validateCmd := flag.NewFlagSet("validate", flag.ContinueOnError)
	validateSchema := validateCmd.String("schema", "", "The schema name: assignment, submission, grade, login or signup.")

	loginCmd := flag.NewFlagSet("login", flag.ContinueOnError)
	loginEmail := loginCmd.String("email", "", "The user's email. The password will be prompted next.")

	simulateCmd := flag.NewFlagSet("simulate", flag.ContinueOnError)
	simulateTicks := simulateCmd.Int("ticks", 10, "The number of ticks to run.")
	simulateSeed := simulateCmd.Int64("seed", 0, "The random seed; 0 uses the configured feed seed.")

	for _, fs := range []*flag.FlagSet{listCmd, deadlinesCmd, validateCmd, loginCmd, simulateCmd} {
		fs.SetOutput(cli.out)
	}

	switch args[1] {
	case "list":
		if err := listCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.list(*listStatus, *listSearch)
	case "stats":
		return cli.stats()
	case "deadlines":
		if err := deadlinesCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.deadlines(*deadlinesLimit)
	case "validate":
		if err := validateCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *validateSchema == "" {
			validateCmd.Usage()
			return errHelp
		}
		values, err := parseValues(validateCmd.Args())
		if err != nil {
			return err
		}
		return cli.validate(*validateSchema, values)
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *loginEmail == "" {
			loginCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			loginCmd.Usage()
			return errHelp
		}
		return cli.validate("login", map[string]string{"email": *loginEmail, "password": string(pwd)})
	case "simulate":
		if err := simulateCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *simulateTicks <= 0 {
			simulateCmd.Usage()
			return errHelp
		}
		return cli.simulate(*simulateTicks, *simulateSeed)
	default:
		cli.printUsage()
		return errHelp
	}
}

// parseValues reads FIELD=VALUE pairs.
func parseValues(args []string) (map[string]string, error) {
	values := make(map[string]string, len(args))
	for _, arg := range args {
		field, value, ok := strings.Cut(arg, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("%q: expected FIELD=VALUE", arg)
		}
		values[field] = value
	}
	return values, nil
}
