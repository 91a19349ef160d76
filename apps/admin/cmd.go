package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"github.com/go-resty/resty/v2"
	"golang.org/x/term"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	client  *resty.Client
	baseURL string // of the running API server
	out     io.Writer
}

func (cli *commandLine) printUsage() {
	_, _ = fmt.Fprintln(cli.out, "Usage:")
	_, _ = fmt.Fprintln(cli.out, "  addteacher -name NAME -email EMAIL [-school SCHOOL] - register a teacher account")
	_, _ = fmt.Fprintln(cli.out, "  analytics - print the usage analytics")
	_, _ = fmt.Fprintln(cli.out, "  health - check that the server is up")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addTeacherCmd := flag.NewFlagSet("addteacher", flag.ContinueOnError)
	addTeacherCmd.SetOutput(cli.out)
	addTeacherName := addTeacherCmd.String("name", "", "The teacher's name.")
	addTeacherEmail := addTeacherCmd.String("email", "", "The teacher's email. The password will be prompted next.")
	addTeacherSchool := addTeacherCmd.String("school", "", "The teacher's school.")

	switch args[1] {
	case "addteacher":
		if err := addTeacherCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addTeacherName == "" || *addTeacherEmail == "" {
			addTeacherCmd.Usage()
			return errHelp
		}
		_, _ = fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		_, _ = fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addTeacherCmd.Usage()
			return errHelp
		}
		return cli.addTeacher(*addTeacherName, *addTeacherEmail, *addTeacherSchool, string(pwd))
	case "analytics":
		return cli.analytics()
	case "health":
		return cli.health()
	default:
		cli.printUsage()
		return errHelp
	}
}
