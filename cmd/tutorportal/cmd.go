package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/you/tutorportal/domain"
	"github.com/you/tutorportal/internal/app"
	"github.com/you/tutorportal/internal/otpflow"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	c        *app.Container
	out      io.Writer
	readCode func() (string, error)
}

func newCommandLine(c *app.Container, in io.Reader, out io.Writer) *commandLine {
	reader := bufio.NewReader(in)
	return &commandLine{
		c:   c,
		out: out,
		readCode: func() (string, error) {
			line, err := reader.ReadString('\n')
			if err != nil && (!errors.Is(err, io.EOF) || line == "") {
				return "", err
			}
			return strings.TrimSpace(line), nil
		},
	}
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  categories -email EMAIL       - log in as admin with an OTP and print the category tree")
	fmt.Fprintln(cli.out, "  categories -username USERNAME - log in as executive and print the category tree. The password will be prompted next.")
	fmt.Fprintln(cli.out, "  bookings -email EMAIL         - log in as student with an OTP and list bookings")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	categoriesCmd := flag.NewFlagSet("categories", flag.ContinueOnError)
	categoriesCmd.SetOutput(cli.out)
	categoriesEmail := categoriesCmd.String("email", "", "Admin email. The OTP will be prompted next.")
	categoriesUname := categoriesCmd.String("username", "", "Executive username. The password will be prompted next.")

	bookingsCmd := flag.NewFlagSet("bookings", flag.ContinueOnError)
	bookingsCmd.SetOutput(cli.out)
	bookingsEmail := bookingsCmd.String("email", "", "Student email. The OTP will be prompted next.")
	bookingsPage := bookingsCmd.Int("page", 1, "Page to list")

	switch args[1] {
	case "categories":
		if err := categoriesCmd.Parse(args[2:]); err != nil {
			return err
		}
		var err error
		switch {
		case *categoriesEmail != "" && *categoriesUname == "":
			err = cli.otpLogin(ctx, otpflow.PersonaAdmin, *categoriesEmail)
		case *categoriesUname != "" && *categoriesEmail == "":
			err = cli.executiveLogin(ctx, *categoriesUname)
		default:
			categoriesCmd.Usage()
			return errHelp
		}
		if err != nil {
			return err
		}
		return cli.printCategories(ctx)
	case "bookings":
		if err := bookingsCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *bookingsEmail == "" {
			bookingsCmd.Usage()
			return errHelp
		}
		if err := cli.otpLogin(ctx, otpflow.PersonaStudent, *bookingsEmail); err != nil {
			return err
		}
		return cli.printBookings(ctx, *bookingsPage)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) otpLogin(ctx context.Context, persona otpflow.Persona, email string) error {
	flow, err := cli.c.NewLoginFlow(persona)
	if err != nil {
		return err
	}
	if err := flow.SubmitEmail(ctx, email); err != nil {
		return err
	}
	if flow.State().Step != otpflow.StepOTP {
		return fmt.Errorf("no account is registered for %s", email)
	}

	fmt.Fprintf(cli.out, "Enter the code sent to %s:", email)
	code, err := cli.readCode()
	fmt.Fprintln(cli.out)
	if err != nil {
		return err
	}
	return flow.SubmitCode(ctx, code)
}

func (cli *commandLine) executiveLogin(ctx context.Context, username string) error {
	flow, err := cli.c.NewLoginFlow(otpflow.PersonaExecutive)
	if err != nil {
		return err
	}

	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
	fmt.Fprintln(cli.out)
	if err != nil {
		return err
	}
	if len(pwd) == 0 {
		return errHelp
	}
	return flow.SubmitCredentials(ctx, username, string(pwd))
}

func (cli *commandLine) printCategories(ctx context.Context) error {
	if err := cli.c.Categories.Reload(ctx, domain.PageQuery{}); err != nil {
		return err
	}
	tree := cli.c.Categories.Navigator().Tree()
	if len(tree) == 0 {
		fmt.Fprintln(cli.out, "No categories yet.")
		return nil
	}

	var walk func(nodes []*domain.Node, depth int)
	walk = func(nodes []*domain.Node, depth int) {
		for _, n := range nodes {
			fmt.Fprintf(cli.out, "%s%s %s [%s]\n", strings.Repeat("  ", depth), n.Kind, n.Name, n.ID)
			walk(n.Subcategories, depth+1)
			walk(n.Courses, depth+1)
		}
	}
	walk(tree, 0)
	return nil
}

func (cli *commandLine) printBookings(ctx context.Context, page int) error {
	res, err := cli.c.StudentSvc.Bookings(ctx, domain.PageQuery{Page: page})
	if err != nil {
		return err
	}
	if len(res.Items) == 0 {
		fmt.Fprintln(cli.out, "No bookings.")
		return nil
	}

	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BOOKING\tCLASS\tTUTOR\tSTATUS")
	for _, b := range res.Items {
		class := b.ClassName
		if class == "" {
			class = b.CourseID.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.ID, class, b.TutorName, b.Status)
	}
	if p := res.Pagination; p != nil && p.ShouldRender() {
		fmt.Fprintf(w, "page %d of %d\t\t\t\n", p.CurrentPage, p.TotalPages)
	}
	return w.Flush()
}
