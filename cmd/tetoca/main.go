// tetoca is a terminal client for the TeToca queue service: sign in, browse
// enterprises and their queues, take a number and manage the ticket.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tetoca/tetoca-go/internal/config"
	"github.com/tetoca/tetoca-go/internal/data"
	"github.com/tetoca/tetoca-go/internal/data/fixture"
	"github.com/tetoca/tetoca-go/internal/data/rest"
	"github.com/tetoca/tetoca-go/internal/models"
	"github.com/tetoca/tetoca-go/internal/qr"
	"github.com/tetoca/tetoca-go/internal/services"
	"github.com/tetoca/tetoca-go/internal/session"
	"github.com/tetoca/tetoca-go/internal/storage"
	"github.com/tetoca/tetoca-go/internal/telemetry"
	"github.com/tetoca/tetoca-go/internal/transport"
)

const usage = `usage: tetoca <command> [arguments]

session
  login -email <email> -password <password>
  register -name <name> -email <email> -password <password> [-phone <phone>]
  logout
  whoami
  tenant [<tenantId>]

browse
  enterprises
  search <text>
  categories
  category <categoryId>
  queues <enterpriseId>
  queue <queueId>

tickets
  join <queueId> [-name <name>] [-phone <phone>] [-email <email>]
  ticket <ticketId>
  pause <ticketId>
  resume <ticketId>
  cancel <ticketId>
  tickets
  scan <qr-text>
  push-token <token>
`

type app struct {
	auth        *services.Auth
	enterprises *services.Enterprises
	categories  *services.Categories
	queues      *services.Queues
	tickets     *services.Tickets
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "tetoca:", err)
		os.Exit(1)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "tetoca").Logger()

	shutdownTracing := telemetry.Setup("tetoca", logger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(ctx)
	}()

	local, err := openStorage(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tetoca:", err)
		os.Exit(1)
	}

	source := newSource(cfg, local, logger)
	sessions := session.New(local)
	unsubscribe := sessions.Subscribe(func(s session.State) {
		logger.Debug().
			Bool("authenticated", s.Authenticated).
			Str("tenant", s.TenantID).
			Msg("session changed")
	})
	defer unsubscribe()

	a := &app{
		auth:        services.NewAuth(source, local, sessions, logger),
		enterprises: services.NewEnterprises(source),
		categories:  services.NewCategories(source),
		queues:      services.NewQueues(source),
		tickets:     services.NewTickets(source, local, logger),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "tetoca:", errorText(err))
		os.Exit(1)
	}
}

func openStorage(cfg config.Config) (storage.Store, error) {
	dir := cfg.StateDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".tetoca")
	}
	return storage.NewFileStore(dir)
}

// newSource picks the single data source for this run. Everything past this
// point is oblivious to the choice.
func newSource(cfg config.Config, local storage.Store, logger zerolog.Logger) data.Source {
	if cfg.UseMockData {
		logger.Debug().Msg("using fixture data source")
		return fixture.NewSource(fixture.NewStore(), local, cfg.MockDelay)
	}
	client := transport.New(cfg.APIBaseURL, local, logger, transport.Options{
		Timeout: cfg.RequestTimeout,
		Tracing: true,
	})
	return rest.New(client)
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("missing command")
	}
	cmd, tail := args[0], args[1:]

	switch cmd {
	case "login":
		return a.cmdLogin(ctx, tail)
	case "register":
		return a.cmdRegister(ctx, tail)
	case "logout":
		return a.cmdLogout(ctx)
	case "whoami":
		return a.cmdWhoami(ctx)
	case "tenant":
		return a.cmdTenant(tail)
	case "enterprises":
		return a.cmdEnterprises(ctx)
	case "search":
		return a.cmdSearch(ctx, tail)
	case "categories":
		return a.cmdCategories(ctx)
	case "category":
		return a.cmdCategory(ctx, tail)
	case "queues":
		return a.cmdQueues(ctx, tail)
	case "queue":
		return a.cmdQueue(ctx, tail)
	case "join":
		return a.cmdJoin(ctx, tail)
	case "ticket":
		return a.cmdTicket(ctx, tail)
	case "pause":
		return a.cmdTicketAction(ctx, tail, a.tickets.Pause)
	case "resume":
		return a.cmdTicketAction(ctx, tail, a.tickets.Resume)
	case "cancel":
		return a.cmdTicketAction(ctx, tail, a.tickets.Cancel)
	case "tickets":
		return a.cmdMyTickets(ctx)
	case "scan":
		return a.cmdScan(ctx, tail)
	case "push-token":
		return a.cmdPushToken(ctx, tail)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	user, err := a.auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "account email")
	phone := fs.String("phone", "", "phone number")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	user, err := a.auth.Register(ctx, data.RegisterInput{
		Name:     *name,
		Email:    *email,
		Phone:    *phone,
		Password: *password,
	})
	if err != nil {
		return err
	}
	fmt.Printf("account created, signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) cmdLogout(ctx context.Context) error {
	if a.auth.Logout(ctx) {
		fmt.Println("signed out")
	} else {
		fmt.Println("signed out locally (server could not be reached)")
	}
	return nil
}

func (a *app) cmdWhoami(ctx context.Context) error {
	user, err := a.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		fmt.Println("not signed in")
		return nil
	}
	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	if tenantID := a.auth.CurrentTenantID(); tenantID != "" {
		fmt.Printf("tenant: %s\n", tenantID)
	}
	return nil
}

func (a *app) cmdTenant(args []string) error {
	if len(args) == 0 {
		if tenantID := a.auth.CurrentTenantID(); tenantID != "" {
			fmt.Println(tenantID)
		} else {
			fmt.Println("no tenant selected")
		}
		return nil
	}
	if err := a.auth.SetTenant(args[0]); err != nil {
		return err
	}
	fmt.Printf("tenant set to %s\n", args[0])
	return nil
}

func (a *app) cmdEnterprises(ctx context.Context) error {
	list, err := a.enterprises.List(ctx)
	if err != nil {
		return err
	}
	printEnterprises(list)
	return nil
}

func (a *app) cmdSearch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("search needs a query")
	}
	list, err := a.enterprises.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("no results")
		return nil
	}
	printEnterprises(list)
	return nil
}

func (a *app) cmdCategories(ctx context.Context) error {
	list, err := a.categories.List(ctx)
	if err != nil {
		return err
	}
	w := newTable()
	fmt.Fprintln(w, "ID\tNAME")
	for _, c := range list {
		fmt.Fprintf(w, "%s\t%s\n", c.ID, c.Name)
	}
	return w.Flush()
}

func (a *app) cmdCategory(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("category needs a category id")
	}
	list, err := a.enterprises.ByCategory(ctx, args[0])
	if err != nil {
		return err
	}
	printEnterprises(list)
	return nil
}

func (a *app) cmdQueues(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("queues needs an enterprise id")
	}
	list, err := a.queues.ByEnterprise(ctx, args[0])
	if err != nil {
		return err
	}
	w := newTable()
	fmt.Fprintln(w, "ID\tNAME\tWAITING\tAVG")
	for _, q := range list {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", q.ID, q.Name, q.PeopleWaiting, q.AvgTime)
	}
	return w.Flush()
}

func (a *app) cmdQueue(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("queue needs a queue id")
	}
	q, err := a.queues.Get(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\n", q.Name, q.ID)
	if q.Description != "" {
		fmt.Println(q.Description)
	}
	fmt.Printf("waiting: %d, average: %s, priority: %s\n", q.PeopleWaiting, q.AvgTime, q.Priority)
	return nil
}

func (a *app) cmdJoin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("join needs a queue id")
	}
	fs := flag.NewFlagSet("join", flag.ContinueOnError)
	name := fs.String("name", "", "customer name")
	phone := fs.String("phone", "", "customer phone")
	email := fs.String("email", "", "customer email")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	ticket, err := a.tickets.Join(ctx, data.JoinQueueInput{
		QueueID:       args[0],
		CustomerName:  *name,
		CustomerPhone: *phone,
		CustomerEmail: *email,
	})
	if err != nil {
		return err
	}
	fmt.Printf("you are number %s, position %d\n", ticket.Number, ticket.Position)
	printTicket(ticket)
	return nil
}

func (a *app) cmdTicket(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("ticket needs a ticket id")
	}
	ticket, err := a.tickets.Get(ctx, args[0])
	if err != nil {
		return err
	}
	printTicket(ticket)
	return nil
}

func (a *app) cmdTicketAction(ctx context.Context, args []string,
	action func(context.Context, models.Ticket) (models.Ticket, error)) error {
	if len(args) == 0 {
		return fmt.Errorf("a ticket id is required")
	}
	ticket, err := a.tickets.Get(ctx, args[0])
	if err != nil {
		return err
	}
	updated, err := action(ctx, ticket)
	if err != nil {
		return err
	}
	printTicket(updated)
	return nil
}

func (a *app) cmdMyTickets(ctx context.Context) error {
	list, err := a.tickets.Mine(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("no tickets")
		return nil
	}
	w := newTable()
	fmt.Fprintln(w, "ID\tNUMBER\tQUEUE\tSTATUS\tPOSITION")
	for _, t := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", t.ID, t.Number, t.QueueName, t.Status, t.Position)
	}
	return w.Flush()
}

// cmdScan takes the raw text of a scanned code and, when it is a valid queue
// payload, looks the referenced ticket up.
func (a *app) cmdScan(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("scan needs the scanned text")
	}
	ticketData, err := qr.Parse(strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("this code is not a valid queue code: %w", err)
	}
	ticket, err := a.tickets.Get(ctx, ticketData.TicketID)
	if err != nil {
		return err
	}
	printTicket(ticket)
	return nil
}

func (a *app) cmdPushToken(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("push-token needs a device token")
	}
	if err := a.tickets.RegisterPushToken(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("push token registered")
	return nil
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func printEnterprises(list []models.Enterprise) {
	w := newTable()
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tADDRESS")
	for _, e := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.Name, e.Type, e.Address)
	}
	_ = w.Flush()
}

func printTicket(t models.Ticket) {
	fmt.Printf("ticket %s (%s)\n", t.Number, t.ID)
	fmt.Printf("  queue:    %s / %s\n", t.QueueName, t.EnterpriseName)
	fmt.Printf("  status:   %s\n", t.Status)
	if !models.IsTerminalStatus(t.Status) {
		fmt.Printf("  position: %d\n", t.Position)
		fmt.Printf("  estimated wait: %s\n", (time.Duration(t.EstimatedWaitTime) * time.Second).Round(time.Minute))
	}
	if t.CancelledAt != nil {
		fmt.Printf("  cancelled at: %s\n", t.CancelledAt.Format(time.RFC3339))
	}
}

// errorText prefers the server's message over the wrapped error chain.
func errorText(err error) string {
	var apiErr *transport.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("%s (%s)", apiErr.Message, apiErr.Code)
	}
	return err.Error()
}
