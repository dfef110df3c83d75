package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/tasklit/internal/constants"
	"github.com/julianstephens/tasklit/internal/models"
	"github.com/julianstephens/tasklit/internal/tasks"
)

var ErrUsage = errors.New("invalid command")

type Kind int

const (
	KindNone Kind = iota
	KindLogin
	KindRegister
	KindLogout
	KindPasswd
	KindAdd
	KindToggle
	KindDelete
	KindMove
	KindEdit
	KindFilter
	KindList
	KindToday
	KindDone
	KindStats
	KindTip
	KindSuggest
	KindWhoami
	KindHelp
	KindQuit
)

// Intent is one parsed shell line.
type Intent struct {
	Kind Kind

	Username string
	Password string
	Confirm  string

	Text     string
	Priority models.Priority
	Category models.Category
	DueDate  string

	ID       int64
	TargetID int64

	Search         string
	CategoryFilter string
	PriorityFilter string
}

// none is the placeholder for an omitted positional value.
const none = "-"

type taskRef struct {
	ID int64 `arg:"" help:"Task id."`
}

// grammar is the shell command set. Each line is parsed against it.
type grammar struct {
	Login struct {
		Username string `arg:""`
		Password string `arg:""`
	} `cmd:"" help:"Log in and start a session."`
	Register struct {
		Username string `arg:""`
		Password string `arg:""`
		Confirm  string `arg:""`
	} `cmd:"" help:"Create an account."`
	Logout struct{} `cmd:"" help:"End the session."`
	Passwd struct {
		New     string `arg:""`
		Confirm string `arg:""`
	} `cmd:"" help:"Change the password of the logged-in user."`

	Add struct {
		Priority string   `arg:"" help:"high, medium or low."`
		Category string   `arg:"" help:"work, learning, personal or health."`
		Due      string   `arg:"" help:"Due date as YYYY-MM-DD, or - for none."`
		Text     []string `arg:"" help:"Task text."`
	} `cmd:"" help:"Add a task."`
	Toggle taskRef `cmd:"" help:"Flip a task between open and completed."`
	Delete taskRef `cmd:"" help:"Delete a task."`
	Move   struct {
		ID     int64 `arg:"" help:"Task to move."`
		Before int64 `arg:"" optional:"" help:"Task to place it in front of. Omit to move it to the end."`
	} `cmd:"" help:"Reorder a task."`
	Edit   taskRef `cmd:"" help:"Edit a task."`
	Filter struct {
		Search   string `arg:"" help:"Text to match, or - for any."`
		Category string `arg:"" help:"Category, or all."`
		Priority string `arg:"" help:"Priority, or all."`
	} `cmd:"" help:"Set the task filter and list the matches."`

	List    struct{} `cmd:"" aliases:"ls" help:"List tasks matching the filter."`
	Today   struct{} `cmd:"" help:"List open tasks due today."`
	Done    struct{} `cmd:"" help:"List completed tasks."`
	Stats   struct{} `cmd:"" help:"Show dashboard statistics."`
	Tip     struct{} `cmd:"" help:"Show a productivity tip."`
	Suggest struct{} `cmd:"" help:"Suggest a task."`
	Whoami  struct{} `cmd:"" help:"Show the current user and session."`
	Help    struct{} `cmd:"" help:"Show this help."`
	Quit    struct{} `cmd:"" aliases:"exit" help:"Leave the shell."`
}

// Parser turns shell lines into intents.
type Parser struct {
	g      grammar
	parser *kong.Kong
}

// NewParser builds the command grammar. Help is written to out.
func NewParser(out io.Writer) *Parser {
	p := &Parser{}
	p.parser = kong.Must(&p.g,
		kong.Name(constants.AppName),
		kong.Description("Shell commands, one per line."),
		kong.NoDefaultHelp(),
		kong.Exit(func(int) {}),
		kong.Writers(out, out),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	return p
}

// Parse turns a line into an intent. Blank lines and # comments parse to
// KindNone. The command word is case-insensitive.
func (p *Parser) Parse(line string) (Intent, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return Intent{Kind: KindNone}, nil
	}
	// No command takes flags, so everything after the command word is
	// positional and passwords or task text may start with a dash.
	args := append([]string{strings.ToLower(fields[0]), "--"}, fields[1:]...)

	kctx, err := p.parser.Parse(args)
	if err != nil {
		return Intent{}, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return p.intent(strings.Fields(kctx.Command())[0])
}

func (p *Parser) intent(cmd string) (Intent, error) {
	g := &p.g
	switch cmd {
	case "login":
		return Intent{Kind: KindLogin, Username: g.Login.Username, Password: g.Login.Password}, nil
	case "register":
		return Intent{Kind: KindRegister, Username: g.Register.Username, Password: g.Register.Password, Confirm: g.Register.Confirm}, nil
	case "logout":
		return Intent{Kind: KindLogout}, nil
	case "passwd":
		return Intent{Kind: KindPasswd, Password: g.Passwd.New, Confirm: g.Passwd.Confirm}, nil

	case "add":
		priority, err := models.ParsePriority(g.Add.Priority)
		if err != nil {
			return Intent{}, err
		}
		category, err := models.ParseCategory(g.Add.Category)
		if err != nil {
			return Intent{}, err
		}
		return Intent{
			Kind:     KindAdd,
			Priority: priority,
			Category: category,
			DueDate:  placeholder(g.Add.Due),
			Text:     strings.Join(g.Add.Text, " "),
		}, nil

	case "toggle":
		return idIntent(KindToggle, g.Toggle.ID)
	case "delete":
		return idIntent(KindDelete, g.Delete.ID)
	case "edit":
		return idIntent(KindEdit, g.Edit.ID)
	case "move":
		in, err := idIntent(KindMove, g.Move.ID)
		if err != nil {
			return Intent{}, err
		}
		if g.Move.Before < 0 {
			return Intent{}, fmt.Errorf("%w: invalid task id %d", ErrUsage, g.Move.Before)
		}
		in.TargetID = tasks.End
		if g.Move.Before != 0 {
			in.TargetID = g.Move.Before
		}
		return in, nil

	case "filter":
		return Intent{
			Kind:           KindFilter,
			Search:         placeholder(g.Filter.Search),
			CategoryFilter: g.Filter.Category,
			PriorityFilter: g.Filter.Priority,
		}, nil
	}

	simple := map[string]Kind{
		"list":    KindList,
		"today":   KindToday,
		"done":    KindDone,
		"stats":   KindStats,
		"tip":     KindTip,
		"suggest": KindSuggest,
		"whoami":  KindWhoami,
		"help":    KindHelp,
		"quit":    KindQuit,
	}
	if kind, ok := simple[cmd]; ok {
		return Intent{Kind: kind}, nil
	}
	return Intent{}, fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
}

// PrintHelp writes the generated command summary.
func (p *Parser) PrintHelp() error {
	kctx, err := kong.Trace(p.parser, nil)
	if err != nil {
		return err
	}
	return kctx.PrintUsage(false)
}

func idIntent(kind Kind, id int64) (Intent, error) {
	if id <= 0 {
		return Intent{}, fmt.Errorf("%w: invalid task id %d", ErrUsage, id)
	}
	return Intent{Kind: kind, ID: id}, nil
}

func placeholder(s string) string {
	if s == none {
		return ""
	}
	return s
}
