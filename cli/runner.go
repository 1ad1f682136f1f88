package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path"

	"github.com/jessevdk/go-flags"
	"github.com/viant/afs"
	"github.com/viant/transcript/client"
	"github.com/viant/transcript/internal/config"
)

// Run executes command line against the configured api
func Run(args []string) error {
	return New(os.Stdout).Run(context.Background(), args)
}

// Runner executes commands writing results to out
type Runner struct {
	out io.Writer
	fs  afs.Service
}

func (r *Runner) Run(ctx context.Context, args []string) error {
	options := &Options{}
	parser := flags.NewParser(options, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil
		}
		return err
	}
	cfg, err := config.Load(options.Config)
	if err != nil {
		return err
	}
	if options.URL != "" {
		cfg.API.URL = options.URL
	}
	cli, err := NewClient(ctx, cfg)
	if err != nil {
		return err
	}
	return r.execute(ctx, cli, parser.Active.Name, options)
}

func (r *Runner) execute(ctx context.Context, cli *client.Client, command string, options *Options) error {
	switch command {
	case "signup":
		cmd := options.Signup
		return r.print(cli.Signup(ctx, cmd.Email, cmd.Password, cmd.DisplayName))
	case "login":
		cmd := options.Login
		return r.print(cli.Login(ctx, cmd.Email, cmd.Password))
	case "logout":
		return cli.Logout(ctx)
	case "status":
		if !cli.IsLoggedIn() {
			_, err := fmt.Fprintln(r.out, "signed out")
			return err
		}
		_, err := fmt.Fprintf(r.out, "signed in as %v\n", cli.UserID())
		return err
	case "whoami":
		return r.print(cli.Profile(ctx))
	case "list":
		return r.print(cli.ListTranscripts(ctx))
	case "get":
		return r.print(cli.GetTranscript(ctx, options.Get.Args.ID))
	case "create":
		cmd := options.Create
		return r.print(cli.CreateTranscript(ctx, &client.TranscriptInput{Text: cmd.Text, Filename: cmd.Filename}))
	case "update":
		cmd := options.Update
		update := &client.TranscriptUpdate{}
		if cmd.Text != "" {
			update.Text = &cmd.Text
		}
		if cmd.Filename != "" {
			update.Filename = &cmd.Filename
		}
		return cli.UpdateTranscript(ctx, cmd.Args.ID, update)
	case "delete":
		return cli.DeleteTranscript(ctx, options.Delete.Args.ID)
	case "transcribe":
		audio, err := r.audio(ctx, &options.Transcribe)
		if err != nil {
			return err
		}
		return r.print(cli.Transcribe(ctx, audio))
	}
	return fmt.Errorf("unsupported command: %v", command)
}

func (r *Runner) audio(ctx context.Context, cmd *TranscribeCommand) (*client.Audio, error) {
	location := cmd.Args.Location
	data, err := r.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio %v: %w", location, err)
	}
	name := path.Base(location)
	return &client.Audio{
		Name:         name,
		ContentType:  mime.TypeByExtension(path.Ext(name)),
		Data:         data,
		Language:     cmd.Language,
		TranscriptID: cmd.ID,
	}, nil
}

func (r *Runner) print(value interface{}, err error) error {
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.out, string(data))
	return err
}

// New creates a runner
func New(out io.Writer) *Runner {
	return &Runner{out: out, fs: afs.New()}
}
