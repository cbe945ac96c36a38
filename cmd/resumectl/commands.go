package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"resume_backend/internal/api"
	"resume_backend/internal/client"
	"resume_backend/internal/client/export"
	"resume_backend/internal/feature/resume/transport/dto"
)

const usage = `usage: resumectl <command> [flags]

A password left off the command line is read from the terminal.

commands:
  register  -email -name [-password]
  login     -email [-password]
  logout
  verify    -token
  forgot    -email
  reset     -token [-password]
  list
  show      -id
  create    -file resume.json
  delete    -id
  bullets   -experience [-position] [-company]
  export    -id [-mode client|server] [-dir .] [-template modern]
`

var errUsage = errors.New("invalid usage")

type app struct {
	client     *client.Client
	rasterizer export.Rasterizer
	out        io.Writer
	// password prompts for a password left off the command line. Nil disables prompting.
	password func() (string, error)
}

// passwordFlag fills *p from the prompt when the flag was left empty.
func (a *app) passwordFlag(cmd string, p *string) error {
	if *p != "" {
		return nil
	}
	if a.password == nil {
		return fmt.Errorf("%w: %s requires -password", errUsage, cmd)
	}
	pw, err := a.password()
	if err != nil {
		return err
	}
	if pw == "" {
		return fmt.Errorf("%w: %s requires a password", errUsage, cmd)
	}
	*p = pw
	return nil
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(a.out)

	switch cmd {
	case "register":
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "password, at least 8 characters")
		name := fs.String("name", "", "display name")
		if err := parse(fs, rest, "email", "name"); err != nil {
			return err
		}
		if err := a.passwordFlag(cmd, password); err != nil {
			return err
		}
		res, err := a.client.Register(ctx, *email, *password, *name)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "registered %s; check your inbox to verify the address\n", res.User.Email)

	case "login":
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "password")
		if err := parse(fs, rest, "email"); err != nil {
			return err
		}
		if err := a.passwordFlag(cmd, password); err != nil {
			return err
		}
		res, err := a.client.Login(ctx, *email, *password)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "logged in as %s\n", res.User.Email)

	case "logout":
		if err := a.client.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "logged out")

	case "verify":
		token := fs.String("token", "", "verification token from the mail")
		if err := parse(fs, rest, "token"); err != nil {
			return err
		}
		if err := a.client.VerifyEmail(ctx, *token); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "email verified")

	case "forgot":
		email := fs.String("email", "", "account email")
		if err := parse(fs, rest, "email"); err != nil {
			return err
		}
		if err := a.client.ForgotPassword(ctx, *email); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "password reset email sent")

	case "reset":
		token := fs.String("token", "", "reset token from the mail")
		password := fs.String("password", "", "new password")
		if err := parse(fs, rest, "token"); err != nil {
			return err
		}
		if err := a.passwordFlag(cmd, password); err != nil {
			return err
		}
		if err := a.client.ResetPassword(ctx, *token, *password); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "password reset")

	case "list":
		if err := parse(fs, rest); err != nil {
			return err
		}
		list, err := a.client.ListResumes(ctx)
		if err != nil {
			return err
		}
		for _, r := range list {
			fmt.Fprintf(a.out, "%s\t%s\t%s\n", r.ID, r.Title, r.UpdatedAt.Format("2006-01-02"))
		}

	case "show":
		id := fs.String("id", "", "resume id")
		if err := parse(fs, rest, "id"); err != nil {
			return err
		}
		r, err := a.client.GetResume(ctx, *id)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)

	case "create":
		file := fs.String("file", "", "JSON resume body")
		if err := parse(fs, rest, "file"); err != nil {
			return err
		}
		b, err := os.ReadFile(*file)
		if err != nil {
			return err
		}
		var req api.ResumeRequest
		if err := json.Unmarshal(b, &req); err != nil {
			return fmt.Errorf("decode %s: %w", *file, err)
		}
		r, err := a.client.CreateResume(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, r.ID)

	case "delete":
		id := fs.String("id", "", "resume id")
		if err := parse(fs, rest, "id"); err != nil {
			return err
		}
		if err := a.client.DeleteResume(ctx, *id); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "deleted")

	case "bullets":
		experience := fs.String("experience", "", "what you did")
		position := fs.String("position", "", "job title")
		company := fs.String("company", "", "employer")
		if err := parse(fs, rest, "experience"); err != nil {
			return err
		}
		bullets, err := a.client.GenerateBullets(ctx, api.GenerateBulletsRequest{
			Experience: *experience,
			Position:   *position,
			Company:    *company,
		})
		if err != nil {
			return err
		}
		for _, b := range bullets {
			fmt.Fprintln(a.out, "•", b)
		}

	case "export":
		id := fs.String("id", "", "resume id")
		mode := fs.String("mode", "client", "client renders locally, server downloads the server PDF")
		dir := fs.String("dir", ".", "output directory")
		template := fs.String("template", "modern", "client template: modern, classic or minimal")
		if err := parse(fs, rest, "id"); err != nil {
			return err
		}
		return a.export(ctx, *id, *mode, *dir, *template)

	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
	return nil
}

func (a *app) export(ctx context.Context, id, mode, dir, template string) error {
	switch mode {
	case "client":
		res, err := a.client.GetResume(ctx, id)
		if err != nil {
			return err
		}
		if !export.NewExporter(a.rasterizer, template).Export(ctx, dto.FromResponse(*res), dir) {
			return errors.New("client export failed")
		}
		fmt.Fprintln(a.out, filepath.Join(dir, export.FileName(res.Title)))
	case "server":
		data, name, err := a.client.DownloadPDF(ctx, id)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, filepath.Base(name))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		fmt.Fprintln(a.out, path)
	default:
		return fmt.Errorf("%w: mode must be client or server", errUsage)
	}
	return nil
}

// parse parses flags and checks that every named flag is non-empty.
func parse(fs *flag.FlagSet, args []string, required ...string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	var missing []string
	for _, name := range required {
		if strings.TrimSpace(fs.Lookup(name).Value.String()) == "" {
			missing = append(missing, "-"+name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s requires %s", errUsage, fs.Name(), strings.Join(missing, ", "))
	}
	return nil
}
