package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App implements
// it; tests use a recording stub.
type execIface interface {
	List(ctx context.Context) error
	Open(ctx context.Context, args []string) error
	Show(ctx context.Context) error
	Save(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Link(ctx context.Context, args []string) error
	Shards(ctx context.Context) error
	Seed(ctx context.Context) error
	Token(ctx context.Context, args []string) error
	Whoami(ctx context.Context) error
	Logout(ctx context.Context) error
}

const helpText = `Available commands:
  list                 list stored files
  open <id>            download and decrypt a file in the background
  show                 print the opened file
  save [path]          write the opened file to disk
  upload <path>...     encrypt and upload files in the background
  delete <id>          delete a file
  link <id>            print a share link and copy it to the clipboard
  shards               show storage shard health
  seed                 set the encryption seed
  token [value]        set the session token
  whoami               show the session owner
  logout               forget the session token
  exit | quit          leave the program`

// runREPL reads commands line by line and dispatches them to a. Handler
// errors are printed and the loop continues. It returns on EOF, on "exit"
// or "quit", or when ctx is cancelled.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "sharder %s> ", statusFn())

		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help", "?":
			fmt.Fprintln(w, helpText)
		case "l", "list", "ls":
			err = a.List(ctx)
		case "open":
			err = a.Open(ctx, args)
		case "show":
			err = a.Show(ctx)
		case "save":
			err = a.Save(ctx, args)
		case "upload":
			err = a.Upload(ctx, args)
		case "delete", "rm":
			err = a.Delete(ctx, args)
		case "link":
			err = a.Link(ctx, args)
		case "shards":
			err = a.Shards(ctx)
		case "seed":
			err = a.Seed(ctx)
		case "token":
			err = a.Token(ctx, args)
		case "whoami":
			err = a.Whoami(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if err != nil {
			fmt.Fprintln(w, "Error:", err)
		}
	}
}
