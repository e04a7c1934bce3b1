package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/folioadmin/folioadmin-go/internal/admin"
	"github.com/folioadmin/folioadmin-go/internal/model"
)

const shellHelp = `commands:
  /TEXT       search titles (applied once typing pauses)
  /           clear the search
  ls          show the current list
  rm ID       delete a project
  help        show this text
  quit        leave the shell`

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Browse and search projects interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var mu sync.Mutex
			render := func(projects []model.Project) {
				mu.Lock()
				defer mu.Unlock()
				printProjects(a.out, projects)
			}

			d := a.dashboard(a.confirmer(false), admin.WithViewListener(render))
			defer d.Close()

			if _, err := d.Mount(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, shellHelp)

			for {
				line, err := a.prompt("> ")
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return err
				}

				switch fields := strings.Fields(line); {
				case strings.HasPrefix(line, "/"):
					d.Search(strings.TrimPrefix(line, "/"))
				case len(fields) == 0:
				case fields[0] == "quit" || fields[0] == "exit":
					return nil
				case fields[0] == "help":
					fmt.Fprintln(a.out, shellHelp)
				case fields[0] == "ls":
					render(d.Projects())
				case fields[0] == "rm" && len(fields) == 2:
					id, err := parseID(fields[1])
					if err != nil {
						fmt.Fprintln(a.err, err)
						continue
					}
					if _, err := d.Delete(cmd.Context(), id); err != nil {
						a.deps.Log.Debug().Err(err).Msg("delete failed")
					}
				default:
					fmt.Fprintf(a.out, "unknown command %q, try help\n", line)
				}
			}
		},
	}
}
