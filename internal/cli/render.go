package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/folioadmin/folioadmin-go/internal/form"
	"github.com/folioadmin/folioadmin-go/internal/model"
)

func printProjects(w io.Writer, projects []model.Project) {
	if len(projects) == 0 {
		fmt.Fprintln(w, "no projects")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tLINK\tGITHUB")
	for _, p := range projects {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Title, p.Category, p.Link, p.Github)
	}
	tw.Flush()
}

// fieldError flattens form.FieldErrors into one line per field so cobra
// prints something readable; other errors pass through.
func fieldError(err error) error {
	var fields form.FieldErrors
	if !errors.As(err, &fields) {
		return err
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = fmt.Sprintf("  %s: %s", name, fields[name])
	}
	return fmt.Errorf("invalid input:\n%s", strings.Join(lines, "\n"))
}
