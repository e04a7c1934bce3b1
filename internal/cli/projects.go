package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/folioadmin/folioadmin-go/internal/admin"
	"github.com/folioadmin/folioadmin-go/internal/confirm"
	"github.com/folioadmin/folioadmin-go/internal/form"
	"github.com/folioadmin/folioadmin-go/internal/model"
)

func (a *app) dashboard(c *confirm.Confirmer, opts ...admin.DashboardOption) *admin.Dashboard {
	opts = append([]admin.DashboardOption{admin.WithSearchDelay(a.cfg.SearchDebounce)}, opts...)
	return admin.NewDashboard(a.deps, c, opts...)
}

// confirmer asks on stdin, or answers yes at once when assumeYes is set.
func (a *app) confirmer(assumeYes bool) *confirm.Confirmer {
	var c *confirm.Confirmer
	c = confirm.New(func(msg string) {
		if assumeYes {
			_ = c.Resolve(true)
			return
		}
		answer, err := a.prompt(msg + " [y/N] ")
		_ = c.Resolve(err == nil && isYes(answer))
	})
	return c
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	}
	return false
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid project id %q", s)
	}
	return id, nil
}

func openImage(path string) (*model.ImageFile, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open image: %w", err)
	}
	return &model.ImageFile{Name: filepath.Base(path), Content: f}, func() { f.Close() }, nil
}

func newListCmd(a *app) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := a.dashboard(confirm.New(nil))
			defer d.Close()

			if _, err := d.Mount(cmd.Context()); err != nil {
				return err
			}
			if search != "" {
				d.SearchNow(search)
			}
			printProjects(a.out, d.Projects())
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "only show projects whose title contains this text")
	return cmd
}

func addProjectFlags(cmd *cobra.Command, f *form.Project, image *string) {
	cmd.Flags().StringVar(&f.Title, "title", "", "project title")
	cmd.Flags().StringVar(&f.Description, "description", "", "project description")
	cmd.Flags().StringVar(&f.Category, "category", "", fmt.Sprintf("one of %q", model.Categories))
	cmd.Flags().StringVar(&f.Link, "link", "", "live project URL")
	cmd.Flags().StringVar(&f.Github, "github", "", "source repository URL")
	cmd.Flags().StringVar(image, "image", "", "path to the cover image")
}

func newAddCmd(a *app) *cobra.Command {
	var (
		f     form.Project
		image string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if image != "" {
				img, closeImage, err := openImage(image)
				if err != nil {
					return err
				}
				defer closeImage()
				f.Image = img
			}

			if _, err := admin.NewAddPage(a.deps).Submit(cmd.Context(), &f); err != nil {
				return fieldError(err)
			}
			return nil
		},
	}

	addProjectFlags(cmd, &f, &image)
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var (
		f     form.Project
		image string
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change a project; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			d := a.dashboard(confirm.New(nil))
			defer d.Close()
			if _, err := d.Mount(cmd.Context()); err != nil {
				return err
			}

			u, err := d.Edit(id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			for name, dst := range map[string]*string{
				"title":       &u.Form.Title,
				"description": &u.Form.Description,
				"category":    &u.Form.Category,
				"link":        &u.Form.Link,
				"github":      &u.Form.Github,
			} {
				if flags.Changed(name) {
					*dst, _ = flags.GetString(name)
				}
			}

			if image != "" {
				img, closeImage, err := openImage(image)
				if err != nil {
					return err
				}
				defer closeImage()
				u.Form.Image = img
			}

			p, err := u.Submit(cmd.Context())
			if err != nil {
				return fieldError(err)
			}
			printProjects(a.out, []model.Project{p})
			return nil
		},
	}

	addProjectFlags(cmd, &f, &image)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a project after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			d := a.dashboard(a.confirmer(yes))
			defer d.Close()
			if _, err := d.Mount(cmd.Context()); err != nil {
				return err
			}

			deleted, err := d.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintln(a.out, "cancelled")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newImageCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "image FILENAME",
		Short: "Download a stored project image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := a.client.FetchImage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer rc.Close()

			var w io.Writer = a.out
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			_, err = io.Copy(w, rc)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}
