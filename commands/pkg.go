package commands

import (
	"fmt"

	"github.com/picobox/picobox/core/config"
	"github.com/picobox/picobox/core/pkg"
	"github.com/picobox/picobox/core/proc"
)

// Pkg implements the built-in package manager applet.
func Pkg(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "pkg install PATH|URL|NAME | list | info NAME | remove NAME",
		Short: "Manage packages installed under the picobox directory.",
	}

	return cmd.RunE(p, func() error {
		args := cmd.Flags().Args()
		if len(args) == 0 {
			cmd.PrintHelp(p.Stderr)
			return fmt.Errorf("missing subcommand")
		}

		cfg, err := config.LoadOrDefault(p.Getenv("PICOBOX_CONFIG"))
		if err != nil {
			return err
		}
		manager := pkg.NewManager(p.FS, cfg)

		sub, rest := args[0], args[1:]
		switch sub {
		case "install":
			if len(rest) != 1 {
				return fmt.Errorf("install takes exactly one PATH, URL or NAME")
			}
			rec, err := manager.Install(rest[0], p.Stdout)
			if err != nil {
				return err
			}
			fmt.Fprintf(p.Stdout, "\nPackage %q installed successfully!\n", rec.Name)
			return nil

		case "list":
			if len(rest) != 0 {
				return fmt.Errorf("list takes no arguments")
			}
			installed, err := manager.List()
			if err != nil {
				return err
			}
			if len(installed) == 0 {
				fmt.Fprintln(p.Stdout, "No packages installed.")
				return nil
			}

			fmt.Fprintln(p.Stdout, "Installed packages:")
			fmt.Fprintf(p.Stdout, "%-20s %-12s %s\n", "NAME", "VERSION", "DESCRIPTION")
			fmt.Fprintf(p.Stdout, "%-20s %-12s %s\n", "----", "-------", "-----------")
			for _, rec := range installed {
				fmt.Fprintf(p.Stdout, "%-20s %-12s %s\n", rec.Name, rec.Version, rec.Description)
			}
			plural := "s"
			if len(installed) == 1 {
				plural = ""
			}
			fmt.Fprintf(p.Stdout, "\nTotal: %d package%s\n", len(installed), plural)
			return nil

		case "info":
			if len(rest) != 1 {
				return fmt.Errorf("info takes exactly one NAME")
			}
			rec, files, err := manager.Info(rest[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(p.Stdout, "Package: %s\n", rec.Name)
			fmt.Fprintf(p.Stdout, "Version: %s\n", rec.Version)
			fmt.Fprintf(p.Stdout, "Description: %s\n", rec.Description)
			fmt.Fprintf(p.Stdout, "Installed: %s\n", rec.InstallDate)
			fmt.Fprintf(p.Stdout, "Location: %s\n", rec.Path)
			if len(files) > 0 {
				fmt.Fprintln(p.Stdout, "\nFiles:")
				for _, f := range files {
					fmt.Fprintf(p.Stdout, "  %s\n", f)
				}
			}
			return nil

		case "remove":
			if len(rest) != 1 {
				return fmt.Errorf("remove takes exactly one NAME")
			}
			if err := manager.Remove(rest[0]); err != nil {
				return err
			}
			fmt.Fprintf(p.Stdout, "Package %q removed.\n", rest[0])
			return nil

		default:
			cmd.PrintHelp(p.Stderr)
			return fmt.Errorf("unknown subcommand %q", sub)
		}
	})
}

var _ proc.Func = Pkg

func init() {
	register("pkg", "Manage packages installed under the picobox directory.", Pkg)
}
