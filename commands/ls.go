package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"

	fcolor "github.com/fatih/color"
	"github.com/spf13/afero"

	"github.com/picobox/picobox/core/proc"
)

// Ls implements the UNIX ls command.
func Ls(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "ls [OPTION]... [FILE]...",
		Short: "List information about the FILEs (the current directory by default).",
	}

	opts := cmd.Flags()
	listAll := opts.Bool('a', "don't ignore entries starting with .")
	longListing := opts.Bool('l', "use a long listing format")
	humanSize := opts.BoolLong("human-readable", 'h', "print human readable sizes")
	cmd.ShowHelp = opts.BoolLong("help", '?', "show this help and exit")

	var color ColorPrinter
	color.Init(opts, p)

	return cmd.Run(p, func() int {
		directoriesToList := opts.Args()
		if len(directoriesToList) == 0 {
			directoriesToList = append(directoriesToList, ".")
		}
		sort.Strings(directoriesToList)

		showDirectoryNames := len(directoriesToList) > 1

		sizeFmt := func(bytes int64) string {
			return fmt.Sprintf("%d", bytes)
		}
		if *humanSize {
			sizeFmt = BytesToHuman
		}

		exitCode := 0

		for i, directory := range directoriesToList {
			allPaths, err := afero.ReadDir(p.FS, directory)
			if err != nil {
				fmt.Fprintf(p.Stderr, "ls: %s: %v\n", directory, err)
				exitCode = 1
				continue
			}

			var paths []os.FileInfo
			var totalSize int64
			for _, fi := range allPaths {
				if !*listAll && strings.HasPrefix(fi.Name(), ".") {
					continue
				}
				paths = append(paths, fi)
				totalSize += fi.Size()
			}

			sort.Slice(paths, func(i, j int) bool {
				return paths[i].Name() < paths[j].Name()
			})

			if showDirectoryNames {
				if i > 0 {
					fmt.Fprintln(p.Stdout)
				}
				fmt.Fprintf(p.Stdout, "%s:\n", directory)
			}

			if *longListing {
				fmt.Fprintf(p.Stdout, "total %d\n", totalSize)
				tw := tabwriter.NewWriter(p.Stdout, 0, 0, 1, ' ', 0)
				for _, f := range paths {
					// Hard link counts are approximated: 2 for a
					// directory (self + parent), 1 otherwise.
					hardLinks := 1
					if f.IsDir() {
						hardLinks = 2
					}

					uid, gid := fileOwner(f)
					fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
						f.Mode().String(),
						hardLinks,
						ownerName(uid),
						ownerName(gid),
						sizeFmt(f.Size()),
						modTimeToHuman(f.ModTime()),
						color.Sprintf(Dircolor(f), "%s", f.Name()))
				}
				tw.Flush()
			} else {
				for _, f := range paths {
					fmt.Fprintln(p.Stdout, color.Sprintf(Dircolor(f), "%s", f.Name()))
				}
			}
		}

		return exitCode
	})
}

// ownerName maps an owner id to a display name. Only root is resolved; the
// rest stay numeric.
func ownerName(id int) string {
	if id == 0 {
		return "root"
	}
	return fmt.Sprintf("%d", id)
}

// fileOwner extracts the uid/gid of a file where the platform exposes them.
func fileOwner(fileInfo os.FileInfo) (uid, gid int) {
	if st, ok := fileInfo.Sys().(*syscall.Stat_t); ok {
		return int(st.Uid), int(st.Gid)
	}
	return 0, 0
}

type lsColorTest struct {
	color *fcolor.Color
	test  func(fileInfo os.FileInfo) bool
}

// Color listing comes from: https://askubuntu.com/a/884513
var dircolors = []lsColorTest{
	// Directories are bold blue.
	{color: ColorBoldBlue, test: os.FileInfo.IsDir},
	// Symlinks are bold cyan.
	{color: ColorBoldCyan, test: func(fi os.FileInfo) bool {
		return fi.Mode()&fs.ModeSymlink > 0
	}},
	// Executables are bold green.
	{color: ColorBoldGreen, test: func(fi os.FileInfo) bool {
		return fi.Mode().Perm()&0111 > 0
	}},
	// Archives are bold red.
	{color: ColorBoldRed, test: func(fi os.FileInfo) bool {
		return map[string]bool{
			".tar": true,
			".tgz": true,
			".zip": true,
			".gz":  true,
			".bz2": true,
			".deb": true,
			".rpm": true,
			".jar": true,
			".rar": true,
		}[path.Ext(fi.Name())]
	}},
}

func Dircolor(fileInfo os.FileInfo) *fcolor.Color {
	for _, dc := range dircolors {
		if dc.test(fileInfo) {
			return dc.color
		}
	}

	// Anything else defaults to white.
	return fcolor.New(fcolor.FgHiWhite)
}

var _ proc.Func = Ls

func init() {
	register("ls", "List directory contents.", Ls)
}
