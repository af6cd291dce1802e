//go:build linux
// +build linux

package shell

import (
	"fmt"
	"strings"

	"golang.org/x/sys/unix"
)

// Redirections rebind file descriptors 0 and 1 in place, so they must only
// ever run inside the short-lived process that is about to become (or host)
// the target program. Running them in the shell itself would clobber its own
// standard streams.

const redirPerm = 0644

// ApplyRedirection opens the redirection target and duplicates it over the
// corresponding standard descriptor, then closes the original descriptor.
func ApplyRedirection(r Redirection) error {
	var (
		fd     int
		target int
		err    error
	)

	switch r.Kind {
	case RedirIn:
		fd, err = unix.Open(r.Path, unix.O_RDONLY, 0)
		target = 0
	case RedirOut:
		fd, err = unix.Open(r.Path, unix.O_WRONLY|unix.O_CREAT|unix.O_TRUNC, redirPerm)
		target = 1
	case RedirAppend:
		fd, err = unix.Open(r.Path, unix.O_WRONLY|unix.O_CREAT|unix.O_APPEND, redirPerm)
		target = 1
	default:
		return fmt.Errorf("unknown redirection kind %d", r.Kind)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", r.Path, err)
	}

	if err := unix.Dup3(fd, target, 0); err != nil {
		unix.Close(fd)
		return fmt.Errorf("dup %s: %w", r.Path, err)
	}
	return unix.Close(fd)
}

// ApplyRedirections applies each redirection in command order. Every file is
// opened even when a later redirection of the same stream supersedes it,
// matching standard shell behavior for "cmd > a > b".
func ApplyRedirections(redirs []Redirection) error {
	for _, r := range redirs {
		if err := ApplyRedirection(r); err != nil {
			return err
		}
	}
	return nil
}

// MarshalRedirection encodes a redirection as a KIND:PATH argument for the
// applet re-exec, the inverse of ParseRedirectSpec.
func MarshalRedirection(r Redirection) string {
	switch r.Kind {
	case RedirIn:
		return "in:" + r.Path
	case RedirAppend:
		return "append:" + r.Path
	default:
		return "out:" + r.Path
	}
}

// ParseRedirectSpec decodes a KIND:PATH redirection argument.
func ParseRedirectSpec(spec string) (Redirection, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 || parts[1] == "" {
		return Redirection{}, fmt.Errorf("malformed redirection spec %q", spec)
	}
	switch parts[0] {
	case "in":
		return Redirection{Kind: RedirIn, Path: parts[1]}, nil
	case "out":
		return Redirection{Kind: RedirOut, Path: parts[1]}, nil
	case "append":
		return Redirection{Kind: RedirAppend, Path: parts[1]}, nil
	default:
		return Redirection{}, fmt.Errorf("unknown redirection kind %q", parts[0])
	}
}
