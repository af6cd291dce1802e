// Package core wires the shell engine to its outer surfaces. Server exposes
// the interactive shell over SSH.
package core

import (
	"context"
	"crypto/subtle"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"

	"github.com/picobox/picobox/commands"
	"github.com/picobox/picobox/core/config"
	"github.com/picobox/picobox/core/shell"
)

// Server hosts shell sessions over SSH.
type Server struct {
	configuration *config.Configuration
	logger        *log.Logger
	sshServer     *ssh.Server
	selfExec      []string
}

// NewServer builds a Server from the configuration. Diagnostics are written
// to stderr.
func NewServer(configuration *config.Configuration, stderr io.Writer) (*Server, error) {
	self, err := os.Executable()
	if err != nil {
		return nil, err
	}

	server := &Server{
		configuration: configuration,
		logger:        log.New(stderr, "", log.LstdFlags),
		selfExec:      []string{self, "applet"},
	}

	server.sshServer = &ssh.Server{
		Addr: fmt.Sprintf(":%d", configuration.SSH.Port),
		Handler: func(s ssh.Session) {
			server.HandleConnection(s)
		},
		PublicKeyHandler: func(ctx ssh.Context, key ssh.PublicKey) bool {
			// Log the fingerprint for operators, keys are never accepted.
			server.logger.Printf("public key offered by %s: %s", ctx.User(), gossh.FingerprintSHA256(key))
			return false
		},
		PasswordHandler: func(ctx ssh.Context, password string) bool {
			return server.checkPassword(password)
		},
	}

	if keyPath := configuration.HostKeyPath(); keyPath != "" {
		if _, err := os.Stat(keyPath); err == nil {
			server.sshServer.SetOption(ssh.HostKeyFile(keyPath))
		}
	}

	return server, nil
}

func (s *Server) checkPassword(password string) bool {
	if s.configuration.SSH.AllowAnyPassword {
		return true
	}

	ok := false
	for _, candidate := range s.configuration.SSH.Passwords {
		// Check every candidate to keep timing uniform.
		if subtle.ConstantTimeCompare([]byte(password), []byte(candidate)) == 1 {
			ok = true
		}
	}
	return ok
}

// sessionEnviron is the environment for one session's applet children: the
// server's own environment plus the configuration directory the server was
// started with and the session's user.
func (s *Server) sessionEnviron(user string) []string {
	env := append(os.Environ(), "PICOBOX_CONFIG="+s.configuration.Dir())
	return append(env, "USER="+user)
}

// HandleConnection runs one shell session bound to the SSH stream.
func (s *Server) HandleConnection(sess ssh.Session) {
	s.logger.Printf("session start: user=%s remote=%s", sess.User(), sess.RemoteAddr())
	defer s.logger.Printf("session end: user=%s remote=%s", sess.User(), sess.RemoteAddr())

	if motd := s.configuration.SSH.Motd; motd != "" {
		fmt.Fprintf(sess, "%s\n", motd)
	}

	dispatcher := &shell.Dispatcher{
		Registry: commands.NewRegistry(),
		SelfExec: s.selfExec,
		Env:      s.sessionEnviron(sess.User()),
		Stdin:    sess,
		Stdout:   sess,
		Stderr:   sess.Stderr(),
	}

	_, winCh, isPty := sess.Pty()
	if isPty {
		// Drain window change requests so the channel doesn't block.
		go func() {
			for range winCh {
			}
		}()
	}

	sh, err := shell.NewShell(dispatcher, shell.Options{
		Prompt: s.configuration.Prompt,
		Stdin:  ioutil.NopCloser(sess),
		Stdout: sess,
		Stderr: sess.Stderr(),
		IsTerminal: func() bool {
			return isPty
		},
	})
	if err != nil {
		fmt.Fprintf(sess.Stderr(), "picobox: %v\n", err)
		sess.Exit(1)
		return
	}

	if err := sh.Run(); err != nil {
		s.logger.Printf("session error: %v", err)
	}
	sess.Exit(sh.Ctx.LastStatus)
}

// ListenAndServe blocks serving SSH sessions.
func (s *Server) ListenAndServe() error {
	s.logger.Printf("listening on %s", s.sshServer.Addr)
	return s.sshServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.sshServer.Shutdown(ctx)
}
