package commands

import (
	"fmt"
	"time"

	"github.com/cavaliercoder/grab"

	"github.com/picobox/picobox/core/proc"
	"github.com/picobox/picobox/core/shell"
)

// Wget implements a minimal wget command that downloads URLs into the
// current directory.
func Wget(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "wget URL...",
		Short: "Download files over HTTP(S).",
	}

	quiet := cmd.Flags().BoolLong("quiet", 'q', "turn off output")

	return cmd.RunE(p, func() error {
		urls := cmd.Flags().Args()
		if len(urls) == 0 {
			return fmt.Errorf("missing operand URL")
		}

		client := grab.NewClient()
		client.UserAgent = "picobox-wget/" + shell.Version

		var reqs []*grab.Request
		for _, url := range urls {
			req, err := grab.NewRequest(url)
			if err != nil {
				return err
			}
			reqs = append(reqs, req)
		}

		respch := client.DoBatch(3, reqs...)
		t := time.NewTicker(500 * time.Millisecond)
		defer t.Stop()

		var responses []*grab.Response
		completed := 0
		failed := false
		for completed < len(reqs) {
			select {
			case resp := <-respch:
				// nil is received once, when the channel is closed by grab.
				if resp != nil {
					responses = append(responses, resp)
				}

			case <-t.C:
				for i, resp := range responses {
					if resp == nil || !resp.IsComplete() {
						continue
					}
					if resp.Error != nil {
						fmt.Fprintf(p.Stderr, "wget: %s: %v\n", resp.Request.URL(), resp.Error)
						failed = true
					} else if !*quiet {
						fmt.Fprintf(p.Stdout, "saved %q (%d bytes)\n", resp.Filename, resp.BytesTransferred())
					}
					responses[i] = nil
					completed++
				}
			}
		}

		if failed {
			return fmt.Errorf("not all downloads succeeded")
		}
		return nil
	})
}

var _ proc.Func = Wget

func init() {
	register("wget", "Download files over HTTP(S).", Wget)
}
