package commands

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/picobox/picobox/commands/cmdtest"
	"github.com/picobox/picobox/core/proc"
)

func ExampleBytesToHuman() {

	// < 1k is presented directly
	fmt.Println(BytesToHuman(512))

	// Multiples > 10 are shown without decimal.
	fmt.Println(BytesToHuman(23 * 10e8))

	// Multiples < 10 are shown with decimal.
	fmt.Println(BytesToHuman(5 * 1024))

	// Output: 512
	// 23G
	// 5.1K
}

func TestAllCommands(t *testing.T) {
	for _, entry := range All() {
		t.Run(entry.Name, func(t *testing.T) {
			assert.NotEmpty(t, entry.Name)
			assert.NotEmpty(t, entry.Short)
			assert.NotNil(t, entry.Proc)
		})
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	assert.Equal(t, len(All()), reg.Len())

	for _, name := range []string{"echo", "cat", "grep", "wc", "pkg", "ai"} {
		_, ok := reg.Find(name)
		assert.True(t, ok, "registry should hold %q", name)
	}
}

type goldenTestSuite map[string]goldenTest

type goldenTest struct {
	Args []string
}

func (gts goldenTestSuite) Run(t *testing.T, cmd proc.Func) {
	t.Helper()

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	for tn, tc := range gts {
		t.Run(tn, func(t *testing.T) {
			cmd := cmdtest.Command(cmd, tc.Args[0], tc.Args[1:]...)
			out, err := cmd.CombinedOutput()
			if err != nil {
				t.Fatal(err)
			}

			g.Assert(t, tn, out)
		})
	}
}
