package commands

import (
	"testing"
)

func TestBasename(t *testing.T) {
	cases := goldenTestSuite{
		"simple":  {[]string{"basename", "/usr/lib/libfoo.so"}},
		"suffix":  {[]string{"basename", "include/stdio.h", ".h"}},
		"missing": {[]string{"basename"}},
	}

	cases.Run(t, Basename)
}

func TestDirname(t *testing.T) {
	cases := goldenTestSuite{
		"simple":   {[]string{"dirname", "/usr/lib/libfoo.so"}},
		"root":     {[]string{"dirname", "/usr"}},
		"relative": {[]string{"dirname", "stdio.h"}},
	}

	cases.Run(t, Dirname)
}
