package testutil

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStdoutOutputForFunc(t *testing.T) {
	out := StdoutOutputForFunc(func() {
		fmt.Fprint(os.Stdout, "to stdout")
	})

	assert.Equal(t, "to stdout", out)
}

func TestStderrOutputForFunc(t *testing.T) {
	out := StderrOutputForFunc(func() {
		fmt.Fprint(os.Stderr, "to stderr")
	})

	assert.Equal(t, "to stderr", out)
}
