package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/JonnyWalker81/problemjson/pkg/apierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEncodeValidationProblem(t *testing.T) {
	out, err := execute(t, "encode",
		"--type", "validation_error",
		"--status", "400",
		"--title", "Bad Request",
		"--detail", "Invalid input",
		"--body-error", "/name=must be a string",
		"--header-error", "X-Api-Key=is required",
	)
	require.NoError(t, err)

	want := `{"type":"validation_error","status":400,"title":"Bad Request","detail":"Invalid input",` +
		`"errors":[{"detail":"must be a string","source":"body","pointer":"/name"},` +
		`{"detail":"is required","source":"header","name":"X-Api-Key"}]}` + "\n"
	assert.Equal(t, want, out)
}

func TestEncodeWithoutErrors(t *testing.T) {
	out, err := execute(t, "encode", "--type", "not_found", "--status", "404", "--detail", "gone")
	require.NoError(t, err)

	assert.Equal(t, `{"type":"not_found","status":404,"title":"Not Found","detail":"gone"}`+"\n", out)
}

func TestEncodeWholeBodyError(t *testing.T) {
	out, err := execute(t, "encode", "--body-error", "=is not valid JSON")
	require.NoError(t, err)

	assert.Contains(t, out, `"errors":[{"detail":"is not valid JSON","source":"body"}]`)
}

func TestEncodeInclude(t *testing.T) {
	out, err := execute(t, "encode", "-i", "--status", "409", "--type", "conflict")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "HTTP/1.1 409 Conflict\r\nContent-Type: application/problem+json\r\n\r\n{"), out)
}

func TestEncodeFallback(t *testing.T) {
	out, err := execute(t, "encode", "--status", "1000")

	require.Error(t, err)
	assert.True(t, errors.Is(err, errFallback))
	assert.Contains(t, err.Error(), "status is not a valid HTTP status code")
	assert.Contains(t, out, apierror.InternalServerErrorProblem)
}

func TestEncodeRejectsMalformedFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "body error without separator", args: []string{"--body-error", "/name"}, want: "want pointer=detail"},
		{name: "invalid pointer", args: []string{"--body-error", "name=bad"}, want: "--body-error"},
		{name: "header error without name", args: []string{"--header-error", "=is required"}, want: "want name=detail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"encode"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
