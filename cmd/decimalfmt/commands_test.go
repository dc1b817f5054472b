package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-decimalfmt"
)

var fixture = filepath.Join("..", "..", "testdata", "locales", "formats.yml")

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(LogLevelEnvVar, "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFormatCommand(t *testing.T) {
	out, err := execute(t, "format", "--config", fixture, "--locale", "it", "--", "1234567.891", "-12.5")
	require.NoError(t, err)
	assert.Equal(t, "1'234'567,89\n-12,5\n", out)
}

func TestFormatCommandStrict(t *testing.T) {
	out, err := execute(t, "format", "--config", fixture, "--locale", "it", "n/a")
	require.NoError(t, err)
	assert.Equal(t, "n/a\n", out)

	_, err = execute(t, "format", "--config", fixture, "--locale", "it", "--strict", "n/a")
	assert.ErrorIs(t, err, decimalfmt.ErrMalformedValue)
}

func TestParseCommand(t *testing.T) {
	out, err := execute(t, "parse", "--config", fixture, "--locale", "it", "1'234'567,891", "abc")
	require.NoError(t, err)
	assert.Equal(t, "1234567.89\nabc\n", out)

	_, err = execute(t, "parse", "--config", fixture, "--locale", "it", "--strict", "abc")
	assert.ErrorIs(t, err, decimalfmt.ErrMalformedNumber)
}

func TestResolveCommand(t *testing.T) {
	out, err := execute(t, "resolve", "--config", fixture, "--fallback", "rm=it", "rm", "ja")
	require.NoError(t, err)
	assert.Equal(t,
		"rm\tseparator=\",\" delimiter=\"'\" precision=2\n"+
			"ja\tseparator=\".\" delimiter=\"\" precision=3\n",
		out)
}

func TestResolveCommandDefaultLocale(t *testing.T) {
	out, err := execute(t, "resolve", "--cldr", "--cldr-precision", "1", "--locale", "de")
	require.NoError(t, err)
	assert.Equal(t, "de\tseparator=\",\" delimiter=\".\" precision=1\n", out)
}

func TestCommandConfigError(t *testing.T) {
	_, err := execute(t, "format", "--config", filepath.Join("..", "..", "testdata", "locales", "missing.yml"), "1")
	assert.Error(t, err)

	_, err = execute(t, "resolve", "--fallback", "rm", "rm")
	assert.Error(t, err)
}

func TestParseFallback(t *testing.T) {
	tests := []struct {
		entry     string
		locale    string
		fallbacks []string
		wantErr   bool
	}{
		{entry: "rm=it", locale: "rm", fallbacks: []string{"it"}},
		{entry: " rm = it , de ", locale: "rm", fallbacks: []string{"it", "de"}},
		{entry: "rm", wantErr: true},
		{entry: "=it", wantErr: true},
		{entry: "rm=,", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			locale, fallbacks, err := parseFallback(tt.entry)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.locale, locale)
			assert.Equal(t, tt.fallbacks, fallbacks)
		})
	}
}

func TestNewLoggerSilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")

	logger, err := newLogger("")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1))

	logger, err = newLogger("warn")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(1))
	assert.False(t, logger.Core().Enabled(0))
}
