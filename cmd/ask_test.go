package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edupath/internal/advice"
)

func TestAskOnce(t *testing.T) {
	var out bytes.Buffer
	r := advice.NewDefaultResponder()
	require.NoError(t, askOnce(context.Background(), r, "zzz qqq", &out))
	assert.Equal(t, advice.Fallback+"\n", out.String())
}

func TestAskLoop(t *testing.T) {
	in := strings.NewReader("\nzzz qqq\nexit\nnot reached\n")
	var out bytes.Buffer

	require.NoError(t, askLoop(context.Background(), advice.NewDefaultResponder(), in, &out))

	got := out.String()
	assert.Contains(t, got, "Hello! How can I assist you today?")
	assert.Contains(t, got, "EduBot: "+advice.Fallback)
	assert.Contains(t, got, "Goodbye!")
	assert.Equal(t, 1, strings.Count(got, advice.Fallback))
}

func TestAskLoop_EOF(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, askLoop(context.Background(), advice.NewDefaultResponder(), strings.NewReader(""), &out))
	assert.NotContains(t, out.String(), "Goodbye!")
}
