package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/adityajain1310/folio/internal/inbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintMessages(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printMessages(&buf, nil))
	assert.Equal(t, "No messages.\n", buf.String())

	buf.Reset()
	at := time.Date(2026, 3, 4, 5, 6, 0, 0, time.Local)
	require.NoError(t, printMessages(&buf, []inbox.Message{
		{Name: "Ada", Email: "ada@example.com", Body: "line one\nline two", CreatedAt: at},
		{Name: "Grace", Email: "grace@example.com", Body: "hi", CreatedAt: at},
	}))
	out := buf.String()
	assert.Contains(t, out, "2026-03-04 05:06  Ada <ada@example.com>\n    line one\n    line two\n")
	assert.Contains(t, out, "\n\n2026-03-04 05:06  Grace <grace@example.com>\n    hi\n")
}
