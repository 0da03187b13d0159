package printer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinter_Lines(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Successf("Day %d complete", 3)
	p.Warnf("progress not saved")
	p.Errorf("boom")
	p.Infof("hello %s", "there")
	p.Printf("plain %d", 1)

	out := buf.String()
	assert.Contains(t, out, "Day 3 complete")
	assert.Contains(t, out, "progress not saved")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "hello there")
	assert.Contains(t, out, "plain 1\n")
}

func TestPrinter_Success(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Success("Snapshot written", "/tmp/out.json")

	assert.Contains(t, buf.String(), "Snapshot written")
	assert.Contains(t, buf.String(), "/tmp/out.json")
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	ctx := NewContext(context.Background(), p)
	assert.Same(t, p, Ctx(ctx))

	fallback := Ctx(context.Background())
	assert.NotNil(t, fallback)
	assert.NotSame(t, p, fallback)
}
