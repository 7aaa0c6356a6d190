package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfiler_OrderAndCounts(t *testing.T) {
	p := NewProfiler()
	p.BeginScope("update")
	p.EndScope("update")
	p.BeginScope("render")
	p.EndScope("render")
	p.BeginScope("update")
	p.EndScope("update")
	p.SetCount("points", 1400)

	assert.Equal(t, []string{"update", "render"}, p.Order)

	stats := p.GetStatsString()
	lines := strings.Split(strings.TrimSpace(stats), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "update"))
	assert.True(t, strings.HasPrefix(lines[1], "render"))
	assert.Contains(t, lines[2], "1400")
}

func TestProfiler_EndWithoutBegin(t *testing.T) {
	p := NewProfiler()
	p.EndScope("missing")
	assert.Empty(t, p.Scopes)
}
