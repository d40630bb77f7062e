package lesson

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSimulatedSaver_LogsSubmittedPlan(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	saver := NewSimulatedSaver(0, zap.New(core))

	draft := Draft{
		Title:       "Intro to Fractions",
		Description: "Halves and quarters",
		Date:        lessonDay,
		Tags:        []string{"math", "grade-3"},
	}
	require.NoError(t, saver.Save(context.Background(), draft))

	entries := logs.FilterMessage("lesson plan submitted").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "intro-to-fractions", fields["slug"])
	assert.Equal(t, "Intro to Fractions", fields["title"])
	assert.Equal(t, "2026-10-19", fields["date"])
	assert.Len(t, fields["id"], 6)
	assert.Equal(t, []interface{}{"math", "grade-3"}, fields["tags"])
}

func TestSimulatedSaver_WaitsForDelay(t *testing.T) {
	saver := NewSimulatedSaver(30*time.Millisecond, nil)

	start := time.Now()
	require.NoError(t, saver.Save(context.Background(), Draft{Title: "x"}))
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestSimulatedSaver_Cancelled(t *testing.T) {
	saver := NewSimulatedSaver(time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := saver.Save(ctx, Draft{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDraft_Markdown(t *testing.T) {
	d := Draft{
		Title:       "Fractions",
		Description: "Intro to fractions",
		Date:        lessonDay,
		Tags:        []string{"math"},
	}

	md := d.Markdown()
	assert.True(t, strings.HasPrefix(md, "# Fractions\n"))
	assert.Contains(t, md, "**Date:** 2026-10-19")
	assert.Contains(t, md, "**Tags:** `math`")
	assert.Contains(t, md, "Intro to fractions")

	assert.Contains(t, Draft{}.Markdown(), "# Untitled lesson")
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, 19, got.Day())

	got, err = ParseDate("  ")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = ParseDate("19/10/2026")
	assert.Error(t, err)
}
