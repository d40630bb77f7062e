package lesson

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddPendingTag_DuplicateIsIdempotent(t *testing.T) {
	f := NewForm()
	f.SetPendingTag("math")
	assert.True(t, f.AddPendingTag())

	f.SetPendingTag("math")
	assert.False(t, f.AddPendingTag())

	assert.Equal(t, []string{"math"}, f.Tags())
	assert.Equal(t, "math", f.PendingTag(), "rejected value stays staged")
}

func TestAddPendingTag_EmptyOrBlankIsNoop(t *testing.T) {
	for _, pending := range []string{"", " ", "\t"} {
		f := NewForm()
		f.SetPendingTag("a")
		f.AddPendingTag()

		f.SetPendingTag(pending)
		assert.False(t, f.AddPendingTag())
		assert.Equal(t, []string{"a"}, f.Tags())
	}
}

func TestAddPendingTag_CaseSensitive(t *testing.T) {
	f := NewForm()
	for _, tag := range []string{"Math", "math"} {
		f.SetPendingTag(tag)
		f.AddPendingTag()
	}
	assert.Equal(t, []string{"Math", "math"}, f.Tags())
}

// Scenario C
func TestAddPendingTag_ExistingTagLeavesListUnchanged(t *testing.T) {
	f := formWithTags("a", "b")
	f.SetPendingTag("a")

	assert.False(t, f.AddPendingTag())
	assert.Equal(t, []string{"a", "b"}, f.Tags())
}

// Scenario D
func TestAddPendingTag_AppendsAndClears(t *testing.T) {
	f := formWithTags("a", "b")
	f.SetPendingTag("c")

	assert.True(t, f.AddPendingTag())
	assert.Equal(t, []string{"a", "b", "c"}, f.Tags())
	assert.Equal(t, "", f.PendingTag())
}

func TestRemoveTag(t *testing.T) {
	f := formWithTags("a", "b", "c")

	assert.True(t, f.RemoveTag("b"))
	assert.Equal(t, []string{"a", "c"}, f.Tags())

	assert.False(t, f.RemoveTag("missing"))
	assert.Equal(t, []string{"a", "c"}, f.Tags())
}

func TestRemoveThenAddMovesTagToEnd(t *testing.T) {
	f := formWithTags("a", "b", "c")

	f.RemoveTag("a")
	f.SetPendingTag("a")
	f.AddPendingTag()

	assert.Equal(t, []string{"b", "c", "a"}, f.Tags())
	assert.True(t, f.HasTag("a"))
}

func TestTagsReturnsCopy(t *testing.T) {
	f := formWithTags("a")
	tags := f.Tags()
	tags[0] = "mutated"

	assert.Equal(t, []string{"a"}, f.Tags())
}

func formWithTags(tags ...string) *Form {
	f := NewForm()
	for _, tag := range tags {
		f.SetPendingTag(tag)
		f.AddPendingTag()
	}
	return f
}
