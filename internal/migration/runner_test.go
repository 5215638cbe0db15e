package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func noop(tx *gorm.DB) error { return nil }

func TestPending_FreshStoreWalksFromZero(t *testing.T) {
	r := NewRunner()
	r.Register(1, noop)
	r.Register(2, noop)

	assert.Equal(t, []int{0, 1, 2}, r.pending(0))
}

func TestPending_ResumesFromCurrentVersion(t *testing.T) {
	r := NewRunner()
	r.Register(1, noop)
	r.Register(2, noop)

	assert.Equal(t, []int{2}, r.pending(2))
}

func TestPending_GapHaltsWalk(t *testing.T) {
	r := NewRunner()
	r.Register(2, noop) // nothing registered for 1

	assert.Equal(t, []int{0}, r.pending(0))
}

func TestPending_NothingToApply(t *testing.T) {
	r := NewRunner()

	assert.Empty(t, r.pending(1))
}

func TestRegister_LastWriteWins(t *testing.T) {
	called := ""
	r := NewRunner()
	r.Register(1, func(tx *gorm.DB) error {
		called = "first"
		return nil
	})
	r.Register(1, func(tx *gorm.DB) error {
		called = "second"
		return nil
	})

	assert.NoError(t, r.procedures[1](nil))
	assert.Equal(t, "second", called)
}
