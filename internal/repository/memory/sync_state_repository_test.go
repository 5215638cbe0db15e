package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSyncStateRepository(t *testing.T) {
	repo := NewSyncStateRepository(time.Hour)

	_, found := repo.LastSync("u1")
	assert.False(t, found)

	at := time.Now()
	repo.RecordSync("u1", at)

	got, found := repo.LastSync("u1")
	assert.True(t, found)
	assert.Equal(t, at, got)

	repo.Clear("u1")
	_, found = repo.LastSync("u1")
	assert.False(t, found)
}
