package id

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUnique(t *testing.T) {
	gen := NewGenerator()

	assert.NotEqual(t, gen.Generate(), gen.Generate())
}

func TestGenerateWithEntropy(t *testing.T) {
	entropy := bytes.Repeat([]byte{0xab}, 10)
	gen := NewGeneratorWithEntropy(bytes.NewReader(entropy))

	assert.Equal(t, entropy, gen.Generate().Entropy())
}

func TestPrefixes(t *testing.T) {
	tests := []struct {
		id     string
		prefix string
	}{
		{NewWindowID().String(), WindowPrefix},
		{NewConnectionID().String(), ConnectionPrefix},
		{NewDocumentID().String(), DocumentPrefix},
	}

	for _, tt := range tests {
		require.True(t, strings.HasPrefix(tt.id, tt.prefix+"_"), tt.id)
		assert.Len(t, strings.TrimPrefix(tt.id, tt.prefix+"_"), 26)
	}
}

func TestTimestamp(t *testing.T) {
	before := time.Now().Add(-time.Second)
	id := NewConnectionID()

	ts, err := Timestamp(id.String())
	require.NoError(t, err)
	assert.True(t, ts.After(before))

	_, err = Timestamp("conn_not-a-ulid")
	assert.Error(t, err)
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()
	seen := sync.Map{}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := gen.GenerateWithPrefix("t")
				_, dup := seen.LoadOrStore(id, true)
				assert.False(t, dup, "duplicate id %s", id)
			}
		}()
	}
	wg.Wait()
}
