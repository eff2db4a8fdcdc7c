package utils_test

import (
	"regexp"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"smartfare/internal/utils"
)

var referencePattern = regexp.MustCompile(`^SF\d{13}[0-9A-F]{10}$`)

func TestGenerateBookingReferenceFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		ref := utils.GenerateBookingReference()
		assert.Regexp(t, referencePattern, ref)
	}
}

func TestGenerateBookingReferenceUniqueness(t *testing.T) {
	const (
		goroutines = 20
		perRoutine = 5000
	)

	var mu sync.Mutex
	seen := make(map[string]struct{}, goroutines*perRoutine)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]string, 0, perRoutine)
			for i := 0; i < perRoutine; i++ {
				local = append(local, utils.GenerateBookingReference())
			}
			mu.Lock()
			for _, ref := range local {
				seen[ref] = struct{}{}
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines*perRoutine, len(seen), "all generated references must be distinct")
}

func TestGenerateLockToken(t *testing.T) {
	a := utils.GenerateLockToken()
	b := utils.GenerateLockToken()

	_, err := uuid.Parse(a)
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}
