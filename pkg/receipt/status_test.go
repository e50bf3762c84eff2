package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{StatusUploaded, StatusProcessing},
		{StatusProcessing, StatusProcessed},
		{StatusProcessing, StatusProcessedWithWarnings},
		{StatusProcessing, StatusFailed},
		{StatusProcessed, StatusExpenseCreated},
		{StatusProcessed, StatusExpenseCreationFailed},
		{StatusProcessedWithWarnings, StatusExpenseCreated},
		{StatusProcessedWithWarnings, StatusExpenseCreationFailed},
		{StatusExpenseCreationFailed, StatusExpenseCreated},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to string }{
		{StatusUploaded, StatusProcessed},
		{StatusUploaded, StatusExpenseCreated},
		{StatusProcessing, StatusUploaded},
		{StatusProcessed, StatusProcessing},
		{StatusFailed, StatusProcessing},
		{StatusFailed, StatusExpenseCreated},
		{StatusExpenseCreated, StatusExpenseCreationFailed},
		{StatusExpenseCreated, StatusExpenseCreated},
	}
	for _, tc := range denied {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	assert.False(t, CanTransition("shredded", StatusProcessing))
	assert.False(t, CanTransition(StatusUploaded, "shredded"))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusFailed))
	assert.True(t, IsTerminal(StatusExpenseCreated))

	assert.False(t, IsTerminal(StatusUploaded))
	assert.False(t, IsTerminal(StatusProcessing))
	assert.False(t, IsTerminal(StatusProcessed))
	assert.False(t, IsTerminal(StatusProcessedWithWarnings))
	assert.False(t, IsTerminal(StatusExpenseCreationFailed))
}
