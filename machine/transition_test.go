package machine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atlekbai/statepaths"
	"github.com/atlekbai/statepaths/machine"
)

func TestTransition_IsReentry(t *testing.T) {
	event := statepaths.Event{Type: "x"}

	assert.True(t, machine.NewTransition("A", "A", event).IsReentry())
	assert.False(t, machine.NewTransition("A", "B", event).IsReentry())
}

func TestTransition_IsInitial(t *testing.T) {
	event := statepaths.Event{Type: "x"}

	assert.True(t, machine.NewInitialTransition("A", "B", event).IsInitial())
	assert.False(t, machine.NewTransition("A", "B", event).IsInitial())
}
