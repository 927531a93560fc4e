package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusStrings(t *testing.T) {
	assert.Equal(t, "Waiting on Delivery", WaitingOnDelivery.String())
	assert.Equal(t, "Being Delivered", BeingDelivered.String())
	assert.Equal(t, "Delivered", Delivered.String())
	assert.Equal(t, "Unknown", Unknown.String())
	assert.Equal(t, "Unknown", Status(42).String())
}

func TestStatusFromString(t *testing.T) {
	status, err := StatusFromString("Being Delivered")
	require.NoError(t, err)
	assert.Equal(t, BeingDelivered, status)

	_, err = StatusFromString("Lost")
	assert.Error(t, err)
}

func TestStatusValidate(t *testing.T) {
	assert.NoError(t, WaitingOnDelivery.Validate())
	assert.NoError(t, Delivered.Validate())
	assert.Error(t, Unknown.Validate())
	assert.Error(t, Status(42).Validate())
}

func TestStatusTransitions(t *testing.T) {
	next, err := WaitingOnDelivery.BeginDelivery()
	require.NoError(t, err)
	assert.Equal(t, BeingDelivered, next)

	next, err = BeingDelivered.Complete()
	require.NoError(t, err)
	assert.Equal(t, Delivered, next)

	_, err = Delivered.Complete()
	assert.Error(t, err)

	_, err = BeingDelivered.BeginDelivery()
	assert.Error(t, err)
}
