package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCommand struct {
	Value       string
	validateErr error
}

func (c testCommand) Validate() error { return c.validateErr }

func TestCommandBus_SendDispatchesByType(t *testing.T) {
	commandBus := NewCommandBus()

	var handled testCommand
	err := commandBus.Register(testCommand{}, CommandHandlerFunc(
		func(ctx context.Context, cmd Command) error {
			handled = cmd.(testCommand)
			return nil
		}))
	require.NoError(t, err)

	err = commandBus.Send(context.Background(), testCommand{Value: "hello"})

	assert.NoError(t, err)
	assert.Equal(t, "hello", handled.Value)
}

func TestCommandBus_SendValidatesFirst(t *testing.T) {
	commandBus := NewCommandBus()

	called := false
	err := commandBus.Register(testCommand{}, CommandHandlerFunc(
		func(ctx context.Context, cmd Command) error {
			called = true
			return nil
		}))
	require.NoError(t, err)

	validateErr := errors.New("invalid command")
	err = commandBus.Send(context.Background(), testCommand{validateErr: validateErr})

	assert.ErrorIs(t, err, validateErr)
	assert.False(t, called)
}

func TestCommandBus_SendUnregisteredCommand(t *testing.T) {
	commandBus := NewCommandBus()

	err := commandBus.Send(context.Background(), testCommand{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no handler registered")
}

func TestCommandBus_DuplicateRegistration(t *testing.T) {
	commandBus := NewCommandBus()

	handler := CommandHandlerFunc(func(ctx context.Context, cmd Command) error { return nil })
	require.NoError(t, commandBus.Register(testCommand{}, handler))

	err := commandBus.Register(testCommand{}, handler)
	assert.Error(t, err)
}
